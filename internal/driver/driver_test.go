package driver_test

import (
	"testing"

	"tim/internal/driver"
)

func TestCompileResolvesAcrossFiles(t *testing.T) {
	files := []driver.Source{
		{Path: "math.tim", Text: `
			pub func add(a: i32, b: i32): i32 {
				return a;
			}
		`},
		{Path: "app.tim", Text: `
			use math;

			func main(): i32 {
				return math.add(1, 2);
			}
		`},
	}
	prog, registry, items := driver.Compile(files, driver.Options{})
	if prog == nil {
		t.Fatalf("expected a resolved program, got diagnostics: %v", items)
	}
	if len(items) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", items)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected two registered files, got %d", registry.Len())
	}
	if len(prog.Modules) != 2 {
		t.Fatalf("expected two resolved modules, got %d", len(prog.Modules))
	}
}

func TestCompileReturnsNilProgramOnError(t *testing.T) {
	files := []driver.Source{
		{Path: "app.tim", Text: `
			func main(): void {
				missing();
			}
		`},
	}
	prog, _, items := driver.Compile(files, driver.Options{})
	if prog != nil {
		t.Fatalf("expected a nil program when resolution reports errors")
	}
	if len(items) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
}

func TestCompileReportsDuplicateSourceAndSkipsIt(t *testing.T) {
	files := []driver.Source{
		{Path: "app.tim", Text: "func main(): void {}"},
		{Path: "app.tim", Text: "func main(): void { let x: i32 = 1; }"},
	}
	_, registry, items := driver.Compile(files, driver.Options{})
	if len(items) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", items)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected only the first registration to succeed, got %d files", registry.Len())
	}
}

func TestCompileHandlesEmptyFileSet(t *testing.T) {
	prog, registry, items := driver.Compile(nil, driver.Options{})
	if prog == nil {
		t.Fatalf("expected an (empty) resolved program for zero files")
	}
	if len(items) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", items)
	}
	if registry.Len() != 0 {
		t.Fatalf("expected zero registered files, got %d", registry.Len())
	}
}

func TestCompileIsDeterministicUnderConcurrentParsing(t *testing.T) {
	files := []driver.Source{
		{Path: "a.tim", Text: "func a(): void {}"},
		{Path: "b.tim", Text: "func b(): void {}"},
		{Path: "c.tim", Text: "func c(): void {}"},
		{Path: "d.tim", Text: "func d(): void {}"},
	}
	for i := 0; i < 5; i++ {
		prog, _, items := driver.Compile(files, driver.Options{Jobs: 2})
		if prog == nil {
			t.Fatalf("run %d: expected a resolved program, got diagnostics: %v", i, items)
		}
		if len(items) != 0 {
			t.Fatalf("run %d: expected zero diagnostics, got %v", i, items)
		}
		if len(prog.Modules) != 4 {
			t.Fatalf("run %d: expected four resolved modules, got %d", i, len(prog.Modules))
		}
	}
}

func TestCompileModulePathDerivedFromFilePath(t *testing.T) {
	files := []driver.Source{
		{Path: "nested/dir/leaf.tim", Text: "pub func f(): void {}"},
		{Path: "app.tim", Text: `
			use nested.dir.leaf;

			func main(): void {
				leaf.f();
			}
		`},
	}
	prog, _, items := driver.Compile(files, driver.Options{})
	if prog == nil {
		t.Fatalf("expected a resolved program, got diagnostics: %v", items)
	}
	if _, ok := prog.Modules["nested.dir.leaf"]; !ok {
		paths := make([]string, 0, len(prog.Modules))
		for p := range prog.Modules {
			paths = append(paths, p)
		}
		t.Fatalf("expected module path %q, got modules %v", "nested.dir.leaf", paths)
	}
}
