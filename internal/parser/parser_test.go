package parser

import (
	"testing"

	"tim/internal/ast"
	"tim/internal/diag"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	bag := diag.NewBag(16)
	f, ok := Parse(1, src, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("unexpected parse failure, diagnostics: %+v", bag.Items())
	}
	return f
}

func TestParseClassWithFieldAndMethod(t *testing.T) {
	f := mustParse(t, `
		pub class Point {
			pub x: i32;
			y: i32;
			pub func magnitude(this): i32 { return x; }
		}
	`)
	if len(f.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(f.Decls))
	}
	class, ok := f.Decls[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", f.Decls[0])
	}
	if !class.Public || class.Name != "Point" {
		t.Fatalf("unexpected class header: %+v", class)
	}
	if len(class.Fields) != 2 || len(class.Methods) != 1 {
		t.Fatalf("expected 2 fields and 1 method, got %d/%d", len(class.Fields), len(class.Methods))
	}
	if !class.Methods[0].Params[0].IsThis {
		t.Fatalf("expected first param to be 'this' receiver")
	}
}

func TestParseInterfaceWithParent(t *testing.T) {
	f := mustParse(t, `
		interface Greeter: Named {
			func hello(): void;
		}
	`)
	iface, ok := f.Decls[0].(*ast.InterfaceDecl)
	if !ok {
		t.Fatalf("expected *ast.InterfaceDecl, got %T", f.Decls[0])
	}
	if iface.Parent == nil || iface.Parent.Path[0] != "Named" {
		t.Fatalf("expected parent interface Named, got %+v", iface.Parent)
	}
	if len(iface.Methods) != 1 || iface.Methods[0].Name != "hello" {
		t.Fatalf("unexpected methods: %+v", iface.Methods)
	}
}

func TestParseExtend(t *testing.T) {
	f := mustParse(t, `
		extend Cat: Animal {
			func speak(): void {}
		}
	`)
	ext, ok := f.Decls[0].(*ast.ExtendDecl)
	if !ok {
		t.Fatalf("expected *ast.ExtendDecl, got %T", f.Decls[0])
	}
	if ext.ClassName != "Cat" || ext.InterfaceName != "Animal" {
		t.Fatalf("unexpected extend header: %+v", ext)
	}
}

func TestParseNullableAndReferenceTypes(t *testing.T) {
	f := mustParse(t, `
		class Box {
			value: ??i32;
		}
	`)
	// Parsing never rejects ??T -- that diagnostic belongs to the resolver's
	// Finish phase (redundant_nullable), not the parser.
	class := f.Decls[0].(*ast.ClassDecl)
	ty := class.Fields[0].Type
	if ty.Kind != ast.TypeNullable || ty.Inner.Kind != ast.TypeNullable {
		t.Fatalf("expected nested nullable type expr, got %+v", ty)
	}
}

func TestParseImportWildcardAndAlias(t *testing.T) {
	f := mustParse(t, `
		use a.b.c as abc;
		use lib.*;
	`)
	if len(f.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(f.Imports))
	}
	if f.Imports[0].Alias != "abc" {
		t.Fatalf("expected alias abc, got %q", f.Imports[0].Alias)
	}
	if !f.Imports[1].Wildcard {
		t.Fatalf("expected wildcard import")
	}
}

func TestParseCallExpression(t *testing.T) {
	f := mustParse(t, `
		func main() {
			let x = compute(1, 2);
		}
	`)
	fn := f.Decls[0].(*ast.FuncDecl)
	let := fn.Body[0].(*ast.LetStmt)
	call, ok := let.Init.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr, got %T", let.Init)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseSyntaxErrorReported(t *testing.T) {
	bag := diag.NewBag(16)
	_, ok := Parse(1, `class {}`, diag.BagReporter{Bag: bag})
	if ok {
		t.Fatalf("expected parse failure on missing class name")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected at least one syntax_error diagnostic")
	}
}
