package source

import "testing"

func TestRegisterAssignsStableIDs(t *testing.T) {
	reg := NewRegistry()
	a, err := reg.Register("a.tim", "class A {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := reg.Register("b.tim", "class B {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct file IDs, got %d and %d", a, b)
	}
	if got := reg.Get(a).Path; got != "a.tim" {
		t.Fatalf("expected path a.tim, got %s", got)
	}
}

func TestRegisterDuplicateIdenticalIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	a, err := reg.Register("a.tim", "class A {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := reg.Register("a.tim", "class A {}")
	if err != nil {
		t.Fatalf("unexpected error re-registering identical contents: %v", err)
	}
	if a != again {
		t.Fatalf("expected same FileID for identical re-registration")
	}
}

func TestRegisterDuplicateDifferentFails(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Register("a.tim", "class A {}"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := reg.Register("a.tim", "class A { x: i32; }")
	var dupErr *DuplicateSourceError
	if err == nil {
		t.Fatalf("expected duplicate_source error")
	}
	if !asDuplicateSourceError(err, &dupErr) {
		t.Fatalf("expected *DuplicateSourceError, got %T", err)
	}
}

func asDuplicateSourceError(err error, target **DuplicateSourceError) bool {
	if e, ok := err.(*DuplicateSourceError); ok {
		*target = e
		return true
	}
	return false
}

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("foo")
	if a != b {
		t.Fatalf("expected identical StringID for repeated intern")
	}
	c := in.Intern("bar")
	if a == c {
		t.Fatalf("expected distinct StringID for distinct text")
	}
	if got, _ := in.Lookup(a); got != "foo" {
		t.Fatalf("expected 'foo', got %q", got)
	}
}

func TestFileLineAndToLineCol(t *testing.T) {
	reg := NewRegistry()
	id, _ := reg.Register("a.tim", "class A {}\nclass B {}\n")
	f := reg.Get(id)
	if f.Line(1) != "class A {}" {
		t.Fatalf("unexpected line 1: %q", f.Line(1))
	}
	if f.Line(2) != "class B {}" {
		t.Fatalf("unexpected line 2: %q", f.Line(2))
	}
	pos := f.ToLineCol(11) // 'c' of "class B"
	if pos.Line != 2 || pos.Col != 1 {
		t.Fatalf("unexpected position: %+v", pos)
	}
}
