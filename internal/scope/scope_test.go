package scope

import (
	"testing"

	"tim/internal/source"
)

func TestDefineAndLookupLocal(t *testing.T) {
	tree := NewTree()
	root := tree.New(KindModule, NoID, source.Span{})
	name := source.StringID(1)

	_, already := tree.Define(root, name, Binding{Handle: 42})
	if already {
		t.Fatalf("first Define should not report already-defined")
	}
	b, ok := tree.LookupLocal(root, name)
	if !ok || b.Handle != 42 {
		t.Fatalf("expected to find binding with handle 42, got %+v ok=%v", b, ok)
	}
}

func TestDefineTwiceReportsAlreadyDefined(t *testing.T) {
	tree := NewTree()
	root := tree.New(KindModule, NoID, source.Span{})
	name := source.StringID(1)

	tree.Define(root, name, Binding{Handle: 1})
	prev, already := tree.Define(root, name, Binding{Handle: 2})
	if !already {
		t.Fatalf("second Define of the same name should report already-defined")
	}
	if prev.Handle != 1 {
		t.Fatalf("expected previous binding handle 1, got %d", prev.Handle)
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	tree := NewTree()
	root := tree.New(KindModule, NoID, source.Span{})
	fn := tree.New(KindFunction, root, source.Span{})
	outer := source.StringID(1)

	tree.Define(root, outer, Binding{Handle: 7})
	b, ok := tree.Lookup(fn, outer)
	if !ok || b.Handle != 7 {
		t.Fatalf("expected child scope to see parent binding, got %+v ok=%v", b, ok)
	}
}

func TestChildShadowsParent(t *testing.T) {
	tree := NewTree()
	root := tree.New(KindModule, NoID, source.Span{})
	fn := tree.New(KindFunction, root, source.Span{})
	name := source.StringID(1)

	tree.Define(root, name, Binding{Handle: 1})
	tree.Define(fn, name, Binding{Handle: 2})

	b, ok := tree.Lookup(fn, name)
	if !ok || b.Handle != 2 {
		t.Fatalf("expected local binding to shadow parent, got %+v ok=%v", b, ok)
	}
	// The parent scope itself must be unaffected by the child's shadowing
	// definition.
	b, ok = tree.Lookup(root, name)
	if !ok || b.Handle != 1 {
		t.Fatalf("expected parent scope to retain its own binding, got %+v ok=%v", b, ok)
	}
}

func TestLookupMissingNameFails(t *testing.T) {
	tree := NewTree()
	root := tree.New(KindModule, NoID, source.Span{})
	if _, ok := tree.Lookup(root, source.StringID(99)); ok {
		t.Fatalf("expected lookup of undefined name to fail")
	}
}

func TestNewRegistersChildOnParent(t *testing.T) {
	tree := NewTree()
	root := tree.New(KindModule, NoID, source.Span{})
	child := tree.New(KindFunction, root, source.Span{})

	parent := tree.Get(root)
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Fatalf("expected parent.Children to contain the new child scope, got %+v", parent.Children)
	}
}
