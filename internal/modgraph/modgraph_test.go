package modgraph

import (
	"testing"

	"tim/internal/ast"
	"tim/internal/source"
)

func TestAddNodeRegistersByFileAndPath(t *testing.T) {
	g := NewGraph()
	f := &ast.File{}
	n, ok := g.AddNode(source.FileID(1), "a.b", f)
	if !ok {
		t.Fatalf("expected first AddNode for a path to succeed")
	}
	if g.Node(source.FileID(1)) != n {
		t.Fatalf("expected Node lookup by file to return the same node")
	}
	if g.NodeByPath("a.b") != n {
		t.Fatalf("expected NodeByPath lookup to return the same node")
	}
}

func TestAddNodeDuplicatePathFails(t *testing.T) {
	g := NewGraph()
	g.AddNode(source.FileID(1), "a.b", &ast.File{})
	_, ok := g.AddNode(source.FileID(2), "a.b", &ast.File{})
	if ok {
		t.Fatalf("expected second AddNode with the same path from a different file to fail")
	}
}

func TestAddNodeSamePathSameFileIsIdempotent(t *testing.T) {
	g := NewGraph()
	g.AddNode(source.FileID(1), "a.b", &ast.File{})
	_, ok := g.AddNode(source.FileID(1), "a.b", &ast.File{})
	if !ok {
		t.Fatalf("re-adding the same file at the same path should succeed")
	}
	if g.Len() != 1 {
		t.Fatalf("expected re-adding the same file to leave a single node, got %d", g.Len())
	}
}

func TestImportsAreCopiedFromAST(t *testing.T) {
	g := NewGraph()
	f := &ast.File{Imports: []*ast.Import{{Path: []string{"x", "y"}}}}
	n, _ := g.AddNode(source.FileID(1), "m", f)
	if len(n.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(n.Imports))
	}
	if n.Imports[0].Resolved != source.NoFileID {
		t.Fatalf("expected import to start unresolved")
	}
}
