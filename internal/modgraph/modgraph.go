// Package modgraph models the cross-file structure a program is resolved
// against: one node per source file, its declarations in source order, its
// unresolved import list, and — once the first resolution pass has run — the
// map from each import to the module it names and that module's export
// view.
package modgraph

import (
	"tim/internal/ast"
	"tim/internal/scope"
	"tim/internal/source"
)

// Import is one `use` clause, still pointing at its AST node until
// resolution fills in Resolved.
type Import struct {
	Syntax   *ast.Import
	Resolved source.FileID // NoFileID until the first pass resolves the path
	Ok       bool          // whether Resolved names a real module
}

// Node is one source file's place in the graph.
type Node struct {
	File    source.FileID
	Path    string // dotted module path this file declares, e.g. "a.b.c"
	AST     *ast.File
	Imports []*Import

	// Scope is this module's top-level scope, allocated and given its
	// declarations and imports during the first resolution pass.
	Scope scope.ID
}

// Graph holds every module participating in one compilation.
type Graph struct {
	nodes   []*Node
	byFile  map[source.FileID]*Node
	byPath  map[string]*Node
}

// NewGraph creates an empty module graph.
func NewGraph() *Graph {
	return &Graph{
		byFile: make(map[source.FileID]*Node),
		byPath: make(map[string]*Node),
	}
}

// AddNode registers a parsed file as a module. path is the dotted module
// path this file is reachable under; it is derived from the file's location
// within a project, not from anything in the file's own text. AddNode
// reports false if path is already taken by a different file, which the
// caller surfaces as a duplicate_source diagnostic. Adding the same file at
// the same path again returns its existing node and adds nothing.
func (g *Graph) AddNode(file source.FileID, path string, f *ast.File) (*Node, bool) {
	if existing, ok := g.byPath[path]; ok {
		return existing, existing.File == file
	}
	n := &Node{File: file, Path: path, AST: f}
	for _, imp := range f.Imports {
		n.Imports = append(n.Imports, &Import{Syntax: imp})
	}
	g.nodes = append(g.nodes, n)
	g.byFile[file] = n
	g.byPath[path] = n
	return n, true
}

// Node returns the module node for file, or nil if file was never added.
func (g *Graph) Node(file source.FileID) *Node { return g.byFile[file] }

// NodeByPath returns the module node declared at path, or nil if no file
// was registered there.
func (g *Graph) NodeByPath(path string) *Node { return g.byPath[path] }

// Nodes returns every module node, in the order they were added.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Len reports the number of modules in the graph.
func (g *Graph) Len() int { return len(g.nodes) }
