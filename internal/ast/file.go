// Package ast defines the syntax tree the parser produces and the resolver
// consumes. Every node carries a source.Span. The tree models classes,
// interfaces, extensions, functions, static variables, imports, a handful of
// statements and expressions, and type expressions (identifier path, ?T,
// ref T). Loops, match arms and generics are deliberately absent.
package ast

import "tim/internal/source"

// File is the syntax tree produced by parsing one source file.
type File struct {
	Source  source.FileID
	Span    source.Span
	Imports []*Import
	Decls   []Decl
}

// Decl is any top-level declaration: *ClassDecl, *InterfaceDecl,
// *ExtendDecl, *FuncDecl or *StaticVarDecl.
type Decl interface {
	declNode()
	DeclSpan() source.Span
}

// Import models `use path [as alias];` and `use path.*;`.
type Import struct {
	Span      source.Span
	Path      []string
	PathSpan  source.Span
	Alias     string
	AliasSpan source.Span
	Wildcard  bool
}
