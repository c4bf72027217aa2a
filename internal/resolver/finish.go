package resolver

import (
	"tim/internal/ast"
	"tim/internal/sig"
)

// Finish is phase two: for every module, in source order, fill every
// reserved shell with its resolved signature, then resolve every extension
// and tie completed interface implementations back to their class. Nothing
// here invents a type; every failure becomes a diagnostic and the
// offending declaration is skipped by dependent checks, never aborting the
// rest of the run.
func (r *Resolver) Finish() {
	for _, n := range r.graph.Nodes() {
		for _, d := range n.AST.Decls {
			switch v := d.(type) {
			case *ast.ClassDecl:
				r.finishClass(n.File, n.Scope, v)
			case *ast.InterfaceDecl:
				r.finishInterface(n.File, n.Scope, v)
			case *ast.FuncDecl:
				r.finishFunction(n.File, n.Scope, v, sig.NoHandle)
			case *ast.StaticVarDecl:
				r.finishStatic(n.File, n.Scope, v)
			}
		}
	}

	// Extensions are resolved after every class and interface has its full
	// signature, since matching an extension's methods against an
	// interface's requirements needs both sides filled in.
	for _, site := range r.extensionHandles {
		r.finishExtension(site)
	}

	r.reportUnusedImports()
}
