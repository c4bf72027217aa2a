package resolver

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/modgraph"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// Resolve is phase one: for every module, reserve a shell handle for each
// top-level declaration, define its name in the module scope (reporting
// already_defined on collision), and allocate the module's own handle.
// Import binding happens last, once every module has every shell, so
// forward and circular import targets resolve.
func (r *Resolver) Resolve() {
	for _, n := range r.graph.Nodes() {
		n.Scope = r.scopes.New(scope.KindModule, scope.NoID, n.AST.Span)
		r.scopeFile[n.Scope] = n.File
		modHandle := r.table.Reserve(sig.KindModule, n.File, source.NoStringID, n.AST.Span)
		r.modHandle[n.File] = modHandle

		for _, d := range n.AST.Decls {
			r.reserveDecl(n.File, n.Scope, d)
		}
		r.fillModuleExports(n)
	}

	for _, n := range r.graph.Nodes() {
		r.resolveImports(n)
	}
}

func (r *Resolver) reserveDecl(file source.FileID, s scope.ID, d ast.Decl) {
	if ext, ok := d.(*ast.ExtendDecl); ok {
		// Extensions attach to an existing class rather than introducing a
		// name of their own; they are reserved but never defined in scope.
		h := r.table.Reserve(sig.KindExtension, file, source.NoStringID, ext.Span)
		r.extensionHandles = append(r.extensionHandles, extensionSite{file: file, handle: h, decl: ext})
		r.handleOf[ext] = h
		return
	}

	name, nameSpan, public := declName(d)
	if name == "" {
		return
	}
	kind := declKind(d)
	nameID := r.intern(name)
	h := r.table.Reserve(kind, file, nameID, nameSpan)
	r.table.Lookup(h).Public = public

	prev, already := r.scopes.Define(s, nameID, scope.Binding{Handle: uint32(h), Span: nameSpan, Public: public})
	if already {
		diag.ReportError(r.report, diag.AlreadyDefined, nameSpan,
			fmt.Sprintf("%q is already defined in this module", name)).
			WithNote(prev.Span, "previous definition here").
			Emit()
		r.taint(h)
	}
	r.declOrder[file] = append(r.declOrder[file], declBinding{name: nameID, handle: h, public: public})
	r.declSite[h] = declSite{file: file, decl: d}
	r.handleOf[d] = h
}

func declKind(d ast.Decl) sig.Kind {
	switch d.(type) {
	case *ast.ClassDecl:
		return sig.KindClass
	case *ast.InterfaceDecl:
		return sig.KindInterface
	case *ast.FuncDecl:
		return sig.KindFunction
	case *ast.StaticVarDecl:
		return sig.KindStatic
	default:
		return sig.KindInvalid
	}
}

// fillModuleExports builds a module's export map (and its map of all
// members) from the declarations bound in source order. Resolve calls it
// right after the module's declarations are reserved and before any import
// is bound, since import binding reads these maps; imports never add
// exports.
func (r *Resolver) fillModuleExports(n *modgraph.Node) {
	exports := make(map[source.StringID]sig.Handle)
	all := make(map[source.StringID]sig.Handle, len(r.declOrder[n.File]))
	for _, b := range r.declOrder[n.File] {
		all[b.name] = b.handle
		if b.public {
			exports[b.name] = b.handle
		}
	}
	modHandle := r.modHandle[n.File]
	r.table.Fill(modHandle, sig.Signature{
		Kind:       sig.KindModule,
		File:       n.File,
		Exports:    exports,
		AllMembers: all,
	})
}
