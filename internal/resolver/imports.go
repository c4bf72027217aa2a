package resolver

import (
	"fmt"
	"strings"

	"tim/internal/diag"
	"tim/internal/modgraph"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// resolveImports binds every `use` clause of n's module scope. It runs once
// every module's export map has been filled, so forward and circular
// import targets resolve regardless of registration order.
func (r *Resolver) resolveImports(n *modgraph.Node) {
	for _, imp := range n.Imports {
		r.resolveImport(n, imp)
	}
}

func (r *Resolver) resolveImport(n *modgraph.Node, imp *modgraph.Import) {
	path := imp.Syntax.Path
	target, remainder, ok := r.findModulePrefix(path)
	if !ok {
		diag.ReportError(r.report, diag.PathNotFound, imp.Syntax.PathSpan,
			fmt.Sprintf("no module matches path %q", strings.Join(path, "."))).Emit()
		return
	}
	imp.Resolved = target.File
	imp.Ok = true

	handle := r.modHandle[target.File]
	var public bool
	var defSpan source.Span
	var defFile source.FileID
	for _, seg := range remainder {
		modSig := r.table.Lookup(handle)
		nameID := r.intern(seg)
		next, exists := modSig.AllMembers[nameID]
		if !exists {
			span := imp.Syntax.PathSpan
			diag.ReportError(r.report, diag.PathNotFound, span,
				fmt.Sprintf("module %q has no member %q", target.Path, seg)).Emit()
			return
		}
		handle = next
		memberSig := r.table.Lookup(handle)
		public = memberSig.Public
		defSpan = memberSig.Span
		defFile = memberSig.DeclModule
	}

	if len(remainder) == 0 {
		// Importing a module itself; modules have no visibility of their
		// own, only their members do.
		public = true
	}

	if imp.Syntax.Wildcard {
		r.applyWildcardImport(n, imp, handle)
		return
	}

	if !public && defFile.IsValid() {
		diag.ReportError(r.report, diag.AccessibilityViolation, imp.Syntax.PathSpan,
			fmt.Sprintf("%q is private to its declaring module", path[len(path)-1])).
			WithReferenced(diag.NewError(diag.AccessibilityViolation, defSpan, "declared here").WithHelp("mark the declaration pub to import it elsewhere")).
			Emit()
		return
	}

	localName := imp.Syntax.Alias
	localSpan := imp.Syntax.AliasSpan
	if localName == "" {
		localName = path[len(path)-1]
		localSpan = imp.Syntax.PathSpan
	}
	nameID := r.intern(localName)
	prev, already := r.scopes.Define(n.Scope, nameID, scope.Binding{Handle: uint32(handle), Span: localSpan, Public: false})
	if already {
		diag.ReportError(r.report, diag.AlreadyDefined, localSpan,
			fmt.Sprintf("%q is already defined in this module", localName)).
			WithNote(prev.Span, "previous definition here").
			Emit()
		return
	}
	if r.importBindings[n.File] == nil {
		r.importBindings[n.File] = make(map[source.StringID]source.Span)
	}
	r.importBindings[n.File][nameID] = localSpan
}

func (r *Resolver) applyWildcardImport(n *modgraph.Node, imp *modgraph.Import, handle sig.Handle) {
	modSig := r.table.Lookup(handle)
	if modSig.Kind != sig.KindModule {
		diag.ReportError(r.report, diag.PathNotFound, imp.Syntax.PathSpan,
			"wildcard import target must be a module").Emit()
		return
	}
	for nameID, exported := range modSig.Exports {
		prev, already := r.scopes.Define(n.Scope, nameID, scope.Binding{Handle: uint32(exported), Span: imp.Syntax.Span, Public: false})
		if already {
			diag.ReportError(r.report, diag.ImportConflict, imp.Syntax.Span,
				fmt.Sprintf("wildcard import of %q conflicts with an existing local declaration", r.interner.MustLookup(nameID))).
				WithNote(prev.Span, "existing declaration here").
				Emit()
		}
	}
}

// findModulePrefix finds the registered module whose dotted path is the
// longest prefix of path, returning the remaining segments to drill through
// that module's members.
func (r *Resolver) findModulePrefix(path []string) (*modgraph.Node, []string, bool) {
	for length := len(path); length >= 1; length-- {
		candidate := strings.Join(path[:length], ".")
		if n := r.graph.NodeByPath(candidate); n != nil {
			return n, path[length:], true
		}
	}
	return nil, nil, false
}
