// Package resolver implements the two-phase cross-module pipeline that
// turns parsed syntax trees into a resolved program: Resolve reserves a
// handle for every top-level declaration and binds names, then Finish fills
// in signature bodies, ties interface implementations to their extensions,
// and validates every cross-reference. Diagnostics accumulate as values; a
// failing declaration is skipped in dependent checks but never aborts the
// run.
package resolver

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/modgraph"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
	"tim/internal/symtable"
)

// Program is the output of a successful compilation: the signature table
// every handle in it resolves against, the interner that recovers a name
// from a handle's signature, plus each module's export view.
type Program struct {
	Table    *sig.Table
	Interner *source.Interner
	Modules  map[string]*ModuleResult
}

// ModuleResult is one file's resolved view.
type ModuleResult struct {
	File    source.FileID
	Path    string
	Module  sig.Handle // Kind == sig.KindModule
	Exports map[source.StringID]sig.Handle
}

// Resolver owns every piece of mutable state shared across one
// compilation's Resolve and Finish passes.
type Resolver struct {
	table    *sig.Table
	scopes   *scope.Tree
	graph    *modgraph.Graph
	interner *source.Interner
	report   diag.Reporter

	// modHandle maps a module's source.FileID to its Kind==KindModule
	// signature handle, populated during Resolve and read-only afterward.
	modHandle map[source.FileID]sig.Handle

	// declOrder preserves each module's top-level (name, handle, public)
	// triples in source order, so Module.Exports can be built
	// deterministically without depending on scope map iteration order.
	declOrder map[source.FileID][]declBinding

	// tainted marks declarations that failed to resolve cleanly so
	// dependent checks can skip them instead of cascading further errors.
	tainted map[sig.Handle]bool

	// declSite remembers which file and AST node a reserved handle came
	// from, so Finish can walk back from a handle to its syntax.
	declSite map[sig.Handle]declSite

	// extensionHandles lists every extend decl reserved during Resolve,
	// since extensions are never bound to a scope name and so need their
	// own worklist for Finish.
	extensionHandles []extensionSite

	// handleOf maps an AST declaration node back to the handle Resolve
	// reserved for it, so Finish can fill each one in source order.
	handleOf map[ast.Decl]sig.Handle

	// scopeFile maps a module's root scope ID back to its file, so a name
	// lookup anywhere under that scope can attribute a use to the right
	// module for unused-import tracking.
	scopeFile map[scope.ID]source.FileID

	// importBindings records, per module, every name a plain (non-wildcard)
	// `use` clause bound locally, keyed by that local name, so Finish can
	// report whichever ones nothing ever looked up.
	importBindings map[source.FileID]map[source.StringID]source.Span

	// usedIdents records every (file, name) pair some expression or type
	// reference actually looked up, regardless of what it resolved to.
	usedIdents map[source.FileID]map[source.StringID]bool
}

type declBinding struct {
	name   source.StringID
	handle sig.Handle
	public bool
}

type declSite struct {
	file source.FileID
	decl ast.Decl
}

type extensionSite struct {
	file   source.FileID
	handle sig.Handle
	decl   *ast.ExtendDecl
}

// New creates a Resolver over an already-populated module graph. Every
// name the resolver sees is interned through interner, and the Program it
// returns refers to that same interner, since name comparison throughout
// resolution is StringID equality.
func New(graph *modgraph.Graph, interner *source.Interner, report diag.Reporter) *Resolver {
	return NewWithHints(graph, interner, report, symtable.Hints{})
}

// NewWithHints is New with pre-sized arenas: hints.Signatures and
// hints.Scopes seed the signature table and scope tree's starting capacity.
// A zero Hints falls back to each arena's own default size.
func NewWithHints(graph *modgraph.Graph, interner *source.Interner, report diag.Reporter, hints symtable.Hints) *Resolver {
	table := sig.NewTable()
	if hints.Signatures > 0 {
		table = sig.NewTableWithCapacity(hints.Signatures)
	}
	scopes := scope.NewTree()
	if hints.Scopes > 0 {
		scopes = scope.NewTreeWithCapacity(hints.Scopes)
	}
	return &Resolver{
		table:     table,
		scopes:    scopes,
		graph:     graph,
		interner:  interner,
		report:    report,
		modHandle: make(map[source.FileID]sig.Handle),
		declOrder: make(map[source.FileID][]declBinding),
		tainted:   make(map[sig.Handle]bool),
		declSite:  make(map[sig.Handle]declSite),
		handleOf:  make(map[ast.Decl]sig.Handle),

		scopeFile:      make(map[scope.ID]source.FileID),
		importBindings: make(map[source.FileID]map[source.StringID]source.Span),
		usedIdents:     make(map[source.FileID]map[source.StringID]bool),
	}
}

// markIdentUsed records that something in file looked up name, regardless
// of whether the lookup succeeded or what kind of binding it found.
func (r *Resolver) markIdentUsed(file source.FileID, name source.StringID) {
	if !file.IsValid() {
		return
	}
	set := r.usedIdents[file]
	if set == nil {
		set = make(map[source.StringID]bool)
		r.usedIdents[file] = set
	}
	set[name] = true
}

// fileOfScope walks s up to its enclosing module scope and returns the file
// that module scope belongs to.
func (r *Resolver) fileOfScope(s scope.ID) (source.FileID, bool) {
	for cur := s; cur.IsValid(); {
		if file, ok := r.scopeFile[cur]; ok {
			return file, true
		}
		sc := r.scopes.Get(cur)
		if sc == nil {
			return source.NoFileID, false
		}
		cur = sc.Parent
	}
	return source.NoFileID, false
}

// reportUnusedImports emits an unused_import warning for every plain import
// binding that Finish never saw looked up. Run once, after every module's
// signatures and bodies are fully resolved, so any use in the module counts,
// not just one in the statement immediately following the import.
func (r *Resolver) reportUnusedImports() {
	for file, imports := range r.importBindings {
		used := r.usedIdents[file]
		for name, span := range imports {
			if used[name] {
				continue
			}
			diag.ReportWarning(r.report, diag.UnusedImport, span,
				fmt.Sprintf("imported name %q is never used", r.interner.MustLookup(name))).Emit()
		}
	}
}

// Table exposes the signature table being built, mainly for tests.
func (r *Resolver) Table() *sig.Table { return r.table }

// Scopes exposes the scope tree being built, mainly for tests.
func (r *Resolver) Scopes() *scope.Tree { return r.scopes }

func (r *Resolver) taint(h sig.Handle) {
	if h.IsValid() {
		r.tainted[h] = true
	}
}

func (r *Resolver) isTainted(h sig.Handle) bool {
	return r.tainted[h]
}

func (r *Resolver) intern(name string) source.StringID {
	return r.interner.Intern(name)
}

// Run executes both phases over every module in graph, in registration
// order, and returns the resolved program along with every diagnostic
// produced. A non-empty diagnostic slice does not necessarily mean program
// is nil: Finish keeps resolving everything it can.
func Run(graph *modgraph.Graph, interner *source.Interner) (*Program, []diag.Diagnostic) {
	bag := diag.NewBag(16)
	r := New(graph, interner, diag.BagReporter{Bag: bag})
	r.Resolve()
	r.Finish()
	bag.Sort()
	return r.buildProgram(), bag.Items()
}

// Program builds the resolved Program view. Callers driving Resolve and
// Finish themselves (rather than through Run) call this once both phases
// have completed.
func (r *Resolver) Program() *Program { return r.buildProgram() }

func (r *Resolver) buildProgram() *Program {
	prog := &Program{Table: r.table, Interner: r.interner, Modules: make(map[string]*ModuleResult)}
	for _, n := range r.graph.Nodes() {
		h, ok := r.modHandle[n.File]
		if !ok {
			continue
		}
		modSig := r.table.Lookup(h)
		prog.Modules[n.Path] = &ModuleResult{
			File:    n.File,
			Path:    n.Path,
			Module:  h,
			Exports: modSig.Exports,
		}
	}
	return prog
}

func declName(d ast.Decl) (string, source.Span, bool) {
	switch v := d.(type) {
	case *ast.ClassDecl:
		return v.Name, v.NameSpan, v.Public
	case *ast.InterfaceDecl:
		return v.Name, v.NameSpan, v.Public
	case *ast.FuncDecl:
		return v.Name, v.NameSpan, v.Public
	case *ast.StaticVarDecl:
		return v.Name, v.NameSpan, v.Public
	default:
		return "", source.Span{}, false
	}
}
