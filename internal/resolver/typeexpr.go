package resolver

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
	"tim/internal/token"
)

// resolveTypeExpr maps a syntactic type expression to a TypeHandle, scoped
// to s. Every failure emits exactly one diagnostic and returns ok=false;
// callers must not treat the zero Handle as meaningful in that case.
func (r *Resolver) resolveTypeExpr(s scope.ID, te *ast.TypeExpr) (sig.Handle, bool) {
	if te == nil {
		return sig.NoHandle, false
	}
	switch te.Kind {
	case ast.TypePrimitive:
		return r.table.InternPrimitive(primitiveFor(te.Primitive)), true

	case ast.TypeName:
		return r.lookupQualified(s, te.Path, te.Span)

	case ast.TypeNullable:
		inner, ok := r.resolveTypeExpr(s, te.Inner)
		if !ok {
			return sig.NoHandle, false
		}
		innerSig := r.table.Lookup(inner)
		switch innerSig.Kind {
		case sig.KindNullable:
			diag.ReportError(r.report, diag.RedundantNullable, te.Span,
				"redundant nullable decoration: inner type is already nullable").Emit()
		case sig.KindReference:
			diag.ReportError(r.report, diag.NullableReference, te.Span,
				"a reference type cannot also be nullable").Emit()
		}
		return r.table.WrapNullable(inner), true

	case ast.TypeReference:
		inner, ok := r.resolveTypeExpr(s, te.Inner)
		if !ok {
			return sig.NoHandle, false
		}
		innerSig := r.table.Lookup(inner)
		switch innerSig.Kind {
		case sig.KindReference:
			diag.ReportError(r.report, diag.RedundantReference, te.Span,
				"redundant reference decoration: inner type is already a reference").Emit()
		case sig.KindNullable:
			diag.ReportError(r.report, diag.NullableReference, te.Span,
				"a nullable type cannot also be passed by reference").Emit()
		}
		return r.table.WrapReference(inner), true

	default:
		diag.ReportError(r.report, diag.SyntaxError, te.Span, "invalid type expression").Emit()
		return sig.NoHandle, false
	}
}

func primitiveFor(k token.Kind) sig.Primitive {
	switch k {
	case token.KwI8:
		return sig.PrimI8
	case token.KwI16:
		return sig.PrimI16
	case token.KwI32:
		return sig.PrimI32
	case token.KwI64:
		return sig.PrimI64
	case token.KwU8:
		return sig.PrimU8
	case token.KwU16:
		return sig.PrimU16
	case token.KwU32:
		return sig.PrimU32
	case token.KwU64:
		return sig.PrimU64
	case token.KwFloat:
		return sig.PrimFloat
	case token.KwDouble:
		return sig.PrimDouble
	case token.KwBool:
		return sig.PrimBool
	case token.KwString:
		return sig.PrimString
	case token.KwVoid:
		return sig.PrimVoid
	default:
		return sig.PrimInvalid
	}
}

// lookupQualified resolves a possibly-dotted name against scope s: the
// first segment is an ordinary scope lookup, and every further segment
// drills into the previous handle's module member map, checking
// accessibility at each hop.
func (r *Resolver) lookupQualified(s scope.ID, path []string, span source.Span) (sig.Handle, bool) {
	if len(path) == 0 {
		return sig.NoHandle, false
	}
	nameID := r.intern(path[0])
	if file, ok := r.fileOfScope(s); ok {
		r.markIdentUsed(file, nameID)
	}
	b, ok := r.scopes.Lookup(s, nameID)
	if !ok {
		diag.ReportError(r.report, diag.TypeNotFound, span,
			fmt.Sprintf("cannot find type %q in this scope", path[0])).
			WithHelp(r.suggestHelp(path[0])).
			Emit()
		return sig.NoHandle, false
	}
	handle := sig.Handle(b.Handle)

	for _, seg := range path[1:] {
		cur := r.table.Lookup(handle)
		if cur.Kind != sig.KindModule {
			diag.ReportError(r.report, diag.PathNotFound, span,
				fmt.Sprintf("%q is not a module, cannot look up %q inside it", r.interner.MustLookup(cur.Name), seg)).Emit()
			return sig.NoHandle, false
		}
		segID := r.intern(seg)
		next, exists := cur.AllMembers[segID]
		if !exists {
			diag.ReportError(r.report, diag.PathNotFound, span,
				fmt.Sprintf("module has no member %q", seg)).Emit()
			return sig.NoHandle, false
		}
		memberSig := r.table.Lookup(next)
		if !memberSig.Public {
			diag.ReportError(r.report, diag.AccessibilityViolation, span,
				fmt.Sprintf("%q is private to its declaring module", seg)).
				WithReferenced(diag.NewError(diag.AccessibilityViolation, memberSig.Span, "declared here")).
				Emit()
			return sig.NoHandle, false
		}
		handle = next
	}
	return handle, true
}

// suggestHelp offers a weak best-effort hint for type_not_found: any
// currently-known name ending with the same identifier, most useful when
// the user forgot a module qualifier. Intentionally cheap; it is help text,
// not a resolution fallback.
func (r *Resolver) suggestHelp(missing string) string {
	for _, n := range r.graph.Nodes() {
		modSig := r.table.Lookup(r.modHandle[n.File])
		for nameID := range modSig.Exports {
			name := r.interner.MustLookup(nameID)
			if name == missing {
				return fmt.Sprintf("did you mean to import %q from module %q?", name, n.Path)
			}
		}
	}
	return ""
}
