package resolver

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// exprType computes the type handle of an expression, reporting whatever
// diagnostics it can along the way. This is a conservative, non-coercing
// type checker: it is enough to drive call-argument checking and field
// access, not a full inference engine.
func (r *Resolver) exprType(s scope.ID, file source.FileID, e ast.Expr) (sig.Handle, bool) {
	switch v := e.(type) {
	case *ast.IdentExpr:
		nameID := r.intern(v.Name)
		r.markIdentUsed(file, nameID)
		b, ok := r.scopes.Lookup(s, nameID)
		if !ok {
			diag.ReportError(r.report, diag.TypeNotFound, v.Span,
				fmt.Sprintf("%q is not defined", v.Name)).Emit()
			return sig.NoHandle, false
		}
		return r.valueTypeOfBinding(b), true

	case *ast.MemberExpr:
		targetType, ok := r.exprType(s, file, v.Target)
		if !ok {
			return sig.NoHandle, false
		}
		return r.memberType(targetType, v.Name, v.NameSpan, file)

	case *ast.CallExpr:
		return r.resolveCall(s, file, v)

	case *ast.IntLit:
		return r.table.InternPrimitive(sig.PrimI32), true
	case *ast.FloatLit:
		return r.table.InternPrimitive(sig.PrimDouble), true
	case *ast.StringLit:
		return r.table.InternPrimitive(sig.PrimString), true
	case *ast.BoolLit:
		return r.table.InternPrimitive(sig.PrimBool), true

	case *ast.BinaryExpr:
		left, ok := r.exprType(s, file, v.Left)
		r.exprType(s, file, v.Right)
		if !ok {
			return sig.NoHandle, false
		}
		return left, true

	default:
		return sig.NoHandle, false
	}
}

// valueTypeOfBinding interprets a scope binding as an expression's type. A
// value binding's Handle is already the value's declared type. A static
// variable is bound like any other top-level declaration, by its own
// signature handle, and is unwrapped to its declared type. Any other
// non-value binding names a type, module, or function directly, so it
// stands for itself.
func (r *Resolver) valueTypeOfBinding(b scope.Binding) sig.Handle {
	h := sig.Handle(b.Handle)
	if b.IsValue {
		return h
	}
	s := r.table.Lookup(h)
	if s.Kind == sig.KindStatic {
		return s.Inner
	}
	return h
}

// memberType resolves `target.name` where target has type targetType,
// checking accessibility whenever the member's declaring module differs
// from useModule.
func (r *Resolver) memberType(targetType sig.Handle, name string, nameSpan source.Span, useModule source.FileID) (sig.Handle, bool) {
	targetSig := r.table.Lookup(targetType)
	nameID := r.intern(name)

	switch targetSig.Kind {
	case sig.KindModule:
		next, ok := targetSig.AllMembers[nameID]
		if !ok {
			diag.ReportError(r.report, diag.PathNotFound, nameSpan,
				fmt.Sprintf("module has no member %q", name)).Emit()
			return sig.NoHandle, false
		}
		memberSig := r.table.Lookup(next)
		if !memberSig.Public {
			diag.ReportError(r.report, diag.AccessibilityViolation, nameSpan,
				fmt.Sprintf("%q is private to its declaring module", name)).
				WithReferenced(diag.NewError(diag.AccessibilityViolation, memberSig.Span, "declared here")).
				Emit()
			return sig.NoHandle, false
		}
		if memberSig.Kind == sig.KindStatic {
			return memberSig.Inner, true
		}
		return next, true

	case sig.KindClass:
		for _, f := range targetSig.Fields {
			if f.Name != nameID {
				continue
			}
			if !f.Public && targetSig.DeclModule != useModule {
				diag.ReportError(r.report, diag.AccessibilityViolation, nameSpan,
					fmt.Sprintf("field %q is private", name)).
					WithReferenced(diag.NewError(diag.AccessibilityViolation, f.Span, "declared here")).
					Emit()
				return sig.NoHandle, false
			}
			return f.Type, true
		}
		for _, mh := range targetSig.Methods {
			ms := r.table.Lookup(mh)
			if ms.Name != nameID {
				continue
			}
			return mh, true
		}
		diag.ReportError(r.report, diag.PathNotFound, nameSpan,
			fmt.Sprintf("no field or method named %q", name)).Emit()
		return sig.NoHandle, false

	default:
		diag.ReportError(r.report, diag.PathNotFound, nameSpan,
			fmt.Sprintf("cannot access %q on this expression", name)).Emit()
		return sig.NoHandle, false
	}
}

// calleeSignature resolves a call's callee expression to a Function
// signature handle: either a bare name bound directly to a function (never
// a value binding — a local can't be called in this language), or a
// `target.method(...)` method reference.
func (r *Resolver) calleeSignature(s scope.ID, file source.FileID, e ast.Expr) (sig.Handle, bool) {
	switch v := e.(type) {
	case *ast.IdentExpr:
		nameID := r.intern(v.Name)
		r.markIdentUsed(file, nameID)
		b, ok := r.scopes.Lookup(s, nameID)
		if !ok {
			diag.ReportError(r.report, diag.TypeNotFound, v.Span,
				fmt.Sprintf("%q is not defined", v.Name)).Emit()
			return sig.NoHandle, false
		}
		h := sig.Handle(b.Handle)
		if !b.IsValue && r.table.Lookup(h).Kind == sig.KindFunction {
			return h, true
		}
		diag.ReportError(r.report, diag.TypeMismatch, v.Span,
			fmt.Sprintf("%q is not a function", v.Name)).Emit()
		return sig.NoHandle, false

	case *ast.MemberExpr:
		targetType, ok := r.exprType(s, file, v.Target)
		if !ok {
			return sig.NoHandle, false
		}
		targetSig := r.table.Lookup(targetType)
		nameID := r.intern(v.Name)
		switch targetSig.Kind {
		case sig.KindModule:
			next, ok := targetSig.AllMembers[nameID]
			if !ok {
				diag.ReportError(r.report, diag.PathNotFound, v.NameSpan,
					fmt.Sprintf("module has no member %q", v.Name)).Emit()
				return sig.NoHandle, false
			}
			memberSig := r.table.Lookup(next)
			if !memberSig.Public {
				diag.ReportError(r.report, diag.AccessibilityViolation, v.NameSpan,
					fmt.Sprintf("%q is private to its declaring module", v.Name)).
					WithReferenced(diag.NewError(diag.AccessibilityViolation, memberSig.Span, "declared here")).
					Emit()
				return sig.NoHandle, false
			}
			if memberSig.Kind != sig.KindFunction {
				diag.ReportError(r.report, diag.TypeMismatch, v.NameSpan,
					fmt.Sprintf("%q is not a function", v.Name)).Emit()
				return sig.NoHandle, false
			}
			return next, true

		case sig.KindClass:
			for _, mh := range targetSig.Methods {
				ms := r.table.Lookup(mh)
				if ms.Name != nameID {
					continue
				}
				if !ms.Public && targetSig.DeclModule != file {
					diag.ReportError(r.report, diag.AccessibilityViolation, v.NameSpan,
						fmt.Sprintf("method %q is private", v.Name)).
						WithReferenced(diag.NewError(diag.AccessibilityViolation, ms.Span, "declared here")).
						Emit()
					return sig.NoHandle, false
				}
				return mh, true
			}
			diag.ReportError(r.report, diag.PathNotFound, v.NameSpan,
				fmt.Sprintf("no method named %q", v.Name)).Emit()
			return sig.NoHandle, false

		default:
			diag.ReportError(r.report, diag.PathNotFound, v.NameSpan,
				fmt.Sprintf("cannot call %q on this expression", v.Name)).Emit()
			return sig.NoHandle, false
		}

	default:
		diag.ReportError(r.report, diag.TypeMismatch, e.ExprSpan(), "expression is not callable").Emit()
		return sig.NoHandle, false
	}
}

// resolveCall checks a call's argument count and, conservatively, each
// argument's type against the callee's declared parameters, with no
// nullable/non-nullable coercion. It always returns the callee's return
// type on a successful callee lookup, even when argument checks fail, so
// the surrounding expression still has a usable type.
func (r *Resolver) resolveCall(s scope.ID, file source.FileID, call *ast.CallExpr) (sig.Handle, bool) {
	fnHandle, ok := r.calleeSignature(s, file, call.Callee)
	if !ok {
		for _, a := range call.Args {
			r.exprType(s, file, a)
		}
		return sig.NoHandle, false
	}
	fnSig := r.table.Lookup(fnHandle)
	params := nonThisParams(fnSig.Params)

	if len(call.Args) != len(params) {
		diag.ReportError(r.report, diag.FunctionCallArgumentCountMismatch, call.Span,
			fmt.Sprintf("expected %d argument(s), got %d", len(params), len(call.Args))).Emit()
	}

	n := len(call.Args)
	if len(params) < n {
		n = len(params)
	}
	for i := 0; i < n; i++ {
		argType, ok := r.exprType(s, file, call.Args[i])
		if !ok {
			continue
		}
		if argType != params[i].Type {
			diag.ReportError(r.report, diag.TypeMismatch, call.Args[i].ExprSpan(),
				"argument type does not match the parameter's declared type").Emit()
		}
	}
	for i := n; i < len(call.Args); i++ {
		r.exprType(s, file, call.Args[i])
	}

	return fnSig.Return, true
}
