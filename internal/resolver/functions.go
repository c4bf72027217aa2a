package resolver

import (
	"tim/internal/ast"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// finishFunction resolves a function's parameters and return type, fills
// its signature, then resolves its body. receiver is the enclosing class's
// handle for a method or extension method, or sig.NoHandle for a free
// function. Free functions already have a shell from Resolve and class
// methods one from finishClass (handleOf[d] is set in both cases);
// extension methods are allocated fresh here.
func (r *Resolver) finishFunction(file source.FileID, enclosingScope scope.ID, d *ast.FuncDecl, receiver sig.Handle) sig.Handle {
	return r.finishFunctionAs(file, enclosingScope, d, receiver, sig.FuncMethod)
}

// finishFunctionAs is finishFunction with an explicit FuncKind, used by
// extensions to tag their methods FuncExtensionMethod instead of
// FuncMethod.
func (r *Resolver) finishFunctionAs(file source.FileID, enclosingScope scope.ID, d *ast.FuncDecl, receiver sig.Handle, funcKind sig.FuncKind) sig.Handle {
	handle, exists := r.handleOf[d]
	isFree := !receiver.IsValid()
	if !exists {
		handle = r.table.Reserve(sig.KindFunction, file, r.intern(d.Name), d.NameSpan)
		r.handleOf[d] = handle
	}
	if isFree {
		funcKind = sig.FuncFree
	}

	fnScope := r.scopes.New(scope.KindFunction, enclosingScope, d.Span)

	var params []sig.Param
	for _, p := range d.Params {
		var typeHandle sig.Handle
		if p.IsThis {
			typeHandle = receiver
		} else {
			th, ok := r.resolveTypeExpr(enclosingScope, p.Type)
			if !ok {
				r.taint(handle)
				continue
			}
			typeHandle = th
		}
		nameID := r.intern(p.Name)
		params = append(params, sig.Param{Name: nameID, Type: typeHandle, IsThis: p.IsThis})
		r.scopes.Define(fnScope, nameID, scope.Binding{Handle: uint32(typeHandle), Span: p.Span, IsValue: true})
	}

	returnHandle := r.table.InternPrimitive(sig.PrimVoid)
	if d.Return != nil {
		if th, ok := r.resolveTypeExpr(enclosingScope, d.Return); ok {
			returnHandle = th
		} else {
			r.taint(handle)
		}
	}

	// Filled before the body is resolved, not after: a self-recursive call
	// inside d's own body must see its real Params/Return, not the
	// still-empty reserve-time shell. Signature carries no body, so nothing
	// downstream needs Fill deferred until resolveBlock finishes.
	r.table.Fill(handle, sig.Signature{
		Kind:     sig.KindFunction,
		Public:   d.Public,
		Params:   params,
		Return:   returnHandle,
		FuncKind: funcKind,
		Receiver: receiver,
	})

	r.resolveBlock(fnScope, file, d.Body)
	return handle
}

// finishStatic resolves a module-level `static` variable's declared (or
// initializer-inferred) type and fills its shell.
func (r *Resolver) finishStatic(file source.FileID, moduleScope scope.ID, d *ast.StaticVarDecl) {
	handle := r.handleOf[d]

	var typeHandle sig.Handle
	switch {
	case d.Type != nil:
		th, ok := r.resolveTypeExpr(moduleScope, d.Type)
		if !ok {
			r.taint(handle)
			typeHandle = r.table.InternPrimitive(sig.PrimInvalid)
		} else {
			typeHandle = th
		}
	case d.Init != nil:
		th, ok := r.exprType(moduleScope, file, d.Init)
		if !ok {
			typeHandle = r.table.InternPrimitive(sig.PrimInvalid)
		} else {
			typeHandle = th
		}
	default:
		typeHandle = r.table.InternPrimitive(sig.PrimInvalid)
	}

	r.table.Fill(handle, sig.Signature{
		Kind:   sig.KindStatic,
		Public: d.Public,
		Inner:  typeHandle,
	})
}
