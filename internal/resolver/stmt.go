package resolver

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// resolveBlock walks a function body in order, defining locals and
// checking every expression it can. A block never aborts on a single bad
// statement; it keeps going so the rest of the body is still checked.
func (r *Resolver) resolveBlock(s scope.ID, file source.FileID, stmts []ast.Stmt) {
	for _, st := range stmts {
		r.resolveStmt(s, file, st)
	}
}

func (r *Resolver) resolveStmt(s scope.ID, file source.FileID, st ast.Stmt) {
	switch v := st.(type) {
	case *ast.LetStmt:
		r.resolveLet(s, file, v)
	case *ast.AssignStmt:
		r.exprType(s, file, v.Target)
		r.exprType(s, file, v.Value)
	case *ast.ReturnStmt:
		if v.Value != nil {
			r.exprType(s, file, v.Value)
		}
	case *ast.ExprStmt:
		r.exprType(s, file, v.Value)
	}
}

func (r *Resolver) resolveLet(s scope.ID, file source.FileID, v *ast.LetStmt) {
	var typeHandle sig.Handle
	switch {
	case v.Type != nil:
		th, ok := r.resolveTypeExpr(s, v.Type)
		if !ok {
			typeHandle = r.table.InternPrimitive(sig.PrimInvalid)
		} else {
			typeHandle = th
		}
		if v.Init != nil {
			r.exprType(s, file, v.Init)
		}
	case v.Init != nil:
		th, ok := r.exprType(s, file, v.Init)
		if !ok {
			typeHandle = r.table.InternPrimitive(sig.PrimInvalid)
		} else {
			typeHandle = th
		}
	default:
		typeHandle = r.table.InternPrimitive(sig.PrimInvalid)
	}

	nameID := r.intern(v.Name)
	if _, shadowed := r.scopes.Lookup(s, nameID); shadowed {
		diag.ReportWarning(r.report, diag.ShadowedDeclaration, v.NameSpan,
			fmt.Sprintf("%q shadows an outer declaration", v.Name)).Emit()
	}
	r.scopes.Define(s, nameID, scope.Binding{Handle: uint32(typeHandle), Span: v.NameSpan, IsValue: true})
}
