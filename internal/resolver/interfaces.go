package resolver

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// finishInterface resolves required field and method signatures, checks
// that an optional parent really is an interface, and fills the shell.
func (r *Resolver) finishInterface(file source.FileID, moduleScope scope.ID, d *ast.InterfaceDecl) {
	handle := r.handleOf[d]

	var parent sig.Handle
	if d.Parent != nil {
		ph, ok := r.resolveTypeExpr(moduleScope, d.Parent)
		if !ok {
			r.taint(handle)
		} else if r.table.Lookup(ph).Kind != sig.KindInterface {
			diag.ReportError(r.report, diag.ExpectedInterface, d.Parent.Span,
				fmt.Sprintf("%q is not an interface", pathString(d.Parent))).Emit()
			r.taint(handle)
		} else {
			parent = ph
		}
	}

	seen := make(map[source.StringID]source.Span)
	var reqFields []sig.Field
	for _, f := range d.Fields {
		nameID := r.intern(f.Name)
		if prev, dup := seen[nameID]; dup {
			diag.ReportError(r.report, diag.AlreadyDefined, f.NameSpan,
				fmt.Sprintf("field %q is already required by interface %q", f.Name, d.Name)).
				WithNote(prev, "previous requirement here").
				Emit()
			continue
		}
		seen[nameID] = f.NameSpan
		th, ok := r.resolveTypeExpr(moduleScope, f.Type)
		if !ok {
			r.taint(handle)
			continue
		}
		reqFields = append(reqFields, sig.Field{Name: nameID, Type: th, Span: f.NameSpan, Public: f.Public})
	}

	var reqMethods []sig.RequiredMethod
	for _, m := range d.Methods {
		if prev, dup := seen[r.intern(m.Name)]; dup {
			diag.ReportError(r.report, diag.AlreadyDefined, m.NameSpan,
				fmt.Sprintf("%q is already required by interface %q", m.Name, d.Name)).
				WithNote(prev, "previous requirement here").
				Emit()
			continue
		}
		seen[r.intern(m.Name)] = m.NameSpan
		reqMethods = append(reqMethods, r.resolveRequiredMethod(moduleScope, m))
	}

	r.table.Fill(handle, sig.Signature{
		Kind:       sig.KindInterface,
		Public:     d.Public,
		ReqFields:  reqFields,
		ReqMethods: reqMethods,
		Parent:     parent,
	})
}

func (r *Resolver) resolveRequiredMethod(moduleScope scope.ID, m *ast.FuncSig) sig.RequiredMethod {
	var params []sig.Param
	for _, p := range m.Params {
		th, ok := r.resolveTypeExpr(moduleScope, p.Type)
		if !ok {
			continue
		}
		params = append(params, sig.Param{Name: r.intern(p.Name), Type: th, IsThis: p.IsThis})
	}
	ret := r.table.InternPrimitive(sig.PrimVoid)
	if m.Return != nil {
		if th, ok := r.resolveTypeExpr(moduleScope, m.Return); ok {
			ret = th
		}
	}
	return sig.RequiredMethod{Name: r.intern(m.Name), Span: m.Span, Params: params, Return: ret}
}

// allRequiredMethods collects an interface's own required methods plus
// every inherited requirement from its parent chain, deduplicated by name
// (a child's requirement of the same name replaces the parent's).
func (r *Resolver) allRequiredMethods(ifaceHandle sig.Handle) []sig.RequiredMethod {
	byName := make(map[source.StringID]sig.RequiredMethod)
	var order []source.StringID
	for h := ifaceHandle; h.IsValid(); {
		ifaceSig := r.table.Lookup(h)
		for _, rm := range ifaceSig.ReqMethods {
			if _, ok := byName[rm.Name]; ok {
				continue
			}
			order = append(order, rm.Name)
			byName[rm.Name] = rm
		}
		h = ifaceSig.Parent
	}
	out := make([]sig.RequiredMethod, 0, len(order))
	for _, n := range order {
		out = append(out, byName[n])
	}
	return out
}

func pathString(te *ast.TypeExpr) string {
	if te == nil {
		return "<invalid>"
	}
	if te.Kind == ast.TypeName {
		s := ""
		for i, seg := range te.Path {
			if i > 0 {
				s += "."
			}
			s += seg
		}
		return s
	}
	return "<type>"
}
