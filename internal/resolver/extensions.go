package resolver

import (
	"fmt"

	"tim/internal/diag"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// finishExtension resolves `extend C: I { ... }`: C must be a class, I must
// be an interface, C must not already implement I, and every requirement of
// I (including inherited ones) needs a matching method in the extension
// body. A matching extra method is attached to the class as a regular
// method; a missing requirement collects into one
// interface_implementation_incomplete diagnostic on the extension header.
func (r *Resolver) finishExtension(site extensionSite) {
	d := site.decl
	handle := site.handle
	moduleScope := r.graph.Node(site.file).Scope

	classHandle, ok := r.lookupQualified(moduleScope, []string{d.ClassName}, d.ClassSpan)
	if !ok {
		r.table.Fill(handle, sig.Signature{Kind: sig.KindExtension})
		return
	}
	if r.table.Lookup(classHandle).Kind != sig.KindClass {
		diag.ReportError(r.report, diag.ExpectedClass, d.ClassSpan,
			fmt.Sprintf("%q is not a class", d.ClassName)).Emit()
		r.table.Fill(handle, sig.Signature{Kind: sig.KindExtension})
		return
	}

	ifaceHandle, ok := r.lookupQualified(moduleScope, []string{d.InterfaceName}, d.InterfaceSpan)
	if !ok {
		r.table.Fill(handle, sig.Signature{Kind: sig.KindExtension, Target: classHandle})
		return
	}
	if r.table.Lookup(ifaceHandle).Kind != sig.KindInterface {
		diag.ReportError(r.report, diag.ExpectedInterface, d.InterfaceSpan,
			fmt.Sprintf("%q is not an interface", d.InterfaceName)).Emit()
		r.table.Fill(handle, sig.Signature{Kind: sig.KindExtension, Target: classHandle})
		return
	}

	if r.table.Implements(classHandle, ifaceHandle) {
		diag.ReportError(r.report, diag.DuplicateExtension, d.Span,
			fmt.Sprintf("%q already implements %q", d.ClassName, d.InterfaceName)).Emit()
		r.table.Fill(handle, sig.Signature{Kind: sig.KindExtension, Target: classHandle, Interface: ifaceHandle})
		return
	}

	extScope := r.scopes.New(scope.KindClass, moduleScope, d.Span)
	var bindings []sig.Handle
	byName := make(map[source.StringID]sig.Handle)
	for _, m := range d.Methods {
		mh := r.finishFunctionAs(site.file, extScope, m, classHandle, sig.FuncExtensionMethod)
		bindings = append(bindings, mh)
		byName[r.intern(m.Name)] = mh
	}

	required := r.allRequiredMethods(ifaceHandle)
	var missing []diag.Label
	for _, req := range required {
		mh, ok := byName[req.Name]
		if !ok || !methodMatches(r.table.Lookup(mh), req) {
			missing = append(missing, diag.Label{Span: req.Span, Message: fmt.Sprintf("missing %q", r.interner.MustLookup(req.Name))})
		}
	}
	if len(missing) > 0 {
		diag.ReportError(r.report, diag.InterfaceImplementationIncomplete, d.Span,
			fmt.Sprintf("%q does not fully implement %q", d.ClassName, d.InterfaceName)).
			WithGroup("missing requirements", missing...).
			Emit()
		r.table.Fill(handle, sig.Signature{Kind: sig.KindExtension, Target: classHandle, Interface: ifaceHandle, Bindings: bindings})
		return
	}

	// Every method defined in the extension body, required or extra, is
	// attached to the class as a regular method alongside the interface
	// implementation.
	classSig := r.table.Lookup(classHandle)
	classSig.Methods = append(classSig.Methods, bindings...)
	r.table.MarkImplements(classHandle, ifaceHandle)

	r.table.Fill(handle, sig.Signature{Kind: sig.KindExtension, Target: classHandle, Interface: ifaceHandle, Bindings: bindings})
}

// methodMatches is the extension-matching rule: same name (checked by the
// caller via the lookup key), same arity, pairwise equal parameter type
// handles, equal return type handle.
func methodMatches(m *sig.Signature, req sig.RequiredMethod) bool {
	params := nonThisParams(m.Params)
	reqParams := nonThisParams(req.Params)
	if len(params) != len(reqParams) {
		return false
	}
	for i := range params {
		if params[i].Type != reqParams[i].Type {
			return false
		}
	}
	return m.Return == req.Return
}

func nonThisParams(params []sig.Param) []sig.Param {
	out := make([]sig.Param, 0, len(params))
	for _, p := range params {
		if !p.IsThis {
			out = append(out, p)
		}
	}
	return out
}
