package resolver

import (
	"fmt"

	"tim/internal/ast"
	"tim/internal/diag"
	"tim/internal/scope"
	"tim/internal/sig"
	"tim/internal/source"
)

// finishClass resolves a class's field types and methods and fills its
// shell. Duplicate field names are reported as already_defined and the
// second definition is dropped from the field list.
func (r *Resolver) finishClass(file source.FileID, moduleScope scope.ID, d *ast.ClassDecl) {
	handle := r.handleOf[d]

	classScope := r.scopes.New(scope.KindClass, moduleScope, d.Span)

	seen := make(map[source.StringID]source.Span)
	var fields []sig.Field
	for _, f := range d.Fields {
		nameID := r.intern(f.Name)
		if prev, dup := seen[nameID]; dup {
			diag.ReportError(r.report, diag.AlreadyDefined, f.NameSpan,
				fmt.Sprintf("field %q is already defined in class %q", f.Name, d.Name)).
				WithNote(prev, "previous definition here").
				Emit()
			continue
		}
		seen[nameID] = f.NameSpan
		typeHandle, ok := r.resolveTypeExpr(moduleScope, f.Type)
		if !ok {
			r.taint(handle)
			continue
		}
		fields = append(fields, sig.Field{
			Name:       nameID,
			Type:       typeHandle,
			Span:       f.NameSpan,
			Public:     f.Public,
			HasDefault: f.Default != nil,
		})
	}

	// Method handles are reserved now, and the class's own signature is
	// filled with them before any method body is resolved, so a method
	// referencing this.field or calling a sibling method of the same class
	// sees a complete Fields/Methods view instead of the class's
	// still-empty reserve-time shell.
	methods := make([]sig.Handle, len(d.Methods))
	for i, m := range d.Methods {
		mh, exists := r.handleOf[m]
		if !exists {
			mh = r.table.Reserve(sig.KindFunction, file, r.intern(m.Name), m.NameSpan)
			r.handleOf[m] = mh
		}
		methods[i] = mh
	}

	r.table.Fill(handle, sig.Signature{
		Kind:       sig.KindClass,
		Public:     d.Public,
		Fields:     fields,
		Methods:    methods,
		Implements: make(map[sig.Handle]bool),
	})

	for _, m := range d.Methods {
		r.finishFunction(file, classScope, m, handle)
	}
}
