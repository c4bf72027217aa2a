package diag

import "tim/internal/source"

// New constructs a bare diagnostic with only its primary label set.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  Label{Span: primary, Message: msg},
	}
}

// NewError is a shortcut for New(SevError, ...).
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarning is a shortcut for New(SevWarning, ...).
func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// Reporter is the minimal contract a resolver phase needs to surface
// diagnostics. BagReporter is the production implementation; tests may
// supply their own.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter appends every reported diagnostic to a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// Builder accumulates a diagnostic's details before emitting it to a
// Reporter exactly once.
type Builder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// Report starts building a diagnostic bound to reporter. Returns nil if
// reporter is nil, so call sites can chain without a nil check:
// diag.Report(r, ...).WithNote(...).Emit() is always safe.
func Report(r Reporter, sev Severity, code Code, primary source.Span, msg string) *Builder {
	if r == nil {
		return nil
	}
	return &Builder{reporter: r, diag: New(sev, code, primary, msg)}
}

// ReportError is a shortcut for Report(r, SevError, ...).
func ReportError(r Reporter, code Code, primary source.Span, msg string) *Builder {
	return Report(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for Report(r, SevWarning, ...).
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *Builder {
	return Report(r, SevWarning, code, primary, msg)
}

// WithNote appends a secondary label.
func (b *Builder) WithNote(span source.Span, msg string) *Builder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithSecondary(span, msg)
	return b
}

// WithGroup appends a collection label.
func (b *Builder) WithGroup(purpose string, labels ...Label) *Builder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithGroup(purpose, labels...)
	return b
}

// WithReferenced appends a referenced sub-diagnostic.
func (b *Builder) WithReferenced(ref Diagnostic) *Builder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithReferenced(ref)
	return b
}

// WithHelp sets the help string.
func (b *Builder) WithHelp(help string) *Builder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithHelp(help)
	return b
}

// Diagnostic returns the accumulated diagnostic without emitting it.
func (b *Builder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// Emit sends the diagnostic to the underlying reporter exactly once.
func (b *Builder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}
