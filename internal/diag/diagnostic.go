package diag

import "tim/internal/source"

// Label attaches a message to a source span. Every label carries its own
// span (and therefore its own FileID) so a diagnostic can freely reference
// spans across different source files.
type Label struct {
	Span    source.Span
	Message string
}

// LabelGroup is a "collection label": an array of labeled spans that share a
// single purpose, e.g. every missing interface member of an incomplete
// extension.
type LabelGroup struct {
	Purpose string
	Labels  []Label
}

// Diagnostic is a structured, accumulable error or warning. Diagnostics are
// values: the resolver never throws or unwinds on one, it appends the value
// to an accumulator and keeps going.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string

	Primary   Label
	Secondary []Label
	Groups    []LabelGroup

	// Referenced holds structurally identical sub-diagnostics used for
	// multi-file errors, e.g. accessibility_violation referencing both the
	// use site and the definition site in another file.
	Referenced []Diagnostic

	Help string
}

// WithSecondary appends a secondary labeled span and returns the diagnostic.
func (d Diagnostic) WithSecondary(span source.Span, msg string) Diagnostic {
	d.Secondary = append(d.Secondary, Label{Span: span, Message: msg})
	return d
}

// WithGroup appends a collection label and returns the diagnostic.
func (d Diagnostic) WithGroup(purpose string, labels ...Label) Diagnostic {
	d.Groups = append(d.Groups, LabelGroup{Purpose: purpose, Labels: labels})
	return d
}

// WithReferenced appends a referenced sub-diagnostic and returns the
// diagnostic.
func (d Diagnostic) WithReferenced(ref Diagnostic) Diagnostic {
	d.Referenced = append(d.Referenced, ref)
	return d
}

// WithHelp sets the help string and returns the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
