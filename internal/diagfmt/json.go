package diagfmt

import (
	"encoding/json"
	"io"

	"tim/internal/diag"
	"tim/internal/source"
)

// LocationJSON is one diagnostic's location for JSON consumption.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// LabelJSON is a secondary or grouped label.
type LabelJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// LabelGroupJSON is a named collection of labels.
type LabelGroupJSON struct {
	Purpose string      `json:"purpose"`
	Labels  []LabelJSON `json:"labels"`
}

// DiagnosticJSON is one diagnostic for JSON consumption.
type DiagnosticJSON struct {
	Severity   string            `json:"severity"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Location   LocationJSON      `json:"location"`
	Notes      []LabelJSON       `json:"notes,omitempty"`
	Groups     []LabelGroupJSON  `json:"groups,omitempty"`
	Referenced []DiagnosticJSON  `json:"referenced,omitempty"`
	Help       string            `json:"help,omitempty"`
}

// DiagnosticsOutput is the JSON document root.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, registry *source.Registry, opts JSONOpts) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	file := registry.Get(span.File)
	if file == nil {
		return loc
	}
	loc.File = file.Path
	if opts.IncludePositions {
		start := file.ToLineCol(span.Start)
		end := file.ToLineCol(span.End)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func makeLabels(labels []diag.Label, registry *source.Registry, opts JSONOpts) []LabelJSON {
	if len(labels) == 0 {
		return nil
	}
	out := make([]LabelJSON, len(labels))
	for i, l := range labels {
		out[i] = LabelJSON{Message: l.Message, Location: makeLocation(l.Span, registry, opts)}
	}
	return out
}

func makeDiagnostic(d diag.Diagnostic, registry *source.Registry, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.String(),
		Message:  d.Message,
		Location: makeLocation(d.Primary.Span, registry, opts),
		Notes:    makeLabels(d.Secondary, registry, opts),
		Help:     d.Help,
	}
	for _, g := range d.Groups {
		out.Groups = append(out.Groups, LabelGroupJSON{Purpose: g.Purpose, Labels: makeLabels(g.Labels, registry, opts)})
	}
	for _, ref := range d.Referenced {
		out.Referenced = append(out.Referenced, makeDiagnostic(ref, registry, opts))
	}
	return out
}

// BuildDiagnosticsOutput turns bag's items into the JSON-serializable
// document, without writing anything.
func BuildDiagnosticsOutput(items []diag.Diagnostic, registry *source.Registry, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, makeDiagnostic(d, registry, opts))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes items to w as a single JSON document.
func JSON(w io.Writer, items []diag.Diagnostic, registry *source.Registry, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(items, registry, opts))
}
