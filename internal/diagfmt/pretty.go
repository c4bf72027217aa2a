package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tim/internal/diag"
	"tim/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	gutterColor  = color.New(color.Faint)
)

// Pretty writes bag (expected already sorted via bag.Sort()) to w as
// human-readable text: one "path:line:col: severity code: message" header
// per diagnostic, the offending source line with a caret span underneath,
// then its secondary labels, groups and referenced sub-diagnostics indented
// beneath, each carrying its own path:line:col location.
func Pretty(w io.Writer, items []diag.Diagnostic, registry *source.Registry, opts PrettyOpts) {
	for _, d := range items {
		writeDiagnostic(w, d, registry, opts, "")
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, registry *source.Registry, opts PrettyOpts, indent string) {
	sevWord, sevColor := severityWord(d.Severity)
	if opts.Color {
		sevWord = sevColor.Sprint(sevWord)
	}
	fmt.Fprintf(w, "%s%s: %s: %s: %s\n", indent, locationString(d.Primary.Span, registry), sevWord, d.Code.String(), d.Message)

	writeSourceContext(w, d.Primary.Span, registry, opts, indent+"  ")

	for _, note := range d.Secondary {
		fmt.Fprintf(w, "%s  note: %s: %s\n", indent, locationString(note.Span, registry), note.Message)
		writeSourceContext(w, note.Span, registry, opts, indent+"    ")
	}

	for _, group := range d.Groups {
		fmt.Fprintf(w, "%s  %s:\n", indent, group.Purpose)
		for _, label := range group.Labels {
			fmt.Fprintf(w, "%s    %s: %s\n", indent, locationString(label.Span, registry), label.Message)
		}
	}

	for _, ref := range d.Referenced {
		writeDiagnostic(w, ref, registry, opts, indent+"  ")
	}
}

func writeSourceContext(w io.Writer, span source.Span, registry *source.Registry, opts PrettyOpts, indent string) {
	file := registry.Get(span.File)
	if file == nil {
		return
	}
	start := file.ToLineCol(span.Start)
	end := file.ToLineCol(span.End)

	firstLine := start.Line
	if int(firstLine) > opts.Context {
		firstLine -= uint32(opts.Context)
	} else {
		firstLine = 1
	}
	lastLine := end.Line + uint32(opts.Context)

	for ln := firstLine; ln <= lastLine; ln++ {
		text := file.Line(ln)
		if ln == 1 && text == "" && firstLine == lastLine {
			break
		}
		gutter := fmt.Sprintf("%4d | ", ln)
		if opts.Color {
			gutter = gutterColor.Sprint(gutter)
		}
		fmt.Fprintf(w, "%s%s%s\n", indent, gutter, text)
		if ln == start.Line {
			caretStart := start.Col
			caretLen := uint32(1)
			if ln == end.Line && end.Col > start.Col {
				caretLen = end.Col - start.Col
			}
			caret := strings.Repeat(" ", int(caretStart)-1) + strings.Repeat("^", int(caretLen))
			blankGutter := "     | "
			if opts.Color {
				blankGutter = gutterColor.Sprint(blankGutter)
			}
			fmt.Fprintf(w, "%s%s%s\n", indent, blankGutter, caret)
		}
	}
}

func locationString(span source.Span, registry *source.Registry) string {
	file := registry.Get(span.File)
	if file == nil {
		return "<unknown>"
	}
	pos := file.ToLineCol(span.Start)
	return fmt.Sprintf("%s:%d:%d", file.Path, pos.Line, pos.Col)
}

func severityWord(sev diag.Severity) (string, *color.Color) {
	switch sev {
	case diag.SevError:
		return "error", errorColor
	case diag.SevWarning:
		return "warning", warningColor
	default:
		return "info", infoColor
	}
}
