// Package diagfmt renders a sorted diag.Bag for human or machine
// consumption. It only ever reads diagnostics; it never feeds anything back
// into resolution.
package diagfmt

// PrettyOpts configures the terminal renderer.
type PrettyOpts struct {
	// Color enables ANSI coloring by severity.
	Color bool
	// Context is how many lines of source context to print around the
	// primary span. 0 prints only the primary line.
	Context int
}

// JSONOpts configures the JSON renderer.
type JSONOpts struct {
	// IncludePositions adds resolved line/column fields alongside byte
	// offsets.
	IncludePositions bool
}
