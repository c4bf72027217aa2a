package diag

import "sort"

// Bag accumulates diagnostics for one compilation run. Errors are values,
// never thrown, so a single Bag can end up holding every discoverable
// problem across every module.
type Bag struct {
	items []Diagnostic
}

// NewBag creates an empty bag with an optional capacity hint.
func NewBag(capacityHint int) *Bag {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Bag{items: make([]Diagnostic, 0, capacityHint)}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasErrors reports whether any diagnostic is at SevError or above.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Len reports the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the accumulated diagnostics. Callers must not mutate the
// returned slice; it aliases the bag's backing array.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends every diagnostic from other into b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics deterministically: by primary file, then primary
// start offset, then end offset, then severity (errors first), then code.
// Running the resolver twice on the same input must produce a byte-identical
// diagnostic sequence, and a stable sort over these keys is what makes that
// guarantee hold regardless of the order checks happened to run in.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.Span.File != dj.Primary.Span.File {
			return di.Primary.Span.File < dj.Primary.Span.File
		}
		if di.Primary.Span.Start != dj.Primary.Span.Start {
			return di.Primary.Span.Start < dj.Primary.Span.Start
		}
		if di.Primary.Span.End != dj.Primary.Span.End {
			return di.Primary.Span.End < dj.Primary.Span.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
