package diag

import (
	"testing"

	"tim/internal/source"
)

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(4)
	b.Add(NewError(TypeNotFound, source.Span{File: 1, Start: 20, End: 25}, "b"))
	b.Add(NewWarning(ShadowedDeclaration, source.Span{File: 1, Start: 5, End: 10}, "a"))
	b.Add(NewError(AlreadyDefined, source.Span{File: 0, Start: 0, End: 1}, "c"))
	b.Sort()

	items := b.Items()
	if items[0].Code != AlreadyDefined {
		t.Fatalf("expected file 0 diagnostic first, got %v", items[0].Code)
	}
	if items[1].Primary.Span.Start != 5 || items[2].Primary.Span.Start != 20 {
		t.Fatalf("expected file-1 diagnostics ordered by start offset")
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(2)
	reporter := BagReporter{Bag: bag}
	b := ReportError(reporter, AlreadyDefined, source.Span{}, "dup")
	b.WithNote(source.Span{Start: 1}, "first here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic emitted, got %d", bag.Len())
	}
}

func TestReportOnNilReporterIsSafe(t *testing.T) {
	var r Reporter
	ReportError(r, AlreadyDefined, source.Span{}, "x").WithNote(source.Span{}, "y").Emit()
}

func TestHasErrors(t *testing.T) {
	b := NewBag(1)
	if b.HasErrors() {
		t.Fatalf("empty bag should not report errors")
	}
	b.Add(NewWarning(ShadowedDeclaration, source.Span{}, "w"))
	if b.HasErrors() {
		t.Fatalf("warning-only bag should not report errors")
	}
	b.Add(NewError(TypeNotFound, source.Span{}, "e"))
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors true after an error diagnostic")
	}
}
