package diag

import (
	"testing"

	"fstrlit/internal/source"
)

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, FStrStrayRBrace, sp(3, 4), "stray closing brace").
		WithNote(sp(0, 1), "expression starts here").
		WithFix("escape as '}}'", Replace(sp(3, 4), "}}"))
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected single emission, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "}}" {
		t.Fatalf("builder lost details: %+v", d)
	}
}

func TestMultiAndDedupReporter(t *testing.T) {
	first, second := NewBag(0), NewBag(0)
	r := NewDedupReporter(MultiReporter{BagReporter{Bag: first}, nil, BagReporter{Bag: second}})

	r.Report(FStrBackslash, SevError, sp(1, 2), "backslash", nil, nil)
	r.Report(FStrBackslash, SevError, sp(1, 2), "backslash", nil, nil)
	r.Report(FStrBackslash, SevError, sp(5, 6), "backslash", nil, nil)

	if first.Len() != 2 || second.Len() != 2 {
		t.Fatalf("fan-out mismatch: %d / %d", first.Len(), second.Len())
	}
}

func TestInsertEdit(t *testing.T) {
	e := Insert(3, 10, "}")
	if e.Span != (source.Span{File: 3, Start: 10, End: 10}) || e.NewText != "}" {
		t.Fatalf("Insert() = %+v", e)
	}
}
