package diag

import (
	"testing"

	"scriptsense/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}
	ReportWarning(r, SynUnexpectedToken, source.Span{Start: 9, End: 10}, "late").Emit()
	ReportError(r, LexUnknownChar, source.Span{Start: 1, End: 2}, "early").Emit()
	ReportError(r, SynExpectColon, source.Span{Start: 9, End: 10}, "same span").Emit()
	if bag.Add(Diagnostic{Code: SynTooManyErrors}) {
		t.Fatalf("bag must reject diagnostics beyond its limit")
	}
	if !bag.Full() || !bag.HasErrors() {
		t.Fatalf("expected a full bag with errors")
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Message != "early" || items[1].Message != "same span" || items[2].Message != "late" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{Start: 4, End: 5}
	bag.Add(Diagnostic{Code: SynExpectColon, Primary: sp, Message: "a"})
	bag.Add(Diagnostic{Code: SynExpectColon, Primary: sp, Message: "b"})
	bag.Add(Diagnostic{Code: SynExpectBlock, Primary: sp, Message: "c"})
	bag.Dedup()
	if bag.Len() != 2 || bag.Items()[0].Message != "a" {
		t.Fatalf("Dedup kept %+v", bag.Items())
	}
}

func TestCodeID(t *testing.T) {
	if got := LexBadIndent.ID(); got != "LEX1004" {
		t.Fatalf("ID() = %q", got)
	}
	if got := SynExpectColon.String(); got != "[SYN2003]: Expected ':'" {
		t.Fatalf("String() = %q", got)
	}
}
