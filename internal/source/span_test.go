package source

import "testing"

func TestSpan_ShiftLeft(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{"normal", Span{File: 1, Start: 10, End: 20}, 5, Span{File: 1, Start: 5, End: 15}},
		{"zero", Span{File: 1, Start: 10, End: 20}, 0, Span{File: 1, Start: 10, End: 20}},
		{"to origin", Span{File: 1, Start: 10, End: 20}, 10, Span{File: 1, Start: 0, End: 10}},
		{"past origin keeps span", Span{File: 1, Start: 10, End: 20}, 15, Span{File: 1, Start: 10, End: 20}},
		{"empty span", Span{File: 1, Start: 10, End: 10}, 3, Span{File: 1, Start: 7, End: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.ShiftLeft(tt.shift); got != tt.expected {
				t.Errorf("ShiftLeft() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_ShiftRight(t *testing.T) {
	sp := Span{File: 2, Start: 0, End: 4}.ShiftRight(7)
	if sp != (Span{File: 2, Start: 7, End: 11}) {
		t.Fatalf("ShiftRight() = %+v", sp)
	}
}

func TestSpan_CoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 2, End: 5}
	b := Span{File: 1, Start: 4, End: 9}

	cov := a.Cover(b)
	if cov != (Span{File: 1, Start: 2, End: 9}) {
		t.Fatalf("Cover() = %+v", cov)
	}
	if !cov.Contains(a) || !cov.Contains(b) {
		t.Fatalf("cover %v must contain both inputs", cov)
	}
	if a.Contains(b) {
		t.Fatalf("%v must not contain %v", a, b)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Fatal("Cover across files must return receiver")
	}
	if other.Contains(a) {
		t.Fatal("Contains across files must be false")
	}
}

func TestSpan_LenAndEmpty(t *testing.T) {
	if !At(0, 3).Empty() {
		t.Fatal("At() must produce empty span")
	}
	if (Span{Start: 3, End: 8}).Len() != 5 {
		t.Fatal("Len() mismatch")
	}
	if (Span{Start: 8, End: 3}).Len() != 0 {
		t.Fatal("inverted span must report zero length")
	}
}
