package source

import "testing"

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{Start: 0, End: 5}, Span{Start: 5, End: 10}, false},
		{"overlapping", Span{Start: 0, End: 6}, Span{Start: 5, End: 10}, true},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 2, End: 4}, true},
		{"identical", Span{Start: 3, End: 7}, Span{Start: 3, End: 7}, true},
		{"two empty at same point", Span{Start: 4, End: 4}, Span{Start: 4, End: 4}, false},
		{"empty inside non-empty", Span{Start: 4, End: 4}, Span{Start: 2, End: 6}, true},
		{"empty at non-empty start", Span{Start: 2, End: 2}, Span{Start: 2, End: 6}, true},
		{"empty at non-empty end", Span{Start: 6, End: 6}, Span{Start: 2, End: 6}, false},
		{"different files", Span{File: 1, Start: 0, End: 5}, Span{File: 2, Start: 0, End: 5}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%s (mirrored): Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{Start: 2, End: 10}
	if !outer.Contains(Span{Start: 2, End: 10}) {
		t.Fatalf("span should contain itself")
	}
	if !outer.Contains(Span{Start: 4, End: 6}) {
		t.Fatalf("span should contain nested span")
	}
	if outer.Contains(Span{Start: 1, End: 6}) {
		t.Fatalf("span should not contain span extending left")
	}
	if outer.Contains(Span{File: 3, Start: 4, End: 6}) {
		t.Fatalf("span should not contain span from another file")
	}
}

func TestSpanShiftBy(t *testing.T) {
	sp := Span{File: 1, Start: 10, End: 20}

	right := sp.ShiftBy(5)
	if right.Start != 15 || right.End != 25 {
		t.Fatalf("ShiftBy(5) = %v", right)
	}
	left := sp.ShiftBy(-3)
	if left.Start != 7 || left.End != 17 {
		t.Fatalf("ShiftBy(-3) = %v", left)
	}
	if got := sp.ShiftBy(0); got != sp {
		t.Fatalf("ShiftBy(0) changed the span: %v", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 8, End: 20}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("Cover = %v, want 5..20", got)
	}
}
