package galene

import "testing"

func TestTimestampOrdering(t *testing.T) {
	a := Timestamp{Version: 1, TieBreaker: "n1"}
	b := Timestamp{Version: 2, TieBreaker: "n1"}

	if !b.After(a) {
		t.Fatalf("expected %s > %s", b, a)
	}
	if a.After(b) {
		t.Fatalf("expected %s < %s", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Fatalf("Compare disagrees with After for %s, %s", a, b)
	}
}

func TestTimestampTieBreak(t *testing.T) {
	low := Timestamp{Version: 3, TieBreaker: "n1"}
	high := Timestamp{Version: 3, TieBreaker: "n2"}

	if !high.After(low) {
		t.Fatalf("equal versions must be broken by node id: %s vs %s", high, low)
	}
	if low.After(high) {
		t.Fatalf("tie-break must be asymmetric")
	}
}

func TestTimestampEqual(t *testing.T) {
	a := Timestamp{Version: 5, TieBreaker: "n2"}
	b := Timestamp{Version: 5, TieBreaker: "n2"}
	c := Timestamp{Version: 5, TieBreaker: "n3"}

	if !a.Equal(b) || a.Compare(b) != 0 {
		t.Fatalf("identical timestamps must compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("different tie-breakers are not equal")
	}
	if a.After(a) {
		t.Fatalf("After must be irreflexive")
	}
}

func TestVersionDominatesTieBreak(t *testing.T) {
	// a higher version always wins, whatever the tie-breakers say
	a := Timestamp{Version: 2, TieBreaker: "n9"}
	b := Timestamp{Version: 3, TieBreaker: "n1"}
	if !b.After(a) {
		t.Fatalf("version must dominate tie-breaker: %s vs %s", b, a)
	}
}
