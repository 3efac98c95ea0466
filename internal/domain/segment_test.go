package domain

import (
	"math/rand"
	"testing"
)

func TestParseSegmentKey(t *testing.T) {
	recordID, index, err := ParseSegmentKey("25_0")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if recordID != 25 || index != 0 {
		t.Fatalf("parsed wrong pair: got (%d,%d) want (25,0)", recordID, index)
	}
}

func TestParseSegmentKeyMalformed(t *testing.T) {
	bad := []string{"", "25", "25-0", "25_0_1", "_0", "25_", "a_0", "25_b", "-25_0", "25_+1", " 25_0"}
	for _, key := range bad {
		if _, _, err := ParseSegmentKey(key); !IsMalformedKey(err) {
			t.Fatalf("key %q: expected MalformedKeyError, got %v", key, err)
		}
	}
}

func TestSegmentKeyRoundTrip(t *testing.T) {
	key := SegmentKey(25, 3)
	if key != "25_3" {
		t.Fatalf("unexpected key %q", key)
	}
	recordID, index, err := ParseSegmentKey(key)
	if err != nil || recordID != 25 || index != 3 {
		t.Fatalf("round trip failed: (%d,%d,%v)", recordID, index, err)
	}
}

func TestNewSegmentSpanRejectsInvertedRange(t *testing.T) {
	if _, err := NewSegmentSpan(2, 1); !IsValidation(err) {
		t.Fatalf("inverted range should fail, got %v", err)
	}
	if _, err := NewSegmentSpan(1, 1); !IsValidation(err) {
		t.Fatalf("degenerate range should fail, got %v", err)
	}
	if _, err := NewSegmentSpan(-1, 2); !IsValidation(err) {
		t.Fatalf("negative start should fail, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd int
		bStart, bEnd int
		want         bool
	}{
		{"identical", 0, 2, 0, 2, true},
		{"contained", 0, 3, 1, 2, true},
		{"shared leg", 0, 2, 1, 3, true},
		{"adjacent no shared leg", 0, 1, 1, 2, false},
		{"disjoint", 0, 1, 2, 3, false},
		{"through segment over both legs", 0, 2, 0, 1, true},
	}
	for _, tc := range cases {
		a, err := NewSegmentSpan(tc.aStart, tc.aEnd)
		if err != nil {
			t.Fatalf("%s: span a: %v", tc.name, err)
		}
		b, err := NewSegmentSpan(tc.bStart, tc.bEnd)
		if err != nil {
			t.Fatalf("%s: span b: %v", tc.name, err)
		}
		if got := a.Overlaps(b); got != tc.want {
			t.Fatalf("%s: overlaps=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		aStart := rng.Intn(10)
		aEnd := aStart + 1 + rng.Intn(10)
		bStart := rng.Intn(10)
		bEnd := bStart + 1 + rng.Intn(10)

		a, _ := NewSegmentSpan(aStart, aEnd)
		b, _ := NewSegmentSpan(bStart, bEnd)
		if a.Overlaps(b) != b.Overlaps(a) {
			t.Fatalf("overlap not symmetric for [%d,%d) vs [%d,%d)", aStart, aEnd, bStart, bEnd)
		}
	}
}

func TestOverlapsSelf(t *testing.T) {
	s, _ := NewSegmentSpan(3, 7)
	if !s.Overlaps(s) {
		t.Fatalf("a segment must overlap itself")
	}
}

func TestClampSeats(t *testing.T) {
	if got := ClampSeats(-2, 10); got != 0 {
		t.Fatalf("negative seats should clamp to 0, got %d", got)
	}
	if got := ClampSeats(12, 10); got != 10 {
		t.Fatalf("over-capacity should clamp to capacity, got %d", got)
	}
	if got := ClampSeats(5, 10); got != 5 {
		t.Fatalf("in-range seats should pass through, got %d", got)
	}
}
