package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKey builds the composite "<recordId>_<segmentIndex>" key. The format
// is a contract boundary with callers; exactly one underscore-delimited pair
// of integers.
func SegmentKey(recordID int64, index int) string {
	return fmt.Sprintf("%d_%d", recordID, index)
}

// ParseSegmentKey splits a composite trip key into record id and segment index.
// Returns MalformedKeyError on anything that is not two non-negative integers
// joined by a single underscore.
func ParseSegmentKey(key string) (int64, int, error) {
	left, right, found := strings.Cut(key, "_")
	if !found || strings.Contains(right, "_") {
		return 0, 0, MalformedKeyError{Key: key}
	}
	if !allDigits(left) || !allDigits(right) {
		return 0, 0, MalformedKeyError{Key: key}
	}
	recordID, err := strconv.ParseInt(left, 10, 64)
	if err != nil {
		return 0, 0, MalformedKeyError{Key: key}
	}
	index, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, MalformedKeyError{Key: key}
	}
	return recordID, index, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SegmentSpan is a segment's resolved position range within a stop sequence,
// half-open: [Start, End).
type SegmentSpan struct {
	Start int
	End   int
}

// NewSegmentSpan validates that the span points forward along the route.
// Inverted or degenerate spans are a caller error and fail fast here.
func NewSegmentSpan(start, end int) (SegmentSpan, error) {
	if start < 0 {
		return SegmentSpan{}, ValidationError{Field: "segment", Msg: fmt.Sprintf("posisi start %d negatif", start)}
	}
	if start >= end {
		return SegmentSpan{}, ValidationError{Field: "segment", Msg: fmt.Sprintf("posisi start %d harus sebelum end %d", start, end)}
	}
	return SegmentSpan{Start: start, End: end}, nil
}

// Overlaps reports whether two spans share at least one physical leg of the
// route. Standard half-open interval overlap; identical spans overlap, and a
// span that fully contains another overlaps it.
func (s SegmentSpan) Overlaps(o SegmentSpan) bool {
	return s.Start < o.End && s.End > o.Start
}

// ClampSeats bounds a seat count to [0, capacity]. A release can never push a
// segment above capacity and a reservation can never push it below zero.
func ClampSeats(seats, capacity int) int {
	if seats < 0 {
		return 0
	}
	if seats > capacity {
		return capacity
	}
	return seats
}
