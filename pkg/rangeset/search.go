package rangeset

import "slices"

// position is where an index lies relative to a range.
type position int

const (
	before position = iota - 1
	within
	after
)

// locate compares a range against index i: before means the range ends before
// i, after means it starts after i.
func locate(r ClosedRange, i int) position {
	switch {
	case r.to < i:
		return before
	case r.from > i:
		return after
	default:
		return within
	}
}

// search returns the position of the range holding i and true, or the
// position where a range starting at i would be inserted and false.
func search(rr []ClosedRange, i int) (int, bool) {
	return slices.BinarySearchFunc(rr, i, func(r ClosedRange, i int) int {
		return int(locate(r, i))
	})
}

// startIndex returns the index of the range at or immediately before i, or 0
// when i precedes every range.
func startIndex(rr []ClosedRange, i int) int {
	k, found := search(rr, i)
	if found || k == 0 {
		return k
	}
	return k - 1
}

// covering returns the position of the range covering all of r, or -1.
func covering(rr []ClosedRange, r ClosedRange) int {
	k, found := search(rr, r.from)
	if !found || !r.coveredBy(rr[k]) {
		return -1
	}
	return k
}
