// Package sliceops applies a rangeset.RangeSet of positions to a slice.
package sliceops

import (
	"fmt"
	"slices"

	"github.com/henderiw/idxset/pkg/rangeset"
)

// Remove removes the elements at the positions in set and returns the
// modified slice. It panics if a position is out of range for s.
func Remove[S ~[]E, E any](s S, set rangeset.RangeSet) S {
	for r := range set.Backward() {
		s = slices.Delete(s, r.From(), r.To()+1)
	}
	return s
}

// Insert inserts values so that afterwards they sit at exactly the positions
// in set, in ascending order. It panics if len(values) differs from
// set.Size() or a position cannot be reached.
func Insert[S ~[]E, E any](s S, set rangeset.RangeSet, values ...E) S {
	if len(values) != set.Size() {
		panic(fmt.Sprintf("sliceops: inserting %d values at %d positions", len(values), set.Size()))
	}
	next := 0
	for _, r := range set.Ranges() {
		s = slices.Insert(s, r.From(), values[next:next+r.Len()]...)
		next += r.Len()
	}
	return s
}

// Select returns a new slice holding the elements at the positions in set.
func Select[S ~[]E, E any](s S, set rangeset.RangeSet) S {
	out := make(S, 0, set.Size())
	for _, r := range set.Ranges() {
		out = append(out, s[r.From():r.To()+1]...)
	}
	return out
}

// Indices returns the positions of the elements of s for which keep returns
// true.
func Indices[S ~[]E, E any](s S, keep func(E) bool) rangeset.RangeSet {
	var (
		set   rangeset.RangeSet
		start = -1
	)
	for i, e := range s {
		kept := keep(e)
		switch {
		case kept && start < 0:
			start = i
		case !kept && start >= 0:
			set = set.UnionRange(rangeset.RangeFrom(start, i-1))
			start = -1
		}
	}
	if start >= 0 {
		set = set.UnionRange(rangeset.RangeFrom(start, len(s)-1))
	}
	return set
}
