package rangeset

import (
	"iter"
	"slices"
	"strings"
)

// RangeSet is a set of non-negative indices stored as ranges.
//
// A RangeSet is a value: every union returns a new set and leaves the
// receiver untouched, so a RangeSet can be copied and read freely. Concurrent
// writers to a shared variable holding a RangeSet need their own locking.
//
// The zero value is the empty set.
type RangeSet struct {
	// rr is sorted ascending by from, with no two ranges overlapping or
	// touching, so every index set has exactly one representation. The
	// search helpers rely on this.
	rr []ClosedRange
	// count is the sum of Len over rr.
	count int
}

// New returns the union of the given ranges.
func New(ranges ...ClosedRange) RangeSet {
	var s RangeSet
	for _, r := range ranges {
		s.add(r)
	}
	return s
}

// FromIndices returns the set holding the given indices.
func FromIndices(indices ...int) RangeSet {
	var s RangeSet
	for _, i := range indices {
		s.add(RangeOf(i))
	}
	return s
}

// Union returns the set with index i added.
func (s RangeSet) Union(i int) RangeSet {
	return s.UnionRange(RangeOf(i))
}

// UnionRange returns the set with all indices of r added. Empty ranges and
// ranges already in s return s unchanged.
func (s RangeSet) UnionRange(r ClosedRange) RangeSet {
	r.mustBeValid()
	if r.Len() <= 0 || covering(s.rr, r) >= 0 {
		return s
	}
	w := s.clone()
	w.insert(r)
	return w
}

// UnionSet returns the set holding the indices of both s and other.
func (s RangeSet) UnionSet(other RangeSet) RangeSet {
	switch {
	case other.count == 0:
		return s
	case s.count == 0:
		return other
	}
	w := s.clone()
	for _, r := range other.rr {
		w.add(r)
	}
	return w
}

// Contains reports whether i is in s.
func (s RangeSet) Contains(i int) bool {
	_, found := search(s.rr, i)
	return found
}

// ContainsRange reports whether every index of r is in s. An empty range is
// always contained.
func (s RangeSet) ContainsRange(r ClosedRange) bool {
	return r.Len() <= 0 || covering(s.rr, r) >= 0
}

// Overlaps reports whether any index of r is in s.
func (s RangeSet) Overlaps(r ClosedRange) bool {
	if r.Len() <= 0 {
		return false
	}
	k, found := search(s.rr, r.from)
	return found || (k < len(s.rr) && s.rr[k].from <= r.to)
}

// Size returns the number of indices in s.
func (s RangeSet) Size() int { return s.count }

// IsEmpty reports whether s holds no index.
func (s RangeSet) IsEmpty() bool { return s.count == 0 }

// NumRanges returns the number of ranges s is made of.
func (s RangeSet) NumRanges() int { return len(s.rr) }

// Ranges returns the sorted minimal list of ranges covering s.
func (s RangeSet) Ranges() []ClosedRange {
	return slices.Clone(s.rr)
}

// Min returns the smallest index in s, or false if s is empty.
func (s RangeSet) Min() (int, bool) {
	if len(s.rr) == 0 {
		return 0, false
	}
	return s.rr[0].from, true
}

// Max returns the largest index in s, or false if s is empty.
func (s RangeSet) Max() (int, bool) {
	if len(s.rr) == 0 {
		return 0, false
	}
	return s.rr[len(s.rr)-1].to, true
}

// All returns the indices of s in ascending order.
func (s RangeSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, r := range s.rr {
			for i := r.from; i <= r.to; i++ {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// Backward returns the ranges of s from last to first. Removing elements
// range by range in this order keeps the positions of the remaining ranges
// intact.
func (s RangeSet) Backward() iter.Seq[ClosedRange] {
	return func(yield func(ClosedRange) bool) {
		for i := len(s.rr) - 1; i >= 0; i-- {
			if !yield(s.rr[i]) {
				return
			}
		}
	}
}

// Equal reports whether s and other hold the same indices.
func (s RangeSet) Equal(other RangeSet) bool {
	return s.count == other.count && slices.Equal(s.rr, other.rr)
}

// String returns the ranges of s space separated in brackets, e.g. "[1-3 5]".
func (s RangeSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range s.rr {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.String())
	}
	b.WriteByte(']')
	return b.String()
}

// clone returns a copy of s with its own backing array, with room for one
// more range.
func (s RangeSet) clone() RangeSet {
	rr := make([]ClosedRange, len(s.rr), len(s.rr)+1)
	copy(rr, s.rr)
	return RangeSet{rr: rr, count: s.count}
}

// add unions r into s in place. s must own its backing array.
func (s *RangeSet) add(r ClosedRange) {
	r.mustBeValid()
	if r.Len() <= 0 || covering(s.rr, r) >= 0 {
		return
	}
	s.insert(r)
}

// insert merges the non-empty range r into s in place.
func (s *RangeSet) insert(r ClosedRange) {
	for i := startIndex(s.rr, r.from); i < len(s.rr); i++ {
		cur := s.rr[i]
		switch {
		case r.entirelyBefore(cur):
			// r goes in front of cur, nothing to merge.
			//
			//    r          cur
			// f------t   f-------t
			s.rr = slices.Insert(s.rr, i, r)
			s.count += r.Len()
			return
		case r.from < cur.from:
			// r overlaps or touches the start of cur.
			//
			//    r
			// f------t
			//    f------t
			//       cur
			s.replace(i, ClosedRange{from: r.from, to: max(r.to, cur.to)})
			s.mergeForward(i)
			return
		case r.to <= cur.to:
			// cur covers r.
			//
			//       cur
			// f-------------t
			//    f------t
			//       r
			return
		case r.from <= cur.to+1:
			// r overlaps or touches the end of cur.
			//
			//       cur
			// f-------------t
			//          f---------t
			//              r
			s.replace(i, ClosedRange{from: cur.from, to: r.to})
			s.mergeForward(i)
			return
		}
	}
	s.rr = append(s.rr, r)
	s.count += r.Len()
}

// replace swaps the range at k for r, which must cover it.
func (s *RangeSet) replace(k int, r ClosedRange) {
	s.count += r.Len() - s.rr[k].Len()
	s.rr[k] = r
}

// mergeForward folds the ranges following k into it for as long as they
// touch.
func (s *RangeSet) mergeForward(k int) {
	for k+1 < len(s.rr) && s.rr[k].touches(s.rr[k+1]) {
		next := s.rr[k+1]
		s.replace(k, s.rr[k].merge(next))
		s.count -= next.Len()
		s.rr = slices.Delete(s.rr, k+1, k+2)
	}
}
