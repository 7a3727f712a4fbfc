package rangeset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxIndex is the largest index a RangeSet can hold. The top int value is
// kept free so that end+1 and the element count never overflow.
const MaxIndex = math.MaxInt - 1

// ClosedRange is the inclusive range of indices [from, to]. A range with
// to < from is empty.
//
// The zero value is the single index 0.
type ClosedRange struct {
	from int
	to   int
}

// RangeFrom returns the range [from, to]. It panics if from is negative or if
// a non-empty range ends past MaxIndex.
func RangeFrom(from, to int) ClosedRange {
	r := ClosedRange{from: from, to: to}
	r.mustBeValid()
	return r
}

// RangeOfLength returns the range of length indices starting at start.
// A length <= 0 returns an empty range.
func RangeOfLength(start, length int) ClosedRange {
	if start < 0 || start > MaxIndex {
		panic(fmt.Sprintf("rangeset: start index %d out of bounds [0, %d]", start, MaxIndex))
	}
	if length <= 0 {
		return ClosedRange{from: start, to: start - 1}
	}
	if length-1 > MaxIndex-start {
		panic(fmt.Sprintf("rangeset: range of length %d at %d overflows max index %d", length, start, MaxIndex))
	}
	return ClosedRange{from: start, to: start + length - 1}
}

// RangeOf returns the range holding the single index i.
func RangeOf(i int) ClosedRange {
	return RangeFrom(i, i)
}

// ParseRange parses "from-to" or a single index.
func ParseRange(s string) (ClosedRange, error) {
	var r ClosedRange
	s = strings.TrimSpace(s)
	from, to, found := strings.Cut(s, "-")
	fromIdx, err := parseIndex(from)
	if err != nil {
		return r, fmt.Errorf("invalid from index %q in range %q", from, s)
	}
	toIdx := fromIdx
	if found {
		toIdx, err = parseIndex(to)
		if err != nil {
			return r, fmt.Errorf("invalid to index %q in range %q", to, s)
		}
	}
	if toIdx < fromIdx {
		return r, fmt.Errorf("range %q ends before it starts", s)
	}
	return ClosedRange{from: fromIdx, to: toIdx}, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.ParseUint(strings.TrimSpace(s), 10, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	if i > MaxIndex {
		return 0, fmt.Errorf("index %d bigger than max index %d", i, MaxIndex)
	}
	return int(i), nil
}

// From returns the lower bound of r.
func (r ClosedRange) From() int { return r.from }

// To returns the upper bound of r.
func (r ClosedRange) To() int { return r.to }

// Len returns the number of indices in r, which is <= 0 for an empty range.
func (r ClosedRange) Len() int { return r.to - r.from + 1 }

// IsEmpty reports whether r holds no index.
func (r ClosedRange) IsEmpty() bool { return r.to < r.from }

// IsValid reports whether r is non-empty and within [0, MaxIndex].
func (r ClosedRange) IsValid() bool {
	return r.from >= 0 && r.from <= r.to && r.to <= MaxIndex
}

// Contains reports whether i is in r.
func (r ClosedRange) Contains(i int) bool {
	return r.from <= i && i <= r.to
}

// String returns r as "from-to", or as a single index when from equals to.
func (r ClosedRange) String() string {
	if r.from == r.to {
		return strconv.Itoa(r.from)
	}
	return fmt.Sprintf("%d-%d", r.from, r.to)
}

func (r ClosedRange) mustBeValid() {
	if r.from < 0 || r.from > MaxIndex {
		panic(fmt.Sprintf("rangeset: index %d out of bounds [0, %d]", r.from, MaxIndex))
	}
	if !r.IsEmpty() && r.to > MaxIndex {
		panic(fmt.Sprintf("rangeset: index %d out of bounds [0, %d]", r.to, MaxIndex))
	}
}

// entirelyBefore returns whether r ends before other starts, leaving at least
// one index between them.
//
//	   r          other
//	f------t   f-------t
func (r ClosedRange) entirelyBefore(other ClosedRange) bool {
	return r.to+1 < other.from
}

// touches returns whether r and other overlap or are adjacent, i.e. whether
// they have to be merged into one range.
func (r ClosedRange) touches(other ClosedRange) bool {
	return !r.entirelyBefore(other) && !other.entirelyBefore(r)
}

// coveredBy returns whether r is entirely contained within other.
func (r ClosedRange) coveredBy(other ClosedRange) bool {
	return other.from <= r.from && r.to <= other.to
}

// merge returns the smallest range covering r and other. Both are expected to
// touch.
func (r ClosedRange) merge(other ClosedRange) ClosedRange {
	return ClosedRange{from: min(r.from, other.from), to: max(r.to, other.to)}
}
