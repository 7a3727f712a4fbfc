package sliceops

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/idxset/pkg/rangeset"
	"github.com/stretchr/testify/assert"
)

var letters = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

func TestRemove(t *testing.T) {
	cases := map[string]struct {
		set         rangeset.RangeSet
		expected    []string
		expectedErr bool
	}{
		"None": {
			set:      rangeset.RangeSet{},
			expected: letters,
		},
		"Ranges": {
			set:      rangeset.New(rangeset.RangeFrom(1, 2), rangeset.RangeOf(5)),
			expected: []string{"a", "d", "e", "g", "h"},
		},
		"All": {
			set:      rangeset.New(rangeset.RangeFrom(0, 7)),
			expected: []string{},
		},
		"Tail": {
			set:      rangeset.FromIndices(7, 6, 0),
			expected: []string{"b", "c", "d", "e", "f"},
		},
		"OutOfRange": {
			set:         rangeset.FromIndices(3, 8),
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := append([]string{}, letters...)
			if tc.expectedErr {
				assert.Panics(t, func() { Remove(in, tc.set) })
				return
			}
			got := Remove(in, tc.set)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	cases := map[string]struct {
		in          []string
		set         rangeset.RangeSet
		values      []string
		expected    []string
		expectedErr bool
	}{
		"Front": {
			in:       []string{"c", "d"},
			set:      rangeset.New(rangeset.RangeFrom(0, 1)),
			values:   []string{"a", "b"},
			expected: []string{"a", "b", "c", "d"},
		},
		"Spread": {
			in:       []string{"a", "c", "f"},
			set:      rangeset.FromIndices(1, 3, 4),
			values:   []string{"B", "D", "E"},
			expected: []string{"a", "B", "c", "D", "E", "f"},
		},
		"End": {
			in:       []string{"a"},
			set:      rangeset.FromIndices(1, 2),
			values:   []string{"b", "c"},
			expected: []string{"a", "b", "c"},
		},
		"CountMismatch": {
			in:          []string{"a"},
			set:         rangeset.FromIndices(1, 2),
			values:      []string{"b"},
			expectedErr: true,
		},
		"Unreachable": {
			in:          []string{"a"},
			set:         rangeset.FromIndices(5),
			values:      []string{"b"},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if tc.expectedErr {
				assert.Panics(t, func() { Insert(tc.in, tc.set, tc.values...) })
				return
			}
			got := Insert(tc.in, tc.set, tc.values...)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
			// inserting then removing the same positions is a round trip
			if diff := cmp.Diff(tc.in, Remove(got, tc.set)); diff != "" {
				t.Errorf("%s round trip: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestSelectIndices(t *testing.T) {
	vowel := func(s string) bool { return strings.ContainsAny(s, "aeiou") }

	set := Indices(letters, vowel)
	assert.Equal(t, "[0 4]", set.String())
	assert.Equal(t, []string{"a", "e"}, Select(letters, set))

	set = Indices(letters, func(s string) bool { return s != "d" })
	assert.Equal(t, "[0-2 4-7]", set.String())
	assert.Equal(t, []string{"d"}, Remove(Select(letters, rangeset.New(rangeset.RangeFrom(0, 7))), set))

	assert.True(t, Indices([]string{}, vowel).IsEmpty())
	assert.Empty(t, Select(letters, rangeset.RangeSet{}))
}
