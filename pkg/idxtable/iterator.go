package idxtable

// Iterator walks a snapshot of the claimed entries in ascending id order.
type Iterator[T1 any] struct {
	current int
	keys    []int
	table   map[int]T1
}

func (r *Iterator[T1]) Value() T1 {
	return r.table[r.keys[r.current]]
}

func (r *Iterator[T1]) ID() int {
	return r.keys[r.current]
}

func (r *Iterator[T1]) Next() bool {
	r.current++
	return r.current < len(r.keys)
}

// IsConsecutive reports whether the current id directly follows the previous
// one.
func (r *Iterator[T1]) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	return r.keys[r.current-1] == r.keys[r.current]-1
}
