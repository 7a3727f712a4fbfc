package idxtable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/henderiw/idxset/pkg/rangeset"
)

type Table[T1 any] interface {
	Get(id int) (T1, error)
	Claim(id int, d T1) error
	ClaimDynamic(d T1) (int, error)
	ClaimRange(start, size int, d T1) error
	ClaimSize(size int, d T1) (rangeset.RangeSet, error)
	ClaimSet(set rangeset.RangeSet, d T1) error
	Release(id int) error
	ReleaseSet(set rangeset.RangeSet) error
	Update(id int, d T1) error

	Iterate() *Iterator[T1]

	Count() int
	Has(id int) bool

	IsFree(id int) bool
	Claimed() rangeset.RangeSet
	Free() rangeset.RangeSet
	FindFree() (int, error)
	FindFreeRange(start, size int) (rangeset.ClosedRange, error)
	FindFreeSize(size int) (rangeset.RangeSet, error)

	GetAll() map[int]T1
}

type ValidationFn func(id int) error

func NewTable[T1 any](s int, initEntries map[int]T1, v ValidationFn) (Table[T1], error) {
	r := &table[T1]{
		m:          new(sync.RWMutex),
		table:      map[int]T1{},
		size:       s,
		validateFn: v,
	}

	var errm error
	for id, d := range initEntries {
		if err := r.add(id, d, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table[T1 any] struct {
	m     *sync.RWMutex
	table map[int]T1
	// claimed holds the keys of table. It only grows by union; a release
	// marks it stale until the next claim rebuilds it.
	claimed    rangeset.RangeSet
	stale      bool
	size       int
	validateFn ValidationFn
}

func (r *table[T1]) validate(id int, init bool) error {
	if id < 0 || id > r.size-1 {
		return fmt.Errorf("id %d does not fit in the table range 0-%d", id, r.size-1)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T1]) Get(id int) (T1, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var d T1

	if err := r.validate(id, false); err != nil {
		return d, err
	}

	d, ok := r.table[id]
	if !ok {
		return d, fmt.Errorf("no match found for: %v", id)
	}
	return d, nil
}

func (r *table[T1]) Claim(id int, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()
	r.refresh()

	return r.add(id, d, false)
}

func (r *table[T1]) ClaimDynamic(d T1) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	r.refresh()

	id, err := r.findFree()
	if err != nil {
		return 0, err
	}
	if err := r.add(id, d, false); err != nil {
		return 0, err
	}
	return id, nil
}

// ClaimRange claims size contiguous ids from start. Every id gets its own
// entry, so the cost grows with size.
func (r *table[T1]) ClaimRange(start, size int, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	rng, err := r.findFreeRange(start, size)
	if err != nil {
		return err
	}
	return r.claimSet(rangeset.New(rng), d)
}

func (r *table[T1]) ClaimSize(size int, d T1) (rangeset.RangeSet, error) {
	r.m.Lock()
	defer r.m.Unlock()

	set, err := r.findFreeSize(size)
	if err != nil {
		return rangeset.RangeSet{}, err
	}
	if err := r.claimSet(set, d); err != nil {
		return rangeset.RangeSet{}, err
	}
	return set, nil
}

// ClaimSet claims every id in set for d, or none of them when one is in use
// or refused by the validation. Every id gets its own entry, so the cost grows
// with set.Size().
func (r *table[T1]) ClaimSet(set rangeset.RangeSet, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.claimSet(set, d)
}

// claimSet claims every id in set or none of them.
func (r *table[T1]) claimSet(set rangeset.RangeSet, d T1) error {
	r.refresh()

	var errm error
	for _, rng := range set.Ranges() {
		if r.claimed.Overlaps(rng) {
			errm = errors.Join(errm, fmt.Errorf("range %s overlaps claimed entries", rng))
		}
	}
	if err := r.validateSet(set); err != nil {
		errm = errors.Join(errm, err)
	}
	if errm != nil {
		return errm
	}
	for id := range set.All() {
		r.table[id] = d
	}
	r.claimed = r.claimed.UnionSet(set)
	return nil
}

// validateSet checks set against the table bounds range by range. The
// validation func, when there is one, is called for every id.
func (r *table[T1]) validateSet(set rangeset.RangeSet) error {
	var errm error
	for _, rng := range set.Ranges() {
		if rng.From() < 0 || rng.To() > r.size-1 {
			errm = errors.Join(errm, fmt.Errorf("range %s does not fit in the table range 0-%d", rng, r.size-1))
		}
	}
	if errm != nil || r.validateFn == nil {
		return errm
	}
	for id := range set.All() {
		if err := r.validateFn(id); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return errm
}

func (r *table[T1]) Release(id int) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(id)
}

// ReleaseSet releases every id in set, or none of them when one is out of
// range or refused by the validation. Ids in set that are not claimed are
// skipped.
func (r *table[T1]) ReleaseSet(set rangeset.RangeSet) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validateSet(set); err != nil {
		return err
	}
	for id := range set.All() {
		if _, ok := r.table[id]; ok {
			delete(r.table, id)
			r.stale = true
		}
	}
	return nil
}

func (r *table[T1]) Update(id int, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(id, d)
}

func (r *table[T1]) Iterate() *Iterator[T1] {
	r.m.RLock()
	defer r.m.RUnlock()

	keys := make([]int, 0, len(r.table))
	for id := range r.claimedSet().All() {
		keys = append(keys, id)
	}
	entries := make(map[int]T1, len(r.table))
	for id, d := range r.table {
		entries[id] = d
	}
	return &Iterator[T1]{current: -1, keys: keys, table: entries}
}

func (r *table[T1]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table[T1]) Has(id int) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.table[id]
	return ok
}

func (r *table[T1]) IsFree(id int) bool {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.isFree(id)
}

func (r *table[T1]) isFree(id int) bool {
	_, ok := r.table[id]
	return !ok
}

func (r *table[T1]) Claimed() rangeset.RangeSet {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimedSet()
}

// claimedSet returns the claimed ids. After a release the cached set is
// stale and gets rebuilt from the table keys.
func (r *table[T1]) claimedSet() rangeset.RangeSet {
	if !r.stale {
		return r.claimed
	}
	ids := make([]int, 0, len(r.table))
	for id := range r.table {
		ids = append(ids, id)
	}
	return rangeset.FromIndices(ids...)
}

// refresh stores the rebuilt claimed set. Callers hold the write lock.
func (r *table[T1]) refresh() {
	if r.stale {
		r.claimed = r.claimedSet()
		r.stale = false
	}
}

func (r *table[T1]) Free() rangeset.RangeSet {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free()
}

// free returns the ids in [0, size) between the claimed ranges.
func (r *table[T1]) free() rangeset.RangeSet {
	var free rangeset.RangeSet
	next := 0
	for _, rng := range r.claimedSet().Ranges() {
		free = free.UnionRange(rangeset.RangeFrom(next, rng.From()-1))
		next = rng.To() + 1
	}
	if next < r.size {
		free = free.UnionRange(rangeset.RangeFrom(next, r.size-1))
	}
	return free
}

func (r *table[T1]) FindFree() (int, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree()
}

func (r *table[T1]) findFree() (int, error) {
	for id := range r.free().All() {
		if r.validateFn == nil || r.validateFn(id) == nil {
			return id, nil
		}
	}
	return 0, fmt.Errorf("no free entry found")
}

func (r *table[T1]) FindFreeRange(start, size int) (rangeset.ClosedRange, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFreeRange(start, size)
}

func (r *table[T1]) findFreeRange(start, size int) (rangeset.ClosedRange, error) {
	var rng rangeset.ClosedRange
	if size <= 0 {
		return rng, fmt.Errorf("size %d must be positive", size)
	}
	if start < 0 || start > r.size-1 {
		return rng, fmt.Errorf("start %d does not fit in the table range 0-%d", start, r.size-1)
	}
	if size > r.size-start {
		return rng, fmt.Errorf("end %d is bigger then max allowed entries: %d", start+size-1, r.size-1)
	}
	rng = rangeset.RangeOfLength(start, size)
	if r.claimedSet().Overlaps(rng) {
		return rangeset.ClosedRange{}, fmt.Errorf("entries in use in range: start: %d, end %d", rng.From(), rng.To())
	}
	return rng, nil
}

func (r *table[T1]) FindFreeSize(size int) (rangeset.RangeSet, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFreeSize(size)
}

// findFreeSize returns the lowest size free ids accepted by the validation,
// not necessarily contiguous.
func (r *table[T1]) findFreeSize(size int) (rangeset.RangeSet, error) {
	if size > r.size {
		return rangeset.RangeSet{}, fmt.Errorf("size %d is bigger then max allowed entries: %d", size, r.size)
	}
	var set rangeset.RangeSet
	for id := range r.free().All() {
		if set.Size() >= size {
			break
		}
		if r.validateFn == nil || r.validateFn(id) == nil {
			set = set.Union(id)
		}
	}
	if set.Size() < size {
		return rangeset.RangeSet{}, fmt.Errorf("could not find free entries that fit in size %d", size)
	}
	return set, nil
}

func (r *table[T1]) add(id int, d T1, init bool) error {
	if err := r.validate(id, init); err != nil {
		return err
	}
	if !r.isFree(id) {
		return fmt.Errorf("entry %d already exists", id)
	}
	r.table[id] = d
	if !r.stale {
		r.claimed = r.claimed.Union(id)
	}
	return nil
}

func (r *table[T1]) update(id int, d T1) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	if r.isFree(id) {
		return fmt.Errorf("entry %d not found", id)
	}
	r.table[id] = d
	return nil
}

func (r *table[T1]) delete(id int) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	if _, ok := r.table[id]; ok {
		delete(r.table, id)
		r.stale = true
	}
	return nil
}

func (r *table[T1]) GetAll() map[int]T1 {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[int]T1, len(r.table))
	for id, d := range r.table {
		entries[id] = d
	}
	return entries
}
