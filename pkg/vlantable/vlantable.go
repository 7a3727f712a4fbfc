package vlantable

import (
	"fmt"

	"github.com/henderiw/idxset/pkg/idxtable"
	"github.com/henderiw/idxset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	untaggedVLAN = 0
	defaultVLAN  = 1
	reservedVLAN = 4095
	numVLANs     = 4096
)

type VLANTable interface {
	Get(id int) (labels.Set, error)
	Claim(id int, d labels.Set) error
	ClaimDynamic(d labels.Set) (int, error)
	ClaimRange(start, size int, d labels.Set) error
	Release(id int) error
	ReleaseSet(set rangeset.RangeSet) error
	Update(id int, d labels.Set) error

	Count() int
	Has(id int) bool

	IsFree(id int) bool
	FindFree() (int, error)
	Claimed() rangeset.RangeSet
	Free() rangeset.RangeSet

	GetAll() map[int]labels.Set
	GetByLabel(selector labels.Selector) map[int]labels.Set
	Select(selector labels.Selector) rangeset.RangeSet
}

var initEntries = map[int]labels.Set{
	untaggedVLAN: map[string]string{"type": "untagged", "status": "reserved"},
	defaultVLAN:  map[string]string{"type": "default", "status": "reserved"},
	reservedVLAN: map[string]string{"type": "reserved", "status": "reserved"},
}

func New() (VLANTable, error) {
	t, err := idxtable.NewTable[labels.Set](
		numVLANs,
		initEntries,
		func(id int) error {
			switch id {
			case untaggedVLAN:
				return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", id)
			case defaultVLAN:
				return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", id)
			case reservedVLAN:
				return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", id)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{table: t}, nil
}

type vlanTable struct {
	table idxtable.Table[labels.Set]
}

func (r *vlanTable) Get(id int) (labels.Set, error) {
	return r.table.Get(id)
}

func (r *vlanTable) Claim(id int, d labels.Set) error {
	if !r.table.IsFree(id) {
		return fmt.Errorf("VLAN %d is already claimed", id)
	}
	return r.table.Claim(id, d)
}

func (r *vlanTable) ClaimDynamic(d labels.Set) (int, error) {
	return r.table.ClaimDynamic(d)
}

func (r *vlanTable) ClaimRange(start, size int, d labels.Set) error {
	return r.table.ClaimRange(start, size, d)
}

func (r *vlanTable) Release(id int) error {
	return r.table.Release(id)
}

func (r *vlanTable) ReleaseSet(set rangeset.RangeSet) error {
	return r.table.ReleaseSet(set)
}

func (r *vlanTable) Update(id int, d labels.Set) error {
	if r.table.IsFree(id) {
		return fmt.Errorf("VLAN %d is not claimed", id)
	}
	return r.table.Update(id, d)
}

func (r *vlanTable) Count() int {
	return r.table.Count()
}

func (r *vlanTable) Has(id int) bool {
	return r.table.Has(id)
}

func (r *vlanTable) IsFree(id int) bool {
	return r.table.IsFree(id)
}

func (r *vlanTable) FindFree() (int, error) {
	return r.table.FindFree()
}

func (r *vlanTable) Claimed() rangeset.RangeSet {
	return r.table.Claimed()
}

func (r *vlanTable) Free() rangeset.RangeSet {
	return r.table.Free()
}

func (r *vlanTable) GetAll() map[int]labels.Set {
	return r.table.GetAll()
}

func (r *vlanTable) GetByLabel(selector labels.Selector) map[int]labels.Set {
	entries := map[int]labels.Set{}

	iter := r.table.Iterate()
	for iter.Next() {
		if selector.Matches(iter.Value()) {
			entries[iter.ID()] = iter.Value()
		}
	}
	return entries
}

// Select returns the VLAN ids whose labels match selector.
func (r *vlanTable) Select(selector labels.Selector) rangeset.RangeSet {
	var set rangeset.RangeSet

	iter := r.table.Iterate()
	for iter.Next() {
		if selector.Matches(iter.Value()) {
			set = set.Union(iter.ID())
		}
	}
	return set
}
