package vlantable

import (
	"testing"

	"github.com/henderiw/idxset/pkg/rangeset"
	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		initEntries       map[int]labels.Set
		newSuccessEntries map[int]labels.Set
		newFailedEntries  map[int]labels.Set
		expectedEntries   int
	}{

		"Normal": {
			initEntries: initEntries,
			newSuccessEntries: map[int]labels.Set{
				10: map[string]string{},
				11: map[string]string{},
			},
			newFailedEntries: map[int]labels.Set{
				5000: map[string]string{},
				-1:   map[string]string{},
			},
			expectedEntries: 5,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New()
			assert.NoError(t, err)

			for id, d := range tc.newSuccessEntries {
				err := r.Claim(id, d)
				assert.NoError(t, err)

			}
			for id, d := range tc.newFailedEntries {
				err := r.Claim(id, d)
				assert.Error(t, err)
			}
			// check table
			for id := range tc.initEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting initEntry: %d\n", name, id)
				}
			}
			for id := range tc.newSuccessEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting success claim entry: %d\n", name, id)
				}
			}
			for id := range tc.newFailedEntries {
				if r.Has(id) {
					t.Errorf("%s no expecting failed claim entry: %d\n", name, id)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func TestReserved(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	assert.Equal(t, "[0-1 4095]", r.Claimed().String())
	assert.Equal(t, "[2-4094]", r.Free().String())

	id, err := r.FindFree()
	assert.NoError(t, err)
	assert.Equal(t, 2, id)

	// reserved VLANs can't be released or claimed again
	assert.Error(t, r.Release(1))
	assert.Error(t, r.ReleaseSet(rangeset.FromIndices(4095)))
	assert.True(t, r.Has(4095))

	// a release that spans a reserved VLAN releases nothing
	assert.NoError(t, r.ClaimRange(4090, 5, labels.Set{"tenant": "a"}))
	assert.Error(t, r.ReleaseSet(rangeset.New(rangeset.RangeFrom(4090, 4095))))
	assert.Equal(t, "[0-1 4090-4095]", r.Claimed().String())
}

func TestSelect(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	assert.NoError(t, r.ClaimRange(100, 10, labels.Set{"tenant": "a"}))
	assert.NoError(t, r.ClaimRange(200, 5, labels.Set{"tenant": "b"}))
	assert.NoError(t, r.Claim(110, labels.Set{"tenant": "a"}))
	assert.Error(t, r.ClaimRange(105, 10, labels.Set{"tenant": "c"}))

	req, err := labels.NewRequirement("tenant", selection.Equals, []string{"a"})
	assert.NoError(t, err)
	selector := labels.NewSelector().Add(*req)

	set := r.Select(selector)
	assert.Equal(t, "[100-110]", set.String())
	assert.Len(t, r.GetByLabel(selector), set.Size())

	reserved, err := labels.Parse("status=reserved")
	assert.NoError(t, err)
	assert.Equal(t, "[0-1 4095]", r.Select(reserved).String())

	assert.NoError(t, r.ReleaseSet(set))
	assert.Equal(t, "[0-1 200-204 4095]", r.Claimed().String())

	id, err := r.ClaimDynamic(labels.Set{"tenant": "c"})
	assert.NoError(t, err)
	assert.Equal(t, 2, id)

	assert.NoError(t, r.Update(2, labels.Set{"tenant": "d"}))
	d, err := r.Get(2)
	assert.NoError(t, err)
	assert.Equal(t, "d", d["tenant"])
	assert.Error(t, r.Update(3, labels.Set{}))
}
