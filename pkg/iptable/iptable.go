package iptable

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/idxset/pkg/idxtable"
	"github.com/henderiw/idxset/pkg/rangeset"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPTable interface {
	Get(addr string) (table.Route, error)
	Claim(addr string, d table.Route) error
	ClaimRange(ipRange netipx.IPRange, d table.Route) error
	Release(addr string) error
	ReleaseRange(ipRange netipx.IPRange) error
	Update(addr string, d table.Route) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)
	ClaimedRanges() []netipx.IPRange
	FreeRanges() []netipx.IPRange

	GetAll() table.Routes
	GetByLabel(selector labels.Selector) table.Routes
}

func New(from, to netip.Addr) (IPTable, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid ip range from %s to %s", from, to)
	}
	size := new(big.Int).Add(new(big.Int).Sub(ipToInt(to), ipToInt(from)), big.NewInt(1))
	if !size.IsInt64() || size.Int64() > int64(rangeset.MaxIndex) {
		return nil, fmt.Errorf("ip range %s holds %s addresses, more than the max of %d", ipRange, size, rangeset.MaxIndex)
	}
	t, err := idxtable.NewTable[table.Route](int(size.Int64()), nil, nil)
	if err != nil {
		return nil, err
	}
	return &ipTable{
		table:   t,
		ipRange: ipRange,
	}, nil
}

type ipTable struct {
	table   idxtable.Table[table.Route]
	ipRange netipx.IPRange
}

func (r *ipTable) Get(addr string) (table.Route, error) {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return table.Route{}, err
	}
	return r.table.Get(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) Claim(addr string, d table.Route) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := calculateIndex(claimIP, r.ipRange.From())
	if !r.table.IsFree(id) {
		return fmt.Errorf("claim failed ip %s already claimed", addr)
	}
	return r.table.Claim(id, d)
}

// ClaimRange claims every address of ipRange for d, or none of them. Each
// address is stored as its own entry, so the cost grows with the number of
// addresses in ipRange.
func (r *ipTable) ClaimRange(ipRange netipx.IPRange, d table.Route) error {
	set, err := r.indexSet(ipRange)
	if err != nil {
		return err
	}
	if err := r.table.ClaimSet(set, d); err != nil {
		return fmt.Errorf("claim failed for ip range %s: %w", ipRange, err)
	}
	return nil
}

func (r *ipTable) Release(addr string) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	return r.table.Release(calculateIndex(claimIP, r.ipRange.From()))
}

// ReleaseRange releases every address of ipRange, or none of them. Like
// ClaimRange it visits each address.
func (r *ipTable) ReleaseRange(ipRange netipx.IPRange) error {
	set, err := r.indexSet(ipRange)
	if err != nil {
		return err
	}
	return r.table.ReleaseSet(set)
}

func (r *ipTable) Update(addr string, d table.Route) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := calculateIndex(claimIP, r.ipRange.From())
	if r.table.IsFree(id) {
		return fmt.Errorf("update failed ip %s not claimed", addr)
	}
	return r.table.Update(id, d)
}

func (r *ipTable) Count() int {
	return r.table.Count()
}

func (r *ipTable) Has(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.Has(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) IsFree(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.IsFree(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

func (r *ipTable) ClaimedRanges() []netipx.IPRange {
	return r.ipRanges(r.table.Claimed())
}

func (r *ipTable) FreeRanges() []netipx.IPRange {
	return r.ipRanges(r.table.Free())
}

func (r *ipTable) GetAll() table.Routes {
	var routes table.Routes

	iter := r.table.Iterate()
	for iter.Next() {
		routes = append(routes, iter.Value())
	}
	return routes
}

func (r *ipTable) GetByLabel(selector labels.Selector) table.Routes {
	var routes table.Routes

	iter := r.table.Iterate()
	for iter.Next() {
		route := iter.Value()
		if selector.Matches(route.Labels()) {
			routes = append(routes, route)
		}
	}
	return routes
}

func (r *ipTable) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return claimIP, nil
}

// indexSet maps ipRange, which must lie within the table range, to table
// indices.
func (r *ipTable) indexSet(ipRange netipx.IPRange) (rangeset.RangeSet, error) {
	if !ipRange.IsValid() {
		return rangeset.RangeSet{}, fmt.Errorf("ip range %s is invalid", ipRange)
	}
	if !r.ipRange.Contains(ipRange.From()) || !r.ipRange.Contains(ipRange.To()) {
		return rangeset.RangeSet{}, fmt.Errorf("ip range %s, does not fit in the range %s", ipRange, r.ipRange)
	}
	return rangeset.New(rangeset.RangeFrom(
		calculateIndex(ipRange.From(), r.ipRange.From()),
		calculateIndex(ipRange.To(), r.ipRange.From()),
	)), nil
}

func (r *ipTable) ipRanges(set rangeset.RangeSet) []netipx.IPRange {
	ipRanges := make([]netipx.IPRange, 0, set.NumRanges())
	for _, rng := range set.Ranges() {
		ipRanges = append(ipRanges, netipx.IPRangeFrom(
			calculateIPFromIndex(r.ipRange.From(), rng.From()),
			calculateIPFromIndex(r.ipRange.From(), rng.To()),
		))
	}
	return ipRanges
}

func calculateIndex(ip, start netip.Addr) int {
	return int(new(big.Int).Sub(ipToInt(ip), ipToInt(start)).Int64())
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	return new(big.Int).SetBytes(bytes[:])
}

func calculateIPFromIndex(startIP netip.Addr, id int) netip.Addr {
	ipInt := new(big.Int).Add(ipToInt(startIP), big.NewInt(int64(id)))

	var ip16 [16]byte
	ipInt.FillBytes(ip16[:])

	if startIP.Is4() {
		return netip.AddrFrom16(ip16).Unmap()
	}
	return netip.AddrFrom16(ip16)
}
