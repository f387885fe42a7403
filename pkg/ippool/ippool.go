package ippool

import (
	"fmt"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/ipspan"
	"github.com/henderiw/rangeset/pkg/pool"
	"github.com/henderiw/rangeset/pkg/span"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPPool interface {
	Get(addr string) (table.Route, error)
	Claim(addr string, d table.Route) error
	ClaimRange(r netipx.IPRange, labels labels.Set) error
	Release(addr string) error
	Update(addr string, d table.Route) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)

	Free() *netipx.IPSet
	Span() *span.Span

	GetAll() table.Routes
	GetByLabel(selector labels.Selector) table.Routes
}

// New returns a pool of the IPv4 addresses from-to.
func New(from, to netip.Addr) (IPPool, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	base, err := ipspan.FromIPRange(ipRange)
	if err != nil {
		return nil, err
	}
	p, err := pool.New(base, nil, nil)
	if err != nil {
		return nil, err
	}
	return &ipPool{pool: p, ipRange: ipRange}, nil
}

type ipPool struct {
	pool    pool.Pool
	ipRange netipx.IPRange
}

func (r *ipPool) Get(addr string) (table.Route, error) {
	id, err := r.validateIP(addr)
	if err != nil {
		return table.Route{}, err
	}
	c, err := r.pool.Get(id)
	if err != nil {
		return table.Route{}, err
	}
	return hostRoute(id, c.Labels)
}

func (r *ipPool) Claim(addr string, d table.Route) error {
	id, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	if r.pool.Has(id) {
		return fmt.Errorf("claim failed ip %s already claimed", addr)
	}
	return r.pool.ClaimID(id, d.Labels())
}

func (r *ipPool) ClaimRange(ipr netipx.IPRange, labels labels.Set) error {
	seg, err := ipspan.SegmentOfRange(ipr)
	if err != nil {
		return err
	}
	return r.pool.Claim(seg, labels)
}

func (r *ipPool) Release(addr string) error {
	id, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	return r.pool.Release(id)
}

func (r *ipPool) Update(addr string, d table.Route) error {
	id, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	if !r.pool.Has(id) {
		return fmt.Errorf("update failed ip %s not claimed", addr)
	}
	return r.pool.Update(id, d.Labels())
}

func (r *ipPool) Count() int {
	return r.pool.Count()
}

func (r *ipPool) Has(addr string) bool {
	id, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.pool.Has(id)
}

func (r *ipPool) IsFree(addr string) bool {
	id, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.pool.IsFree(span.Seg(id, id))
}

func (r *ipPool) FindFree() (netip.Addr, error) {
	seg, err := r.pool.FindFree(1)
	if err != nil {
		return netip.Addr{}, err
	}
	return ipspan.IntToAddr(seg.Start)
}

func (r *ipPool) Free() *netipx.IPSet {
	// the pool only ever holds IPv4 ids, the conversion cannot fail
	set, _ := ipspan.ToIPSet(r.pool.Free())
	return set
}

func (r *ipPool) Span() *span.Span {
	return r.pool.Base()
}

// GetAll returns one route per claim, expanding each claimed range into
// its minimal prefixes.
func (r *ipPool) GetAll() table.Routes {
	var routes table.Routes
	for _, c := range r.pool.GetAll() {
		routes = append(routes, claimRoutes(c)...)
	}
	return routes
}

func (r *ipPool) GetByLabel(selector labels.Selector) table.Routes {
	var routes table.Routes
	for _, c := range r.pool.GetByLabel(selector) {
		routes = append(routes, claimRoutes(c)...)
	}
	return routes
}

func (r *ipPool) validateIP(addr string) (int64, error) {
	// Parse IP address
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return 0, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return 0, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return ipspan.AddrToInt(claimIP)
}

func hostRoute(id int64, l labels.Set) (table.Route, error) {
	a, err := ipspan.IntToAddr(id)
	if err != nil {
		return table.Route{}, err
	}
	return table.NewRoute(netip.PrefixFrom(a, a.BitLen()), l, nil), nil
}

func claimRoutes(c pool.Claim) table.Routes {
	ipr, err := ipspan.RangeOfSegment(c.Segment)
	if err != nil {
		return nil
	}
	var routes table.Routes
	for _, p := range ipr.Prefixes() {
		routes = append(routes, table.NewRoute(p, c.Labels, nil))
	}
	return routes
}
