package vlanpool

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/pool"
	"github.com/henderiw/rangeset/pkg/span"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	untaggedVLAN = 0
	defaultVLAN  = 1
	reservedVLAN = 4095
)

type VLANPool interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(start, size int64, d labels.Set) error
	ClaimSize(size int64, d labels.Set) (span.Segment, error)
	Release(id int64) error
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)

	Free() *span.Span
	GetAll() []pool.Claim
	GetByLabel(selector labels.Selector) []pool.Claim
}

var initClaims = []pool.Claim{
	{Segment: span.Seg(untaggedVLAN, untaggedVLAN), Labels: map[string]string{"type": "untagged", "status": "reserved"}},
	{Segment: span.Seg(defaultVLAN, defaultVLAN), Labels: map[string]string{"type": "untagged", "status": "reserved"}},
	{Segment: span.Seg(reservedVLAN, reservedVLAN), Labels: map[string]string{"type": "untagged", "status": "reserved"}},
}

// New returns a pool of the VLAN ids 0-4095. The untagged, default and
// reserved VLANs are claimed up front and can never be claimed again.
func New() (VLANPool, error) {
	return NewWithClaims(nil)
}

// NewWithClaims is like New but also claims extra, which may not hold
// any of the reserved VLANs.
func NewWithClaims(extra []pool.Claim) (VLANPool, error) {
	p, err := pool.New(
		span.Must(span.New(span.Seg(untaggedVLAN, reservedVLAN))),
		initClaims,
		validate,
	)
	if err != nil {
		return nil, err
	}
	for _, c := range extra {
		if err := p.Claim(c.Segment, c.Labels); err != nil {
			return nil, err
		}
	}
	return &vlanPool{pool: p}, nil
}

func validate(seg span.Segment) error {
	switch {
	case seg.Contains(untaggedVLAN):
		return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", untaggedVLAN)
	case seg.Contains(defaultVLAN):
		return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", defaultVLAN)
	case seg.Contains(reservedVLAN):
		return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", reservedVLAN)
	}
	return nil
}

type vlanPool struct {
	pool pool.Pool
}

func (r *vlanPool) Get(id int64) (labels.Set, error) {
	c, err := r.pool.Get(id)
	if err != nil {
		return nil, err
	}
	return c.Labels, nil
}

func (r *vlanPool) Claim(id int64, d labels.Set) error {
	if r.pool.Has(id) {
		return fmt.Errorf("id %d is already claimed", id)
	}
	return r.pool.ClaimID(id, d)
}

func (r *vlanPool) ClaimDynamic(d labels.Set) (int64, error) {
	return r.pool.ClaimFree(d)
}

func (r *vlanPool) ClaimRange(start, size int64, d labels.Set) error {
	_, err := r.pool.ClaimRange(start, size, d)
	return err
}

func (r *vlanPool) ClaimSize(size int64, d labels.Set) (span.Segment, error) {
	return r.pool.ClaimSize(size, d)
}

func (r *vlanPool) Release(id int64) error {
	if err := validate(span.Seg(id, id)); err != nil {
		return err
	}
	return r.pool.Release(id)
}

func (r *vlanPool) Update(id int64, d labels.Set) error {
	if err := validate(span.Seg(id, id)); err != nil {
		return err
	}
	return r.pool.Update(id, d)
}

func (r *vlanPool) Count() int {
	return r.pool.Count()
}

func (r *vlanPool) Has(id int64) bool {
	return r.pool.Has(id)
}

func (r *vlanPool) IsFree(id int64) bool {
	return r.pool.IsFree(span.Seg(id, id))
}

func (r *vlanPool) FindFree() (int64, error) {
	seg, err := r.pool.FindFree(1)
	if err != nil {
		return -1, err
	}
	return seg.Start, nil
}

func (r *vlanPool) Free() *span.Span {
	return r.pool.Free()
}

func (r *vlanPool) GetAll() []pool.Claim {
	return r.pool.GetAll()
}

func (r *vlanPool) GetByLabel(selector labels.Selector) []pool.Claim {
	return r.pool.GetByLabel(selector)
}
