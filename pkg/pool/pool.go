// Package pool hands out labeled claims on segments of a span. The free
// space of a pool is always its base span minus the union of its claims.
package pool

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/henderiw/rangeset/pkg/span"
	"k8s.io/apimachinery/pkg/labels"
)

type Pool interface {
	Get(id int64) (Claim, error)
	Claim(seg span.Segment, labels labels.Set) error
	ClaimID(id int64, labels labels.Set) error
	ClaimFree(labels labels.Set) (int64, error)
	ClaimRange(start, size int64, labels labels.Set) (span.Segment, error)
	ClaimSize(size int64, labels labels.Set) (span.Segment, error)
	Release(id int64) error
	Update(id int64, labels labels.Set) error

	Iterate() *Iterator

	Count() int
	Has(id int64) bool

	IsFree(seg span.Segment) bool
	FindFree(size int64) (span.Segment, error)

	Base() *span.Span
	Free() *span.Span
	Claimed() *span.Span

	GetAll() []Claim
	GetByLabel(selector labels.Selector) []Claim
}

// Claim is a segment of a pool together with the labels it was claimed
// with.
type Claim struct {
	Segment span.Segment
	Labels  labels.Set
}

func (c Claim) String() string {
	return fmt.Sprintf("%s labels: %s", c.Segment, c.Labels.String())
}

// ValidationFn rejects segments that may not be claimed, even though they
// are free.
type ValidationFn func(seg span.Segment) error

// New returns a pool over base. initClaims are claimed without running v,
// which makes them the way to reserve segments that v rejects.
func New(base *span.Span, initClaims []Claim, v ValidationFn) (Pool, error) {
	r := &pool{
		base:       base.Copy(),
		free:       base.Copy(),
		validateFn: v,
	}

	var errm error
	for _, c := range initClaims {
		if err := r.add(c.Segment, c.Labels, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	if errm != nil {
		return nil, errm
	}
	return r, nil
}

type pool struct {
	base *span.Span
	free *span.Span
	// claims are sorted by start and never overlap.
	claims     []Claim
	validateFn ValidationFn
}

func (r *pool) validate(seg span.Segment, init bool) (*span.Span, error) {
	one, err := span.New(seg)
	if err != nil {
		return nil, err
	}
	if !one.IsSubset(r.base) {
		return nil, fmt.Errorf("segment %s does not fit in %s", seg, r.base)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(seg); err != nil {
			return nil, err
		}
	}
	return one, nil
}

// find returns the index of the claim holding id.
func (r *pool) find(id int64) (int, bool) {
	i, found := slices.BinarySearchFunc(r.claims, id, func(c Claim, id int64) int {
		return cmp.Compare(c.Segment.Start, id)
	})
	if found {
		return i, true
	}
	if i > 0 && r.claims[i-1].Segment.Contains(id) {
		return i - 1, true
	}
	return 0, false
}

func (r *pool) Get(id int64) (Claim, error) {
	i, ok := r.find(id)
	if !ok {
		return Claim{}, fmt.Errorf("no match found for: %d", id)
	}
	return r.claims[i], nil
}

func (r *pool) Claim(seg span.Segment, labels labels.Set) error {
	return r.add(seg, labels, false)
}

func (r *pool) ClaimID(id int64, labels labels.Set) error {
	return r.add(span.Seg(id, id), labels, false)
}

func (r *pool) ClaimFree(labels labels.Set) (int64, error) {
	seg, err := r.ClaimSize(1, labels)
	if err != nil {
		return 0, err
	}
	return seg.Start, nil
}

func (r *pool) ClaimRange(start, size int64, labels labels.Set) (span.Segment, error) {
	if size < 1 {
		return span.Segment{}, fmt.Errorf("size %d must be positive", size)
	}
	seg := span.Seg(start, start+size-1)
	if seg.End < start {
		return span.Segment{}, fmt.Errorf("range start %d, size %d overflows", start, size)
	}
	return seg, r.add(seg, labels, false)
}

func (r *pool) ClaimSize(size int64, labels labels.Set) (span.Segment, error) {
	seg, err := r.FindFree(size)
	if err != nil {
		return seg, err
	}
	return seg, r.add(seg, labels, false)
}

func (r *pool) Release(id int64) error {
	i, ok := r.find(id)
	if !ok {
		return fmt.Errorf("entry %d not found", id)
	}
	r.free.UnionUpdate(span.Must(span.New(r.claims[i].Segment)))
	r.claims = slices.Delete(r.claims, i, i+1)
	return nil
}

func (r *pool) Update(id int64, labels labels.Set) error {
	i, ok := r.find(id)
	if !ok {
		return fmt.Errorf("entry %d not found", id)
	}
	r.claims[i].Labels = labels
	return nil
}

func (r *pool) Iterate() *Iterator {
	return &Iterator{current: -1, claims: slices.Clone(r.claims)}
}

func (r *pool) Count() int {
	return len(r.claims)
}

func (r *pool) Has(id int64) bool {
	_, ok := r.find(id)
	return ok
}

func (r *pool) IsFree(seg span.Segment) bool {
	one, err := span.New(seg)
	if err != nil {
		return false
	}
	return one.IsSubset(r.free)
}

// FindFree returns the first free segment of size ids.
func (r *pool) FindFree(size int64) (span.Segment, error) {
	if size < 1 {
		return span.Segment{}, fmt.Errorf("size %d must be positive", size)
	}
	for _, seg := range r.free.Segments() {
		if seg.Size() < uint64(size) {
			continue
		}
		candidate := span.Seg(seg.Start, seg.Start+size-1)
		if r.validateFn != nil && r.validateFn(candidate) != nil {
			continue
		}
		return candidate, nil
	}
	return span.Segment{}, fmt.Errorf("could not find free entries that fit in size %d", size)
}

func (r *pool) Base() *span.Span { return r.base.Copy() }

func (r *pool) Free() *span.Span { return r.free.Copy() }

func (r *pool) Claimed() *span.Span { return r.base.Difference(r.free) }

func (r *pool) GetAll() []Claim {
	return slices.Clone(r.claims)
}

func (r *pool) GetByLabel(selector labels.Selector) []Claim {
	var claims []Claim
	iter := r.Iterate()
	for iter.Next() {
		if selector.Matches(iter.Value().Labels) {
			claims = append(claims, iter.Value())
		}
	}
	return claims
}

func (r *pool) add(seg span.Segment, labels labels.Set, init bool) error {
	one, err := r.validate(seg, init)
	if err != nil {
		return err
	}
	if !one.IsSubset(r.free) {
		return fmt.Errorf("segment %s overlaps claimed %s", seg, one.Intersection(r.Claimed()))
	}
	r.free.DifferenceUpdate(one)

	i, _ := slices.BinarySearchFunc(r.claims, seg.Start, func(c Claim, start int64) int {
		return cmp.Compare(c.Segment.Start, start)
	})
	r.claims = slices.Insert(r.claims, i, Claim{Segment: seg, Labels: labels})
	return nil
}
