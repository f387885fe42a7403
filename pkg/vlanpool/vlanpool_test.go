package vlanpool

import (
	"testing"

	"github.com/henderiw/rangeset/pkg/pool"
	"github.com/henderiw/rangeset/pkg/span"
	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"
)

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		newSuccessEntries map[int64]labels.Set
		newFailedEntries  map[int64]labels.Set
		expectedEntries   int
		expectedFree      string
	}{
		"Normal": {
			newSuccessEntries: map[int64]labels.Set{
				10: map[string]string{},
				11: map[string]string{},
			},
			newFailedEntries: map[int64]labels.Set{
				0:    map[string]string{},
				1:    map[string]string{},
				4095: map[string]string{},
				5000: map[string]string{},
			},
			expectedEntries: 5,
			expectedFree:    "[2, 9] ∪ [12, 4094]",
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
			for _, c := range initClaims {
				if !r.Has(c.Segment.Start) {
					t.Errorf("%s expecting initEntry: %s\n", name, c.Segment)
				}
			}
			for id := range tc.newSuccessEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting success claim entry: %d\n", name, id)
				}
			}
			if r.Has(5000) {
				t.Errorf("%s no expecting failed claim entry: %d\n", name, 5000)
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, r.Count())
			}
			assert.Equal(t, tc.expectedFree, r.Free().String())

			id, err := r.FindFree()
			assert.NoError(t, err)
			assert.Equal(t, int64(2), id)
		})
	}
}

func TestClaimDynamicAndRanges(t *testing.T) {
	r, err := NewWithClaims([]pool.Claim{{Segment: span.Seg(2, 99), Labels: labels.Set{"tenant": "a"}}})
	assert.NoError(t, err)

	id, err := r.ClaimDynamic(labels.Set{"tenant": "b"})
	assert.NoError(t, err)
	assert.Equal(t, int64(100), id)

	assert.NoError(t, r.ClaimRange(200, 10, labels.Set{"tenant": "b"}))
	assert.Error(t, r.ClaimRange(4090, 10, nil))

	seg, err := r.ClaimSize(50, labels.Set{"tenant": "c"})
	assert.NoError(t, err)
	assert.Equal(t, span.Seg(101, 150), seg)

	sel, err := labels.Parse("tenant=b")
	assert.NoError(t, err)
	assert.Len(t, r.GetByLabel(sel), 2)

	d, err := r.Get(205)
	assert.NoError(t, err)
	assert.Equal(t, "b", d.Get("tenant"))

	assert.NoError(t, r.Update(205, labels.Set{"tenant": "d"}))
	assert.Error(t, r.Update(0, nil))
	assert.Error(t, r.Release(4095))
	assert.NoError(t, r.Release(205))
	assert.True(t, r.IsFree(205))
	assert.False(t, r.IsFree(0))
	assert.Len(t, r.GetAll(), 6)

	_, err = NewWithClaims([]pool.Claim{{Segment: span.Seg(1, 10)}})
	assert.Error(t, err)
}
