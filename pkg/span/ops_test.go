package span

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func mustParse(s string) *Span {
	return Must(Parse(s))
}

func TestUnion(t *testing.T) {
	cases := map[string]struct {
		a        string
		others   []string
		expected string
	}{
		"NoOthers":  {a: "[1, 3]", expected: "[1, 3]"},
		"WithEmpty": {a: "[1, 3]", others: []string{"∅"}, expected: "[1, 3]"},
		"Adjacent":  {a: "[1, 3]", others: []string{"[4, 6]"}, expected: "[1, 6]"},
		"Disjoint":  {a: "[1, 3]", others: []string{"[5, 6]"}, expected: "[1, 3] ∪ [5, 6]"},
		"Many": {
			a:        "[1, 3] ∪ [20, 30]",
			others:   []string{"[5, 6]", "[7, 9] ∪ [31, 31]", "[100, 100]"},
			expected: "[1, 3] ∪ [5, 9] ∪ [20, 31] ∪ [100, 100]",
		},
		"Bridge": {a: "[1, 3] ∪ [7, 9]", others: []string{"[4, 6]"}, expected: "[1, 9]"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a := mustParse(tc.a)
			others := make([]*Span, 0, len(tc.others))
			for _, o := range tc.others {
				others = append(others, mustParse(o))
			}
			got := a.Union(others...)
			assert.Equal(t, tc.expected, got.String())
			assert.Equal(t, tc.a, a.String(), "receiver must not change")

			a.UnionUpdate(others...)
			assert.True(t, got.Equal(a))
		})
	}
}

func TestIntersection(t *testing.T) {
	cases := map[string]struct {
		a        string
		others   []string
		expected string
	}{
		"NoOthers":    {a: "[1, 3]", expected: "[1, 3]"},
		"WithEmpty":   {a: "[1, 3]", others: []string{"∅"}, expected: "∅"},
		"AdjacentNot": {a: "[1, 3]", others: []string{"[4, 6]"}, expected: "∅"},
		"SharedPoint": {a: "[1, 3]", others: []string{"[3, 6]"}, expected: "[3, 3]"},
		"Inner":       {a: "[1, 10]", others: []string{"[3, 4] ∪ [6, 7]"}, expected: "[3, 4] ∪ [6, 7]"},
		"Staggered": {
			a:        "[0, 5] ∪ [10, 15] ∪ [20, 25]",
			others:   []string{"[3, 12] ∪ [14, 22]"},
			expected: "[3, 5] ∪ [10, 12] ∪ [14, 15] ∪ [20, 22]",
		},
		"LongRight": {
			a:        "[0, 1] ∪ [5, 6] ∪ [9, 9]",
			others:   []string{"[1, 100]"},
			expected: "[1, 1] ∪ [5, 6] ∪ [9, 9]",
		},
		"Chained": {
			a:        "[0, 100]",
			others:   []string{"[10, 50]", "[40, 60] ∪ [0, 5]"},
			expected: "[40, 50]",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a := mustParse(tc.a)
			others := make([]*Span, 0, len(tc.others))
			for _, o := range tc.others {
				others = append(others, mustParse(o))
			}
			got := a.Intersection(others...)
			assert.Equal(t, tc.expected, got.String())
			assert.Equal(t, tc.a, a.String(), "receiver must not change")

			a.IntersectionUpdate(others...)
			assert.True(t, got.Equal(a))
		})
	}
}

func TestDifference(t *testing.T) {
	cases := map[string]struct {
		a        string
		others   []string
		expected string
	}{
		"NoOthers":  {a: "[1, 3]", expected: "[1, 3]"},
		"WithEmpty": {a: "[1, 3]", others: []string{"∅"}, expected: "[1, 3]"},
		"Self":      {a: "[1, 3] ∪ [5, 8]", others: []string{"[1, 3] ∪ [5, 8]"}, expected: "∅"},
		"Middle":    {a: "[1, 10]", others: []string{"[4, 6]"}, expected: "[1, 3] ∪ [7, 10]"},
		"Start":     {a: "[1, 10]", others: []string{"[0, 2]"}, expected: "[3, 10]"},
		"End":       {a: "[1, 10]", others: []string{"[10, 12]"}, expected: "[1, 9]"},
		"Holes": {
			a:        "[0, 20] ∪ [30, 40]",
			others:   []string{"[2, 3] ∪ [5, 5]", "[18, 32] ∪ [40, 40]"},
			expected: "[0, 1] ∪ [4, 4] ∪ [6, 17] ∪ [33, 39]",
		},
		"Disjoint":     {a: "[1, 3]", others: []string{"[5, 9]"}, expected: "[1, 3]"},
		"CoveredTwice": {a: "[1, 3] ∪ [5, 7]", others: []string{"[0, 10]"}, expected: "∅"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a := mustParse(tc.a)
			others := make([]*Span, 0, len(tc.others))
			for _, o := range tc.others {
				others = append(others, mustParse(o))
			}
			got := a.Difference(others...)
			assert.Equal(t, tc.expected, got.String())
			assert.Equal(t, tc.a, a.String(), "receiver must not change")

			a.DifferenceUpdate(others...)
			assert.True(t, got.Equal(a))
		})
	}
}

func TestDifferenceAtExtremes(t *testing.T) {
	all := Must(New(Seg(math.MinInt64, math.MaxInt64)))
	high := Must(New(Seg(0, math.MaxInt64)))
	low := Must(New(Seg(math.MinInt64, -1)))

	assert.True(t, all.Difference(high).Equal(low))
	assert.True(t, all.Difference(low).Equal(high))
	assert.True(t, all.Difference(low, high).IsEmpty())
}

func TestIsDisjoint(t *testing.T) {
	cases := map[string]struct {
		a, b string
		want bool
	}{
		"Empty":       {a: "∅", b: "[1, 3]", want: true},
		"Adjacent":    {a: "[1, 3]", b: "[4, 6]", want: true},
		"SharedPoint": {a: "[1, 3]", b: "[3, 6]", want: false},
		"Interleaved": {a: "[1, 3] ∪ [10, 12]", b: "[5, 8] ∪ [14, 20]", want: true},
		"Inside":      {a: "[1, 30]", b: "[5, 8] ∪ [14, 20]", want: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a, b := mustParse(tc.a), mustParse(tc.b)
			assert.Equal(t, tc.want, a.IsDisjoint(b))
			assert.Equal(t, tc.want, b.IsDisjoint(a))
			assert.Equal(t, tc.want, a.Intersection(b).IsEmpty())
		})
	}
}

func TestSubsetSuperset(t *testing.T) {
	a := mustParse("[2, 3] ∪ [8, 9]")
	b := mustParse("[1, 4] ∪ [7, 10]")
	c := mustParse("[5, 5]")

	assert.True(t, a.IsSubset(b))
	assert.True(t, b.IsSuperset(a))
	assert.False(t, b.IsSubset(a))
	assert.False(t, c.IsSubset(b))
	assert.True(t, Empty().IsSubset(c))
	assert.True(t, a.IsSubset(a))
}

var samples = []string{
	"∅",
	"[0, 0]",
	"[1, 3] ∪ [5, 6]",
	"[-10, 10]",
	"[2, 4] ∪ [8, 20] ∪ [30, 30]",
	"[6, 9] ∪ [25, 40]",
}

func TestAlgebraProperties(t *testing.T) {
	empty := Empty()
	for _, sa := range samples {
		a := mustParse(sa)
		assert.True(t, a.Union(a).Equal(a), "A ∪ A == A for %s", sa)
		assert.True(t, a.Union(empty).Equal(a), "A ∪ ∅ == A for %s", sa)
		assert.True(t, a.Intersection(a).Equal(a), "A ∩ A == A for %s", sa)
		assert.True(t, a.Intersection(empty).IsEmpty(), "A ∩ ∅ == ∅ for %s", sa)
		assert.True(t, a.Difference(empty).Equal(a), "A − ∅ == A for %s", sa)
		assert.True(t, a.Difference(a).IsEmpty(), "A − A == ∅ for %s", sa)

		for _, sb := range samples {
			b := mustParse(sb)
			name := fmt.Sprintf("A=%s B=%s", sa, sb)
			assert.True(t, a.Union(b).Equal(b.Union(a)), "union commutes: %s", name)
			assert.True(t, a.Intersection(b).Equal(b.Intersection(a)), "intersection commutes: %s", name)
			assert.True(t, a.Difference(b).Intersection(b).IsEmpty(), "(A − B) ∩ B == ∅: %s", name)

			subset := a.IsSubset(b)
			assert.Equal(t, subset, a.Union(b).Equal(b), "A ⊆ B ⇔ A ∪ B == B: %s", name)
			assert.Equal(t, subset, a.Intersection(b).Equal(a), "A ⊆ B ⇔ A ∩ B == A: %s", name)

			for _, sc := range samples {
				c := mustParse(sc)
				if diff := cmp.Diff(a.Union(b).Union(c).Segments(), a.Union(b.Union(c)).Segments()); diff != "" {
					t.Errorf("union associates: %s C=%s: -left, +right:\n%s", name, sc, diff)
				}
			}
		}
	}
}
