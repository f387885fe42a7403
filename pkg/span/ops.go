package span

import (
	"math"
	"slices"
)

// Union returns the integers that are in s or in any of others.
func (s *Span) Union(others ...*Span) *Span {
	out := s.Copy()
	out.UnionUpdate(others...)
	return out
}

// UnionUpdate adds the integers of others to s.
func (s *Span) UnionUpdate(others ...*Span) {
	if len(others) == 0 {
		return
	}
	all := slices.Clone(s.segments)
	for _, o := range others {
		all = append(all, o.segments...)
	}
	s.segments = canonicalize(all)
}

// Intersection returns the integers that are in s and in every one of
// others.
func (s *Span) Intersection(others ...*Span) *Span {
	out := s.Copy()
	out.IntersectionUpdate(others...)
	return out
}

// IntersectionUpdate keeps in s only the integers present in every one of
// others.
func (s *Span) IntersectionUpdate(others ...*Span) {
	segs := s.segments
	for _, o := range others {
		segs = intersect(segs, o.segments)
	}
	s.segments = slices.Clone(segs)
}

// intersect sweeps two canonical segment lists. Segments of b that end
// before the current segment of a ends cannot reach any later segment of
// a, so the cursor moves past them.
func intersect(a, b []Segment) []Segment {
	var out []Segment
	next := 0
	for _, x := range a {
		for j := next; j < len(b); j++ {
			y := b[j]
			if x.End < y.Start {
				break
			}
			if y.End >= x.Start {
				out = append(out, Segment{
					Start: max(x.Start, y.Start),
					End:   min(x.End, y.End),
				})
			}
			if y.End <= x.End {
				next = j + 1
			}
		}
	}
	return out
}

// Difference returns the integers of s that are in none of others.
func (s *Span) Difference(others ...*Span) *Span {
	out := s.Copy()
	out.DifferenceUpdate(others...)
	return out
}

// DifferenceUpdate removes the integers of others from s.
func (s *Span) DifferenceUpdate(others ...*Span) {
	if len(others) == 0 {
		return
	}
	cuts := others[0]
	if len(others) > 1 {
		cuts = others[0].Union(others[1:]...)
	}
	s.segments = subtract(s.segments, cuts.segments)
}

// subtract carves the segments of cuts out of segs. Both lists are
// canonical.
func subtract(segs, cuts []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	first := 0
	for _, x := range segs {
		for first < len(cuts) && cuts[first].End < x.Start {
			first++
		}

		from, exhausted := x.Start, false
		for _, y := range cuts[first:] {
			if y.Start > x.End {
				break
			}
			if from < y.Start {
				//   x
				// f------------t
				//     f----t
				//       y
				out = append(out, Segment{Start: from, End: y.Start - 1})
			}
			if y.End >= from {
				if y.End == math.MaxInt64 {
					exhausted = true
					break
				}
				from = y.End + 1
			}
		}
		if !exhausted && from <= x.End {
			out = append(out, Segment{Start: from, End: x.End})
		}
	}
	return slices.Clip(out)
}

// IsDisjoint reports whether s and other have no integer in common.
func (s *Span) IsDisjoint(other *Span) bool {
	all := make([]Segment, 0, len(s.segments)+len(other.segments))
	all = append(all, s.segments...)
	all = append(all, other.segments...)
	slices.SortStableFunc(all, compareStart)
	for i := 1; i < len(all); i++ {
		if all[i-1].End >= all[i].Start {
			return false
		}
	}
	return true
}

// IsSubset reports whether every integer of s is in other.
func (s *Span) IsSubset(other *Span) bool {
	return other.Union(s).Equal(other)
}

// IsSuperset reports whether every integer of other is in s.
func (s *Span) IsSuperset(other *Span) bool {
	return other.IsSubset(s)
}
