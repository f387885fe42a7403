package interval

import "slices"

// Union returns the points that are in i or in any of others.
func (i *Interval) Union(others ...*Interval) *Interval {
	out := i.Copy()
	out.UnionUpdate(others...)
	return out
}

// UnionUpdate adds the points of others to i.
func (i *Interval) UnionUpdate(others ...*Interval) {
	if len(others) == 0 {
		return
	}
	all := slices.Clone(i.segments)
	for _, o := range others {
		all = append(all, o.segments...)
	}
	i.segments = canonicalize(all)
}

// Intersection returns the points that are in i and in every one of
// others.
func (i *Interval) Intersection(others ...*Interval) *Interval {
	out := i.Copy()
	out.IntersectionUpdate(others...)
	return out
}

// IntersectionUpdate keeps in i only the points present in every one of
// others.
func (i *Interval) IntersectionUpdate(others ...*Interval) {
	segs := i.segments
	for _, o := range others {
		segs = intersect(segs, o.segments)
	}
	i.segments = slices.Clone(segs)
}

// intersect sweeps two canonical segment lists. On equal coordinates the
// open bound wins on both sides, since the intersection only keeps a
// shared endpoint when both operands hold it.
func intersect(a, b []Segment) []Segment {
	var out []Segment
	next := 0
	for _, x := range a {
		for j := next; j < len(b); j++ {
			y := b[j]
			if x.End < y.Start || (x.End == y.Start && !(x.EndClosed && y.StartClosed)) {
				break
			}

			seg := y
			if x.Start > y.Start || (x.Start == y.Start && !x.StartClosed) {
				seg.StartClosed, seg.Start = x.StartClosed, x.Start
			}
			if x.End < y.End || (x.End == y.End && !x.EndClosed) {
				seg.End, seg.EndClosed = x.End, x.EndClosed
			}
			if !seg.IsEmpty() {
				out = append(out, seg)
			}

			// y ends no later than x, the next segment of a starts after
			// x ends, so y cannot reach it.
			if y.End <= x.End {
				next = j + 1
			}
		}
	}
	return out
}

// Difference returns the points of i that are in none of others.
func (i *Interval) Difference(others ...*Interval) *Interval {
	out := i.Copy()
	out.DifferenceUpdate(others...)
	return out
}

// DifferenceUpdate removes the points of others from i.
func (i *Interval) DifferenceUpdate(others ...*Interval) {
	if len(others) == 0 {
		return
	}
	cuts := others[0]
	if len(others) > 1 {
		cuts = others[0].Union(others[1:]...)
	}
	i.segments = subtract(i.segments, cuts.segments)
}

// endsBefore reports whether y lies entirely to the left of x.
func endsBefore(y, x Segment) bool {
	return y.End < x.Start || (y.End == x.Start && !(y.EndClosed && x.StartClosed))
}

// bound is a left bound of the remainder while carving.
type bound struct {
	closed bool
	value  float64
}

// after reports whether b starts strictly to the right of o. An open bound
// at a point starts right of a closed bound at the same point.
func (b bound) after(o bound) bool {
	return b.value > o.value || (b.value == o.value && o.closed && !b.closed)
}

// subtract carves the segments of cuts out of segs. Both lists are
// canonical.
func subtract(segs, cuts []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	first := 0
	for _, x := range segs {
		for first < len(cuts) && endsBefore(cuts[first], x) {
			first++
		}

		left := bound{closed: x.StartClosed, value: x.Start}
		for _, y := range cuts[first:] {
			if endsBefore(x, y) {
				break
			}
			//       x
			// f-------------t
			//    f------t
			//       y
			piece := Segment{left.closed, left.value, y.Start, !y.StartClosed}
			if !piece.IsEmpty() {
				out = append(out, piece)
			}
			if past := (bound{closed: !y.EndClosed, value: y.End}); past.after(left) {
				left = past
			}
		}

		rest := Segment{left.closed, left.value, x.End, x.EndClosed}
		if !rest.IsEmpty() {
			out = append(out, rest)
		}
	}
	return slices.Clip(out)
}

// IsDisjoint reports whether i and other have no point in common.
func (i *Interval) IsDisjoint(other *Interval) bool {
	all := make([]Segment, 0, len(i.segments)+len(other.segments))
	all = append(all, i.segments...)
	all = append(all, other.segments...)
	slices.SortStableFunc(all, compareStart)
	for k := 1; k < len(all); k++ {
		prev, cur := all[k-1], all[k]
		if prev.End > cur.Start || (prev.End == cur.Start && prev.EndClosed && cur.StartClosed) {
			return false
		}
	}
	return true
}

// IsSubset reports whether every point of i is in other.
func (i *Interval) IsSubset(other *Interval) bool {
	return other.Union(i).Equal(other)
}

// IsSuperset reports whether every point of other is in i.
func (i *Interval) IsSuperset(other *Interval) bool {
	return other.IsSubset(i)
}
