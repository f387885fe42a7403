package pool

// Iterator walks the claims of a pool in ascending order. It works on a
// snapshot, so claiming or releasing while iterating is safe.
type Iterator struct {
	current int
	claims  []Claim
}

func (r *Iterator) Value() Claim {
	return r.claims[r.current]
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.claims)
}

// IsConsecutive reports whether the current claim starts right after the
// previous one ends.
func (r *Iterator) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	return r.claims[r.current-1].Segment.End+1 == r.claims[r.current].Segment.Start
}
