package canon

import "slices"

// CompareFn orders two segments by their start.
type CompareFn[S any] func(a, b S) int

// JoinableFn reports whether next overlaps or touches cur closely enough
// that both segments describe one contiguous segment.
type JoinableFn[S any] func(cur, next S) bool

// JoinFn returns the segment spanning cur and next. It is only called
// when the pair is joinable.
type JoinFn[S any] func(cur, next S) S

// Merge returns the minimum and sorted set of segments that cover segs.
//
// segs is sorted on a copy, so the caller's slice is never reordered and
// never aliased by the result.
func Merge[S any](segs []S, cmp CompareFn[S], joinable JoinableFn[S], join JoinFn[S]) []S {
	switch len(segs) {
	case 0:
		return nil
	case 1:
		return []S{segs[0]}
	}

	sorted := slices.Clone(segs)
	slices.SortStableFunc(sorted, cmp)

	out := make([]S, 1, len(sorted))
	out[0] = sorted[0]
	for _, next := range sorted[1:] {
		cur := &out[len(out)-1]
		if joinable(*cur, next) {
			*cur = join(*cur, next)
			continue
		}
		out = append(out, next)
	}
	return slices.Clip(out)
}

// Filter returns the segments of segs for which keep returns true, in
// order, in a new slice.
func Filter[S any](segs []S, keep func(S) bool) []S {
	out := make([]S, 0, len(segs))
	for _, s := range segs {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
