// Package interval implements a set of real numbers stored as the minimal
// sorted list of segments whose endpoints are independently open or
// closed.
//
// Two segments sharing an endpoint merge when the shared point belongs to
// at least one of them: [0, 1) and [1, 2] become [0, 2], while [0, 1) and
// (1, 2] stay apart.
package interval

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/henderiw/rangeset/pkg/canon"
	"github.com/henderiw/rangeset/pkg/span"
)

var (
	// ErrNaN is returned when an endpoint is NaN.
	ErrNaN = errors.New("segment points cannot be NaN")
	// ErrInfinity is returned when a closed endpoint is infinite.
	ErrInfinity = errors.New("interval cannot contain inf")
	// ErrInverted is returned when a segment starts after it ends.
	ErrInverted = errors.New("start point of segment cannot be greater than its end point")
)

// Segment is a range of reals. StartClosed and EndClosed tell whether the
// endpoints themselves belong to the segment.
type Segment struct {
	StartClosed bool
	Start       float64
	End         float64
	EndClosed   bool
}

// Closed returns [start, end].
func Closed(start, end float64) Segment { return Segment{true, start, end, true} }

// Open returns (start, end).
func Open(start, end float64) Segment { return Segment{false, start, end, false} }

// ClosedOpen returns [start, end).
func ClosedOpen(start, end float64) Segment { return Segment{true, start, end, false} }

// OpenClosed returns (start, end].
func OpenClosed(start, end float64) Segment { return Segment{false, start, end, true} }

// Point returns [x, x].
func Point(x float64) Segment { return Closed(x, x) }

// Check validates the endpoints of r. A segment that passes Check may
// still be empty, see IsEmpty.
func (r Segment) Check() error {
	switch {
	case math.IsNaN(r.Start) || math.IsNaN(r.End):
		return fmt.Errorf("bad segment %s: %w", r, ErrNaN)
	case (r.StartClosed && math.IsInf(r.Start, 0)) || (r.EndClosed && math.IsInf(r.End, 0)):
		return fmt.Errorf("bad segment %s: %w", r, ErrInfinity)
	case r.Start > r.End:
		return fmt.Errorf("bad segment %s: %w", r, ErrInverted)
	}
	return nil
}

// IsEmpty reports whether r holds no point. Only a degenerate segment
// that is not closed on both sides is empty.
func (r Segment) IsEmpty() bool {
	return !(r.Start < r.End || (r.Start == r.End && r.StartClosed && r.EndClosed))
}

// Contains reports whether x lies in r.
func (r Segment) Contains(x float64) bool {
	return (r.Start < x && x < r.End) || (r.StartClosed && x == r.Start) || (r.EndClosed && x == r.End)
}

// Interval is a set of reals. The zero value is the empty set.
//
// An Interval holds a slice and is therefore not comparable: it cannot be
// used as a map key. Use Equal to compare the contents of two intervals.
type Interval struct {
	// segments are sorted by start, non-empty, and neither overlap nor
	// touch through a shared point that belongs to either side.
	segments []Segment
}

// Spanner is implemented by values that can be expressed as a set of
// integers.
type Spanner interface {
	ToSpan() *span.Span
}

// New returns the interval covering all segs. segs may be given in any
// order and may overlap; empty degenerate segments are dropped. Every
// invalid segment is reported and no interval is returned in that case.
func New(segs ...Segment) (*Interval, error) {
	var errs error
	for _, seg := range segs {
		if err := seg.Check(); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}
	nonEmpty := canon.Filter(segs, func(seg Segment) bool { return !seg.IsEmpty() })
	return &Interval{segments: canonicalize(nonEmpty)}, nil
}

// Must is like New but panics on invalid segments.
func Must(i *Interval, err error) *Interval {
	if err != nil {
		panic(err)
	}
	return i
}

// Empty returns the empty interval.
func Empty() *Interval {
	return &Interval{}
}

// FromSpan embeds the integers of s as closed segments. The conversion is
// exact for integers up to 2^53 in magnitude; beyond that, segments that
// round onto each other are merged.
func FromSpan(s *span.Span) *Interval {
	segs := s.Segments()
	out := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		out = append(out, Closed(float64(seg.Start), float64(seg.End)))
	}
	return &Interval{segments: canonicalize(out)}
}

// FromSpanner embeds the span that v converts to.
func FromSpanner(v Spanner) *Interval {
	return FromSpan(v.ToSpan())
}

// compareStart orders by start, a closed start before an open one at the
// same point.
func compareStart(a, b Segment) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	switch {
	case a.StartClosed == b.StartClosed:
		return 0
	case a.StartClosed:
		return -1
	default:
		return 1
	}
}

// touches reports whether next overlaps cur, or shares its start with the
// end of cur and that point belongs to either of them.
func touches(cur, next Segment) bool {
	return cur.End > next.Start || (cur.End == next.Start && (cur.EndClosed || next.StartClosed))
}

func join(cur, next Segment) Segment {
	if next.End > cur.End || (next.End == cur.End && next.EndClosed) {
		cur.End, cur.EndClosed = next.End, next.EndClosed
	}
	return cur
}

func canonicalize(segs []Segment) []Segment {
	return canon.Merge(segs, compareStart, touches, join)
}

// Copy returns an independent copy of i.
func (i *Interval) Copy() *Interval {
	return &Interval{segments: slices.Clone(i.segments)}
}

// Segments returns the minimum and sorted list of segments that covers i.
func (i *Interval) Segments() []Segment {
	return slices.Clone(i.segments)
}

// Len returns the number of segments of i.
func (i *Interval) Len() int { return len(i.segments) }

// IsEmpty reports whether i contains no point.
func (i *Interval) IsEmpty() bool { return len(i.segments) == 0 }

// Contains reports whether x is a member of i.
func (i *Interval) Contains(x float64) bool {
	for _, seg := range i.segments {
		if seg.Start > x {
			return false
		}
		if seg.Contains(x) {
			return true
		}
	}
	return false
}

// Equal reports whether i and other hold the same points.
func (i *Interval) Equal(other *Interval) bool {
	return slices.Equal(i.segments, other.segments)
}
