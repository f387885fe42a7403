// Package span implements a set of integers stored as the minimal sorted
// list of closed segments. Segments that overlap or touch (a gap of
// exactly one integer) are merged, so [1, 3] and [4, 6] become [1, 6].
package span

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/henderiw/rangeset/pkg/canon"
)

// ErrInverted is returned when a segment starts after it ends.
var ErrInverted = errors.New("start point of segment cannot be greater than its end point")

// Segment is the closed integer range [Start, End].
type Segment struct {
	Start, End int64
}

// Seg returns the segment [start, end].
func Seg(start, end int64) Segment {
	return Segment{Start: start, End: end}
}

// Check asserts that start <= end.
func (r Segment) Check() error {
	if r.Start <= r.End {
		return nil
	}
	return fmt.Errorf("bad segment [%d, %d]: %w", r.Start, r.End, ErrInverted)
}

// Contains reports whether x lies in r.
func (r Segment) Contains(x int64) bool {
	return r.Start <= x && x <= r.End
}

// Size returns the number of integers in r. A segment covering the whole
// int64 domain reports math.MaxUint64.
func (r Segment) Size() uint64 {
	n := uint64(r.End) - uint64(r.Start)
	if n == math.MaxUint64 {
		return n
	}
	return n + 1
}

func (r Segment) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// Span is a set of integers. The zero value is the empty set.
//
// A Span holds a slice and is therefore not comparable: it cannot be
// used as a map key. Use Equal to compare the contents of two spans.
type Span struct {
	// segments are normalized according to canonicalize, meaning they are
	// sorted, do not overlap and are separated by at least one integer.
	// The set operations rely on this property.
	segments []Segment
}

// New returns the span covering all segs. segs may be given in any order
// and may overlap. Every segment that starts after it ends is reported;
// no span is returned in that case.
func New(segs ...Segment) (*Span, error) {
	var errs error
	for _, seg := range segs {
		if err := seg.Check(); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &Span{segments: canonicalize(segs)}, nil
}

// Must is like New but panics on invalid segments. It is meant for
// literal spans in tables and tests.
func Must(s *Span, err error) *Span {
	if err != nil {
		panic(err)
	}
	return s
}

// Empty returns the empty span.
func Empty() *Span {
	return &Span{}
}

func compareStart(a, b Segment) int {
	return cmp.Compare(a.Start, b.Start)
}

// touches reports whether next overlaps cur or begins right after it.
// next.Start-1 is never evaluated at math.MinInt64.
func touches(cur, next Segment) bool {
	return next.Start == math.MinInt64 || cur.End >= next.Start-1
}

func join(cur, next Segment) Segment {
	cur.End = max(cur.End, next.End)
	return cur
}

func canonicalize(segs []Segment) []Segment {
	return canon.Merge(segs, compareStart, touches, join)
}

// Copy returns an independent copy of s.
func (s *Span) Copy() *Span {
	return &Span{segments: slices.Clone(s.segments)}
}

// ToSpan returns a copy of s, so a Span can be used wherever a value
// convertible to a Span is accepted.
func (s *Span) ToSpan() *Span {
	return s.Copy()
}

// Segments returns the minimum and sorted list of segments that covers s.
func (s *Span) Segments() []Segment {
	return slices.Clone(s.segments)
}

// Len returns the number of segments of s.
func (s *Span) Len() int { return len(s.segments) }

// IsEmpty reports whether s contains no integer.
func (s *Span) IsEmpty() bool { return len(s.segments) == 0 }

// Min returns the smallest integer in s.
func (s *Span) Min() (int64, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return s.segments[0].Start, true
}

// Max returns the largest integer in s.
func (s *Span) Max() (int64, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return s.segments[len(s.segments)-1].End, true
}

// Size returns the number of integers in s, saturating at
// math.MaxUint64.
func (s *Span) Size() uint64 {
	var total uint64
	for _, seg := range s.segments {
		var carry uint64
		total, carry = bits.Add64(total, seg.Size(), 0)
		if carry != 0 {
			return math.MaxUint64
		}
	}
	return total
}

// Contains reports whether x is a member of s.
func (s *Span) Contains(x int64) bool {
	i, found := slices.BinarySearchFunc(s.segments, x, func(seg Segment, x int64) int {
		return cmp.Compare(seg.Start, x)
	})
	if found {
		return true
	}
	return i > 0 && s.segments[i-1].Contains(x)
}

// Equal reports whether s and other hold the same integers.
func (s *Span) Equal(other *Span) bool {
	return slices.Equal(s.segments, other.segments)
}
