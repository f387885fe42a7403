package interval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangeset/pkg/lattice"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (r Segment) String() string {
	open, closing := "(", ")"
	if r.StartClosed {
		open = "["
	}
	if r.EndClosed {
		closing = "]"
	}
	return open + formatFloat(r.Start) + ", " + formatFloat(r.End) + closing
}

// String renders i in bracket notation joined by ∪, for example
// "[0, 1) ∪ (2, 3]". The empty interval renders as ∅.
func (i *Interval) String() string {
	parts := make([]string, 0, len(i.segments))
	for _, seg := range i.segments {
		parts = append(parts, seg.String())
	}
	return lattice.Format(parts)
}

// GoString renders i with its raw segment tuples, for example
// "Interval([(true, 0, 1, false)])".
func (i *Interval) GoString() string {
	parts := make([]string, 0, len(i.segments))
	for _, seg := range i.segments {
		parts = append(parts, fmt.Sprintf("(%t, %s, %s, %t)",
			seg.StartClosed, formatFloat(seg.Start), formatFloat(seg.End), seg.EndClosed))
	}
	return "Interval([" + strings.Join(parts, ", ") + "])"
}

// ParseSegment parses a segment in bracket notation such as "[0, 1)" or
// "(-inf, 5]".
func ParseSegment(s string) (Segment, error) {
	var r Segment
	in := strings.TrimSpace(s)
	if len(in) < 2 {
		return r, fmt.Errorf("segment %q is too short", s)
	}
	switch in[0] {
	case '[':
		r.StartClosed = true
	case '(':
	default:
		return r, fmt.Errorf("segment %q must start with [ or (", s)
	}
	switch in[len(in)-1] {
	case ']':
		r.EndClosed = true
	case ')':
	default:
		return r, fmt.Errorf("segment %q must end with ] or )", s)
	}
	from, to, ok := strings.Cut(in[1:len(in)-1], ",")
	if !ok {
		return r, fmt.Errorf("no comma in segment %q", s)
	}
	var err error
	if r.Start, err = strconv.ParseFloat(strings.TrimSpace(from), 64); err != nil {
		return r, fmt.Errorf("invalid start %q in segment %q", from, s)
	}
	if r.End, err = strconv.ParseFloat(strings.TrimSpace(to), 64); err != nil {
		return r, fmt.Errorf("invalid end %q in segment %q", to, s)
	}
	return r, nil
}

// Parse parses the form produced by String. The parsed segments go
// through the same validation as New.
func Parse(s string) (*Interval, error) {
	parts := lattice.Split(s)
	segs := make([]Segment, 0, len(parts))
	for _, part := range parts {
		seg, err := ParseSegment(part)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return New(segs...)
}
