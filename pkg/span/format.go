package span

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangeset/pkg/lattice"
)

// String renders s as its segments joined by ∪, for example
// "[1, 3] ∪ [5, 9]". The empty span renders as ∅.
func (s *Span) String() string {
	parts := make([]string, 0, len(s.segments))
	for _, seg := range s.segments {
		parts = append(parts, seg.String())
	}
	return lattice.Format(parts)
}

// GoString renders s with its raw segment tuples, for example
// "Span([(1, 3), (5, 9)])".
func (s *Span) GoString() string {
	parts := make([]string, 0, len(s.segments))
	for _, seg := range s.segments {
		parts = append(parts, fmt.Sprintf("(%d, %d)", seg.Start, seg.End))
	}
	return "Span([" + strings.Join(parts, ", ") + "])"
}

// ParseSegment parses a segment in the "[start, end]" form.
func ParseSegment(s string) (Segment, error) {
	var r Segment
	in := strings.TrimSpace(s)
	if !strings.HasPrefix(in, "[") || !strings.HasSuffix(in, "]") {
		return r, fmt.Errorf("segment %q must be enclosed in brackets", s)
	}
	from, to, ok := strings.Cut(in[1:len(in)-1], ",")
	if !ok {
		return r, fmt.Errorf("no comma in segment %q", s)
	}
	start, err := strconv.ParseInt(strings.TrimSpace(from), 10, 64)
	if err != nil {
		return r, fmt.Errorf("invalid start %q in segment %q", from, s)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(to), 10, 64)
	if err != nil {
		return r, fmt.Errorf("invalid end %q in segment %q", to, s)
	}
	return Segment{Start: start, End: end}, nil
}

// Parse parses the form produced by String. Segments may be given in any
// order and may overlap.
func Parse(s string) (*Span, error) {
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
