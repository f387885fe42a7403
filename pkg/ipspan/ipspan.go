// Package ipspan maps IPv4 addresses onto the integers of a span, so
// address ranges, sets and routes can use the span set algebra.
package ipspan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/span"
	"go4.org/netipx"
)

// ErrNotIPv4 is returned for addresses outside the IPv4 space.
var ErrNotIPv4 = errors.New("only IPv4 addresses can be mapped onto a span")

// AddrToInt returns the integer of an IPv4 address. IPv4-mapped IPv6
// addresses are unmapped first.
func AddrToInt(a netip.Addr) (int64, error) {
	a = a.Unmap()
	if !a.Is4() {
		return 0, fmt.Errorf("address %s: %w", a, ErrNotIPv4)
	}
	b := a.As4()
	return int64(binary.BigEndian.Uint32(b[:])), nil
}

// IntToAddr is the inverse of AddrToInt.
func IntToAddr(x int64) (netip.Addr, error) {
	if x < 0 || x > 1<<32-1 {
		return netip.Addr{}, fmt.Errorf("id %d, does not fit in the IPv4 address space", x)
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(x))
	return netip.AddrFrom4(b), nil
}

// SegmentOfRange returns the segment of the addresses in r.
func SegmentOfRange(r netipx.IPRange) (span.Segment, error) {
	if !r.IsValid() {
		return span.Segment{}, fmt.Errorf("invalid ip range %s", r)
	}
	from, err := AddrToInt(r.From())
	if err != nil {
		return span.Segment{}, err
	}
	to, err := AddrToInt(r.To())
	if err != nil {
		return span.Segment{}, err
	}
	return span.Seg(from, to), nil
}

// RangeOfSegment is the inverse of SegmentOfRange.
func RangeOfSegment(seg span.Segment) (netipx.IPRange, error) {
	from, err := IntToAddr(seg.Start)
	if err != nil {
		return netipx.IPRange{}, err
	}
	to, err := IntToAddr(seg.End)
	if err != nil {
		return netipx.IPRange{}, err
	}
	return netipx.IPRangeFrom(from, to), nil
}

// FromIPRange returns the span of the addresses in r.
func FromIPRange(r netipx.IPRange) (*span.Span, error) {
	seg, err := SegmentOfRange(r)
	if err != nil {
		return nil, err
	}
	return span.New(seg)
}

// FromIPSet returns the span of the addresses in s.
func FromIPSet(s *netipx.IPSet) (*span.Span, error) {
	var errs error
	var segs []span.Segment
	for _, r := range s.Ranges() {
		seg, err := SegmentOfRange(r)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		segs = append(segs, seg)
	}
	if errs != nil {
		return nil, errs
	}
	return span.New(segs...)
}

// FromRoutes returns the span of the addresses covered by the prefixes of
// routes. Overlapping prefixes are merged.
func FromRoutes(routes table.Routes) (*span.Span, error) {
	var errs error
	var segs []span.Segment
	for _, route := range routes {
		seg, err := SegmentOfRange(netipx.RangeOfPrefix(route.Prefix()))
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		segs = append(segs, seg)
	}
	if errs != nil {
		return nil, errs
	}
	return span.New(segs...)
}

// ToIPRanges returns the address ranges of s.
func ToIPRanges(s *span.Span) ([]netipx.IPRange, error) {
	var out []netipx.IPRange
	for _, seg := range s.Segments() {
		r, err := RangeOfSegment(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ToIPSet returns the addresses of s as an IPSet.
func ToIPSet(s *span.Span) (*netipx.IPSet, error) {
	ranges, err := ToIPRanges(s)
	if err != nil {
		return nil, err
	}
	var b netipx.IPSetBuilder
	for _, r := range ranges {
		b.AddRange(r)
	}
	return b.IPSet()
}

// Range is an IPv4 address range that converts to a span.
type Range struct {
	r   netipx.IPRange
	seg span.Segment
}

// NewRange validates r as an IPv4 range.
func NewRange(r netipx.IPRange) (Range, error) {
	seg, err := SegmentOfRange(r)
	if err != nil {
		return Range{}, err
	}
	return Range{r: r, seg: seg}, nil
}

// ParseRange parses "from-to" or a single address.
func ParseRange(s string) (Range, error) {
	r, err := netipx.ParseIPRange(s)
	if err != nil {
		a, aerr := netip.ParseAddr(s)
		if aerr != nil {
			return Range{}, fmt.Errorf("ip range %q is invalid: %w", s, err)
		}
		r = netipx.IPRangeFrom(a, a)
	}
	return NewRange(r)
}

func (r Range) IPRange() netipx.IPRange { return r.r }

func (r Range) Segment() span.Segment { return r.seg }

func (r Range) ToSpan() *span.Span {
	return span.Must(span.New(r.seg))
}

func (r Range) String() string { return r.r.String() }
