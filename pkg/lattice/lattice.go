// Package lattice holds the partial order and the rendering shared by the
// span and interval set types.
//
// Sets are ordered by inclusion: A <= B iff A is a subset of B. The order
// is a lattice with union as join and intersection as meet. It is not
// total, so two sets may be neither less, equal nor greater.
package lattice

import (
	"fmt"
	"strings"
)

// Set is implemented by canonical set types that can be compared by
// inclusion.
type Set[T any] interface {
	Equal(other T) bool
	IsSubset(other T) bool
	IsSuperset(other T) bool
}

type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

var opSymbols = [...]string{
	Eq: "==",
	Ne: "!=",
	Lt: "<",
	Le: "<=",
	Gt: ">",
	Ge: ">=",
}

func (o Op) String() string {
	if o < Eq || o > Ge {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opSymbols[o]
}

// ParseOp parses one of ==, !=, <, <=, > or >=.
func ParseOp(s string) (Op, error) {
	for i, sym := range opSymbols {
		if sym == strings.TrimSpace(s) {
			return Op(i), nil
		}
	}
	return Eq, fmt.Errorf("unknown comparison operator %q", s)
}

// Compare evaluates a op b under the inclusion order.
func Compare[T Set[T]](a, b T, op Op) bool {
	switch op {
	case Eq:
		return a.Equal(b)
	case Ne:
		return !a.Equal(b)
	case Lt:
		return a.IsSubset(b) && !a.Equal(b)
	case Le:
		return a.IsSubset(b)
	case Gt:
		return a.IsSuperset(b) && !a.Equal(b)
	case Ge:
		return a.IsSuperset(b)
	default:
		return false
	}
}
