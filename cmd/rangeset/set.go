package main

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/lattice"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

type setValue[T any] interface {
	lattice.Set[T]
	Union(others ...T) T
	Intersection(others ...T) T
	Difference(others ...T) T
	IsDisjoint(other T) bool
	String() string
	GoString() string
}

type parseFn[T any] func(s string) (T, error)

type containsFn[T any] func(set T, x string) (bool, error)

func parseAll[T any](parse parseFn[T], args []string) ([]T, error) {
	out := make([]T, 0, len(args))
	for _, a := range args {
		v, err := parse(a)
		if err != nil {
			return nil, fmt.Errorf("operand %q: %w", a, err)
		}
		klog.V(2).InfoS("parsed operand", "input", a, "set", v)
		out = append(out, v)
	}
	return out, nil
}

func newSetCmd[T setValue[T]](kind, short string, parse parseFn[T], contains containsFn[T]) *cobra.Command {
	var repr bool
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
	}
	cmd.PersistentFlags().BoolVar(&repr, "debug-repr", false, "print sets with their raw segment tuples")

	render := func(c *cobra.Command, v T) {
		if repr {
			fmt.Fprintln(c.OutOrStdout(), v.GoString())
			return
		}
		fmt.Fprintln(c.OutOrStdout(), v.String())
	}

	algebra := map[string]func(a T, others ...T) T{
		"union":        func(a T, others ...T) T { return a.Union(others...) },
		"intersection": func(a T, others ...T) T { return a.Intersection(others...) },
		"difference":   func(a T, others ...T) T { return a.Difference(others...) },
	}
	for _, name := range []string{"union", "intersection", "difference"} {
		op := algebra[name]
		cmd.AddCommand(&cobra.Command{
			Use:   name + " SET [SET...]",
			Short: fmt.Sprintf("Print the %s of the first %s with the others", name, kind),
			Args:  cobra.MinimumNArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				sets, err := parseAll(parse, args)
				if err != nil {
					return err
				}
				render(c, op(sets[0], sets[1:]...))
				return nil
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "compare SET OP SET",
		Short: "Compare two sets by inclusion with ==, !=, <, <=, > or >=",
		Args:  cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			op, err := lattice.ParseOp(args[1])
			if err != nil {
				return err
			}
			sets, err := parseAll(parse, []string{args[0], args[2]})
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), lattice.Compare(sets[0], sets[1], op))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disjoint SET SET",
		Short: "Report whether two sets have no member in common",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			sets, err := parseAll(parse, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), sets[0].IsDisjoint(sets[1]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "contains SET VALUE",
		Short: "Report whether VALUE is a member of SET",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			sets, err := parseAll(parse, args[:1])
			if err != nil {
				return err
			}
			ok, err := contains(sets[0], args[1])
			if err != nil {
				return fmt.Errorf("value %q: %w", args[1], err)
			}
			fmt.Fprintln(c.OutOrStdout(), ok)
			return nil
		},
	})
	return cmd
}
