package main

import (
	"flag"
	"strconv"

	"github.com/henderiw/rangeset/pkg/interval"
	"github.com/henderiw/rangeset/pkg/span"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rangeset",
		Short:         "Evaluate span and interval set expressions and report pools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	root.PersistentFlags().AddGoFlagSet(fs)

	root.AddCommand(
		newSetCmd("span", "Integer sets of closed segments, e.g. \"[1, 3] ∪ [5, 9]\"",
			span.Parse,
			func(s *span.Span, x string) (bool, error) {
				v, err := strconv.ParseInt(x, 10, 64)
				if err != nil {
					return false, err
				}
				return s.Contains(v), nil
			},
		),
		newSetCmd("interval", "Real sets with open or closed endpoints, e.g. \"[0, 1) ∪ (2, +inf)\"",
			interval.Parse,
			func(i *interval.Interval, x string) (bool, error) {
				v, err := strconv.ParseFloat(x, 64)
				if err != nil {
					return false, err
				}
				return i.Contains(v), nil
			},
		),
		newPoolsCmd(),
	)
	return root
}
