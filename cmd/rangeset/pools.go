package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/henderiw/rangeset/pkg/config"
	"github.com/henderiw/rangeset/pkg/ippool"
	"github.com/henderiw/rangeset/pkg/ipspan"
	"github.com/henderiw/rangeset/pkg/lattice"
	"github.com/henderiw/rangeset/pkg/pool"
	"github.com/henderiw/rangeset/pkg/vlanpool"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/klog/v2"
)

var reservedLabels = labels.Set{"status": "reserved"}

// report is what the pools command prints for one pool.
type report struct {
	name   string
	kind   config.Kind
	free   string
	claims []string
}

func (r report) write(w io.Writer) {
	fmt.Fprintf(w, "%s (%s)\n", r.name, r.kind)
	fmt.Fprintf(w, "  free: %s\n", r.free)
	for _, c := range r.claims {
		fmt.Fprintf(w, "  claim: %s\n", c)
	}
}

func newPoolsCmd() *cobra.Command {
	var path, selector string
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Build the pools of a config file and print their free space and claims",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			sel, err := labels.Parse(selector)
			if err != nil {
				return fmt.Errorf("invalid selector %q: %w", selector, err)
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			reports, err := buildReports(cfg, sel)
			if err != nil {
				return err
			}
			for _, r := range reports {
				r.write(c.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "config", "pools.yaml", "path of the pool config file")
	cmd.Flags().StringVar(&selector, "selector", "", "only print claims whose labels match this selector")
	return cmd
}

func buildReports(cfg *config.Config, sel labels.Selector) ([]report, error) {
	var errm error
	reports := make([]report, 0, len(cfg.Pools))
	for _, pc := range cfg.Pools {
		klog.V(2).InfoS("building pool", "name", pc.Name, "kind", pc.Kind)
		var r report
		var err error
		switch pc.Kind {
		case config.KindSpan:
			r, err = spanReport(pc, sel)
		case config.KindVLAN:
			r, err = vlanReport(pc, sel)
		case config.KindIPv4:
			r, err = ipv4Report(pc, sel)
		default:
			err = fmt.Errorf("unknown kind %q", pc.Kind)
		}
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("pool %s: %w", pc.Name, err))
			continue
		}
		r.name, r.kind = pc.Name, pc.Kind
		reports = append(reports, r)
	}
	if errm != nil {
		return nil, errm
	}
	return reports, nil
}

func claimsOf(pc config.PoolConfig) ([]pool.Claim, []pool.Claim, error) {
	var reserved, claims []pool.Claim
	for _, s := range pc.Reserved {
		seg, err := pc.ParseSegment(s)
		if err != nil {
			return nil, nil, err
		}
		reserved = append(reserved, pool.Claim{Segment: seg, Labels: reservedLabels})
	}
	for _, cc := range pc.Claims {
		seg, err := pc.ParseSegment(cc.Span)
		if err != nil {
			return nil, nil, err
		}
		claims = append(claims, pool.Claim{Segment: seg, Labels: cc.Labels})
	}
	return reserved, claims, nil
}

func claimStrings(claims []pool.Claim) []string {
	out := make([]string, 0, len(claims))
	for _, c := range claims {
		out = append(out, c.String())
	}
	return out
}

func spanReport(pc config.PoolConfig, sel labels.Selector) (report, error) {
	base, err := pc.BaseSpan()
	if err != nil {
		return report{}, err
	}
	reserved, claims, err := claimsOf(pc)
	if err != nil {
		return report{}, err
	}
	p, err := pool.New(base, reserved, nil)
	if err != nil {
		return report{}, err
	}
	for _, c := range claims {
		if err := p.Claim(c.Segment, c.Labels); err != nil {
			return report{}, err
		}
	}
	return report{free: p.Free().String(), claims: claimStrings(p.GetByLabel(sel))}, nil
}

func vlanReport(pc config.PoolConfig, sel labels.Selector) (report, error) {
	reserved, claims, err := claimsOf(pc)
	if err != nil {
		return report{}, err
	}
	p, err := vlanpool.NewWithClaims(append(reserved, claims...))
	if err != nil {
		return report{}, err
	}
	return report{free: p.Free().String(), claims: claimStrings(p.GetByLabel(sel))}, nil
}

func ipv4Report(pc config.PoolConfig, sel labels.Selector) (report, error) {
	rng, err := ipspan.ParseRange(pc.Range)
	if err != nil {
		return report{}, err
	}
	ipr := rng.IPRange()
	reserved, claims, err := claimsOf(pc)
	if err != nil {
		return report{}, err
	}
	p, err := ippool.New(ipr.From(), ipr.To())
	if err != nil {
		return report{}, err
	}
	for _, c := range append(reserved, claims...) {
		cr, err := ipspan.RangeOfSegment(c.Segment)
		if err != nil {
			return report{}, err
		}
		if err := p.ClaimRange(cr, c.Labels); err != nil {
			return report{}, err
		}
	}

	var free []string
	for _, r := range p.Free().Ranges() {
		free = append(free, r.String())
	}
	var routes []string
	for _, route := range p.GetByLabel(sel) {
		routes = append(routes, fmt.Sprintf("%s labels: %s", route.Prefix(), route.Labels().String()))
	}
	return report{free: lattice.Format(free), claims: routes}, nil
}
