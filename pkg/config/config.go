package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/henderiw/rangeset/pkg/ipspan"
	"github.com/henderiw/rangeset/pkg/span"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindSpan Kind = "span"
	KindVLAN Kind = "vlan"
	KindIPv4 Kind = "ipv4"
)

type Config struct {
	Pools []PoolConfig `yaml:"pools"`
}

type PoolConfig struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
	// Range is the base of a span or ipv4 pool; vlan pools always cover
	// 0-4095.
	Range    string        `yaml:"range,omitempty"`
	Reserved []string      `yaml:"reserved,omitempty"`
	Claims   []ClaimConfig `yaml:"claims,omitempty"`
}

type ClaimConfig struct {
	Span   string            `yaml:"span"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML config.
func Parse(b []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every pool and reports all problems at once.
func (c *Config) Validate() error {
	var errm error
	names := map[string]struct{}{}
	for i, p := range c.Pools {
		if p.Name == "" {
			errm = errors.Join(errm, fmt.Errorf("pool %d has no name", i))
		} else if _, ok := names[p.Name]; ok {
			errm = errors.Join(errm, fmt.Errorf("pool %s is defined more than once", p.Name))
		}
		names[p.Name] = struct{}{}
		if err := p.Validate(); err != nil {
			errm = errors.Join(errm, fmt.Errorf("pool %s: %w", p.Name, err))
		}
	}
	return errm
}

func (p PoolConfig) Validate() error {
	var errm error
	switch p.Kind {
	case KindSpan, KindIPv4:
		if p.Range == "" {
			errm = errors.Join(errm, fmt.Errorf("kind %s requires a range", p.Kind))
		} else if _, err := p.BaseSpan(); err != nil {
			errm = errors.Join(errm, err)
		}
	case KindVLAN:
		if p.Range != "" {
			errm = errors.Join(errm, fmt.Errorf("kind %s does not take a range", p.Kind))
		}
	default:
		return fmt.Errorf("unknown kind %q", p.Kind)
	}
	for _, r := range p.Reserved {
		if _, err := p.ParseSegment(r); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	for _, c := range p.Claims {
		if _, err := p.ParseSegment(c.Span); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return errm
}

// BaseSpan returns the span a span or ipv4 pool covers.
func (p PoolConfig) BaseSpan() (*span.Span, error) {
	switch p.Kind {
	case KindSpan:
		return span.Parse(p.Range)
	case KindIPv4:
		r, err := ipspan.ParseRange(p.Range)
		if err != nil {
			return nil, err
		}
		return r.ToSpan(), nil
	default:
		return nil, fmt.Errorf("kind %s has no configurable range", p.Kind)
	}
}

// ParseSegment parses a reserved or claimed segment in the notation of the
// pool kind: "[start, end]" for span and vlan pools, "from-to" or a single
// address for ipv4 pools.
func (p PoolConfig) ParseSegment(s string) (span.Segment, error) {
	if p.Kind == KindIPv4 {
		r, err := ipspan.ParseRange(s)
		if err != nil {
			return span.Segment{}, err
		}
		return r.Segment(), nil
	}
	seg, err := span.ParseSegment(s)
	if err != nil {
		return seg, err
	}
	return seg, seg.Check()
}
