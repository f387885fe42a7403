package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestSetCommands(t *testing.T) {
	cases := map[string]struct {
		args        []string
		expected    string
		expectedErr bool
	}{
		"SpanUnion":            {args: []string{"span", "union", "[1, 3]", "[4, 6]"}, expected: "[1, 6]"},
		"SpanIntersection":     {args: []string{"span", "intersection", "[1, 10]", "[3, 4] ∪ [8, 12]"}, expected: "[3, 4] ∪ [8, 10]"},
		"SpanDifference":       {args: []string{"span", "difference", "[1, 10]", "[3, 4]"}, expected: "[1, 2] ∪ [5, 10]"},
		"SpanRepr":             {args: []string{"span", "union", "--debug-repr", "[1, 3]"}, expected: "Span([(1, 3)])"},
		"SpanCompare":          {args: []string{"span", "compare", "[2, 3]", "<", "[1, 4]"}, expected: "true"},
		"SpanDisjoint":         {args: []string{"span", "disjoint", "[1, 3]", "[4, 6]"}, expected: "true"},
		"SpanContains":         {args: []string{"span", "contains", "[1, 3]", "3"}, expected: "true"},
		"SpanBadOperand":       {args: []string{"span", "union", "[3, 1]"}, expectedErr: true},
		"SpanBadValue":         {args: []string{"span", "contains", "[1, 3]", "x"}, expectedErr: true},
		"IntervalUnion":        {args: []string{"interval", "union", "[0, 1)", "[1, 2]"}, expected: "[0, 2]"},
		"IntervalDifference":   {args: []string{"interval", "difference", "[0, 2]", "[1, 1]"}, expected: "[0, 1) ∪ (1, 2]"},
		"IntervalIntersection": {args: []string{"interval", "intersection", "[0, 1]", "(1, 2]"}, expected: "∅"},
		"IntervalCompare":      {args: []string{"interval", "compare", "(0, 1)", ">=", "[0, 1]"}, expected: "false"},
		"IntervalContains":     {args: []string{"interval", "contains", "(0, 1)", "0"}, expected: "false"},
		"IntervalBadOp":        {args: []string{"interval", "compare", "(0, 1)", "=<", "[0, 1]"}, expectedErr: true},
		"IntervalNaN":          {args: []string{"interval", "union", "[NaN, 1]"}, expectedErr: true},
		"MissingOperand":       {args: []string{"span", "union"}, expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

const poolConfig = `
pools:
  - name: vlans
    kind: vlan
    claims:
      - span: "[10, 20]"
        labels: {tenant: a}
  - name: ips
    kind: ipv4
    range: 10.0.0.0-10.0.0.255
    reserved: ["10.0.0.0", "10.0.0.255"]
    claims:
      - span: 10.0.0.8-10.0.0.15
        labels: {tenant: b}
  - name: ids
    kind: span
    range: "[100, 199]"
    claims:
      - span: "[100, 149]"
        labels: {tenant: a}
`

func TestPoolsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(poolConfig), 0o600))

	out, err := run(t, "pools", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "vlans (vlan)\n  free: [2, 9] ∪ [21, 4094]")
	assert.Contains(t, out, "ips (ipv4)\n  free: 10.0.0.1-10.0.0.7 ∪ 10.0.0.16-10.0.0.254")
	assert.Contains(t, out, "claim: 10.0.0.8/29 labels: tenant=b")
	assert.Contains(t, out, "ids (span)\n  free: [150, 199]")
	assert.Contains(t, out, "claim: [100, 149] labels: tenant=a")

	out, err = run(t, "pools", "--config", path, "--selector", "tenant=a")
	require.NoError(t, err)
	assert.Contains(t, out, "claim: [10, 20] labels: tenant=a")
	assert.NotContains(t, out, "tenant=b")
	assert.NotContains(t, out, "status=reserved")

	_, err = run(t, "pools", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = run(t, "pools", "--config", path, "--selector", "tenant in (")
	assert.Error(t, err)
}
