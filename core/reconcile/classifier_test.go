package reconcile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, c *Classifier, field string, local, auth *string) Classification {
	t.Helper()
	res, err := c.Classify(field, local, auth)
	require.NoError(t, err)
	return res
}

func TestClassifyPriceThresholds(t *testing.T) {
	c := NewClassifier(nil)

	cases := []struct {
		name  string
		local string
		auth  string
		want  Severity
	}{
		{"tiny", "100", "101", SeverityLow},
		{"two percent", "100", "102", SeverityMedium},
		{"ten percent", "100", "90", SeverityHigh},
		{"quarter", "100", "125", SeverityCritical},
		{"currency formatted", "$1,000.00", "1,030", SeverityMedium},
		{"double", "350", "700", SeverityCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := classify(t, c, "unit_price", utils.Ptr(tc.local), utils.Ptr(tc.auth))
			assert.True(t, res.Differs)
			assert.Equal(t, tc.want, res.Severity)
			assert.Equal(t, DifferencePrice, res.DifferenceType)
		})
	}
}

func TestClassifyNumericEqual(t *testing.T) {
	c := NewClassifier(nil)

	res := classify(t, c, "unit_price", utils.Ptr("350.00"), utils.Ptr("350"))
	assert.False(t, res.Differs)
	assert.Empty(t, res.Severity)
}

func TestClassifyNumericMonotonic(t *testing.T) {
	c := NewClassifier(nil)

	prev := 0
	for auth := 100.0; auth <= 200; auth += 0.5 {
		res := classify(t, c, "unit_price", utils.Ptr("100"), utils.Ptr(utils.FormatNumber(auth)))
		rank := res.Severity.Rank()
		assert.GreaterOrEqual(t, rank, prev, "severity dropped at %v", auth)
		prev = rank
	}
	assert.Equal(t, SeverityCritical.Rank(), prev)
}

func TestClassifyNumericZeroLocal(t *testing.T) {
	c := NewClassifier(nil)

	res := classify(t, c, "unit_price", utils.Ptr("0"), utils.Ptr("0.01"))
	assert.Equal(t, SeverityCritical, res.Severity)
	assert.True(t, res.RequiresVerification)
}

func TestClassifyNumericUnparseable(t *testing.T) {
	c := NewClassifier(nil)

	res := classify(t, c, "unit_price", utils.Ptr("call for quote"), utils.Ptr("12.50"))
	assert.True(t, res.Differs)
	assert.Equal(t, SeverityHigh, res.Severity)
}

func TestClassifyLifecycle(t *testing.T) {
	c := NewClassifier(nil)

	cases := []struct {
		name   string
		local  string
		auth   string
		want   Severity
		verify bool
	}{
		{"one step", "ACTIVE", "NRND", SeverityHigh, false},
		{"two steps", "ACTIVE", "LAST_TIME_BUY", SeverityCritical, false},
		{"to obsolete", "EOL", "OBSOLETE", SeverityCritical, false},
		{"known demotion", "NRND", "ACTIVE", SeverityMedium, false},
		{"unexpected demotion", "OBSOLETE", "ACTIVE", SeverityHigh, true},
		{"unknown state", "ACTIVE", "PHASED", SeverityHigh, true},
		{"spelling variants", "Last Time Buy", "EOL", SeverityHigh, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := classify(t, c, "lifecycle_status", utils.Ptr(tc.local), utils.Ptr(tc.auth))
			assert.True(t, res.Differs)
			assert.Equal(t, tc.want, res.Severity)
			assert.Equal(t, tc.verify, res.RequiresVerification)
			assert.Equal(t, DifferenceStatus, res.DifferenceType)
		})
	}

	res := classify(t, c, "lifecycle_status", utils.Ptr("active"), utils.Ptr("ACTIVE"))
	assert.False(t, res.Differs)
}

func TestClassifyText(t *testing.T) {
	c := NewClassifier(nil)

	res := classify(t, c, "description", utils.Ptr("  8GB  DDR4 module"), utils.Ptr("8gb ddr4 MODULE"))
	assert.False(t, res.Differs)

	res = classify(t, c, "specification", utils.Ptr("3.3V"), utils.Ptr("5V"))
	assert.True(t, res.Differs)
	assert.Equal(t, SeverityHigh, res.Severity)
	assert.Equal(t, DifferenceSpec, res.DifferenceType)

	res = classify(t, c, "manufacturer", utils.Ptr("TI"), utils.Ptr("Texas Instruments"))
	assert.False(t, res.Differs)

	res = classify(t, c, "manufacturer", utils.Ptr("TI"), utils.Ptr("STMicro"))
	assert.True(t, res.Differs)
}

func TestClassifyNulls(t *testing.T) {
	c := NewClassifier(nil)

	res := classify(t, c, "unit_price", nil, nil)
	assert.False(t, res.Differs)

	res = classify(t, c, "unit_price", nil, utils.Ptr("10"))
	assert.True(t, res.Differs)
	assert.Equal(t, SeverityHigh, res.Severity)

	res = classify(t, c, "description", utils.Ptr(""), nil)
	assert.False(t, res.Differs)

	for _, field := range []string{"unit_price", "lead_time_days", "lifecycle_status"} {
		res = classify(t, c, field, utils.Ptr(" "), nil)
		assert.False(t, res.Differs, field)
	}

	res = classify(t, c, "lifecycle_status", utils.Ptr(""), utils.Ptr("ACTIVE"))
	assert.True(t, res.Differs)
	assert.Equal(t, RecommendReview, res.Recommendation)
}

func TestClassifyUnknownField(t *testing.T) {
	c := NewClassifier(nil)

	_, err := c.Classify("color", utils.Ptr("red"), utils.Ptr("blue"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestClassifyConcurrent(t *testing.T) {
	c := NewClassifier(nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Classify("unit_price", utils.Ptr("100"), utils.Ptr("130"))
			assert.NoError(t, err)
			assert.Equal(t, SeverityCritical, res.Severity)
		}()
	}
	wg.Wait()
}

func TestParseRules(t *testing.T) {
	data := []byte(`
rules:
  - field: weight_g
    kind: numeric
    difference_type: spec_change
    thresholds:
      - {min_delta: 0.5, severity: HIGH}
      - {min_delta: 0.1, severity: MEDIUM}
  - field: rohs
    kind: text
    difference_type: spec_change
    default_severity: CRITICAL
`)
	table, err := ParseRules(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"weight_g", "rohs"}, table.Fields())

	rule, ok := table.Rule("weight_g")
	require.True(t, ok)
	assert.Equal(t, 0.1, rule.Thresholds[0].MinDelta, "thresholds sorted ascending")
	assert.Equal(t, SeverityHigh, rule.DefaultSeverity)

	c := NewClassifier(table)
	res := classify(t, c, "weight_g", utils.Ptr("10"), utils.Ptr("12"))
	assert.Equal(t, SeverityMedium, res.Severity)
	res = classify(t, c, "rohs", utils.Ptr("yes"), utils.Ptr("no"))
	assert.Equal(t, SeverityCritical, res.Severity)
}

func TestParseRulesRejectsNonMonotonic(t *testing.T) {
	data := []byte(`
rules:
  - field: unit_price
    kind: numeric
    difference_type: price_change
    thresholds:
      - {min_delta: 0.1, severity: CRITICAL}
      - {min_delta: 0.5, severity: LOW}
`)
	_, err := ParseRules(data)
	assert.ErrorContains(t, err, "lowers severity")
}

func TestParseRulesErrors(t *testing.T) {
	cases := map[string]string{
		"empty":        `rules: []`,
		"unknown kind": "rules:\n  - {field: a, kind: blob, difference_type: spec_change}",
		"bad type":     "rules:\n  - {field: a, kind: text, difference_type: weird}",
		"duplicate":    "rules:\n  - {field: a, kind: text, difference_type: spec_change}\n  - {field: a, kind: text, difference_type: spec_change}",
		"one state":    "rules:\n  - {field: a, kind: lifecycle, difference_type: status_change, states: [ACTIVE]}",
		"no field":     "rules:\n  - {kind: text, difference_type: spec_change}",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRules([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadRuleTable(t *testing.T) {
	table, err := LoadRuleTable(Config{})
	require.NoError(t, err)
	assert.Contains(t, table.Fields(), "unit_price")

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - {field: color, kind: text, difference_type: spec_change}\n"), 0o600))

	table, err = LoadRuleTable(Config{RulesFile: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"color"}, table.Fields())

	_, err = LoadRuleTable(Config{RulesFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())

	sev, ok := ParseSeverity(" high ")
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, sev)

	_, ok = ParseSeverity("urgent")
	assert.False(t, ok)
}
