// Package reconcile implements the field comparator and severity classifier
// at the heart of catalog reconciliation.
//
// A tracked attribute of a part (price, lifecycle status, specification text)
// is compared between the local catalog and the authoritative system. The
// outcome is a Classification: whether the values differ, how severe the
// difference is and which kind of change it represents.
//
// # Rule Table
//
// Comparison policy lives in a RuleTable, never in code. Each Rule names a
// tracked field, its comparison kind and the kind-specific parameters:
//
//   - numeric: relative delta thresholds. Thresholds must be non-decreasing in
//     severity as the delta grows, so a larger change never classifies lower.
//   - lifecycle: ordered states from least to most restrictive and the known
//     demotions. Moving to a more restrictive state escalates; an unknown
//     demotion is flagged for verification instead of adoption.
//   - text: case and whitespace insensitive inequality, with optional
//     equivalence sets (e.g. manufacturer aliases).
//
// DefaultRules covers the standard tracked attributes. A YAML file with the
// same shape can replace it (see LoadRules), so new fields need no code change.
//
// # Usage
//
//	rules, err := reconcile.LoadRuleTable(cfg.Reconcile)
//	c := reconcile.NewClassifier(rules)
//	res, err := c.Classify("unit_price", utils.Ptr("350"), utils.Ptr("360"))
//	// res.Differs == true, res.Severity == reconcile.SeverityMedium
package reconcile
