package reconcile

import "strings"

// Severity ranks the impact of a detected difference.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank orders severities: CRITICAL=4 > HIGH=3 > MEDIUM=2 > LOW=1. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// ParseSeverity parses a severity case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	return sev, sev.Valid()
}

// DifferenceType tags what kind of change a difference represents.
type DifferenceType string

const (
	DifferenceSpec   DifferenceType = "spec_change"
	DifferencePrice  DifferenceType = "price_change"
	DifferenceStatus DifferenceType = "status_change"
)

// Valid reports whether d is a known difference type.
func (d DifferenceType) Valid() bool {
	switch d {
	case DifferenceSpec, DifferencePrice, DifferenceStatus:
		return true
	}
	return false
}

// FieldKind selects the comparison mechanics for a tracked field.
type FieldKind string

const (
	KindNumeric   FieldKind = "numeric"
	KindLifecycle FieldKind = "lifecycle"
	KindText      FieldKind = "text"
)

// Classification is the outcome of comparing one field's local and authoritative values.
type Classification struct {
	// Differs is false when the values are equal after normalization.
	Differs bool `json:"differs"`
	// Severity is set when Differs is true.
	Severity Severity `json:"severity,omitempty"`
	// DifferenceType is taken from the field's rule.
	DifferenceType DifferenceType `json:"difference_type,omitempty"`
	// Recommendation is the suggested resolution shown to reviewers.
	Recommendation string `json:"recommendation,omitempty"`
	// RequiresVerification marks differences that must not be adopted blindly.
	RequiresVerification bool `json:"requires_verification,omitempty"`
}
