package reconcile

import (
	"fmt"
	"math"
	"strings"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/utils"
)

// Recommendation strings surfaced on alignment records.
const (
	RecommendAdopt  = "adopt_authoritative"
	RecommendVerify = "verify_with_supplier"
	RecommendReview = "review_change"
)

// Classifier compares field values according to a RuleTable.
// It is stateless and safe for concurrent use.
type Classifier struct {
	rules *RuleTable
}

// NewClassifier creates a classifier over rules. A nil table uses DefaultRules.
func NewClassifier(rules *RuleTable) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns the rule table in use.
func (c *Classifier) Rules() *RuleTable {
	return c.rules
}

// Classify compares the local and authoritative values of field.
// Nil means the value is absent on that side; numeric and lifecycle fields
// also treat a blank value as absent.
// Fields without a rule return a Validation error.
func (c *Classifier) Classify(field string, local, authoritative *string) (Classification, error) {
	rule, ok := c.rules.Rule(field)
	if !ok {
		return Classification{}, apperr.Validation("field %q is not tracked", field)
	}

	if rule.Kind != KindText {
		local, authoritative = blankAsNil(local), blankAsNil(authoritative)
	}

	if local == nil && authoritative == nil {
		return Classification{}, nil
	}
	if local == nil || authoritative == nil {
		// presence change on either side
		if rule.Kind == KindText && utils.NormalizeText(utils.Deref(local)) == utils.NormalizeText(utils.Deref(authoritative)) {
			return Classification{}, nil
		}
		return rule.differs(rule.DefaultSeverity, RecommendReview, false), nil
	}

	switch rule.Kind {
	case KindNumeric:
		return rule.classifyNumeric(*local, *authoritative), nil
	case KindLifecycle:
		return rule.classifyLifecycle(*local, *authoritative), nil
	default:
		return rule.classifyText(*local, *authoritative), nil
	}
}

func blankAsNil(v *string) *string {
	if v != nil && strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func (r Rule) differs(sev Severity, rec string, verify bool) Classification {
	return Classification{
		Differs:              true,
		Severity:             sev,
		DifferenceType:       r.DifferenceType,
		Recommendation:       rec,
		RequiresVerification: verify,
	}
}

func (r Rule) classifyNumeric(local, auth string) Classification {
	l, lok := utils.ParseNumber(local)
	a, aok := utils.ParseNumber(auth)
	if !lok || !aok {
		// not numbers, compare as text
		return r.classifyText(local, auth)
	}
	if l == a {
		return Classification{}
	}

	// a zero local value makes any change unbounded
	if l == 0 {
		return r.differs(r.Thresholds[len(r.Thresholds)-1].Severity, RecommendVerify, true)
	}

	delta := math.Abs(a-l) / math.Abs(l)
	sev := SeverityLow
	for _, th := range r.Thresholds {
		if delta >= th.MinDelta {
			sev = th.Severity
		}
	}
	rec := RecommendAdopt
	if sev == SeverityCritical {
		rec = RecommendVerify
	}
	return r.differs(sev, rec, sev == SeverityCritical)
}

func (r Rule) classifyLifecycle(local, auth string) Classification {
	if normalizeState(local) == normalizeState(auth) {
		return Classification{}
	}

	from, to := r.stateIndex(local), r.stateIndex(auth)
	if from < 0 || to < 0 {
		return r.differs(SeverityHigh, RecommendVerify, true)
	}

	if to > from {
		last := len(r.States) - 1
		if to-from >= 2 || to == last {
			return r.differs(SeverityCritical, RecommendAdopt, false)
		}
		return r.differs(SeverityHigh, RecommendAdopt, false)
	}

	if r.knownDemotion(local, auth) {
		return r.differs(SeverityMedium, RecommendAdopt, false)
	}
	return r.differs(SeverityHigh, RecommendVerify, true)
}

func (r Rule) classifyText(local, auth string) Classification {
	if utils.NormalizeText(local) == utils.NormalizeText(auth) {
		return Classification{}
	}
	if r.equivalent(local, auth) {
		return Classification{}
	}
	return r.differs(r.DefaultSeverity, RecommendReview, false)
}

// String renders a classification for logs.
func (c Classification) String() string {
	if !c.Differs {
		return "no difference"
	}
	return fmt.Sprintf("%s %s (%s)", c.Severity, c.DifferenceType, c.Recommendation)
}
