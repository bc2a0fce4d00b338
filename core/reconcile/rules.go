package reconcile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"bom-reconciler/core/utils"

	"gopkg.in/yaml.v3"
)

// Threshold maps a minimum relative delta to a severity.
type Threshold struct {
	MinDelta float64  `yaml:"min_delta" json:"min_delta"`
	Severity Severity `yaml:"severity" json:"severity"`
}

// Transition is a known lifecycle move from one state to another.
type Transition struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Rule is the comparison policy for one tracked field.
type Rule struct {
	Field          string         `yaml:"field" json:"field"`
	Kind           FieldKind      `yaml:"kind" json:"kind"`
	DifferenceType DifferenceType `yaml:"difference_type" json:"difference_type"`
	// DefaultSeverity applies to text differences, null/non-null pairs and unparseable values.
	DefaultSeverity Severity `yaml:"default_severity" json:"default_severity"`

	// Thresholds (numeric) are matched against |authoritative-local|/|local|.
	Thresholds []Threshold `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`

	// States (lifecycle) are ordered from least to most restrictive.
	States []string `yaml:"states,omitempty" json:"states,omitempty"`
	// KnownDemotions (lifecycle) are moves to a less restrictive state that are adopted normally.
	KnownDemotions []Transition `yaml:"known_demotions,omitempty" json:"known_demotions,omitempty"`

	// Equivalents (text) groups values treated as equal.
	Equivalents [][]string `yaml:"equivalents,omitempty" json:"equivalents,omitempty"`
}

// RuleTable is the full classification policy keyed by field.
type RuleTable struct {
	Rules []Rule `yaml:"rules" json:"rules"`

	index map[string]int
}

// DefaultRules returns the built-in policy for the standard tracked attributes.
//
// Price thresholds: >=25% CRITICAL, >=10% HIGH, >=2% MEDIUM, any other change LOW.
func DefaultRules() *RuleTable {
	t := &RuleTable{Rules: []Rule{
		{
			Field:           "unit_price",
			Kind:            KindNumeric,
			DifferenceType:  DifferencePrice,
			DefaultSeverity: SeverityHigh,
			Thresholds: []Threshold{
				{MinDelta: 0.02, Severity: SeverityMedium},
				{MinDelta: 0.10, Severity: SeverityHigh},
				{MinDelta: 0.25, Severity: SeverityCritical},
			},
		},
		{
			Field:           "lead_time_days",
			Kind:            KindNumeric,
			DifferenceType:  DifferenceSpec,
			DefaultSeverity: SeverityMedium,
			Thresholds: []Threshold{
				{MinDelta: 0.25, Severity: SeverityMedium},
				{MinDelta: 1.00, Severity: SeverityHigh},
			},
		},
		{
			Field:           "lifecycle_status",
			Kind:            KindLifecycle,
			DifferenceType:  DifferenceStatus,
			DefaultSeverity: SeverityHigh,
			States:          []string{"ACTIVE", "NRND", "LAST_TIME_BUY", "EOL", "OBSOLETE"},
			KnownDemotions: []Transition{
				{From: "NRND", To: "ACTIVE"},
			},
		},
		{
			Field:           "specification",
			Kind:            KindText,
			DifferenceType:  DifferenceSpec,
			DefaultSeverity: SeverityHigh,
		},
		{
			Field:           "description",
			Kind:            KindText,
			DifferenceType:  DifferenceSpec,
			DefaultSeverity: SeverityHigh,
		},
		{
			Field:           "manufacturer",
			Kind:            KindText,
			DifferenceType:  DifferenceSpec,
			DefaultSeverity: SeverityHigh,
			Equivalents: [][]string{
				{"Texas Instruments", "TI"},
				{"STMicroelectronics", "ST", "STMicro"},
			},
		},
	}}
	if err := t.Validate(); err != nil {
		panic(err)
	}
	return t
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) (*RuleTable, error) {
	var t RuleTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse rule table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks every rule and builds the field index.
// Numeric thresholds are sorted by delta and must not lose severity as the delta grows.
func (t *RuleTable) Validate() error {
	if len(t.Rules) == 0 {
		return fmt.Errorf("rule table is empty")
	}

	t.index = make(map[string]int, len(t.Rules))
	for i := range t.Rules {
		r := &t.Rules[i]
		if r.Field == "" {
			return fmt.Errorf("rule %d: field is required", i)
		}
		if _, dup := t.index[r.Field]; dup {
			return fmt.Errorf("rule %s: duplicate field", r.Field)
		}
		if !r.DifferenceType.Valid() {
			return fmt.Errorf("rule %s: unknown difference type %q", r.Field, r.DifferenceType)
		}
		if r.DefaultSeverity == "" {
			r.DefaultSeverity = SeverityHigh
		}
		if !r.DefaultSeverity.Valid() {
			return fmt.Errorf("rule %s: unknown default severity %q", r.Field, r.DefaultSeverity)
		}

		switch r.Kind {
		case KindNumeric:
			if err := validateThresholds(r); err != nil {
				return err
			}
		case KindLifecycle:
			if len(r.States) < 2 {
				return fmt.Errorf("rule %s: lifecycle rules need at least two states", r.Field)
			}
			for j, s := range r.States {
				r.States[j] = normalizeState(s)
			}
		case KindText:
		default:
			return fmt.Errorf("rule %s: unknown kind %q", r.Field, r.Kind)
		}

		t.index[r.Field] = i
	}
	return nil
}

func validateThresholds(r *Rule) error {
	if len(r.Thresholds) == 0 {
		return fmt.Errorf("rule %s: numeric rules need thresholds", r.Field)
	}
	sort.SliceStable(r.Thresholds, func(i, j int) bool {
		return r.Thresholds[i].MinDelta < r.Thresholds[j].MinDelta
	})
	prev := SeverityLow.Rank()
	for _, th := range r.Thresholds {
		if th.MinDelta < 0 {
			return fmt.Errorf("rule %s: negative threshold %v", r.Field, th.MinDelta)
		}
		if !th.Severity.Valid() {
			return fmt.Errorf("rule %s: unknown severity %q", r.Field, th.Severity)
		}
		if th.Severity.Rank() < prev {
			return fmt.Errorf("rule %s: threshold %v lowers severity to %s", r.Field, th.MinDelta, th.Severity)
		}
		prev = th.Severity.Rank()
	}
	return nil
}

// Rule returns the rule for field.
func (t *RuleTable) Rule(field string) (Rule, bool) {
	i, ok := t.index[field]
	if !ok {
		return Rule{}, false
	}
	return t.Rules[i], true
}

// Fields returns the tracked field names in table order.
func (t *RuleTable) Fields() []string {
	fields := make([]string, len(t.Rules))
	for i, r := range t.Rules {
		fields[i] = r.Field
	}
	return fields
}

func normalizeState(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func (r Rule) stateIndex(s string) int {
	s = normalizeState(s)
	for i, st := range r.States {
		if st == s {
			return i
		}
	}
	return -1
}

func (r Rule) knownDemotion(from, to string) bool {
	from, to = normalizeState(from), normalizeState(to)
	for _, tr := range r.KnownDemotions {
		if normalizeState(tr.From) == from && normalizeState(tr.To) == to {
			return true
		}
	}
	return false
}

func (r Rule) equivalent(a, b string) bool {
	a, b = utils.NormalizeText(a), utils.NormalizeText(b)
	for _, set := range r.Equivalents {
		var hasA, hasB bool
		for _, v := range set {
			n := utils.NormalizeText(v)
			hasA = hasA || n == a
			hasB = hasB || n == b
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}
