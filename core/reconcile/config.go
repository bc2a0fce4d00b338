package reconcile

// Config holds the classifier settings.
type Config struct {
	// RulesFile points to a YAML rule table. Empty uses DefaultRules.
	RulesFile string `mapstructure:"rules_file" default:""`
}

// LoadRuleTable returns the configured rule table.
func LoadRuleTable(cfg Config) (*RuleTable, error) {
	if cfg.RulesFile == "" {
		return DefaultRules(), nil
	}
	return LoadRules(cfg.RulesFile)
}
