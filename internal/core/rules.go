package core

import (
	"go.uber.org/zap"

	"projectdash/pkg/domain"
)

// Rule names registered by NewDefaultRulesEngine.
const (
	RuleCampaignDuration     = "campaign_duration"
	RuleLocationConsistency  = "location_consistency"
	RuleRequirementsPresence = "requirements_presence"
	RuleTestResultsPresence  = "test_results_presence"
)

// NewRulesEngine constructs an empty engine instance.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}

// NewDefaultRulesEngine builds a rules engine with the built-in consistency checks.
func NewDefaultRulesEngine(policy Policy) *RulesEngine {
	return defaultRulesEngine(policy, zap.NewNop())
}

func defaultRulesEngine(policy Policy, logger *zap.Logger) *RulesEngine {
	engine := NewRulesEngine()
	for _, rule := range defaultRules(policy, logger) {
		engine.Register(rule)
	}
	return engine
}

func defaultRules(policy Policy, logger *zap.Logger) []Rule {
	return []Rule{
		NewCampaignDurationRule(policy, logger.Named(RuleCampaignDuration)),
		NewLocationConsistencyRule(),
		NewSectionPresenceRule(RuleRequirementsPresence, SectionRequirements),
		NewSectionPresenceRule(RuleTestResultsPresence, SectionTestResults),
	}
}
