package core

import (
	"context"
	"errors"
	"testing"

	"projectdash/pkg/domain"
)

func TestDefaultRulesEngineRegistersBuiltins(t *testing.T) {
	names := NewDefaultRulesEngine(domain.DefaultPolicy()).Rules()
	want := []string{RuleCampaignDuration, RuleLocationConsistency, RuleRequirementsPresence, RuleTestResultsPresence}
	if len(names) != len(want) {
		t.Fatalf("rules = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("rules = %v, want %v", names, want)
		}
	}
}

func TestLocationCodeAndCompatible(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"SITE_A", "SITE", true},
		{"SITE", "SITE_B", true},
		{"NORTH_B", "SOUTH_C", false},
		{"SITE", "SITEHOUSE", true},
		{"", "SOUTH", true},
	}
	for _, c := range cases {
		if got := Compatible(LocationCode(c.a), LocationCode(c.b)); got != c.want {
			t.Fatalf("Compatible(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
	if LocationCode("NOUNDERSCORE") != "NOUNDERSCORE" {
		t.Fatalf("expected whole identifier without underscore")
	}
}

func TestLocationRuleAcceptsSubsite(t *testing.T) {
	rule := NewLocationConsistencyRule()
	res, err := rule.Evaluate(context.Background(), Tables{Strategy: []domain.TestStrategyRecord{
		row("TC1", "SITE_A", "SITE", "SITE_EQ", "5", ""),
	}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("expected no violations, got %+v", res.Violations)
	}
}

func TestLocationRuleResearcherMismatch(t *testing.T) {
	rule := NewLocationConsistencyRule()
	res, err := rule.Evaluate(context.Background(), Tables{Strategy: []domain.TestStrategyRecord{
		row("TC1", "NORTH_B", "SOUTH_C", "SOUTH_EQ", "5", ""),
		row("TC1", "NORTH_B", "SOUTH_C", "SOUTH_EQ", "7", ""),
	}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 1 {
		t.Fatalf("expected exactly one violation, got %+v", res.Violations)
	}
	want := domain.Error("Researcher NORTH_B for Test Case TC1 is not available at Facility SOUTH_C")
	if res.Violations[0].Issue != want || res.Violations[0].Section != SectionTestStrategy {
		t.Fatalf("unexpected violation %+v", res.Violations[0])
	}
}

func TestLocationRuleEquipmentMismatch(t *testing.T) {
	rule := NewLocationConsistencyRule()
	res, _ := rule.Evaluate(context.Background(), Tables{Strategy: []domain.TestStrategyRecord{
		row("TC2", "SOUTH_R", "SOUTH_C", "EAST_EQ", "5", ""),
	}})
	if len(res.Violations) != 1 {
		t.Fatalf("expected one violation, got %+v", res.Violations)
	}
	want := "Equipment EAST_EQ for Test Case TC2 is not available at Facility SOUTH_C"
	if res.Violations[0].Issue.Message != want {
		t.Fatalf("message = %q, want %q", res.Violations[0].Issue.Message, want)
	}
}

func TestCampaignDurationRuleWarnsOverThreshold(t *testing.T) {
	rule := NewCampaignDurationRule(domain.DefaultPolicy(), nil)
	res, err := rule.Evaluate(context.Background(), Tables{Strategy: []domain.TestStrategyRecord{
		row("TC1", "F1_R", "F1", "F1_EQ", "30", "TC2"),
		row("TC2", "F2_R", "F2", "F2_EQ", "29", ""),
	}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 1 {
		t.Fatalf("expected one warning, got %+v", res.Violations)
	}
	want := domain.Warning("Total campaign duration is 65 days (> 60)")
	if res.Violations[0].Issue != want {
		t.Fatalf("issue = %+v, want %+v", res.Violations[0].Issue, want)
	}
}

func TestCampaignDurationRuleSkipsNaNCell(t *testing.T) {
	report, err := NewChecker(domain.DefaultPolicy()).Check(context.Background(), strategyTables(
		row("TC1", "F1_R", "F1", "F1_EQ", "NaN", ""),
		row("TC1", "F1_R", "F1", "F1_EQ", "70", ""),
	))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := []Issue{domain.Warning("Total campaign duration is 70 days (> 60)")}
	if got := report.Issues(SectionTestStrategy); len(got) != 1 || got[0] != want[0] {
		t.Fatalf("issues = %+v, want %+v", got, want)
	}
}

func TestCampaignDurationRuleAtThresholdIsQuiet(t *testing.T) {
	rule := NewCampaignDurationRule(domain.DefaultPolicy(), nil)
	res, err := rule.Evaluate(context.Background(), Tables{Strategy: []domain.TestStrategyRecord{
		row("TC1", "F1_R", "F1", "F1_EQ", "30", "TC2"),
		row("TC2", "F1_R", "F1", "F1_EQ", "30", ""),
	}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("expected no warning at exactly 60 days, got %+v", res.Violations)
	}
}

func TestCampaignDurationRuleCustomPolicy(t *testing.T) {
	rule := NewCampaignDurationRule(domain.Policy{ThresholdDays: 10, SwitchPenaltyDays: 0}, nil)
	res, _ := rule.Evaluate(context.Background(), Tables{Strategy: []domain.TestStrategyRecord{
		row("TC1", "F1_R", "F1", "F1_EQ", "12.9", ""),
	}})
	if len(res.Violations) != 1 || res.Violations[0].Issue.Message != "Total campaign duration is 12 days (> 10)" {
		t.Fatalf("unexpected violations %+v", res.Violations)
	}
}

func TestCampaignDurationRuleMalformedChain(t *testing.T) {
	rule := NewCampaignDurationRule(domain.DefaultPolicy(), nil)
	_, err := rule.Evaluate(context.Background(), Tables{Strategy: []domain.TestStrategyRecord{
		row("A", "F_R", "F", "F_EQ", "1", "B"),
		row("C", "F_R", "F", "F_EQ", "1", "D"),
	}})
	var malformed *domain.MalformedScheduleError
	if !errors.As(err, &malformed) || len(malformed.Heads) != 2 {
		t.Fatalf("expected two-head MalformedScheduleError, got %v", err)
	}
}

func TestSectionPresenceRuleIsSilent(t *testing.T) {
	rule := NewSectionPresenceRule(RuleRequirementsPresence, SectionRequirements)
	if rule.Name() != RuleRequirementsPresence {
		t.Fatalf("unexpected name %s", rule.Name())
	}
	res, err := rule.Evaluate(context.Background(), Tables{})
	if err != nil || len(res.Violations) != 0 {
		t.Fatalf("expected silent rule, got %+v %v", res, err)
	}
}
