package domain

import (
	"math"
	"strconv"
	"strings"
)

// TestStrategyRecord is one row of the TestStrategy table.
type TestStrategyRecord struct {
	TestCase      string `json:"test_case"`
	Researcher    string `json:"researcher"`
	Facility      string `json:"facility"`
	TestEquipment string `json:"test_equipment"`
	DurationRaw   string `json:"duration_value"`
	OccursBefore  string `json:"occurs_before,omitempty"`
}

// Duration parses the duration cell as a finite decimal number. Blank cells,
// text, NaN, infinities and hex floats return a *NonNumericDurationError.
func (r TestStrategyRecord) Duration() (float64, error) {
	raw := strings.TrimSpace(r.DurationRaw)
	if strings.ContainsAny(raw, "xX") {
		return 0, &NonNumericDurationError{TestCase: r.TestCase, Value: r.DurationRaw}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NonNumericDurationError{TestCase: r.TestCase, Value: r.DurationRaw}
	}
	return v, nil
}

// TestFacilityRecord is one row of the TestFacilities table.
type TestFacilityRecord struct {
	Facility  string `json:"test_facility"`
	Equipment string `json:"equipment,omitempty"`
}

// Tables bundles the two source tables a consistency check consumes.
type Tables struct {
	Strategy   []TestStrategyRecord
	Facilities []TestFacilityRecord
}

// Policy holds the scheduling constants applied by the campaign rules.
type Policy struct {
	ThresholdDays     float64 `yaml:"duration_threshold_days" json:"duration_threshold_days"`
	SwitchPenaltyDays float64 `yaml:"switch_penalty_days" json:"switch_penalty_days"`
}

// DefaultPolicy returns a 60 day threshold with a 6 day facility switch penalty.
func DefaultPolicy() Policy {
	return Policy{ThresholdDays: 60, SwitchPenaltyDays: 6}
}
