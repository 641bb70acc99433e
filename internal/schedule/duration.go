package schedule

import (
	"projectdash/pkg/domain"
)

// Estimate is the projected length of a campaign.
type Estimate struct {
	// Order is the reconstructed execution order.
	Order []string
	// BaseDays sums the worst-case duration of every test case.
	BaseDays float64
	// Switches counts adjacent test cases run at different facilities.
	Switches    int
	PenaltyDays float64
	TotalDays   float64
	// Excluded holds *domain.NonNumericDurationError values for skipped cells.
	Excluded []error
}

// BaseDays returns the sum over test cases of the largest numeric duration
// recorded for each case. Rows without a test case are ignored; cells that do
// not parse are returned as excluded.
func BaseDays(records []domain.TestStrategyRecord) (float64, []error) {
	worst := make(map[string]float64)
	var keys []string
	var excluded []error
	for _, r := range records {
		if r.TestCase == "" {
			continue
		}
		d, err := r.Duration()
		if err != nil {
			excluded = append(excluded, err)
			continue
		}
		cur, ok := worst[r.TestCase]
		if !ok {
			keys = append(keys, r.TestCase)
			worst[r.TestCase] = d
			continue
		}
		if d > cur {
			worst[r.TestCase] = d
		}
	}
	var total float64
	for _, k := range keys {
		total += worst[k]
	}
	return total, excluded
}

// FacilitySequence maps an order to the facility of each test case, using
// the first row recorded for the case. Cases without a row are skipped.
func FacilitySequence(order []string, records []domain.TestStrategyRecord) []string {
	first := make(map[string]string, len(records))
	for _, r := range records {
		if _, ok := first[r.TestCase]; !ok {
			first[r.TestCase] = r.Facility
		}
	}
	seq := make([]string, 0, len(order))
	for _, tc := range order {
		if fac, ok := first[tc]; ok {
			seq = append(seq, fac)
		}
	}
	return seq
}

// Switches counts adjacent pairs of differing facilities.
func Switches(seq []string) int {
	n := 0
	for i := 1; i < len(seq); i++ {
		if seq[i] != seq[i-1] {
			n++
		}
	}
	return n
}

// EstimateCampaign reconstructs the order and totals base duration plus the
// facility switch penalty. A malformed chain aborts the estimate.
func EstimateCampaign(records []domain.TestStrategyRecord, policy domain.Policy) (Estimate, error) {
	order, err := Reconstruct(Links(records))
	if err != nil {
		return Estimate{}, err
	}
	base, excluded := BaseDays(records)
	switches := Switches(FacilitySequence(order, records))
	penalty := float64(switches) * policy.SwitchPenaltyDays
	return Estimate{
		Order:       order,
		BaseDays:    base,
		Switches:    switches,
		PenaltyDays: penalty,
		TotalDays:   base + penalty,
		Excluded:    excluded,
	}, nil
}
