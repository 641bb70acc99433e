package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"projectdash/internal/schedule"
)

// NewCampaignDurationRule warns when the estimated campaign, including the
// facility switch penalty, runs longer than the policy threshold. Duration
// cells left out of the estimate are logged at debug; a nil logger discards them.
func NewCampaignDurationRule(policy Policy, logger *zap.Logger) Rule {
	if logger == nil {
		logger = zap.NewNop()
	}
	return campaignDurationRule{policy: policy, logger: logger}
}

type campaignDurationRule struct {
	policy Policy
	logger *zap.Logger
}

func (campaignDurationRule) Name() string { return RuleCampaignDuration }

func (r campaignDurationRule) Evaluate(_ context.Context, tables Tables) (Result, error) {
	est, err := schedule.EstimateCampaign(tables.Strategy, r.policy)
	if err != nil {
		return Result{}, err
	}
	for _, excluded := range est.Excluded {
		r.logger.Debug("duration excluded from estimate", zap.Error(excluded))
	}
	res := Result{}
	if est.TotalDays > r.policy.ThresholdDays {
		res.Violations = append(res.Violations, Violation{
			Rule:    RuleCampaignDuration,
			Section: SectionTestStrategy,
			Issue:   DurationWarning(est.TotalDays, r.policy.ThresholdDays),
		})
	}
	return res, nil
}

// DurationWarning formats the over-threshold warning. Both values are
// truncated to whole days.
func DurationWarning(totalDays, thresholdDays float64) Issue {
	return Issue{
		Kind:    warningKind,
		Message: fmt.Sprintf("Total campaign duration is %d days (> %d)", int(totalDays), int(thresholdDays)),
	}
}
