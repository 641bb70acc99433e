package core

import (
	"context"
	"fmt"
	"strings"

	"projectdash/pkg/domain"
)

const (
	warningKind = domain.KindWarning
	errorKind   = domain.KindError
)

// LocationCode returns the part of an identifier before its first underscore,
// or the whole identifier when it has none ("SITE_A" -> "SITE").
func LocationCode(id string) string {
	code, _, _ := strings.Cut(id, "_")
	return code
}

// Compatible reports whether two location codes may denote the same site:
// either code contains the other. Equal codes are compatible. The check
// tolerates a sub-site code nested inside a broader one and, by the same
// token, accepts unrelated codes that happen to overlap ("SITE" and
// "SITEHOUSE").
func Compatible(a, b string) bool {
	return a == b || strings.Contains(b, a) || strings.Contains(a, b)
}

// NewLocationConsistencyRule checks that the researcher and the equipment of
// every test case are located at the facility it runs in.
func NewLocationConsistencyRule() Rule {
	return locationConsistencyRule{}
}

type locationConsistencyRule struct{}

func (locationConsistencyRule) Name() string { return RuleLocationConsistency }

type assignment struct {
	testCase, researcher, facility, equipment string
}

func (locationConsistencyRule) Evaluate(_ context.Context, tables Tables) (Result, error) {
	seen := make(map[assignment]struct{}, len(tables.Strategy))
	res := Result{}
	for _, r := range tables.Strategy {
		a := assignment{r.TestCase, r.Researcher, r.Facility, r.TestEquipment}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}

		fac := LocationCode(a.facility)
		if !Compatible(LocationCode(a.researcher), fac) {
			res.Violations = append(res.Violations, Violation{
				Rule:    RuleLocationConsistency,
				Section: SectionTestStrategy,
				Issue: Issue{Kind: errorKind, Message: fmt.Sprintf(
					"Researcher %s for Test Case %s is not available at Facility %s", a.researcher, a.testCase, a.facility)},
			})
		}
		if !Compatible(LocationCode(a.equipment), fac) {
			res.Violations = append(res.Violations, Violation{
				Rule:    RuleLocationConsistency,
				Section: SectionTestStrategy,
				Issue: Issue{Kind: errorKind, Message: fmt.Sprintf(
					"Equipment %s for Test Case %s is not available at Facility %s", a.equipment, a.testCase, a.facility)},
			})
		}
	}
	return res, nil
}
