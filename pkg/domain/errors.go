package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingData signals that one or both source tables are absent.
	ErrMissingData = errors.New("source tables missing")
	// ErrMalformedSchedule is the kind carried by MalformedScheduleError.
	ErrMalformedSchedule = errors.New("malformed schedule")
	// ErrProjectNotFound is returned by project stores for unknown names.
	ErrProjectNotFound = errors.New("project not found")
)

// MalformedScheduleError reports an occurs-before chain that does not yield
// a single linear order.
type MalformedScheduleError struct {
	Heads []string
	Cycle []string
}

func (e *MalformedScheduleError) Error() string {
	switch {
	case len(e.Cycle) > 0:
		return fmt.Sprintf("%s: cycle: %s", ErrMalformedSchedule, strings.Join(e.Cycle, " -> "))
	case len(e.Heads) == 0:
		return fmt.Sprintf("%s: no head test case (every case has a predecessor)", ErrMalformedSchedule)
	default:
		return fmt.Sprintf("%s: %d head test cases: %s", ErrMalformedSchedule, len(e.Heads), strings.Join(e.Heads, ", "))
	}
}

func (e *MalformedScheduleError) Unwrap() error { return ErrMalformedSchedule }

// NonNumericDurationError reports a duration cell that did not parse. It is
// never fatal: the value is excluded from aggregation.
type NonNumericDurationError struct {
	TestCase string
	Value    string
}

func (e *NonNumericDurationError) Error() string {
	return fmt.Sprintf("test case %s: non-numeric duration %q", e.TestCase, e.Value)
}
