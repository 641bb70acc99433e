package domain

import (
	"fmt"
	"sort"
)

// Kind classifies an issue. Only the two declared kinds are valid.
type Kind int

const (
	// KindWarning flags a condition worth attention that does not invalidate the plan.
	KindWarning Kind = iota + 1
	// KindError flags an inconsistency in the planned campaign.
	KindError
)

// String returns the wire form of the kind.
func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindWarning, KindError:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid issue kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "warning":
		*k = KindWarning
	case "error":
		*k = KindError
	default:
		return fmt.Errorf("invalid issue kind %q", string(b))
	}
	return nil
}

// Issue is a single finding rendered to users.
type Issue struct {
	Kind    Kind   `json:"type"`
	Message string `json:"message"`
}

// Warning builds a warning issue.
func Warning(msg string) Issue { return Issue{Kind: KindWarning, Message: msg} }

// Error builds an error issue.
func Error(msg string) Issue { return Issue{Kind: KindError, Message: msg} }

// Section names a checked area of the project.
type Section string

const (
	SectionTestStrategy Section = "test_strategy"
	SectionRequirements Section = "requirements"
	SectionTestResults  Section = "test_results"
)

// Sections returns every section in display order.
func Sections() []Section {
	return []Section{SectionTestStrategy, SectionRequirements, SectionTestResults}
}

// Valid reports whether s is one of the declared sections.
func (s Section) Valid() bool {
	switch s {
	case SectionTestStrategy, SectionRequirements, SectionTestResults:
		return true
	}
	return false
}

// Report maps every section to its deduplicated issues. All sections are
// always present, empty sections hold an empty (non-nil) slice.
type Report map[Section][]Issue

// NewReport returns the canonical empty report.
func NewReport() Report {
	r := make(Report, 3)
	for _, s := range Sections() {
		r[s] = []Issue{}
	}
	return r
}

// Issues returns the issues recorded for a section.
func (r Report) Issues(s Section) []Issue {
	return r[s]
}

// Empty reports whether no section carries an issue.
func (r Report) Empty() bool {
	for _, issues := range r {
		if len(issues) > 0 {
			return false
		}
	}
	return true
}

// Count returns the number of issues of the given kind across all sections.
func (r Report) Count(kind Kind) int {
	n := 0
	for _, issues := range r {
		for _, iss := range issues {
			if iss.Kind == kind {
				n++
			}
		}
	}
	return n
}

// Assemble buckets violations by section, drops exact duplicates and sorts
// each bucket by kind then message.
func Assemble(res Result) Report {
	report := NewReport()
	seen := make(map[Section]map[Issue]struct{}, 3)
	for _, v := range res.Violations {
		section := v.Section
		if !section.Valid() {
			continue
		}
		if seen[section] == nil {
			seen[section] = make(map[Issue]struct{})
		}
		if _, dup := seen[section][v.Issue]; dup {
			continue
		}
		seen[section][v.Issue] = struct{}{}
		report[section] = append(report[section], v.Issue)
	}
	for _, issues := range report {
		sort.SliceStable(issues, func(i, j int) bool {
			if issues[i].Kind != issues[j].Kind {
				return issues[i].Kind < issues[j].Kind
			}
			return issues[i].Message < issues[j].Message
		})
	}
	return report
}
