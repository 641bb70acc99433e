package domain

import "context"

// Rule defines a consistency check evaluated against a pair of loaded tables.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, tables Tables) (Result, error)
}

// Violation reports a single finding emitted by a rule.
type Violation struct {
	Rule    string
	Section Section
	Issue   Issue
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends the violations of other into r.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasErrors reports whether any violation is of kind error.
func (r Result) HasErrors() bool {
	for _, v := range r.Violations {
		if v.Issue.Kind == KindError {
			return true
		}
	}
	return false
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Rules returns the names of registered rules in evaluation order.
func (e *RulesEngine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.Name())
	}
	return names
}

// Evaluate executes all registered rules and aggregates their results. The
// first rule error aborts evaluation.
func (e *RulesEngine) Evaluate(ctx context.Context, tables Tables) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, tables)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
