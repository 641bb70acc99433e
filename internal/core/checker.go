package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"projectdash/pkg/domain"
)

// Checker runs the consistency rules over a pair of tables and assembles the
// issue report. It holds no per-call state and is safe for concurrent use.
type Checker struct {
	engine  *RulesEngine
	metrics MetricsRecorder
	logger  *zap.Logger
}

// CheckerOption customizes a Checker.
type CheckerOption func(*Checker)

// WithCheckerLogger sets the logger used for diagnostics.
func WithCheckerLogger(l *zap.Logger) CheckerOption {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCheckerMetrics sets the metrics recorder.
func WithCheckerMetrics(m MetricsRecorder) CheckerOption {
	return func(c *Checker) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewChecker builds a checker with the default rules for policy.
func NewChecker(policy Policy, opts ...CheckerOption) *Checker {
	c := newChecker(opts)
	c.engine = defaultRulesEngine(policy, c.logger)
	return c
}

// NewCheckerWithEngine builds a checker around a caller-supplied engine.
func NewCheckerWithEngine(engine *RulesEngine, opts ...CheckerOption) *Checker {
	c := newChecker(opts)
	c.engine = engine
	return c
}

func newChecker(opts []CheckerOption) *Checker {
	c := &Checker{metrics: NoopMetrics{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check evaluates the rules. Nil tables produce the empty report. A rule
// error, such as *domain.MalformedScheduleError, aborts the check and no
// report is returned.
func (c *Checker) Check(ctx context.Context, tables *Tables) (Report, error) {
	if tables == nil {
		return domain.NewReport(), nil
	}
	start := time.Now()
	res, err := c.engine.Evaluate(ctx, *tables)
	c.metrics.Observe(ctx, "check", err == nil, time.Since(start))
	if err != nil {
		c.logger.Warn("consistency check failed", zap.Error(err))
		return nil, err
	}
	report := domain.Assemble(res)
	for _, section := range domain.Sections() {
		for _, kind := range []domain.Kind{domain.KindWarning, domain.KindError} {
			n := 0
			for _, iss := range report[section] {
				if iss.Kind == kind {
					n++
				}
			}
			c.metrics.RecordIssues(section, kind.String(), n)
		}
	}
	c.logger.Debug("consistency check complete",
		zap.Int("violations", len(res.Violations)),
		zap.Int("errors", report.Count(domain.KindError)),
		zap.Int("warnings", report.Count(domain.KindWarning)),
	)
	return report, nil
}
