package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"projectdash/pkg/domain"
)

func TestCheckNilTablesYieldsEmptyReport(t *testing.T) {
	report, err := NewChecker(domain.DefaultPolicy()).Check(context.Background(), nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, s := range domain.Sections() {
		if iss, ok := report[s]; !ok || iss == nil || len(iss) != 0 {
			t.Fatalf("section %s: expected empty bucket, got %v", s, iss)
		}
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	tables := strategyTables(
		row("TC1", "NORTH_B", "SOUTH_C", "SOUTH_EQ", "40", "TC2"),
		row("TC2", "SOUTH_R", "NORTH_A", "EAST_EQ", "25", "TC3"),
		row("TC3", "SOUTH_R", "SOUTH_C", "SOUTH_EQ", "5", ""),
	)
	checker := NewChecker(domain.DefaultPolicy())
	first, err := checker.Check(context.Background(), tables)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	second, err := checker.Check(context.Background(), tables)
	if err != nil {
		t.Fatalf("check again: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("reports differ:\n%s\n%s", a, b)
	}
	if first.Count(domain.KindWarning) != 1 {
		t.Fatalf("expected one duration warning, got %d", first.Count(domain.KindWarning))
	}
	if first.Count(domain.KindError) != 3 {
		t.Fatalf("expected three location errors, got %+v", first[SectionTestStrategy])
	}
	issues := first[SectionTestStrategy]
	if issues[0].Kind != domain.KindWarning {
		t.Fatalf("expected warnings first, got %+v", issues)
	}
}

func TestCheckMalformedScheduleReturnsNoReport(t *testing.T) {
	tables := strategyTables(
		row("A", "F_R", "F", "F_EQ", "1", "B"),
		row("B", "F_R", "F", "F_EQ", "1", "A"),
	)
	report, err := NewChecker(domain.DefaultPolicy()).Check(context.Background(), tables)
	if !errors.Is(err, domain.ErrMalformedSchedule) {
		t.Fatalf("expected malformed schedule, got %v", err)
	}
	if report != nil {
		t.Fatalf("expected nil report on error")
	}
}

func TestCheckRecordsMetrics(t *testing.T) {
	rec := &recordingMetrics{}
	checker := NewChecker(domain.DefaultPolicy(), WithCheckerMetrics(rec), WithCheckerLogger(nil))
	_, err := checker.Check(context.Background(), strategyTables(row("TC1", "NORTH_B", "SOUTH_C", "SOUTH_EQ", "1", "")))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(rec.ops) != 1 || rec.ops[0] != "check" {
		t.Fatalf("expected one check observation, got %v", rec.ops)
	}
	if rec.issues[string(SectionTestStrategy)+"/error"] != 1 {
		t.Fatalf("expected one recorded error issue, got %v", rec.issues)
	}
}

type recordingMetrics struct {
	ops    []string
	issues map[string]int
}

func (r *recordingMetrics) Observe(_ context.Context, op string, _ bool, _ time.Duration) {
	r.ops = append(r.ops, op)
}

func (r *recordingMetrics) RecordIssues(section Section, kind string, count int) {
	if r.issues == nil {
		r.issues = make(map[string]int)
	}
	r.issues[string(section)+"/"+kind] += count
}

func TestCheckLogsExcludedDurations(t *testing.T) {
	obs, logs := observer.New(zap.DebugLevel)
	c := NewChecker(domain.DefaultPolicy(), WithCheckerLogger(zap.New(obs)))
	tables := strategyTables(
		row("TC1", "R", "SITE_A", "EQ", "tbd", "TC2"),
		row("TC2", "R", "SITE_A", "EQ", "5", ""),
	)
	if _, err := c.Check(context.Background(), tables); err != nil {
		t.Fatalf("check: %v", err)
	}
	excluded := logs.FilterMessage("duration excluded from estimate").All()
	if len(excluded) != 1 {
		t.Fatalf("expected one excluded duration log, got %d", len(excluded))
	}
}
