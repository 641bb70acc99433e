package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder receives check timings and issue counts.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
	RecordIssues(section Section, kind string, count int)
}

// NoopMetrics discards all observations.
type NoopMetrics struct{}

func (NoopMetrics) Observe(context.Context, string, bool, time.Duration) {}
func (NoopMetrics) RecordIssues(Section, string, int)                    {}

// PrometheusRecorder exports check latencies and issue counters.
type PrometheusRecorder struct {
	durations *prometheus.HistogramVec
	issues    *prometheus.CounterVec
}

// NewPrometheusRecorder registers the projectdash collectors on reg. A nil
// registerer falls back to prometheus.DefaultRegisterer.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusRecorder{
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "projectdash",
			Name:      "check_duration_seconds",
			Help:      "Latency of project operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation", "status"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "projectdash",
			Name:      "issues_total",
			Help:      "Issues reported by consistency checks.",
		}, []string{"section", "kind"}),
	}
	for _, c := range []prometheus.Collector{r.durations, r.issues} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe records an operation outcome.
func (r *PrometheusRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.durations.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// RecordIssues adds count issues of kind to the section counter.
func (r *PrometheusRecorder) RecordIssues(section Section, kind string, count int) {
	if count <= 0 {
		return
	}
	r.issues.WithLabelValues(string(section), kind).Add(float64(count))
}
