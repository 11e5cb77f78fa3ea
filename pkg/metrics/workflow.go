package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const OutcomeOK = "ok"

// Workflow names used as label values.
const (
	WorkflowRegister    = "register"
	WorkflowLogin       = "login"
	WorkflowProfileSync = "profile_sync"
)

// WorkflowMetrics records outcomes and latency of the identity workflows.
// A nil *WorkflowMetrics is a valid no-op recorder.
type WorkflowMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "topicdesk",
		Name:      "workflow_duration_seconds",
		Help:      "Duration of identity workflows in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"workflow"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "topicdesk",
		Name:      "workflow_outcomes_total",
		Help:      "Identity workflow completions by outcome.",
	}, []string{"workflow", "outcome"})
	reg.MustRegister(duration, outcomes)
	return &WorkflowMetrics{duration: duration, outcomes: outcomes}
}

// Observe records one completed run. outcome is OutcomeOK or an error code.
func (m *WorkflowMetrics) Observe(workflow, outcome string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	workflow = normalizeLabel(workflow)
	m.duration.WithLabelValues(workflow).Observe(elapsed.Seconds())
	m.outcomes.WithLabelValues(workflow, normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
