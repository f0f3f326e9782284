// Package observability - метрики prometheus по переводам кандидатов и письмам
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultError    = "error"
)

var (
	stageTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_pipeline_stage_transitions_total",
			Help: "Total number of candidate stage transitions",
		},
		[]string{"from", "to", "result"},
	)

	transitionDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hr_pipeline_transition_duration_seconds",
			Help:    "Candidate stage transition duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	notificationEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hr_pipeline_notification_emails_total",
			Help: "Total number of candidate notification emails by kind and status",
		},
		[]string{"kind", "status"},
	)
)

func RecordTransition(from, to, result string, started time.Time) {
	stageTransitionsTotal.WithLabelValues(from, to, result).Inc()
	transitionDurationSeconds.Observe(time.Since(started).Seconds())
}

func RecordEmail(kind, status string) {
	notificationEmailsTotal.WithLabelValues(kind, status).Inc()
}
