package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricPlaygroundCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_completions_total",
			Help: "Number of playground completions, by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	MetricEvaluationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_runs_total",
			Help: "Number of model runs executed by evaluations, by status",
		},
		[]string{"model", "status"},
	)
	MetricStripeWebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_webhook_events_total",
			Help: "Number of Stripe webhook events received, by type",
		},
		[]string{"type"},
	)
)

var MetricCompletionLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "llm_completion_latency_seconds",
		Help:    "Duration of LLM completions, by provider",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
	},
	[]string{"provider"},
)
