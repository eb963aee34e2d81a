package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InteractionsTotal counts social interactions by operation and outcome.
	InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nabta_interactions_total",
		Help: "Total number of social interactions by operation and outcome",
	}, []string{"operation", "outcome"})

	// NotificationsCreated counts notification rows written by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nabta_notifications_created_total",
		Help: "Total number of notifications created by type",
	}, []string{"type"})

	// ReconcileRuns counts reconciliation runs by outcome.
	ReconcileRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nabta_reconcile_runs_total",
		Help: "Total number of circle reconciliation runs by outcome",
	}, []string{"outcome"})

	// ReconcileCorrected counts circles whose member count was corrected.
	ReconcileCorrected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nabta_reconcile_corrected_circles_total",
		Help: "Total number of circles whose member count was corrected",
	})

	// ReconcileDuration records the duration of full reconciliation runs.
	ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nabta_reconcile_duration_seconds",
		Help:    "Duration of full circle reconciliation runs in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// OutboxProcessed counts outbox tasks processed by kind and outcome.
	OutboxProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nabta_outbox_processed_total",
		Help: "Total number of outbox tasks processed by kind and outcome",
	}, []string{"kind", "outcome"})

	// OutboxPending is the number of outbox tasks waiting to run.
	OutboxPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nabta_outbox_pending_tasks",
		Help: "Number of outbox tasks waiting to be processed",
	})

	// CoachRequests counts AI coach upstream calls by outcome.
	CoachRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nabta_coach_requests_total",
		Help: "Total number of AI coach upstream requests by outcome",
	}, []string{"outcome"})

	// CoachLatency records AI coach upstream latency.
	CoachLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nabta_coach_request_latency_seconds",
		Help:    "AI coach upstream request latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nabta_websocket_backpressure_drops_total",
		Help: "Messages dropped due to websocket client backpressure by hub and reason",
	}, []string{"hub", "reason"})
)
