package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WeightValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gdss_weight_validations_total",
		Help: "Weight assignments validated before submission, by outcome.",
	}, []string{"outcome"})

	Reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gdss_reconciliations_total",
		Help: "Rankings reconciled, by mode.",
	}, []string{"mode"})

	ReconcilePlaceholders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gdss_reconcile_placeholders_total",
		Help: "Ranked results whose alternative was missing and got a placeholder name.",
	})

	ReconcileDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gdss_reconcile_dropped_total",
		Help: "Result rows dropped because score or rank was not computed.",
	})

	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gdss_backend_request_duration_seconds",
		Help:    "Latency of calls to the GDSS backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	SnapshotsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gdss_ranking_snapshots_total",
		Help: "Ranking snapshots stored after a change was detected.",
	})
)
