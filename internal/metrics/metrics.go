// Package metrics defines the Prometheus instruments for the sync core.
// They are registered on the default registry; the client daemon exposes
// them on the optional metrics listen address.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncPassesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gs_sync_passes_total",
		Help: "Total number of queue drain passes executed.",
	})

	SyncOpsSucceededTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gs_sync_ops_succeeded_total",
		Help: "Total number of queued operations replayed successfully.",
	},
		[]string{"entity_type"},
	)

	SyncOpsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gs_sync_ops_failed_total",
		Help: "Total number of failed replay attempts (operation kept for retry).",
	},
		[]string{"entity_type"},
	)

	SyncOpsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gs_sync_ops_dropped_total",
		Help: "Total number of operations dropped after exceeding the retry ceiling.",
	},
		[]string{"entity_type"},
	)

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gs_queue_depth",
		Help: "Current number of operations waiting in the sync queue.",
	})

	ProbeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gs_probe_failures_total",
		Help: "Total number of failed remote reachability probes.",
	})
)
