// Package metrics defines the custom Prometheus metrics for the donation
// service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "connect_share"

// ── Donation metrics ──────────────────────────────────────────────────────────

// DonationsCreatedTotal counts newly offered donations.
// Label:
//   - replay: "true" when an idempotency key matched an earlier create
var DonationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_created_total",
		Help:      "Total number of donations created.",
	},
	[]string{"replay"},
)

// TransitionsTotal counts lifecycle transition attempts.
// Labels:
//   - to: the target status ("claimed", "delivered")
//   - result: "ok", "invalid_transition", "not_found", "forbidden", "error"
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of donation status transition attempts, by target and result.",
	},
	[]string{"to", "result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts sink deliveries.
// Labels:
//   - sink: "log", "telegram"
//   - result: "ok" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification deliveries, by sink and result.",
	},
	[]string{"sink", "result"},
)

// NotificationsDroppedTotal counts events dropped because a worker queue was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notification events dropped on a full queue.",
	},
)

// NotificationQueueDepth tracks the events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
