// Package metrics defines and registers all custom Prometheus metrics for the
// performance goal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "perfgoals"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// GoalsCreatedTotal counts newly created goals.
// Label:
//   - category: the goal category (e.g. "TECHNICAL")
var GoalsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goals_created_total",
		Help:      "Total number of goals created, by category.",
	},
	[]string{"category"},
)

// TransitionsAppliedTotal counts status transitions that were applied.
// Labels:
//   - from: the previous goal status (e.g. "PENDING")
//   - to: the new goal status (e.g. "APPROVED")
var TransitionsAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_applied_total",
		Help:      "Total number of goal status transitions successfully applied.",
	},
	[]string{"from", "to"},
)

// TransitionsRejectedTotal counts transitions refused by the authorizer.
// Label:
//   - reason: "invalid_transition" or "forbidden"
var TransitionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_rejected_total",
		Help:      "Total number of goal status transitions rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingsSubmittedTotal counts rating upserts.
// Label:
//   - kind: "SELF" or "MANAGER"
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of rating submissions, by kind.",
	},
	[]string{"kind"},
)

// ── Snapshot metrics ──────────────────────────────────────────────────────────

// SnapshotRefreshDuration measures how long a dashboard snapshot refresh takes.
var SnapshotRefreshDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_refresh_duration_seconds",
		Help:      "Duration of a dashboard snapshot recompute and cache write.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// SnapshotRefreshFailures counts poller refresh cycles that failed.
var SnapshotRefreshFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_refresh_failures_total",
		Help:      "Total number of failed dashboard snapshot refresh cycles.",
	},
)
