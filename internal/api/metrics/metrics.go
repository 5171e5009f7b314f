// Package metrics defines and registers all custom Prometheus metrics for
// the dashboard API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time via promauto;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Usage session metrics ─────────────────────────────────────────────────────

// SessionsStartedTotal counts usage sessions opened by tool launches.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of usage sessions opened.",
	},
)

// SessionsClosedTotal counts close signals by outcome.
// Label:
//   - result: "closed" (first close applied) or "duplicate" (no-op repeat)
var SessionsClosedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_closed_total",
		Help:      "Total number of usage session close signals, by outcome.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Analytics metrics ─────────────────────────────────────────────────────────

// AnalyticsQueryDuration measures how long each aggregate query takes.
// Label:
//   - query: "summary", "top_tools", "user_activity", or "recent"
var AnalyticsQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analytics_query_duration_seconds",
		Help:      "Duration of analytics aggregate queries.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"query"},
)
