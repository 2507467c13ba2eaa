// Package metrics defines all custom Prometheus metrics for the CRM
// console gateway. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm_console"

// ── Query cache metrics ───────────────────────────────────────────────────────

// CacheLookupsTotal counts cache reads by resource kind and result.
// Labels:
//   - kind: resource kind ("leads", "units", ...)
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of query cache lookups, by kind and result.",
	},
	[]string{"kind", "result"},
)

// CacheInvalidationsTotal counts invalidation fan-outs by the mutation
// that triggered them.
// Label:
//   - op: mutation identifier (e.g. "booking.create")
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache invalidations, by triggering mutation.",
	},
	[]string{"op"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the CRM API.
// Labels:
//   - method: HTTP method
//   - outcome: "ok" or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the CRM API.",
	},
	[]string{"method", "outcome"},
)

// UpstreamRequestDuration measures CRM API round-trip time.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of CRM API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsStartedTotal counts sessions opened, by login method.
// Label:
//   - method: "password", "otp", or "email_verification"
var SessionsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of console sessions opened, by login method.",
	},
	[]string{"method"},
)

// SessionsEndedTotal counts sessions closed.
// Label:
//   - reason: "logout" or "refresh_rejected"
var SessionsEndedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of console sessions closed, by reason.",
	},
	[]string{"reason"},
)

// ── Import metrics ────────────────────────────────────────────────────────────

// ImportJobPollsTotal counts import-job polls by observed job status.
var ImportJobPollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_job_polls_total",
		Help:      "Total number of import job status polls, by observed status.",
	},
	[]string{"status"},
)
