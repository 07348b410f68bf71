package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storageOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hocus_focus",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Storage engine operations by collection, operation and outcome.",
	}, []string{"collection", "op", "outcome"})
	storageLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hocus_focus",
		Subsystem: "storage",
		Name:      "operation_duration_seconds",
		Help:      "Latency of storage engine operations.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"collection", "op"})
	membershipChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hocus_focus",
		Subsystem: "membership",
		Name:      "changes_total",
		Help:      "Join and leave transitions applied to activities.",
	}, []string{"transition"})
	httpRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hocus_focus",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func init() {
	prometheus.MustRegister(storageOps, storageLatency, membershipChanges, httpRequests)
}

// ObserveStorageOp records the outcome and latency of one storage call.
func ObserveStorageOp(collection, op string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storageOps.WithLabelValues(collection, op, outcome).Inc()
	storageLatency.WithLabelValues(collection, op).Observe(time.Since(started).Seconds())
}

// RecordMembershipChange counts a join or leave.
func RecordMembershipChange(transition string) {
	membershipChanges.WithLabelValues(transition).Inc()
}

// ObserveHTTPRequest records one served request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(route, method string, status int, started time.Time) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Observe(time.Since(started).Seconds())
}
