package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPC metrics
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substratescanner_rpc_requests_total",
			Help: "Total number of RPC requests by method",
		},
		[]string{"method"},
	)

	RPCErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substratescanner_rpc_errors_total",
			Help: "Total number of RPC errors by method and type",
		},
		[]string{"method", "error_type"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "substratescanner_rpc_request_duration_seconds",
			Help:    "Duration of RPC requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RPCRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substratescanner_rpc_retries_total",
			Help: "Total number of retried RPC operations",
		},
		[]string{"operation"},
	)

	MetadataLoads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_rpc_metadata_loads_total",
			Help: "Total number of runtime metadata downloads (one per new spec version)",
		},
	)

	HealthCheckFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_rpc_health_check_failures_total",
			Help: "Total number of failed system_health probes",
		},
	)
)

func RPCMethodInc(method string) {
	RPCRequests.WithLabelValues(method).Inc()
}

func RPCMethodDuration(method string, duration time.Duration) {
	RPCDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func RPCMethodError(method, errorType string) {
	RPCErrors.WithLabelValues(method, errorType).Inc()
}

func RPCRetryInc(operation string) {
	RPCRetries.WithLabelValues(operation).Inc()
}
