package export

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeStored       = "stored"
	outcomeTransport    = "transport_error"
	outcomeHTTPStatus   = "http_error"
	outcomeGraphQL      = "graphql_error"
	outcomeEmptyPayload = "empty_payload"
	outcomeBuild        = "build_error"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substratescanner_export_submissions_total",
			Help: "Total number of remote event submissions by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "substratescanner_export_submission_duration_seconds",
			Help:    "Duration of remote event submissions",
			Buckets: prometheus.DefBuckets,
		},
	)

	PayloadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "substratescanner_export_payload_bytes",
			Help:    "Size of the submitted mutation documents",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)
)

func SubmissionFinished(outcome string, duration time.Duration) {
	SubmissionsTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		SubmissionDuration.Observe(duration.Seconds())
	}
}
