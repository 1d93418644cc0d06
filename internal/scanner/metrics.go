package scanner

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCompleted    = "completed"
	outcomeInvalidRange = "invalid_range"
	outcomeHeadExceeded = "head_exceeded"
	outcomeRPCError     = "rpc_error"
)

var (
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substratescanner_scans_total",
			Help: "Total number of block range scans by outcome",
		},
		[]string{"outcome"},
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "substratescanner_scan_duration_seconds",
			Help:    "Duration of block range scans by outcome",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"outcome"},
	)

	BlocksScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_blocks_scanned_total",
			Help: "Total number of blocks whose events were fetched",
		},
	)

	EventsCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_events_collected_total",
			Help: "Total number of events normalized",
		},
	)
)

func ScanFinished(outcome string, duration time.Duration) {
	ScansTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		ScanDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	}
}

func BlockScanned(events int) {
	BlocksScanned.Inc()
	EventsCollected.Add(float64(events))
}

func outcomeLabel(err error) string {
	var headErr *ChainHeadExceededError
	var rangeErr *RangeError

	switch {
	case errors.As(err, &rangeErr):
		return outcomeInvalidRange
	case errors.As(err, &headErr):
		return outcomeHeadExceeded
	default:
		return outcomeRPCError
	}
}
