package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_store_scans_saved_total",
			Help: "Total number of scans written to the local archive",
		},
	)

	eventsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_store_events_saved_total",
			Help: "Total number of events written to the local archive",
		},
	)

	saveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "substratescanner_store_save_duration_seconds",
			Help:    "Duration of archiving one scan",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func ScanSavedLog(events int, duration time.Duration) {
	scansSaved.Inc()
	eventsSaved.Add(float64(events))
	saveDuration.Observe(duration.Seconds())
}
