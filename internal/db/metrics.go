package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	maintenanceRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_maintenance_runs_total",
			Help: "Total number of scan archive maintenance runs",
		},
	)

	maintenanceOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substratescanner_maintenance_outcomes_total",
			Help: "Total number of scan archive maintenance runs by outcome",
		},
		[]string{"status"},
	)

	maintenanceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "substratescanner_maintenance_duration_seconds",
			Help:    "Duration of scan archive maintenance runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	maintenanceLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "substratescanner_maintenance_last_run_timestamp",
			Help: "Unix timestamp of the last maintenance run",
		},
	)

	maintenanceSpaceReclaimed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "substratescanner_maintenance_space_reclaimed_bytes",
			Help: "Bytes reclaimed by the last maintenance run",
		},
	)

	scansPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_scans_pruned_total",
			Help: "Total number of archived scans removed by retention",
		},
	)

	walCheckpoints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substratescanner_wal_checkpoint_total",
			Help: "Total number of WAL checkpoint operations",
		},
		[]string{"mode"},
	)

	vacuumRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "substratescanner_vacuum_total",
			Help: "Total number of VACUUM operations",
		},
	)

	dbSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "substratescanner_db_size_bytes",
			Help: "Scan archive size on disk, including WAL files",
		},
	)
)

func MaintenanceRunsInc() {
	maintenanceRuns.Inc()
}

func MaintenanceDurationLog(duration time.Duration) {
	maintenanceDuration.Observe(duration.Seconds())
	maintenanceLastRun.Set(float64(time.Now().UTC().Unix()))
}

func MaintenanceOutcomeInc(err error) {
	if err != nil {
		maintenanceOutcomes.WithLabelValues("error").Inc()
		return
	}
	maintenanceOutcomes.WithLabelValues("success").Inc()
}

func MaintenanceSpaceReclaimedLog(bytesReclaimed uint64) {
	maintenanceSpaceReclaimed.Set(float64(bytesReclaimed))
}

func ScansPrunedAdd(n int64) {
	scansPruned.Add(float64(n))
}

func WALCheckpointInc(mode string) {
	walCheckpoints.WithLabelValues(mode).Inc()
}

func VacuumRunsInc() {
	vacuumRuns.Inc()
}

func DBSizeLog(sizeBytes int64) {
	dbSize.Set(float64(sizeBytes))
}
