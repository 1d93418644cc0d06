package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var activeScans = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "substratescanner_active_scans",
		Help: "Number of scans currently running",
	},
)
