package main

import (
	"testing"

	pkgconfig "github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestCheckServeConfig(t *testing.T) {
	tests := []struct {
		name    string
		api     bool
		metrics *pkgconfig.MetricsConfig
		wantErr bool
	}{
		{name: "api only", api: true},
		{name: "metrics only", metrics: &pkgconfig.MetricsConfig{Enabled: true}},
		{name: "api and metrics", api: true, metrics: &pkgconfig.MetricsConfig{Enabled: true}},
		{name: "metrics section disabled", metrics: &pkgconfig.MetricsConfig{}, wantErr: true},
		{name: "nothing enabled", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := pkgconfig.Default()
			cfg.API = &pkgconfig.APIConfig{Enabled: tt.api}
			cfg.Metrics = tt.metrics

			err := checkServeConfig(cfg)
			if tt.wantErr {
				require.ErrorContains(t, err, "nothing to serve")
				return
			}
			require.NoError(t, err)
		})
	}
}
