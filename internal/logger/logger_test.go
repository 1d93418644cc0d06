package logger_test

import (
	"testing"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/stretchr/testify/require"
)

func loggingConfig(levels map[string]string) *config.LoggingConfig {
	cfg := &config.LoggingConfig{DefaultLevel: "info", ComponentLevels: levels}
	cfg.ApplyDefaults()
	return cfg
}

func TestNewComponentLoggerFromConfig_PerComponentLevels(t *testing.T) {
	cfg := loggingConfig(map[string]string{
		common.ComponentRPC:         "warn",
		common.ComponentScanner:     "debug",
		common.ComponentScanStore:   "error",
		common.ComponentMaintenance: " WARN ",
	})
	require.NoError(t, cfg.Validate())

	expected := map[string]string{
		common.ComponentScanner:     "debug",
		common.ComponentRPC:         "warn",
		common.ComponentExport:      "info",
		common.ComponentSession:     "info",
		common.ComponentScanStore:   "error",
		common.ComponentMaintenance: "warn",
		common.ComponentAPI:         "info",
	}
	require.Len(t, expected, len(common.AllComponents))

	for component, level := range expected {
		t.Run(component, func(t *testing.T) {
			log := logger.NewComponentLoggerFromConfig(component, cfg)
			require.Equal(t, component, log.GetComponent())
			require.Equal(t, level, log.GetLevel())
		})
	}
}

func TestNewComponentLoggerFromConfig_Defaults(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		log := logger.NewComponentLoggerFromConfig(common.ComponentSession, nil)
		require.Equal(t, "info", log.GetLevel())
	})

	t.Run("config without logging section", func(t *testing.T) {
		log := config.Default().ComponentLogger(common.ComponentExport)
		require.Equal(t, common.ComponentExport, log.GetComponent())
		require.Equal(t, "info", log.GetLevel())
	})

	t.Run("default level applies to unlisted components", func(t *testing.T) {
		cfg := &config.Config{Logging: &config.LoggingConfig{DefaultLevel: "debug"}}
		cfg.ApplyDefaults()

		log := cfg.ComponentLogger(common.ComponentAPI)
		require.Equal(t, "debug", log.GetLevel())
	})
}

func TestLoggingConfig_RejectsUnknownComponentsAndLevels(t *testing.T) {
	tests := []struct {
		name   string
		levels map[string]string
		errMsg string
	}{
		{
			name:   "unknown component",
			levels: map[string]string{"downloader": "debug"},
			errMsg: "unknown component 'downloader'",
		},
		{
			name:   "invalid level",
			levels: map[string]string{common.ComponentRPC: "trace"},
			errMsg: "logging.component_levels[rpc]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorContains(t, loggingConfig(tt.levels).Validate(), tt.errMsg)
		})
	}
}

func TestNewComponentLogger_PanicsOnInvalidLevel(t *testing.T) {
	require.Panics(t, func() {
		logger.NewComponentLogger(common.ComponentScanner, "verbose", false)
	})
}

func TestLogger_WithComponentSharesLevel(t *testing.T) {
	parent := logger.NewComponentLogger(common.ComponentSession, "info", false)
	child := parent.WithComponent(common.ComponentScanner)

	require.Equal(t, common.ComponentScanner, child.GetComponent())
	require.Equal(t, "info", child.GetLevel())

	require.NoError(t, parent.SetLevel("debug"))
	require.Equal(t, "debug", child.GetLevel())

	require.Error(t, child.SetLevel("loud"))
	require.Equal(t, "debug", parent.GetLevel())
}

func TestNewLogger_Development(t *testing.T) {
	log, err := logger.NewLogger("warn", true)
	require.NoError(t, err)
	require.Empty(t, log.GetComponent())
	require.Equal(t, "warn", log.GetLevel())

	_, err = logger.NewLogger("invalid", false)
	require.Error(t, err)
}

func TestNewNopLogger(t *testing.T) {
	log := logger.NewNopLogger()
	require.NotNil(t, log.SugaredLogger)
	require.Equal(t, "info", log.GetLevel())

	log.Infow("discarded", "component", common.ComponentAPI)
	require.NoError(t, log.Close())
}
