package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/metrics"
	"github.com/goran-ethernal/SubstrateScanner/pkg/api"
	pkgconfig "github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const metricsShutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scan API and the metrics server",
	RunE:  runServe,
}

// checkServeConfig rejects configurations in which serve would have nothing to run.
func checkServeConfig(cfg *pkgconfig.Config) error {
	if cfg.API.Enabled || (cfg.Metrics != nil && cfg.Metrics.Enabled) {
		return nil
	}

	return errors.New("nothing to serve: enable api or metrics in the configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.API == nil {
		cfg.API = &pkgconfig.APIConfig{Enabled: true}
		cfg.API.ApplyDefaults()
	}

	if err := checkServeConfig(cfg); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log := cfg.ComponentLogger(common.ComponentAPI)

	comps, err := newComponents(cfg, false)
	if err != nil {
		return err
	}
	defer comps.close(log)

	m := comps.manager(cfg)
	defer m.Close()

	g, gctx := errgroup.WithContext(ctx)

	if comps.archive != nil {
		if err := comps.archive.Start(gctx); err != nil {
			return fmt.Errorf("failed to start archive maintenance: %w", err)
		}
	}

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, log)
		if err := metricsServer.Start(gctx); err != nil {
			return err
		}

		g.Go(func() error {
			<-gctx.Done()

			stopCtx, stopCancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer stopCancel()
			return metricsServer.Stop(stopCtx)
		})
	}

	apiServer := api.NewServer(cfg.API, m, log)
	g.Go(func() error {
		return apiServer.Start(gctx)
	})

	log.Infow("SubstrateScanner started",
		"version", version,
		"rpc_url", cfg.Chain.RPCURL,
		"api", cfg.API.Enabled,
		"archive", comps.archive != nil,
		"export", comps.exporter != nil,
	)

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("SubstrateScanner stopped")
	return nil
}
