package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/config"
	"github.com/goran-ethernal/SubstrateScanner/internal/export"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/internal/rpc"
	"github.com/goran-ethernal/SubstrateScanner/internal/session"
	"github.com/goran-ethernal/SubstrateScanner/internal/store"
	pkgconfig "github.com/goran-ethernal/SubstrateScanner/pkg/config"
	pkgrpc "github.com/goran-ethernal/SubstrateScanner/pkg/rpc"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scanner",
	Short: "SubstrateScanner - Substrate block range event scanner",
	Long: `SubstrateScanner collects every runtime event emitted in a range of blocks
of a Substrate chain, lets you filter them by name, module and argument type,
and can ship the result to a remote GraphQL archive.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (.yaml, .yml, .json or .toml); defaults are used when empty")

	rootCmd.AddCommand(scanCmd, serveCmd, headCmd, schemaCmd)
}

// loadConfig reads configPath, or returns the defaults when no file is given.
func loadConfig() (*pkgconfig.Config, error) {
	if configPath == "" {
		return pkgconfig.Default(), nil
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// dialer opens a fresh node connection per call using the chain settings of cfg.
func dialer(cfg *pkgconfig.Config) session.DialFunc {
	log := cfg.ComponentLogger(common.ComponentRPC)

	return func(ctx context.Context, endpoint string) (pkgrpc.SubstrateClient, error) {
		client, err := rpc.NewClient(ctx, endpoint, cfg.Chain, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// components wires the optional archive and exporter configured in cfg.
type components struct {
	archive  *store.ScanStore
	exporter *export.Submitter
}

func newComponents(cfg *pkgconfig.Config, forceExport bool) (*components, error) {
	c := &components{}

	if cfg.Store != nil {
		archive, err := store.New(*cfg.Store, cfg.ComponentLogger(common.ComponentScanStore))
		if err != nil {
			return nil, fmt.Errorf("failed to open scan archive: %w", err)
		}
		c.archive = archive
	}

	if cfg.Export != nil && (cfg.Export.Enabled || forceExport) {
		if cfg.Export.ServerURL == "" {
			c.close(nil)
			return nil, fmt.Errorf("export.server_url is required to submit events")
		}
		c.exporter = export.NewSubmitter(*cfg.Export, cfg.ComponentLogger(common.ComponentExport))
	} else if forceExport {
		c.close(nil)
		return nil, fmt.Errorf("export.server_url is required to submit events")
	}

	return c, nil
}

func (c *components) manager(cfg *pkgconfig.Config) *session.Manager {
	var (
		archive  session.Archive
		exporter session.Exporter
	)

	if c.archive != nil {
		archive = c.archive
	}
	if c.exporter != nil {
		exporter = c.exporter
	}

	return session.NewManager(cfg, dialer(cfg), archive, exporter, cfg.ComponentLogger(common.ComponentSession))
}

func (c *components) close(log *logger.Logger) {
	if c.archive == nil {
		return
	}

	if err := c.archive.Close(); err != nil && log != nil {
		log.Warnw("failed to close scan archive", "error", err)
	}
}
