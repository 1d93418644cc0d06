package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/internal/session"
	pkgconfig "github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/spf13/cobra"
)

const progressInterval = time.Second

type scanFlags struct {
	endpoint  string
	start     uint64
	end       uint64
	submit    bool
	serverURL string
	format    string
	names     []string
	modules   []string
	arguments []string
	sortOrder string
	limit     int
}

var scanOpts scanFlags

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Collect the events of a block range",
	Long: `Fetch every event emitted in [start, end] and print them.
Without --start and --end the last blocks up to the chain head are scanned.`,
	Example: `  # Scan ten blocks of Polkadot
  scanner scan --endpoint wss://rpc.polkadot.io --start 22309410 --end 22309420

  # Only balance transfers, oldest first, as JSON
  scanner scan --start 22309410 --end 22309420 --module Balances --name Transfer --sort asc --format json

  # Submit the result to a GraphQL archive
  scanner scan --start 22309410 --end 22309420 --submit --server http://localhost:4000`,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringVarP(&scanOpts.endpoint, "endpoint", "e", "", "node WebSocket endpoint (overrides chain.rpc_url)")
	f.Uint64VarP(&scanOpts.start, "start", "s", 0, "first block of the range")
	f.Uint64VarP(&scanOpts.end, "end", "t", 0, "last block of the range (inclusive)")
	f.BoolVar(&scanOpts.submit, "submit", false, "submit the collected events to the GraphQL archive")
	f.StringVar(&scanOpts.serverURL, "server", "", "GraphQL archive base URL (overrides export.server_url)")
	f.StringVarP(&scanOpts.format, "format", "f", formatTable, "output format: table or json")
	f.StringSliceVar(&scanOpts.names, "name", nil, "keep events whose name starts with any of the values")
	f.StringSliceVar(&scanOpts.modules, "module", nil, "keep events whose module starts with any of the values")
	f.StringSliceVar(&scanOpts.arguments, "argument", nil, "keep events with an argument of any of the types")
	f.StringVar(&scanOpts.sortOrder, "sort", scanner.SortDesc, "order by block number: asc or desc")
	f.IntVar(&scanOpts.limit, "limit", 0, "maximum number of events to print (0 prints all)")
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanOpts.format != formatTable && scanOpts.format != formatJSON {
		return fmt.Errorf("unsupported format %q (supported: %s, %s)", scanOpts.format, formatTable, formatJSON)
	}

	query := &scanner.EventQuery{
		Names:         scanOpts.names,
		Modules:       scanOpts.modules,
		ArgumentTypes: scanOpts.arguments,
		SortOrder:     scanOpts.sortOrder,
		Limit:         scanOpts.limit,
	}
	if err := query.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyScanOverrides(cfg, scanOpts)

	ctx, cancel := signalContext()
	defer cancel()

	log := cfg.ComponentLogger(common.ComponentScanner)

	comps, err := newComponents(cfg, scanOpts.submit)
	if err != nil {
		return err
	}
	defer comps.close(log)

	m := comps.manager(cfg)
	defer m.Close()

	req, err := scanRequest(ctx, cmd, m, log)
	if err != nil {
		return err
	}

	snap, err := m.Start(ctx, req)
	if err != nil {
		var rangeErr *scanner.RangeError
		if errors.As(err, &rangeErr) {
			logNotification(log, scanner.NotifyError(err))
		}
		return err
	}

	snap, err = waitWithProgress(ctx, m, snap.ID, log)
	if err != nil {
		return err
	}

	for _, n := range snap.Notifications {
		logNotification(log, n)
	}

	if snap.Status == session.StatusFailed {
		return errors.New(snap.Error)
	}

	result, err := m.Result(ctx, snap.ID)
	if err != nil {
		return err
	}

	events, total := result.Query(query)

	switch scanOpts.format {
	case formatJSON:
		return renderJSON(os.Stdout, result, events, total)
	default:
		return renderTable(os.Stdout, events, total)
	}
}

func applyScanOverrides(cfg *pkgconfig.Config, opts scanFlags) {
	if opts.endpoint != "" {
		cfg.Chain.RPCURL = opts.endpoint
	}

	if opts.serverURL != "" {
		if cfg.Export == nil {
			cfg.Export = &pkgconfig.ExportConfig{}
		}
		cfg.Export.ServerURL = opts.serverURL
		cfg.Export.ApplyDefaults()
	}
}

// scanRequest builds the request from the flags, filling unset bounds from the default range.
func scanRequest(ctx context.Context, cmd *cobra.Command, m *session.Manager, log *logger.Logger) (session.Request, error) {
	req := session.Request{StartBlock: scanOpts.start, EndBlock: scanOpts.end}

	startSet := cmd.Flags().Changed("start")
	endSet := cmd.Flags().Changed("end")
	if startSet && endSet {
		return req, nil
	}

	head, rng, err := m.Head(ctx, "")
	if err != nil {
		logNotification(log, scanner.NotifyError(err))
		return req, err
	}

	if !startSet {
		req.StartBlock = rng.Start
	}
	if !endSet {
		req.EndBlock = rng.End
	}

	log.Infow("using default range", "head", head, "start_block", req.StartBlock, "end_block", req.EndBlock)

	return req, nil
}

// waitWithProgress blocks until the scan finishes, logging its progress periodically.
func waitWithProgress(ctx context.Context, m *session.Manager, id string, log *logger.Logger) (session.Snapshot, error) {
	type waitResult struct {
		snap session.Snapshot
		err  error
	}

	done := make(chan waitResult, 1)
	go func() {
		snap, err := m.Wait(ctx, id)
		done <- waitResult{snap: snap, err: err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case res := <-done:
			return res.snap, res.err
		case <-ticker.C:
			snap, err := m.Get(ctx, id)
			if err != nil {
				continue
			}
			log.Infow("scan progress",
				"progress", fmt.Sprintf("%.1f%%", snap.Progress),
				"start_block", snap.Range.Start,
				"end_block", snap.Range.End,
			)
		}
	}
}

func logNotification(log *logger.Logger, n scanner.Notification) {
	fields := []any{"description", n.Description}
	if n.Link != "" {
		fields = append(fields, "link", n.Link)
	}

	switch n.Level {
	case scanner.LevelError:
		log.Errorw(n.Title, fields...)
	case scanner.LevelWarning:
		log.Warnw(n.Title, fields...)
	default:
		log.Infow(n.Title, fields...)
	}
}
