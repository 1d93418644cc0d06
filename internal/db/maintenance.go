package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
)

type Maintenance interface {
	// Start begins background maintenance if enabled.
	Start(ctx context.Context) error
	// Stop stops background maintenance and waits for completion.
	Stop() error
	// AcquireOperationLock acquires a read lock for database operations.
	// Returns an unlock function that must be called when the operation completes.
	AcquireOperationLock() func()
	// GetMetrics returns current maintenance metrics.
	GetMetrics() MaintenanceMetrics
	// RunMaintenance performs one maintenance pass immediately.
	RunMaintenance(ctx context.Context) error
}

// Pruner removes archived data beyond a retention limit.
// It is called while maintenance holds exclusive access, so it must not take the operation lock.
type Pruner interface {
	PruneScans(ctx context.Context, keep int) (int64, error)
}

// Retention tells the coordinator what to prune before compacting.
// A nil Pruner or a non-positive Keep disables pruning.
type Retention struct {
	Pruner Pruner
	Keep   int
}

func (r Retention) enabled() bool {
	return r.Pruner != nil && r.Keep > 0
}

// NoOpMaintenance is used when maintenance is not configured.
type NoOpMaintenance struct{}

func (m *NoOpMaintenance) Start(ctx context.Context) error          { return nil }
func (m *NoOpMaintenance) Stop() error                              { return nil }
func (m *NoOpMaintenance) RunMaintenance(ctx context.Context) error { return nil }
func (m *NoOpMaintenance) AcquireOperationLock() func()             { return func() {} }
func (m *NoOpMaintenance) GetMetrics() MaintenanceMetrics           { return MaintenanceMetrics{} }

// MaintenanceCoordinator serializes maintenance against regular archive operations.
// Operations share the read side of opLock; a maintenance pass takes the write side
// and therefore runs only once every in-flight operation has finished.
type MaintenanceCoordinator struct {
	db        *sql.DB
	config    config.MaintenanceConfig
	dbPath    string
	retention Retention
	log       *logger.Logger

	opLock sync.RWMutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	metricsLock sync.Mutex
	metrics     MaintenanceMetrics
}

// NewMaintenanceCoordinator returns a coordinator for the database at dbPath, or a no-op
// implementation when cfg is nil.
func NewMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg *config.MaintenanceConfig,
	retention Retention,
	log *logger.Logger,
) Maintenance {
	if cfg == nil {
		return &NoOpMaintenance{}
	}

	return newMaintenanceCoordinator(dbPath, db, *cfg, retention, log)
}

func newMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg config.MaintenanceConfig,
	retention Retention,
	log *logger.Logger,
) *MaintenanceCoordinator {
	return &MaintenanceCoordinator{
		db:        db,
		config:    cfg,
		dbPath:    dbPath,
		retention: retention,
		log:       log.WithComponent(common.ComponentMaintenance),
	}
}

// Start begins background maintenance if enabled.
func (m *MaintenanceCoordinator) Start(ctx context.Context) error {
	if !m.config.Enabled {
		m.log.Info("background maintenance is disabled")
		return nil
	}

	ctx, m.cancel = context.WithCancel(ctx)

	if m.config.VacuumOnStartup {
		if err := m.RunMaintenance(ctx); err != nil {
			m.log.Warnw("startup maintenance failed", "error", err)
		}
	}

	m.wg.Add(1)
	go m.worker(ctx, m.config.CheckInterval.Duration)

	m.log.Infow("background maintenance started",
		"interval", m.config.CheckInterval.Duration,
		"checkpoint_mode", m.config.WALCheckpointMode,
		"keep_scans", m.retention.Keep,
	)

	return nil
}

// Stop stops background maintenance and waits for a running pass to finish.
func (m *MaintenanceCoordinator) Stop() error {
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.log.Info("background maintenance stopped")

	return nil
}

func (m *MaintenanceCoordinator) worker(ctx context.Context, interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.RunMaintenance(ctx); err != nil {
				m.log.Warnw("periodic maintenance failed", "error", err)
			}
		}
	}
}

// RunMaintenance prunes old scans, checkpoints the WAL and vacuums the database.
// A failing step does not prevent the following ones; all failures are joined.
func (m *MaintenanceCoordinator) RunMaintenance(ctx context.Context) error {
	start := time.Now().UTC()
	MaintenanceRunsInc()

	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	sizeBefore, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnw("failed to measure database size", "error", err)
	}

	var errs []error

	pruned, err := m.prune(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("prune scans: %w", err))
	}

	if err := m.walCheckpoint(); err != nil {
		errs = append(errs, fmt.Errorf("WAL checkpoint: %w", err))
	}

	if err := Vacuum(m.db); err != nil {
		errs = append(errs, err)
	}

	sizeAfter, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnw("failed to measure database size", "error", err)
	}

	runErr := errors.Join(errs...)
	duration := time.Since(start)

	m.metricsLock.Lock()
	m.metrics.LastMaintenanceTime = time.Now().UTC()
	m.metrics.MaintenanceCount++
	m.metrics.LastMaintenanceError = runErr
	m.metrics.ScansPruned += pruned
	m.metricsLock.Unlock()

	MaintenanceDurationLog(duration)
	MaintenanceOutcomeInc(runErr)
	DBSizeLog(sizeAfter)

	if runErr != nil {
		m.log.Warnw("maintenance completed with errors", "duration", duration, "error", runErr)
		return runErr
	}

	var reclaimedMB uint64
	if sizeBefore > sizeAfter {
		reclaimed := uint64(sizeBefore - sizeAfter)
		MaintenanceSpaceReclaimedLog(reclaimed)
		reclaimedMB = common.BytesToMB(reclaimed)
	}

	m.log.Infow("maintenance completed",
		"duration", duration,
		"scans_pruned", pruned,
		"reclaimed_mb", reclaimedMB,
	)

	return nil
}

func (m *MaintenanceCoordinator) prune(ctx context.Context) (int64, error) {
	if !m.retention.enabled() {
		return 0, nil
	}

	pruned, err := m.retention.Pruner.PruneScans(ctx, m.retention.Keep)
	if err != nil {
		return 0, err
	}

	if pruned > 0 {
		ScansPrunedAdd(pruned)
		m.log.Debugw("pruned archived scans", "removed", pruned, "keep", m.retention.Keep)
	}

	return pruned, nil
}

func (m *MaintenanceCoordinator) walCheckpoint() error {
	isWAL, err := m.isWALMode()
	if err != nil {
		return fmt.Errorf("failed to check journal mode: %w", err)
	}

	if !isWAL {
		return nil
	}

	var busy, logFrames, checkpointed int
	query := fmt.Sprintf("PRAGMA wal_checkpoint(%s)", m.config.WALCheckpointMode)
	if err := m.db.QueryRow(query).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return err
	}

	WALCheckpointInc(strings.ToLower(m.config.WALCheckpointMode))

	if busy > 0 {
		m.log.Warnw("WAL checkpoint could not complete", "busy", busy, "log_frames", logFrames)
	}

	return nil
}

func (m *MaintenanceCoordinator) isWALMode() (bool, error) {
	var mode string
	if err := m.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return false, err
	}
	return strings.EqualFold(mode, "wal"), nil
}

// AcquireOperationLock acquires a shared lock for a regular archive operation.
func (m *MaintenanceCoordinator) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

// GetMetrics returns a copy of the maintenance counters.
func (m *MaintenanceCoordinator) GetMetrics() MaintenanceMetrics {
	m.metricsLock.Lock()
	defer m.metricsLock.Unlock()

	return m.metrics
}

// MaintenanceMetrics provides visibility into maintenance operations.
type MaintenanceMetrics struct {
	LastMaintenanceTime  time.Time
	MaintenanceCount     uint64
	LastMaintenanceError error
	ScansPruned          int64
}
