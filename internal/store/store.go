package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/db"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/internal/migrations"
	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/russross/meddler"
)

const (
	scansTable  = "scans"
	eventsTable = "scan_events"
)

// ErrScanNotFound is returned when no archived scan has the requested ID.
var ErrScanNotFound = errors.New("scan not found")

// ScanStore archives finished scans and their events in SQLite.
type ScanStore struct {
	db          *sql.DB
	maintenance db.Maintenance
	log         *logger.Logger
}

// New opens the archive described by cfg and migrates its schema.
// Background maintenance, when configured, prunes the archive to cfg.MaxScans.
func New(cfg config.StoreConfig, log *logger.Logger) (*ScanStore, error) {
	log = log.WithComponent(common.ComponentScanStore)

	sqlDB, err := db.NewSQLiteDBFromConfig(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(log, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	s := &ScanStore{db: sqlDB, log: log}
	s.maintenance = db.NewMaintenanceCoordinator(
		cfg.DB.Path,
		sqlDB,
		cfg.Maintenance,
		db.Retention{Pruner: s, Keep: cfg.MaxScans},
		log,
	)

	log.Infow("scan archive opened", "path", cfg.DB.Path, "max_scans", cfg.MaxScans)

	return s, nil
}

// Start begins background maintenance.
func (s *ScanStore) Start(ctx context.Context) error {
	return s.maintenance.Start(ctx)
}

// Maintenance exposes the coordinator, e.g. for a manual maintenance pass.
func (s *ScanStore) Maintenance() db.Maintenance {
	return s.maintenance
}

// Close stops maintenance and closes the database.
func (s *ScanStore) Close() error {
	if err := s.maintenance.Stop(); err != nil {
		s.log.Warnw("failed to stop maintenance", "error", err)
	}
	return s.db.Close()
}

// SaveScan archives rec together with its events in one transaction.
// rec.EventCount is set from events.
func (s *ScanStore) SaveScan(ctx context.Context, rec *ScanRecord, events []scanner.NormalizedEvent) error {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	rec.EventCount = len(events)
	if err := meddler.Insert(tx, scansTable, rec); err != nil {
		return fmt.Errorf("failed to insert scan %s: %w", rec.ID, err)
	}

	for i, ev := range events {
		if err := meddler.Insert(tx, eventsTable, toDBEvent(rec.ID, i, ev)); err != nil {
			return fmt.Errorf("failed to insert event %d of scan %s: %w", i, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	ScanSavedLog(len(events), time.Since(start))
	s.log.Debugw("scan archived",
		"scan_id", rec.ID,
		"status", rec.Status,
		"events", len(events),
	)

	return nil
}

// GetScan returns the archived scan with the given ID.
func (s *ScanStore) GetScan(ctx context.Context, id string) (*ScanRecord, error) {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	var rec ScanRecord
	err := meddler.QueryRow(s.db, &rec, `SELECT * FROM scans WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrScanNotFound, id)
		}
		return nil, fmt.Errorf("failed to query scan %s: %w", id, err)
	}

	return &rec, nil
}

// ListScans returns up to limit archived scans, newest first. A non-positive limit returns all.
func (s *ScanStore) ListScans(ctx context.Context, limit int) ([]*ScanRecord, error) {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	if limit <= 0 {
		limit = -1
	}

	recs := make([]*ScanRecord, 0)
	err := meddler.QueryAll(s.db, &recs,
		`SELECT * FROM scans ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}

	return recs, nil
}

// GetEvents returns the events of an archived scan in their original order.
func (s *ScanStore) GetEvents(ctx context.Context, scanID string) ([]scanner.NormalizedEvent, error) {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	var rows []*dbEvent
	err := meddler.QueryAll(s.db, &rows,
		`SELECT * FROM scan_events WHERE scan_id = ? ORDER BY position ASC`, scanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events of scan %s: %w", scanID, err)
	}

	events := make([]scanner.NormalizedEvent, len(rows))
	for i, row := range rows {
		events[i] = row.toNormalized()
	}

	return events, nil
}

// UpdateStoredURL records where the scan was stored remotely.
func (s *ScanStore) UpdateStoredURL(ctx context.Context, id, url string) error {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE scans SET stored_url = ? WHERE id = ?`, url, id)
	if err != nil {
		return fmt.Errorf("failed to update scan %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update scan %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrScanNotFound, id)
	}

	return nil
}

// PruneScans deletes every scan except the keep newest ones and returns how many were removed.
// It does not take the operation lock: it runs inside maintenance, which already holds
// exclusive access.
func (s *ScanStore) PruneScans(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	const stale = `SELECT id FROM scans ORDER BY created_at DESC, rowid DESC LIMIT -1 OFFSET ?`

	if _, err := tx.ExecContext(ctx, `DELETE FROM scan_events WHERE scan_id IN (`+stale+`)`, keep); err != nil {
		return 0, fmt.Errorf("failed to prune scan events: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM scans WHERE id IN (`+stale+`)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune scans: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pruned, nil
}
