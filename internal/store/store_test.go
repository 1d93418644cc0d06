package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxScans int, maintenance *config.MaintenanceConfig) *ScanStore {
	t.Helper()

	cfg := config.StoreConfig{
		DB:          config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "scans.sqlite"), EnableForeignKeys: true},
		MaxScans:    maxScans,
		Maintenance: maintenance,
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	s, err := New(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func scanRecord(id string, createdAt time.Time) *ScanRecord {
	return &ScanRecord{
		ID:         id,
		Endpoint:   "wss://rpc.polkadot.io",
		StartBlock: 100,
		EndBlock:   102,
		Status:     "completed",
		CreatedAt:  createdAt,
		FinishedAt: createdAt.Add(3 * time.Second),
	}
}

func scanEvents() []scanner.NormalizedEvent {
	return []scanner.NormalizedEvent{
		{
			ID:             "6f1c7d2e-9a51-4d0b-8a44-1f0e2b7c3d90",
			BlockNumber:    101,
			Name:           "Transfer",
			Module:         "Balances",
			Metadata:       "Transfer succeeded.",
			ArgumentValues: []string{"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", "1000000000"},
			ArgumentNames:  []string{"from", "amount"},
			ArgumentTypes:  []string{"AccountId", "Balance"},
		},
		{
			ID:             "0d3b8f6a-2c47-4e19-b5d1-7a9e0c6f2b13",
			BlockNumber:    102,
			Name:           "ExtrinsicSuccess",
			Module:         "System",
			Metadata:       "An extrinsic completed successfully.",
			ArgumentValues: []string{},
			ArgumentNames:  []string{},
			ArgumentTypes:  []string{},
		},
	}
}

func TestScanStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t, 0, nil)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := scanRecord("scan-1", created)

	require.NoError(t, s.SaveScan(ctx, rec, scanEvents()))
	require.Equal(t, 2, rec.EventCount)

	got, err := s.GetScan(ctx, "scan-1")
	require.NoError(t, err)
	require.Equal(t, "wss://rpc.polkadot.io", got.Endpoint)
	require.Equal(t, scanner.BlockRange{Start: 100, End: 102}, got.Range())
	require.Equal(t, "completed", got.Status)
	require.Equal(t, 2, got.EventCount)
	require.True(t, created.Equal(got.CreatedAt))
	require.True(t, created.Add(3*time.Second).Equal(got.FinishedAt))

	events, err := s.GetEvents(ctx, "scan-1")
	require.NoError(t, err)
	require.Equal(t, scanEvents(), events)
}

func TestScanStore_FailedScanWithoutEvents(t *testing.T) {
	s := newTestStore(t, 0, nil)
	ctx := context.Background()

	rec := scanRecord("scan-failed", time.Now().UTC())
	rec.Status = "failed"
	rec.Error = "get block hash failed at block 105: timeout"

	require.NoError(t, s.SaveScan(ctx, rec, nil))

	got, err := s.GetScan(ctx, "scan-failed")
	require.NoError(t, err)
	require.Equal(t, rec.Error, got.Error)
	require.Zero(t, got.EventCount)

	events, err := s.GetEvents(ctx, "scan-failed")
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestScanStore_SaveScanIsAtomic(t *testing.T) {
	s := newTestStore(t, 0, nil)
	ctx := context.Background()

	require.NoError(t, s.SaveScan(ctx, scanRecord("dup", time.Now().UTC()), scanEvents()))

	err := s.SaveScan(ctx, scanRecord("dup", time.Now().UTC()), scanEvents()[:1])
	require.Error(t, err)

	events, err := s.GetEvents(ctx, "dup")
	require.NoError(t, err)
	require.Len(t, events, 2, "the failed save must not leave rows behind")
}

func TestScanStore_NotFound(t *testing.T) {
	s := newTestStore(t, 0, nil)
	ctx := context.Background()

	_, err := s.GetScan(ctx, "missing")
	require.ErrorIs(t, err, ErrScanNotFound)

	require.ErrorIs(t, s.UpdateStoredURL(ctx, "missing", "http://localhost:4000/x"), ErrScanNotFound)
}

func TestScanStore_UpdateStoredURL(t *testing.T) {
	s := newTestStore(t, 0, nil)
	ctx := context.Background()

	require.NoError(t, s.SaveScan(ctx, scanRecord("scan-1", time.Now().UTC()), nil))
	require.NoError(t, s.UpdateStoredURL(ctx, "scan-1", "http://localhost:4000/events/100-102"))

	got, err := s.GetScan(ctx, "scan-1")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:4000/events/100-102", got.StoredURL)
}

func TestScanStore_ListScans(t *testing.T) {
	s := newTestStore(t, 0, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		require.NoError(t, s.SaveScan(ctx, scanRecord(fmt.Sprintf("scan-%d", i), base.Add(time.Duration(i)*time.Minute)), nil))
	}

	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{name: "all", limit: 0, expected: []string{"scan-4", "scan-3", "scan-2", "scan-1", "scan-0"}},
		{name: "limited", limit: 2, expected: []string{"scan-4", "scan-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := s.ListScans(ctx, tt.limit)
			require.NoError(t, err)

			ids := make([]string, 0, len(recs))
			for _, rec := range recs {
				ids = append(ids, rec.ID)
			}
			require.Equal(t, tt.expected, ids)
		})
	}
}

func TestScanStore_PruneScans(t *testing.T) {
	s := newTestStore(t, 0, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 4 {
		require.NoError(t, s.SaveScan(ctx, scanRecord(fmt.Sprintf("scan-%d", i), base.Add(time.Duration(i)*time.Hour)), scanEvents()))
	}

	pruned, err := s.PruneScans(ctx, 0)
	require.NoError(t, err)
	require.Zero(t, pruned)

	pruned, err = s.PruneScans(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), pruned)

	recs, err := s.ListScans(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "scan-3", recs[0].ID)
	require.Equal(t, "scan-2", recs[1].ID)

	events, err := s.GetEvents(ctx, "scan-0")
	require.NoError(t, err)
	require.Empty(t, events)

	var orphans int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM scan_events WHERE scan_id NOT IN (SELECT id FROM scans)`).Scan(&orphans))
	require.Zero(t, orphans)
}

func TestScanStore_MaintenanceRetention(t *testing.T) {
	s := newTestStore(t, 3, &config.MaintenanceConfig{
		Enabled:           false,
		CheckInterval:     common.NewDuration(time.Hour),
		WALCheckpointMode: "TRUNCATE",
	})
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 6 {
		require.NoError(t, s.SaveScan(ctx, scanRecord(fmt.Sprintf("scan-%d", i), base.Add(time.Duration(i)*time.Minute)), scanEvents()))
	}

	require.NoError(t, s.Maintenance().RunMaintenance(ctx))

	recs, err := s.ListScans(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, int64(3), s.Maintenance().GetMetrics().ScansPruned)
}
