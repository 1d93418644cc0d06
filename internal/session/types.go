package session

import (
	"context"
	"errors"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/export"
	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/internal/store"
	pkgrpc "github.com/goran-ethernal/SubstrateScanner/pkg/rpc"
)

var (
	ErrSessionNotFound = errors.New("scan not found")
	ErrScanRunning     = errors.New("scan is still running")
	ErrNoResult        = errors.New("scan has no result")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// Status is the lifecycle state of a scan.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Request starts a scan. An empty Endpoint uses the configured node.
type Request struct {
	Endpoint   string `json:"endpoint"`
	StartBlock uint64 `json:"start_block"`
	EndBlock   uint64 `json:"end_block"`
}

// Range returns the requested block range.
func (r Request) Range() scanner.BlockRange {
	return scanner.BlockRange{Start: r.StartBlock, End: r.EndBlock}
}

// Snapshot is a point-in-time copy of a scan's state.
type Snapshot struct {
	ID            string                 `json:"id"`
	Endpoint      string                 `json:"endpoint"`
	Range         scanner.BlockRange     `json:"range"`
	Status        Status                 `json:"status"`
	Progress      float64                `json:"progress"`
	EventCount    int                    `json:"event_count"`
	StoredURL     string                 `json:"stored_url,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Notifications []scanner.Notification `json:"notifications"`
	CreatedAt     time.Time              `json:"created_at"`
	FinishedAt    *time.Time             `json:"finished_at,omitempty"`
}

// DialFunc opens a chain client for endpoint. The caller closes it.
type DialFunc func(ctx context.Context, endpoint string) (pkgrpc.SubstrateClient, error)

// Archive persists finished scans. *store.ScanStore implements it.
type Archive interface {
	SaveScan(ctx context.Context, rec *store.ScanRecord, events []scanner.NormalizedEvent) error
	GetScan(ctx context.Context, id string) (*store.ScanRecord, error)
	ListScans(ctx context.Context, limit int) ([]*store.ScanRecord, error)
	GetEvents(ctx context.Context, scanID string) ([]scanner.NormalizedEvent, error)
	UpdateStoredURL(ctx context.Context, id, url string) error
}

// Exporter ships a completed scan to the remote archive. *export.Submitter implements it.
type Exporter interface {
	Submit(ctx context.Context, endpoint string, r scanner.BlockRange, events []scanner.NormalizedEvent) (*export.Receipt, error)
}
