package api

import (
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/internal/session"
)

// StartScanRequest is the body of POST /scans. An empty endpoint uses the configured node.
type StartScanRequest struct {
	Endpoint   string  `json:"endpoint,omitempty" example:"wss://rpc.polkadot.io"`
	StartBlock *uint64 `json:"start_block" example:"22309410"`
	EndBlock   *uint64 `json:"end_block" example:"22309420"`
}

// ScanListResponse lists scans, newest first.
type ScanListResponse struct {
	Scans []session.Snapshot `json:"scans"`
	Count int                `json:"count"`
}

// HeadResponse reports the chain head and the default range ending there.
type HeadResponse struct {
	Endpoint          string `json:"endpoint,omitempty"`
	Head              uint64 `json:"head"`
	DefaultStartBlock uint64 `json:"default_start_block"`
	DefaultEndBlock   uint64 `json:"default_end_block"`
}

// EventResponse is one page of a scan's events.
type EventResponse struct {
	Events     []scanner.NormalizedEvent `json:"events"`
	Pagination PaginationResult          `json:"pagination"`
}

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// FiltersResponse holds the facet filters of a completed scan.
type FiltersResponse struct {
	Names     []scanner.FacetFilter `json:"names"`
	Modules   []scanner.FacetFilter `json:"modules"`
	Arguments []scanner.FacetFilter `json:"arguments"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error        string                `json:"error"`
	Message      string                `json:"message,omitempty"`
	Code         int                   `json:"code"`
	Notification *scanner.Notification `json:"notification,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
