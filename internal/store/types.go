package store

import (
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
)

// ScanRecord is the archived summary of one finished scan.
type ScanRecord struct {
	ID         string    `meddler:"id"`
	Endpoint   string    `meddler:"endpoint"`
	StartBlock uint64    `meddler:"start_block"`
	EndBlock   uint64    `meddler:"end_block"`
	Status     string    `meddler:"status"`
	EventCount int       `meddler:"event_count"`
	StoredURL  string    `meddler:"stored_url"`
	Error      string    `meddler:"error"`
	CreatedAt  time.Time `meddler:"created_at,utctime"`
	FinishedAt time.Time `meddler:"finished_at,utctime"`
}

// Range returns the scanned block range.
func (r *ScanRecord) Range() scanner.BlockRange {
	return scanner.BlockRange{Start: r.StartBlock, End: r.EndBlock}
}

// dbEvent is one row of scan_events.
type dbEvent struct {
	ScanID         string   `meddler:"scan_id"`
	Position       int      `meddler:"position"`
	EventID        string   `meddler:"event_id"`
	BlockNumber    uint64   `meddler:"block_number"`
	Name           string   `meddler:"name"`
	Module         string   `meddler:"module"`
	Metadata       string   `meddler:"metadata"`
	ArgumentValues []string `meddler:"argument_values,json"`
	ArgumentNames  []string `meddler:"argument_names,json"`
	ArgumentTypes  []string `meddler:"argument_types,json"`
}

func toDBEvent(scanID string, position int, ev scanner.NormalizedEvent) *dbEvent {
	return &dbEvent{
		ScanID:         scanID,
		Position:       position,
		EventID:        ev.ID,
		BlockNumber:    ev.BlockNumber,
		Name:           ev.Name,
		Module:         ev.Module,
		Metadata:       ev.Metadata,
		ArgumentValues: nonNil(ev.ArgumentValues),
		ArgumentNames:  nonNil(ev.ArgumentNames),
		ArgumentTypes:  nonNil(ev.ArgumentTypes),
	}
}

func (e *dbEvent) toNormalized() scanner.NormalizedEvent {
	return scanner.NormalizedEvent{
		ID:             e.EventID,
		BlockNumber:    e.BlockNumber,
		Name:           e.Name,
		Module:         e.Module,
		Metadata:       e.Metadata,
		ArgumentValues: nonNil(e.ArgumentValues),
		ArgumentNames:  nonNil(e.ArgumentNames),
		ArgumentTypes:  nonNil(e.ArgumentTypes),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
