package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/internal/metrics"
	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/internal/store"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
)

// Manager runs scans in the background and keeps their state for later queries.
// Each scan dials its own client and closes it once collection ends.
type Manager struct {
	dial     DialFunc
	archive  Archive
	exporter Exporter
	log      *logger.Logger
	scanLog  *logger.Logger

	defaultEndpoint string
	window          uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	sessions map[string]*session
	order    []string
}

// NewManager creates a manager. archive and exporter are optional.
func NewManager(
	cfg *config.Config,
	dial DialFunc,
	archive Archive,
	exporter Exporter,
	log *logger.Logger,
) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		dial:            dial,
		archive:         archive,
		exporter:        exporter,
		log:             log.WithComponent(common.ComponentSession),
		scanLog:         log.WithComponent(common.ComponentScanner),
		defaultEndpoint: cfg.Chain.RPCURL,
		window:          cfg.Scan.DefaultWindow,
		ctx:             ctx,
		cancel:          cancel,
		sessions:        make(map[string]*session),
	}
}

func (m *Manager) endpoint(endpoint string) (string, error) {
	if endpoint == "" {
		endpoint = m.defaultEndpoint
	}

	if err := config.ValidateEndpoint(endpoint); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}

	return endpoint, nil
}

// Start validates req and launches the scan. Validation failures, including a
// *scanner.RangeError, are returned before anything runs.
func (m *Manager) Start(ctx context.Context, req Request) (Snapshot, error) {
	endpoint, err := m.endpoint(req.Endpoint)
	if err != nil {
		return Snapshot{}, err
	}

	r := req.Range()
	if err := r.Validate(); err != nil {
		return Snapshot{}, err
	}

	if err := m.ctx.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("manager is closed: %w", err)
	}

	s := newSession(uuid.NewString(), endpoint, r)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.order = append(m.order, s.id)
	m.mu.Unlock()

	activeScans.Inc()
	m.wg.Add(1)
	go m.run(s)

	m.log.Infow("scan started",
		"scan_id", s.id,
		"endpoint", endpoint,
		"start_block", r.Start,
		"end_block", r.End,
	)

	return s.snapshot(), nil
}

func (m *Manager) run(s *session) {
	defer m.wg.Done()
	defer activeScans.Dec()
	defer close(s.done)

	result, err := m.collect(s)
	if err != nil {
		metrics.ErrorsInc(common.ComponentScanner, "error")
		m.scanLog.Warnw("scan failed", "scan_id", s.id, "error", err)
		s.fail(err)
		m.persist(s, nil)
		return
	}

	s.complete(result)
	m.persist(s, result.Events)
	m.submit(s, result)
}

func (m *Manager) collect(s *session) (*scanner.CollectionResult, error) {
	client, err := m.dial(m.ctx, s.endpoint)
	if err != nil {
		return nil, &scanner.RPCError{Op: scanner.OpConnection, Block: s.rng.Start, Err: err}
	}
	defer client.Close()

	return scanner.NewCollector(client, m.scanLog).Collect(m.ctx, s.rng, s.setProgress)
}

func (m *Manager) persist(s *session, events []scanner.NormalizedEvent) {
	if m.archive == nil {
		return
	}

	// scans cancelled by Close are still archived as failed
	ctx := context.WithoutCancel(m.ctx)

	if err := m.archive.SaveScan(ctx, s.record(), events); err != nil {
		metrics.ErrorsInc(common.ComponentScanStore, "error")
		m.log.Errorw("failed to archive scan", "scan_id", s.id, "error", err)
	}
}

// submit exports a completed scan. A failure only adds a warning.
func (m *Manager) submit(s *session, result *scanner.CollectionResult) {
	if m.exporter == nil {
		return
	}

	receipt, err := m.exporter.Submit(m.ctx, s.endpoint, result.Range, result.Events)
	if err != nil {
		metrics.ErrorsInc(common.ComponentExport, "warning")
		m.log.Warnw("failed to store events in the server", "scan_id", s.id, "error", err)
		s.notify(scanner.NotifyStoreFailed(err))
		return
	}

	s.stored(receipt.URL, receipt.ShortLink())

	if m.archive != nil {
		if err := m.archive.UpdateStoredURL(m.ctx, s.id, receipt.URL); err != nil {
			m.log.Errorw("failed to record stored URL", "scan_id", s.id, "error", err)
		}
	}
}

func (m *Manager) session(id string) (*session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Get returns the state of a scan started by this manager or archived earlier.
func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	if s, ok := m.session(id); ok {
		return s.snapshot(), nil
	}

	rec, err := m.archived(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	return snapshotFromRecord(rec), nil
}

func (m *Manager) archived(ctx context.Context, id string) (*store.ScanRecord, error) {
	if m.archive == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	rec, err := m.archive.GetScan(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrScanNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, err
	}

	return rec, nil
}

// Wait blocks until the scan finishes or ctx is done and returns its final state.
func (m *Manager) Wait(ctx context.Context, id string) (Snapshot, error) {
	s, ok := m.session(id)
	if !ok {
		return m.Get(ctx, id)
	}

	select {
	case <-s.done:
		return s.snapshot(), nil
	case <-ctx.Done():
		return s.snapshot(), ctx.Err()
	}
}

// List returns up to limit scans, newest first: this run's scans followed by archived ones.
// A non-positive limit returns all.
func (m *Manager) List(ctx context.Context, limit int) ([]Snapshot, error) {
	m.mu.RLock()
	live := make([]*session, 0, len(m.order))
	for _, id := range slices.Backward(m.order) {
		live = append(live, m.sessions[id])
	}
	m.mu.RUnlock()

	snaps := make([]Snapshot, 0, len(live))
	seen := make(map[string]struct{}, len(live))
	for _, s := range live {
		snaps = append(snaps, s.snapshot())
		seen[s.id] = struct{}{}
	}

	if m.archive != nil {
		recs, err := m.archive.ListScans(ctx, limit)
		if err != nil {
			return nil, err
		}

		for _, rec := range recs {
			if _, ok := seen[rec.ID]; ok {
				continue
			}
			snaps = append(snaps, snapshotFromRecord(rec))
		}
	}

	if limit > 0 && len(snaps) > limit {
		snaps = snaps[:limit]
	}

	return snaps, nil
}

// Result returns the events and filters of a completed scan.
func (m *Manager) Result(ctx context.Context, id string) (*scanner.CollectionResult, error) {
	if s, ok := m.session(id); ok {
		s.mu.RLock()
		defer s.mu.RUnlock()

		switch {
		case s.status == StatusRunning:
			return nil, fmt.Errorf("%w: %s", ErrScanRunning, id)
		case s.result == nil:
			return nil, fmt.Errorf("%w: %s", ErrNoResult, id)
		default:
			return s.result, nil
		}
	}

	rec, err := m.archived(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.Status != string(StatusCompleted) {
		return nil, fmt.Errorf("%w: %s", ErrNoResult, id)
	}

	events, err := m.archive.GetEvents(ctx, id)
	if err != nil {
		return nil, err
	}

	return scanner.NewCollectionResult(rec.Range(), events), nil
}

// Head returns the current head of endpoint and the default scan range ending there.
func (m *Manager) Head(ctx context.Context, endpoint string) (uint64, scanner.BlockRange, error) {
	endpoint, err := m.endpoint(endpoint)
	if err != nil {
		return 0, scanner.BlockRange{}, err
	}

	client, err := m.dial(ctx, endpoint)
	if err != nil {
		return 0, scanner.BlockRange{}, &scanner.RPCError{Op: scanner.OpGetCurrentHead, Err: err}
	}
	defer client.Close()

	head, err := client.GetCurrentHead(ctx)
	if err != nil {
		return 0, scanner.BlockRange{}, &scanner.RPCError{Op: scanner.OpGetCurrentHead, Err: err}
	}

	return head, scanner.DefaultRange(head, m.window), nil
}

// Close cancels running scans and waits for them to finish.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}
