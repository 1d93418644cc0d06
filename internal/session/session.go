package session

import (
	"slices"
	"sync"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/scanner"
	"github.com/goran-ethernal/SubstrateScanner/internal/store"
)

// session is the mutable state of one scan. All fields are guarded by mu.
type session struct {
	mu sync.RWMutex

	id            string
	endpoint      string
	rng           scanner.BlockRange
	status        Status
	progress      float64
	result        *scanner.CollectionResult
	storedURL     string
	errText       string
	notifications []scanner.Notification
	createdAt     time.Time
	finishedAt    time.Time

	done chan struct{}
}

func newSession(id, endpoint string, r scanner.BlockRange) *session {
	return &session{
		id:            id,
		endpoint:      endpoint,
		rng:           r,
		status:        StatusRunning,
		notifications: make([]scanner.Notification, 0),
		createdAt:     time.Now().UTC(),
		done:          make(chan struct{}),
	}
}

func (s *session) setProgress(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = percent
}

func (s *session) notify(n scanner.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *session) complete(result *scanner.CollectionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusCompleted
	s.progress = 100
	s.result = result
	s.finishedAt = time.Now().UTC()
	s.notifications = append(s.notifications, scanner.NotifyCollected(s.rng))
}

func (s *session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusFailed
	s.progress = 100
	s.errText = err.Error()
	s.finishedAt = time.Now().UTC()
	s.notifications = append(s.notifications, scanner.NotifyError(err))
}

func (s *session) stored(url, shortLink string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.storedURL = url
	s.notifications = append(s.notifications, scanner.NotifyStored(url, shortLink))
}

func (s *session) snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		ID:            s.id,
		Endpoint:      s.endpoint,
		Range:         s.rng,
		Status:        s.status,
		Progress:      s.progress,
		StoredURL:     s.storedURL,
		Error:         s.errText,
		Notifications: slices.Clone(s.notifications),
		CreatedAt:     s.createdAt,
	}

	if s.result != nil {
		snap.EventCount = len(s.result.Events)
	}

	if !s.finishedAt.IsZero() {
		finished := s.finishedAt
		snap.FinishedAt = &finished
	}

	return snap
}

func (s *session) record() *store.ScanRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &store.ScanRecord{
		ID:         s.id,
		Endpoint:   s.endpoint,
		StartBlock: s.rng.Start,
		EndBlock:   s.rng.End,
		Status:     string(s.status),
		Error:      s.errText,
		CreatedAt:  s.createdAt,
		FinishedAt: s.finishedAt,
	}
}

// snapshotFromRecord describes a scan archived by an earlier run.
func snapshotFromRecord(rec *store.ScanRecord) Snapshot {
	finished := rec.FinishedAt

	return Snapshot{
		ID:            rec.ID,
		Endpoint:      rec.Endpoint,
		Range:         rec.Range(),
		Status:        Status(rec.Status),
		Progress:      100,
		EventCount:    rec.EventCount,
		StoredURL:     rec.StoredURL,
		Error:         rec.Error,
		Notifications: []scanner.Notification{},
		CreatedAt:     rec.CreatedAt,
		FinishedAt:    &finished,
	}
}
