package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zyfayes/polaroid/internal/domain"
)

// DefaultRetentionLimit is the maximum number of photos the store
// keeps; the oldest beyond it are evicted on every write.
const DefaultRetentionLimit = 50

const writeTimeout = 10 * time.Second

// Store holds the authoritative, ordered, bounded photo sequence,
// newest first. The in-memory slice is the source of truth for the
// session; persistence is best-effort and applied strictly in call
// order by a single background writer, so a slow medium never blocks
// a mutation from becoming visible.
type Store struct {
	medium Medium
	limit  int
	log    *zap.Logger

	mu     sync.RWMutex
	photos []domain.Photo
	closed bool

	jobs chan persistJob
	done chan struct{}
}

type persistJob struct {
	payload []byte
	flushed chan struct{} // non-nil for flush sentinels
}

func New(medium Medium, limit int, log *zap.Logger) *Store {
	if limit <= 0 {
		limit = DefaultRetentionLimit
	}
	s := &Store{
		medium: medium,
		limit:  limit,
		log:    log,
		jobs:   make(chan persistJob, 64),
		done:   make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

// Load reads the persisted sequence. Missing or malformed data is
// first-run state, not an error: the store comes up empty.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.medium.Read(ctx)
	if err != nil {
		s.log.Warn("Failed to read persisted photos, starting empty", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var photos []domain.Photo
	if err := json.Unmarshal(data, &photos); err != nil {
		s.log.Warn("Persisted photos malformed, starting empty", zap.Error(err))
		return nil
	}
	if len(photos) > s.limit {
		photos = photos[:s.limit]
	}

	s.mu.Lock()
	s.photos = photos
	s.mu.Unlock()

	s.log.Info("Photos loaded", zap.Int("count", len(photos)))
	return nil
}

// Add prepends photo as the newest entry, evicts anything beyond the
// retention limit and queues a persistence write. The new state is
// visible to readers as soon as Add returns.
func (s *Store) Add(photo domain.Photo) {
	s.mu.Lock()
	s.photos = append([]domain.Photo{photo}, s.photos...)
	if len(s.photos) > s.limit {
		s.photos = s.photos[:s.limit]
	}
	payload := s.snapshotLocked()
	s.mu.Unlock()

	s.enqueue(payload)
}

// Remove drops the photo with the given id, preserving the order of
// the remainder. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	removed := false
	for i, p := range s.photos {
		if p.ID == id {
			s.photos = append(s.photos[:i], s.photos[i+1:]...)
			removed = true
			break
		}
	}
	var payload []byte
	if removed {
		payload = s.snapshotLocked()
	}
	s.mu.Unlock()

	if removed {
		s.enqueue(payload)
	}
}

// List returns a copy of the sequence, newest first.
func (s *Store) List() []domain.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

// Get returns the photo with the given id.
func (s *Store) Get(id string) (domain.Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.photos {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Photo{}, false
}

// Len returns the number of stored photos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.photos)
}

// Flush blocks until every queued persistence write has been applied.
func (s *Store) Flush() {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return
	}
	s.flush()
}

func (s *Store) flush() {
	flushed := make(chan struct{})
	s.jobs <- persistJob{flushed: flushed}
	<-flushed
}

// Close flushes pending writes and stops the background writer.
// Mutations after Close are dropped.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.flush()
	close(s.jobs)
	<-s.done
	return nil
}

// snapshotLocked serializes the current sequence; the caller must
// hold the lock. Marshal errors cannot occur for Photo values.
func (s *Store) snapshotLocked() []byte {
	payload, err := json.Marshal(s.photos)
	if err != nil {
		s.log.Error("Failed to serialize photo sequence", zap.Error(err))
		return nil
	}
	return payload
}

func (s *Store) enqueue(payload []byte) {
	if payload == nil {
		return
	}
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return
	}
	s.jobs <- persistJob{payload: payload}
}

func (s *Store) writeLoop() {
	defer close(s.done)
	for job := range s.jobs {
		if job.flushed != nil {
			close(job.flushed)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := s.medium.Write(ctx, job.payload)
		cancel()
		if err != nil {
			// In-memory state stays authoritative; never retried.
			s.log.Error("Persistence write failed",
				zap.Int("size", len(job.payload)),
				zap.Error(err))
		}
	}
}
