package secrets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/hgross/secretview/internal/metrics"
)

// Loader populates a Record from a backend. Implementations must return a
// record with every field non-empty or fail with a *ConfigError.
type Loader interface {
	Load(ctx context.Context) (*Record, error)
}

// Store holds the single per-process Record behind a lazy, one-flight
// initialization. Construct one per process and inject it; there is no
// package-level instance.
type Store struct {
	loader  Loader
	backend string
	clock   clockwork.Clock

	group singleflight.Group

	mu       sync.RWMutex
	record   *Record
	ready    bool
	loadedAt time.Time
}

// NewStore creates a store backed by the given loader. backend is a label
// for logs and metrics ("env" or "github").
func NewStore(loader Loader, backend string, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{loader: loader, backend: backend, clock: clock}
}

// Initialize loads the record on first call and is a no-op once ready.
// Concurrent callers during an in-flight load wait for its result instead of
// triggering a second fetch.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if ready {
		return nil
	}

	_, err, _ := s.group.Do("load", func() (any, error) {
		// A caller that queued behind a completed load must not re-fetch.
		s.mu.RLock()
		ready := s.ready
		s.mu.RUnlock()
		if ready {
			return nil, nil
		}

		start := s.clock.Now()
		record, err := s.loader.Load(ctx)
		metrics.SecretLoadDuration.WithLabelValues(s.backend).Observe(s.clock.Since(start).Seconds())
		if err != nil {
			metrics.SecretLoadsTotal.WithLabelValues(s.backend, "failure").Inc()
			return nil, err
		}
		metrics.SecretLoadsTotal.WithLabelValues(s.backend, "success").Inc()

		s.mu.Lock()
		s.record = record
		s.ready = true
		s.loadedAt = s.clock.Now()
		s.mu.Unlock()

		slog.InfoContext(ctx, "Secrets loaded", "backend", s.backend)
		return nil, nil
	})
	return err
}

// Record returns the loaded record, or ErrNotInitialized before a
// successful load. The returned record is shared and read-only.
func (s *Store) Record() (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready || s.record == nil {
		return nil, ErrNotInitialized
	}
	return s.record, nil
}

// Field returns a single field's value by public name.
func (s *Store) Field(name string) (string, error) {
	record, err := s.Record()
	if err != nil {
		return "", err
	}
	value, ok := record.Field(name)
	if !ok {
		return "", &ConfigError{Message: "unknown field " + name}
	}
	return value, nil
}

// Ready reports whether the record has been loaded. It never fails.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready && s.record != nil
}

// Backend returns the backend label the store was built with.
func (s *Store) Backend() string {
	return s.backend
}

// LoadedAt returns when the record was loaded, zero if not ready.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
