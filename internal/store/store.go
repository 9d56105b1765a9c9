// Package store implements the concurrent-safe, typed keyspace engine
// (spec.md C3) plus the blocked-waiter registry it drives for BLPOP
// (C4). A single mutex serializes every mutation and read (spec.md §5);
// it is held only for the duration of an individual operation and is
// never held across socket I/O.
package store

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store is the shared, typed keyspace: key → (variant, optional expiry).
type Store struct {
	mu      sync.Mutex
	data    map[string]*entry
	waiters *waiterRegistry
	log     *zap.Logger

	// now is overridable for deterministic tests; production callers get
	// time.Now via New.
	now func() time.Time
}

// New constructs an empty store ready to accept operations.
func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		data:    make(map[string]*entry),
		waiters: newWaiterRegistry(),
		log:     log.Named("store"),
		now:     time.Now,
	}
}

// expired reports whether e has an expiry deadline strictly in the past
// relative to now. Caller must hold mu.
func (e *entry) expired(now time.Time) bool {
	return e.expiry != nil && now.UnixMilli() > *e.expiry
}

// lookup returns the live entry for key, passively expiring it first if
// its deadline has passed (spec.md §3 invariant 3). Caller must hold mu.
func (s *Store) lookup(key string) *entry {
	e, ok := s.data[key]
	if !ok {
		return nil
	}
	if e.expired(s.now()) {
		delete(s.data, key)
		return nil
	}
	return e
}

// Exists reports whether key currently holds a live value.
func (s *Store) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(key) != nil
}

// Delete removes key unconditionally. Returns true iff it was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookup(key) == nil {
		return false
	}
	delete(s.data, key)
	return true
}

// TypeOf reports the variant key currently holds, or KindNone if absent
// or expired.
func (s *Store) TypeOf(key string) Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return KindNone
	}
	return e.kind
}

// FlushSync clears every key. The synchronous and asynchronous variants
// are observationally equivalent here (spec.md §4.3): there is no
// background persistence to defer, so both simply replace the map under
// the lock.
func (s *Store) FlushSync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*entry)
}

// FlushAsync clears every key; unlike FlushSync it yields (conceptually)
// between clearing and the caller observing completion, which this
// mutex-serialized, no-persistence engine satisfies trivially by also
// clearing synchronously.
func (s *Store) FlushAsync() {
	s.FlushSync()
}

// Shutdown wakes every blocked BLPOP waiter with the shutdown sentinel
// (spec.md §4.7). Safe to call once during server teardown.
func (s *Store) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waiters.shutdown()
}
