package store

// GetExpiry returns the absolute unix-milliseconds deadline for key, or
// nil if persistent or absent.
func (s *Store) GetExpiry(key string) *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return nil
	}
	return e.expiry
}

// SetExpiry unconditionally installs deadline (unix-milliseconds) on key.
// Returns true iff key exists.
func (s *Store) SetExpiry(key string, deadline int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return false
	}
	e.expiry = &deadline
	return true
}

// TTL returns seconds remaining per spec.md §4.3.5: -2 if key is missing,
// -1 if persistent, else floor(deadline-now). The deadline is tracked with
// millisecond precision internally (PX/PXAT need sub-second resolution);
// TTL only floors to whole seconds for its reply.
func (s *Store) TTL(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return -2
	}
	if e.expiry == nil {
		return -1
	}
	return (*e.expiry - s.now().UnixMilli()) / 1000
}

// ExpireCondition selects EXPIRE's optional NX|XX|GT|LT semantics
// (spec.md §4.3.5).
type ExpireCondition int

const (
	ExpireAlways ExpireCondition = iota
	ExpireNX
	ExpireXX
	ExpireGT
	ExpireLT
)

// Expire conditionally installs deadline (unix-milliseconds) on key.
// Returns true iff the expiry was set; false (with no error) if key is
// missing or the condition rejects the update.
func (s *Store) Expire(key string, deadline int64, cond ExpireCondition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return false
	}

	switch cond {
	case ExpireNX:
		if e.expiry != nil {
			return false
		}
	case ExpireXX:
		if e.expiry == nil {
			return false
		}
	case ExpireGT:
		if e.expiry == nil || deadline <= *e.expiry {
			return false
		}
	case ExpireLT:
		if e.expiry != nil && deadline >= *e.expiry {
			return false
		}
	}

	e.expiry = &deadline
	return true
}
