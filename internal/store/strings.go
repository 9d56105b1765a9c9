package store

import (
	"strconv"
	"strings"
)

// Set unconditionally writes key as a string value, replacing any prior
// variant. expiry is an absolute unix-milliseconds deadline, or nil for
// persistent.
func (s *Store) Set(key, value string, expiry *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := newEntry(KindString)
	e.str = value
	e.expiry = expiry
	s.data[key] = e
}

// Get returns the string at key. ok is false if the key is absent or
// expired; err is ErrWrongType if key holds a non-string variant.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return "", false, nil
	}
	if e.kind != KindString {
		return "", false, ErrWrongType
	}
	return e.str, true, nil
}

// Incr implements INCR: missing keys are created at "1"; an existing
// string holding a non-negative integer literal is incremented in place.
func (s *Store) Incr(key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		e = newEntry(KindString)
		e.str = "1"
		s.data[key] = e
		return 1, nil
	}
	if e.kind != KindString {
		return 0, ErrWrongType
	}
	if strings.HasPrefix(e.str, "-") {
		return 0, ErrNotInteger
	}
	n, err := strconv.ParseInt(e.str, 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	n++
	e.str = strconv.FormatInt(n, 10)
	return n, nil
}
