package store

import (
	"context"
	"time"
)

// listEntryOrCreate returns the list entry at key, creating an empty list
// if absent. Returns ErrWrongType if key holds a different variant.
// Caller must hold mu.
func (s *Store) listEntryOrCreate(key string) (*entry, error) {
	e := s.lookup(key)
	if e == nil {
		e = newEntry(KindList)
		s.data[key] = e
		return e, nil
	}
	if e.kind != KindList {
		return nil, ErrWrongType
	}
	return e, nil
}

// RPush appends items to the list at key in argument order, creating the
// list if absent, then performs waiter handoff (spec.md §4.4) in the same
// critical section. Returns the new length.
func (s *Store) RPush(key string, items []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.listEntryOrCreate(key)
	if err != nil {
		return 0, err
	}
	e.list = append(e.list, items...)
	s.handoffList(key, e)
	return len(e.list), nil
}

// LPush inserts items so the final order is reverse(items) followed by
// the prior contents (spec.md §4.3.2: LPUSH k a b c on empty k yields
// [c, b, a]). Returns the new length.
func (s *Store) LPush(key string, items []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.listEntryOrCreate(key)
	if err != nil {
		return 0, err
	}
	prepend := make([]string, len(items))
	for i, it := range items {
		prepend[len(items)-1-i] = it
	}
	e.list = append(prepend, e.list...)
	s.handoffList(key, e)
	return len(e.list), nil
}

// handoffList runs the blocked-waiter handoff protocol for key
// immediately after a push mutation, still under mu.
func (s *Store) handoffList(key string, e *entry) {
	s.waiters.handoff(key, func() (string, bool) {
		if len(e.list) == 0 {
			return "", false
		}
		head := e.list[0]
		e.list = e.list[1:]
		return head, true
	})
}

// LLen returns the list length. Missing key or a key holding a different
// variant both report 0 (spec.md §3 invariant 1, category (a) — LLEN is
// explicitly called out alongside SCARD's missing-key case).
func (s *Store) LLen(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil || e.kind != KindList {
		return 0
	}
	return len(e.list)
}

// LRange returns elements in [start,end] using Redis-style negative
// indexing, normalized per spec.md §4.3.2. Missing key or wrong type
// yields an empty slice, never an error (same category-(a) treatment as
// LLen).
func (s *Store) LRange(key string, start, end int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil || e.kind != KindList {
		return nil
	}

	// Deliberate deviation from real Redis (spec.md §9 Open Question 1,
	// resolved per the original source): short-circuit to empty when
	// start > end on the *raw* arguments and both share a sign, before
	// sign normalization. Mixed-sign pairs such as 0, -1 go through
	// normalization below.
	if start > end && (start < 0) == (end < 0) {
		return nil
	}

	l := len(e.list)
	normalize := func(i int) int {
		if i < 0 {
			i += l
			if i < 0 {
				i = 0
			}
		}
		return i
	}
	effStart := normalize(start)
	effEnd := normalize(end)

	if effStart >= l {
		return nil
	}
	if effEnd >= l {
		effEnd = l - 1
	}
	if effStart > effEnd {
		return nil
	}

	out := make([]string, effEnd-effStart+1)
	copy(out, e.list[effStart:effEnd+1])
	return out
}

// LPop removes and returns up to count elements from the list head.
// count < 1 is treated as 1; see internal/command for the RESP framing
// distinction between a count of 1 or a bare LPOP (bulk string) and a
// count above 1 (array).
func (s *Store) LPop(key string, count int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return nil, nil
	}
	if e.kind != KindList {
		return nil, ErrWrongType
	}
	if len(e.list) == 0 {
		return nil, nil
	}
	if count < 1 {
		count = 1
	}
	if count > len(e.list) {
		count = len(e.list)
	}
	out := make([]string, count)
	copy(out, e.list[:count])
	e.list = e.list[count:]
	return out, nil
}

// BLPopOutcome classifies how a BLPop call concluded.
type BLPopOutcome int

const (
	BLPopFulfilled BLPopOutcome = iota
	BLPopTimedOut
	BLPopCancelled
	BLPopShutdown
)

// BLPop implements the BLPOP contract (spec.md §4.4): a fast-path LPOP,
// falling back to registering a FIFO waiter and awaiting fulfillment,
// timeout, caller cancellation (peer disconnect), or server shutdown.
// timeout == 0 waits forever. The store lock is never held across the
// await (spec.md §5).
func (s *Store) BLPop(ctx context.Context, key string, timeout time.Duration) (string, BLPopOutcome) {
	if v, ok := s.tryLPopOne(key); ok {
		return v, BLPopFulfilled
	}

	s.mu.Lock()
	w := s.waiters.register(key, s.now())
	s.mu.Unlock()

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case <-w.done:
		if w.fulfilled {
			return w.element, BLPopFulfilled
		}
		return "", BLPopShutdown

	case <-timeoutCh:
		s.mu.Lock()
		s.waiters.cancel(w)
		s.mu.Unlock()
		// A concurrent handoff may have fired between the timer firing
		// and the lock above; prefer delivering the element if so.
		select {
		case <-w.done:
			if w.fulfilled {
				return w.element, BLPopFulfilled
			}
		default:
		}
		return "", BLPopTimedOut

	case <-ctx.Done():
		s.mu.Lock()
		s.waiters.cancel(w)
		s.mu.Unlock()
		select {
		case <-w.done:
			if w.fulfilled {
				return w.element, BLPopFulfilled
			}
		default:
		}
		return "", BLPopCancelled
	}
}

// tryLPopOne performs BLPOP's fast-path probe: a single LPOP under the
// store lock, released before any blocking wait.
func (s *Store) tryLPopOne(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil || e.kind != KindList || len(e.list) == 0 {
		return "", false
	}
	head := e.list[0]
	e.list = e.list[1:]
	return head, true
}
