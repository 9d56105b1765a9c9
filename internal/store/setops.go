package store

import "github.com/edirooss/respkv/internal/orderedset"

// SAdd adds members to the set at key, creating it if absent. Returns the
// count of members that were newly added (spec.md §4.3.4).
func (s *Store) SAdd(key string, members []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		e = newEntry(KindSet)
		s.data[key] = e
	} else if e.kind != KindSet {
		return 0, ErrWrongType
	}
	added := 0
	for _, m := range members {
		if e.set.Add(m) {
			added++
		}
	}
	return added, nil
}

// SCard returns the cardinality of the set at key. Missing key reports 0;
// a key holding a non-set variant is ErrWrongType (spec.md §4.3.4).
func (s *Store) SCard(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != KindSet {
		return 0, ErrWrongType
	}
	return e.set.Len(), nil
}

// setOrEmpty resolves key to its set's members, treating an absent key as
// empty. Caller must hold mu. isFirst controls whether a wrong-type
// first operand is fatal (SDIFF/SINTER per spec.md §4.3.4).
func (s *Store) setOrEmpty(key string, isFirst bool) (*orderedset.Set, error) {
	e := s.lookup(key)
	if e == nil {
		return orderedset.New(), nil
	}
	if e.kind != KindSet {
		if isFirst {
			return nil, ErrWrongType
		}
		return orderedset.New(), nil
	}
	return e.set, nil
}

// SDiff computes keys[0] minus the union of the rest, preserving keys[0]'s
// insertion order. Absent keys are treated as empty; a non-set first key
// is ErrWrongType.
func (s *Store) SDiff(keys []string) (*orderedset.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAlgebra(keys, orderedset.Diff)
}

// SInter computes the intersection of all keys, preserving keys[0]'s
// insertion order.
func (s *Store) SInter(keys []string) (*orderedset.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAlgebra(keys, orderedset.Inter)
}

// SUnion computes the union of all keys: iteration order is the
// concatenation of operands with later duplicates dropped. Unlike
// SDIFF/SINTER, a non-set operand anywhere is treated as empty rather
// than failing (no "first operand" special case applies to union).
func (s *Store) SUnion(keys []string) (*orderedset.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sets := make([]*orderedset.Set, len(keys))
	for i, k := range keys {
		e := s.lookup(k)
		if e == nil || e.kind != KindSet {
			sets[i] = orderedset.New()
			continue
		}
		sets[i] = e.set
	}
	if len(sets) == 0 {
		return orderedset.New(), nil
	}
	return orderedset.Union(sets[0], sets[1:]...), nil
}

func (s *Store) setAlgebra(keys []string, combine func(*orderedset.Set, ...*orderedset.Set) *orderedset.Set) (*orderedset.Set, error) {
	if len(keys) == 0 {
		return orderedset.New(), nil
	}
	first, err := s.setOrEmpty(keys[0], true)
	if err != nil {
		return nil, err
	}
	rest := make([]*orderedset.Set, 0, len(keys)-1)
	for _, k := range keys[1:] {
		os, err := s.setOrEmpty(k, false)
		if err != nil {
			return nil, err
		}
		rest = append(rest, os)
	}
	return combine(first, rest...), nil
}

// OverwriteSet writes os as the set value at key, replacing any prior
// value of any type (used by the *STORE set-algebra variants).
func (s *Store) OverwriteSet(key string, os *orderedset.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := newEntry(KindSet)
	e.set = os
	s.data[key] = e
}

// SIsMember reports whether key's set contains member. A missing key
// reports false without error (spec.md §4.3.4: no WRONGTYPE on missing
// key). A key holding a different variant also reports false, mirroring
// SDIFF/SINTER's non-first-operand treatment.
func (s *Store) SIsMember(key, member string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil || e.kind != KindSet {
		return false
	}
	return e.set.Contains(member)
}

// SMembers returns the set's members in insertion order, or nil if
// missing/wrong type.
func (s *Store) SMembers(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil || e.kind != KindSet {
		return nil
	}
	return e.set.Members()
}

// SMove atomically removes member from src and adds it to dst. Returns
// true iff the move happened (member was present in src).
func (s *Store) SMove(src, dst, member string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	srcE := s.lookup(src)
	if srcE != nil && srcE.kind != KindSet {
		return false, ErrWrongType
	}
	dstE := s.lookup(dst)
	if dstE != nil && dstE.kind != KindSet {
		return false, ErrWrongType
	}

	if srcE == nil || !srcE.set.Contains(member) {
		return false, nil
	}
	srcE.set.Remove(member)

	if dstE == nil {
		dstE = newEntry(KindSet)
		s.data[dst] = dstE
	}
	dstE.set.Add(member)
	return true, nil
}

// SRem removes the listed members from the set at key. Returns the count
// actually removed; absent members are no-ops, not errors (spec.md §9
// Open Question 4 — Redis semantics, diverging from the original
// source's raise-on-absent behavior).
func (s *Store) SRem(key string, members []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != KindSet {
		return 0, ErrWrongType
	}
	removed := 0
	for _, m := range members {
		if e.set.Remove(m) {
			removed++
		}
	}
	return removed, nil
}
