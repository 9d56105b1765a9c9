// Package orderedset implements an insertion-ordered set: O(1) average
// membership and add, with iteration in insertion order. Remove is linear
// in the set size, since it compacts the order slice and reindexes the
// members after the removed one. It
// backs the keyspace's Set value variant and the SDIFF/SINTER/SUNION
// set-algebra commands.
package orderedset

// Set is an insertion-ordered set of strings. The zero value is not
// ready to use; call New.
//
// Internally this mirrors the teacher's StringStore bookkeeping
// (internal/repo/store/store.go): an ordered slice plus a position index,
// so removal can compact the slice and fix up positions in one pass
// instead of a linked-list-by-insertion structure.
type Set struct {
	pos   map[string]int
	order []string
}

// New returns an empty ordered set.
func New() *Set {
	return &Set{pos: make(map[string]int)}
}

// FromSlice builds an ordered set by adding each element in order,
// dropping later duplicates — the shape SADD and the set-algebra
// commands need when seeding from existing members.
func FromSlice(items []string) *Set {
	s := New()
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts item if not already present. Returns true if it was newly
// added.
func (s *Set) Add(item string) bool {
	if _, ok := s.pos[item]; ok {
		return false
	}
	s.pos[item] = len(s.order)
	s.order = append(s.order, item)
	return true
}

// Remove deletes item if present, compacting the order slice and fixing
// positions for every element shifted left. Returns true if item was
// present.
func (s *Set) Remove(item string) bool {
	idx, ok := s.pos[item]
	if !ok {
		return false
	}
	last := len(s.order) - 1
	copy(s.order[idx:], s.order[idx+1:])
	s.order = s.order[:last]
	delete(s.pos, item)
	for i := idx; i < len(s.order); i++ {
		s.pos[s.order[i]] = i
	}
	return true
}

// Contains reports O(1) membership.
func (s *Set) Contains(item string) bool {
	_, ok := s.pos[item]
	return ok
}

// Len returns the cardinality.
func (s *Set) Len() int { return len(s.order) }

// Members returns a copy of the members in insertion order. Callers own
// the returned slice.
func (s *Set) Members() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// UnionUpdate adds each element of items in order; elements already
// present are left at their original position.
func (s *Set) UnionUpdate(items []string) {
	for _, it := range items {
		s.Add(it)
	}
}

// IntersectionUpdate retains only elements also present in items. The
// relative order of retained elements is this set's original insertion
// order (not the order of items).
func (s *Set) IntersectionUpdate(items []string) {
	keep := make(map[string]struct{}, len(items))
	for _, it := range items {
		keep[it] = struct{}{}
	}
	for _, member := range s.Members() {
		if _, ok := keep[member]; !ok {
			s.Remove(member)
		}
	}
}

// DifferenceUpdate removes each element of items from the set.
func (s *Set) DifferenceUpdate(items []string) {
	for _, it := range items {
		s.Remove(it)
	}
}

// Diff returns a new ordered set containing members of s not present in
// any of others, iterating in s's insertion order (spec.md §4.2/§8
// property 7).
func Diff(s *Set, others ...*Set) *Set {
	result := FromSlice(s.Members())
	for _, o := range others {
		result.DifferenceUpdate(o.Members())
	}
	return result
}

// Inter returns a new ordered set containing members present in s and
// every other set, iterating in s's insertion order.
func Inter(s *Set, others ...*Set) *Set {
	result := FromSlice(s.Members())
	for _, o := range others {
		result.IntersectionUpdate(o.Members())
	}
	return result
}

// Union returns a new ordered set that is the concatenation of all
// operands with later duplicates dropped: iteration order follows s
// first, then each of others in order.
func Union(s *Set, others ...*Set) *Set {
	result := FromSlice(s.Members())
	for _, o := range others {
		result.UnionUpdate(o.Members())
	}
	return result
}
