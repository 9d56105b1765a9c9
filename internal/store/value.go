package store

import "github.com/edirooss/respkv/internal/orderedset"

// Kind identifies which of the four value variants a key currently holds.
// A key maps to exactly one variant at a time (spec.md §3 invariant 1);
// storing a new value of a different kind replaces the old one outright.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindList
	KindSet
	KindStream
)

// String renders the kind the way TYPE reports it.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindStream:
		return "stream"
	default:
		return "none"
	}
}

// entry is the keyspace's internal record: a tagged variant plus an
// optional absolute expiry deadline. Exactly one of the payload fields is
// meaningful for a given kind; the others are left zero.
//
// Grounded on spec.md §9's "polymorphic value kind" design note. Mutated
// only while the owning Store's mutex is held (§5).
type entry struct {
	kind Kind

	str    string
	list   []string
	set    *orderedset.Set
	stream *streamValue

	expiry *int64 // unix-milliseconds deadline; nil means persistent
}

func newEntry(kind Kind) *entry {
	e := &entry{kind: kind}
	switch kind {
	case KindList:
		e.list = make([]string, 0)
	case KindSet:
		e.set = orderedset.New()
	case KindStream:
		e.stream = newStreamValue()
	}
	return e
}
