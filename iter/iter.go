// Package iter adapts the external iterable-children protocol the
// reconciler's lazy multi-child path consumes (spec §6, "Consumed from
// iterable protocol"). It deliberately stays narrow: one method to get
// an iterator, one method to pull the next value, so a lazy sequence
// never needs to be materialized to be reconciled.
package iter

// Iterator is a one-shot forward cursor over a lazy child sequence.
type Iterator interface {
	// Next returns the next value and ok=true, or ok=false once the
	// sequence is exhausted.
	Next() (value any, ok bool)
}

// IterableSequence is the external collaborator probe for "does this
// value expose a lazy forward sequence of children". A declared lazy
// child implements this to hand back a fresh Iterator on demand; dev
// mode requests one iterator to scan for duplicate keys and a second,
// fresh one for the real pass (spec §9, "Lazy sequence in dev mode").
type IterableSequence interface {
	Iterator() Iterator
}

// ToIterator adapts a candidate value to an Iterator, reporting ok=false
// when the value is not iterable at all, or when its declared iterator
// factory yields a nil iterator (spec §4.8, NotIterable).
func ToIterator(v any) (Iterator, bool) {
	seq, ok := v.(IterableSequence)
	if !ok {
		return nil, false
	}
	it := seq.Iterator()
	if it == nil {
		return nil, false
	}
	return it, true
}

// SliceIterator adapts a plain slice to an Iterator, for callers that
// hold a lazy sequence in memory already (such as tests) without
// writing a bespoke Iterator.
type SliceIterator struct {
	items []any
	pos   int
}

func NewSliceIterator(items []any) *SliceIterator {
	return &SliceIterator{items: items}
}

func (s *SliceIterator) Next() (any, bool) {
	if s.pos >= len(s.items) {
		return nil, false
	}
	v := s.items[s.pos]
	s.pos++
	return v, true
}
