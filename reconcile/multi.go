package reconcile

import (
	"strconv"

	"github.com/tonyjiang88215/react/diagnostics"
	"github.com/tonyjiang88215/react/fiber"
	"github.com/tonyjiang88215/react/iter"
)

// reconcileChildrenArray reconciles a top-level, randomly accessible
// set of children (spec §4.4).
func (m *Mode) reconcileChildrenArray(
	parent *fiber.Fiber,
	currentFirstChild *fiber.Fiber,
	newChildren []any,
	priority fiber.Priority,
) (*fiber.Fiber, error) {
	if m.devWarnings {
		warnDuplicateKeysSlice(newChildren, m.sink)
	}
	idx := 0
	pull := func() (any, bool) {
		if idx >= len(newChildren) {
			return nil, false
		}
		v := newChildren[idx]
		idx++
		return v, true
	}
	return m.reconcileChildrenSeq(parent, currentFirstChild, pull, priority)
}

// reconcileChildrenIterator reconciles a top-level lazy child sequence
// without materializing it (spec §4.4, §9).
func (m *Mode) reconcileChildrenIterator(
	parent *fiber.Fiber,
	currentFirstChild *fiber.Fiber,
	seq iter.IterableSequence,
	priority fiber.Priority,
) (*fiber.Fiber, error) {
	if m.devWarnings {
		warnDuplicateKeysIter(seq.Iterator(), m.sink)
	}
	it := seq.Iterator()
	if it == nil {
		return nil, diagnostics.NotIterableError{}
	}
	return m.reconcileChildrenSeq(parent, currentFirstChild, it.Next, priority)
}

// reconcileChildrenSeq is the shared four-phase scan (spec §4.4-§4.6)
// driven by a pull function, so an indexed slice and a lazy iterator
// run through identical logic:
//
//  1. Lockstep scan: walk old and new children together while each new
//     child's key still matches the old fiber at the same position,
//     reusing fibers in place with no map allocation.
//  2. If the new sequence ran out first, delete whatever old fibers
//     remain and stop.
//  3. If the old sequence ran out first, create the rest of the new
//     children fresh with no further key lookups needed.
//  4. Otherwise keys diverged with children left on both sides: index
//     the remaining old fibers by key (falling back to position for
//     unkeyed ones), look up or create each remaining new child against
//     that map, and delete whatever is left in the map once done.
func (m *Mode) reconcileChildrenSeq(
	parent *fiber.Fiber,
	currentFirstChild *fiber.Fiber,
	pull func() (any, bool),
	priority fiber.Priority,
) (*fiber.Fiber, error) {
	var resultingFirstChild, previousNewFiber *fiber.Fiber
	link := func(nf *fiber.Fiber) {
		nf.Return = parent
		nf.Sibling = nil
		if previousNewFiber == nil {
			resultingFirstChild = nf
		} else {
			previousNewFiber.Sibling = nf
		}
		previousNewFiber = nf
	}

	oldFiber := currentFirstChild
	lastPlacedIndex := 0
	newIdx := 0
	var pending any
	pendingOK := false

	for oldFiber != nil {
		raw, ok := pull()
		if !ok {
			m.deleteRemainingChildren(parent, oldFiber)
			return resultingFirstChild, nil
		}
		desc, err := normalizeChild(raw, parent)
		if err != nil {
			return nil, err
		}

		// A prior sparse pass can leave gaps in the old chain's Index
		// sequence; a gap at this newIdx means there is no old fiber at
		// this slot, so treat it as an insertion and hold oldFiber aside
		// for comparison against the next newIdx instead of consuming it.
		activeOld := oldFiber
		sparse := oldFiber.Index > newIdx
		var nextOldFiber *fiber.Fiber
		if sparse {
			nextOldFiber = oldFiber
			activeOld = nil
		}

		newFiber, err := m.updateSlot(activeOld, desc, priority)
		if err != nil {
			return nil, err
		}
		if newFiber == nil {
			pending, pendingOK = desc, true
			if sparse {
				oldFiber = nextOldFiber
			}
			break
		}
		if !sparse {
			nextOldFiber = oldFiber.Sibling
		}
		reused := wasReused(newFiber, activeOld)
		if activeOld != nil && !reused {
			m.deleteChild(parent, activeOld)
		}
		placementSource := activeOld
		if !reused {
			placementSource = nil
		}
		lastPlacedIndex = m.placeChild(newFiber, placementSource, lastPlacedIndex, newIdx)
		link(newFiber)
		oldFiber = nextOldFiber
		newIdx++
	}

	if oldFiber == nil {
		for {
			raw, ok := pull()
			if !ok {
				break
			}
			desc, err := normalizeChild(raw, parent)
			if err != nil {
				return nil, err
			}
			newFiber, err := m.createChild(desc, priority)
			if err != nil {
				return nil, err
			}
			if newFiber != nil {
				lastPlacedIndex = m.placeChild(newFiber, nil, lastPlacedIndex, newIdx)
				link(newFiber)
			}
			newIdx++
		}
		return resultingFirstChild, nil
	}

	existingChildren, remainingOld := mapRemainingChildren(oldFiber)
	process := func(desc any) error {
		key := mapKeyFor(childKey(desc), newIdx)
		matchedOld := existingChildren[key]
		newFiber, err := m.updateFromMap(existingChildren, key, desc, priority)
		if err != nil {
			return err
		}
		if newFiber != nil {
			reused := wasReused(newFiber, matchedOld)
			if reused {
				delete(existingChildren, key)
			}
			placementSource := matchedOld
			if !reused {
				placementSource = nil
			}
			lastPlacedIndex = m.placeChild(newFiber, placementSource, lastPlacedIndex, newIdx)
			link(newFiber)
		}
		newIdx++
		return nil
	}

	if pendingOK {
		if err := process(pending); err != nil {
			return nil, err
		}
	}
	for {
		raw, ok := pull()
		if !ok {
			break
		}
		desc, err := normalizeChild(raw, parent)
		if err != nil {
			return nil, err
		}
		if err := process(desc); err != nil {
			return nil, err
		}
	}

	if m.shouldTrackSideEffects {
		for _, c := range remainingOld {
			if _, stillPending := existingChildren[mapKeyFor(c.Key, c.Index)]; stillPending {
				m.deleteChild(parent, c)
			}
		}
	}
	return resultingFirstChild, nil
}

// updateSlot attempts to reuse oldFiber for desc, returning nil when
// desc is empty or its key does not match oldFiber's (spec §4.4's
// lockstep phase). A nil oldFiber means the slot was cleared by the
// sparse-slot lookahead (spec §4.7 phase 1, step 1): there is no old
// fiber to match against, so desc is simply built fresh.
func (m *Mode) updateSlot(oldFiber *fiber.Fiber, desc any, priority fiber.Priority) (*fiber.Fiber, error) {
	if isEmpty(desc) {
		return nil, nil
	}
	if oldFiber == nil {
		return m.updateChildOfKind(nil, desc, priority)
	}
	if !fiber.KeyEqual(oldFiber.Key, childKey(desc)) {
		return nil, nil
	}
	return m.updateChildOfKind(oldFiber, desc, priority)
}

// createChild builds a fresh fiber for desc with no current fiber to
// reuse, or returns nil for an empty desc.
func (m *Mode) createChild(desc any, priority fiber.Priority) (*fiber.Fiber, error) {
	if isEmpty(desc) {
		return nil, nil
	}
	return m.updateChildOfKind(nil, desc, priority)
}

// updateFromMap looks up desc's matching old fiber (if any) in the
// keyed map phase and reuses or creates accordingly.
func (m *Mode) updateFromMap(existingChildren map[string]*fiber.Fiber, key string, desc any, priority fiber.Priority) (*fiber.Fiber, error) {
	if isEmpty(desc) {
		return nil, nil
	}
	return m.updateChildOfKind(existingChildren[key], desc, priority)
}

// updateChildOfKind dispatches to the per-kind update helper shared
// with the single-child path, handling Fragment's nested-children
// recursion inline.
func (m *Mode) updateChildOfKind(current *fiber.Fiber, desc any, priority fiber.Priority) (*fiber.Fiber, error) {
	switch v := desc.(type) {
	case textChild:
		return m.updateText(current, string(v), priority), nil
	case fiber.Element:
		return m.updateElement(current, v, priority)
	case fiber.Coroutine:
		return m.updateCoroutine(current, v, priority), nil
	case fiber.Yield:
		return m.updateYield(current, v, priority), nil
	case fiber.Portal:
		return m.updatePortal(current, v, priority), nil
	case fiber.Fragment:
		return m.updateFragmentWithChildren(current, v, priority)
	default:
		return nil, nil
	}
}

func (m *Mode) updateFragmentWithChildren(current *fiber.Fiber, frag fiber.Fragment, priority fiber.Priority) (*fiber.Fiber, error) {
	next := m.updateFragment(current, frag, priority)
	prevChildren := firstChildOf(current)
	grandchildren, err := m.Reconcile(next, prevChildren, frag.Children, priority)
	if err != nil {
		return nil, err
	}
	next.Child = grandchildren
	for gc := grandchildren; gc != nil; gc = gc.Sibling {
		gc.Return = next
	}
	return next, nil
}

// mapKeyFor computes the lookup key used in the map phase: an explicit
// key always wins identity; an unkeyed child is identified by its
// position instead.
func mapKeyFor(key *string, index int) string {
	if key != nil {
		return "k:" + *key
	}
	return "i:" + strconv.Itoa(index)
}

// mapRemainingChildren indexes the remaining old sibling chain by key
// (or position) for the map phase, alongside an ordered snapshot of
// the same fibers. The snapshot is taken once, up front: an in-place
// mode reuses some of these very fiber objects as their own
// replacement and relinks their Sibling pointer to a new neighbor, so
// walking .Sibling again afterward would silently truncate whatever
// is left to clean up.
func mapRemainingChildren(firstChild *fiber.Fiber) (map[string]*fiber.Fiber, []*fiber.Fiber) {
	m := make(map[string]*fiber.Fiber, 8)
	var ordered []*fiber.Fiber
	for c := firstChild; c != nil; c = c.Sibling {
		m[mapKeyFor(c.Key, c.Index)] = c
		ordered = append(ordered, c)
	}
	return m, ordered
}
