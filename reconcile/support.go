package reconcile

import "github.com/tonyjiang88215/react/fiber"

// useFiber returns a fiber ready to host fresh props: a clone of
// current when m.shouldClone is set, or current itself mutated in
// place otherwise (spec §4.2). It never tags an effect; that is the
// caller's job once it knows whether this is a reuse or a fresh
// placement.
func (m *Mode) useFiber(current *fiber.Fiber, priority fiber.Priority) *fiber.Fiber {
	if !m.shouldClone {
		current.PendingWorkPriority = priority
		current.EffectTag = fiber.NoEffect
		return current
	}
	return m.fibers.Clone(current, priority)
}

// placeChild positions newFiber within the sibling chain being built
// and decides whether it needs a Placement effect, implementing the
// single-pass move detection of spec §4.6: a child whose old index is
// already >= lastPlacedIndex is in relative order, stays put, and
// advances lastPlacedIndex to its old index; a child whose old index is
// below lastPlacedIndex is tagged Placement so the host moves it, and
// lastPlacedIndex is returned unchanged.
//
// oldFiber is the current-tree fiber newFiber was produced from, or
// nil for a fresh mount; its Index is read before newFiber.Index is
// overwritten below, since in an in-place mode oldFiber and newFiber
// are the very same object.
func (m *Mode) placeChild(newFiber *fiber.Fiber, oldFiber *fiber.Fiber, lastPlacedIndex int, newIndex int) int {
	var oldIndex int
	hadOld := oldFiber != nil
	if hadOld {
		oldIndex = oldFiber.Index
	}
	newFiber.Index = newIndex
	if !m.shouldTrackSideEffects {
		return lastPlacedIndex
	}

	if hadOld {
		if oldIndex < lastPlacedIndex {
			newFiber.EffectTag |= fiber.Placement
			return lastPlacedIndex
		}
		return oldIndex
	}

	newFiber.EffectTag |= fiber.Placement
	return lastPlacedIndex
}

// placeSingleChild tags newFiber for placement when it is a fresh
// mount (hadOld is false) in a side-effect-tracking mode. It is used
// by the single-child paths, which have no lastPlacedIndex bookkeeping
// of their own since there is only ever one child.
func (m *Mode) placeSingleChild(newFiber *fiber.Fiber, hadOld bool) *fiber.Fiber {
	if m.shouldTrackSideEffects && !hadOld {
		newFiber.EffectTag |= fiber.Placement
	}
	return newFiber
}

// deleteChild tags childToDelete for deletion and appends it to
// returningFiber's progressed-deletion chain (spec §4.7). It is a
// no-op in a mode that does not track side effects, since there is no
// current tree to prune in that case.
func (m *Mode) deleteChild(returningFiber *fiber.Fiber, childToDelete *fiber.Fiber) {
	if !m.shouldTrackSideEffects {
		return
	}
	childToDelete.EffectTag |= fiber.Deletion
	if returningFiber.ProgressedLastDeletion != nil {
		returningFiber.ProgressedLastDeletion.NextEffect = childToDelete
		returningFiber.ProgressedLastDeletion = childToDelete
	} else {
		returningFiber.ProgressedFirstDeletion = childToDelete
		returningFiber.ProgressedLastDeletion = childToDelete
	}
}

// deleteRemainingChildren deletes every fiber in the currentFirstChild
// sibling chain, in order, used when the new render has fewer children
// than the current tree (spec §4.4, §4.7).
func (m *Mode) deleteRemainingChildren(returningFiber *fiber.Fiber, currentFirstChild *fiber.Fiber) {
	if !m.shouldTrackSideEffects {
		return
	}
	for c := currentFirstChild; c != nil; c = c.Sibling {
		m.deleteChild(returningFiber, c)
	}
}

// wasReused reports whether newFiber is current's reused form rather
// than a freshly created fiber: either the very same object (an
// in-place mode reuse) or a clone cross-linked to current via
// Alternate (a cloning mode reuse). current nil always means "no
// reuse possible".
func wasReused(newFiber, current *fiber.Fiber) bool {
	if current == nil {
		return false
	}
	return newFiber == current || newFiber.Alternate == current
}

// firstChildOf returns f.Child, or nil when f itself is nil.
func firstChildOf(f *fiber.Fiber) *fiber.Fiber {
	if f == nil {
		return nil
	}
	return f.Child
}

// linkChild attaches child to parent and to the growing sibling chain
// whose tail is prev, returning child as the new tail. A nil prev means
// child becomes parent.Child.
func linkChild(parent *fiber.Fiber, prev *fiber.Fiber, child *fiber.Fiber) *fiber.Fiber {
	child.Return = parent
	child.Sibling = nil
	if prev == nil {
		parent.Child = child
	} else {
		prev.Sibling = child
	}
	return child
}
