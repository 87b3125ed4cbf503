package reconcile

import "github.com/tonyjiang88215/react/fiber"

// CloneChildFibers clones every sibling in workInProgress.Child's chain
// onto a fresh work-in-progress chain, used when a fiber is revisited
// without new children of its own (spec §4.10): each child is cloned via
// the factory, preserving that child's own priority rather than forcing
// a shared one, and the clones are relinked as workInProgress's new
// Child chain. If workInProgress already has its own chain -- it no
// longer aliases current's -- the chain is left as is and only each
// child's Return pointer is reset to workInProgress.
func (m *Mode) CloneChildFibers(current, workInProgress *fiber.Fiber) {
	if workInProgress.Child == nil {
		return
	}
	if workInProgress.Child != firstChildOf(current) {
		for child := workInProgress.Child; child != nil; child = child.Sibling {
			child.Return = workInProgress
		}
		return
	}
	var prev *fiber.Fiber
	for child := workInProgress.Child; child != nil; child = child.Sibling {
		clone := m.fibers.Clone(child, child.PendingWorkPriority)
		prev = linkChild(workInProgress, prev, clone)
	}
}
