package reconcile

import (
	"github.com/tonyjiang88215/react/fiber"
	"github.com/tonyjiang88215/react/refs"
)

// Each update* helper is shared between the single-child and
// multi-child paths (spec §4.5): current is nil, meaning "create
// fresh", or a fiber the caller has already confirmed sits at a
// matching key position -- the helper itself still checks kind and
// type before reusing it, and falls back to creating a fresh fiber
// when they differ. A caller whose current turns out unreusable
// detects it with wasReused (the returned fiber is neither current nor
// a clone of it) and deletes current itself.

func (m *Mode) updateText(current *fiber.Fiber, text string, priority fiber.Priority) *fiber.Fiber {
	if current != nil && current.Kind == fiber.HostText {
		next := m.useFiber(current, priority)
		next.PendingProps = text
		next.StateNode = text
		return next
	}
	return m.fibers.CreateFromText(text, priority)
}

func (m *Mode) updateElement(current *fiber.Fiber, el fiber.Element, priority fiber.Priority) (*fiber.Fiber, error) {
	if current != nil && current.Kind == fiber.HostElement && current.Type == el.Type {
		next := m.useFiber(current, priority)
		next.PendingProps = el.Props
		ref, err := refs.Coerce(current, el.Ref, el.Owner)
		if err != nil {
			return nil, err
		}
		next.Ref = ref
		return next, nil
	}
	next := m.fibers.CreateFromElement(el, priority)
	ref, err := refs.Coerce(nil, el.Ref, el.Owner)
	if err != nil {
		return nil, err
	}
	next.Ref = ref
	return next, nil
}

func (m *Mode) updateCoroutine(current *fiber.Fiber, co fiber.Coroutine, priority fiber.Priority) *fiber.Fiber {
	// Reuse is decided on kind alone, not on whether the handler
	// reference changed (spec §4.5, §4.9(a)): a same-key coroutine whose
	// handler was swapped still gets its PendingProps refreshed in place
	// rather than being deleted and recreated.
	if current != nil && current.Kind == fiber.CoroutineComponent {
		next := m.useFiber(current, priority)
		next.PendingProps = co
		return next
	}
	return m.fibers.CreateFromCoroutine(co, priority)
}

func (m *Mode) updateYield(current *fiber.Fiber, y fiber.Yield, priority fiber.Priority) *fiber.Fiber {
	if current != nil && current.Kind == fiber.YieldComponent {
		next := m.useFiber(current, priority)
		next.PendingProps = y
		if m.yields != nil {
			next.Type = m.yields.CreateUpdatedReifiedYield(current.Type, y)
		}
		return next
	}
	var reified any
	if m.yields != nil {
		reified = m.yields.CreateReifiedYield(y)
	}
	return m.fibers.CreateFromYield(y, reified, priority)
}

func (m *Mode) updatePortal(current *fiber.Fiber, p fiber.Portal, priority fiber.Priority) *fiber.Fiber {
	if current != nil && current.Kind == fiber.HostPortal {
		if node, ok := current.StateNode.(fiber.PortalStateNode); ok &&
			node.ContainerInfo == p.ContainerInfo && node.Implementation == p.Implementation {
			next := m.useFiber(current, priority)
			next.PendingProps = p.Children
			return next
		}
	}
	return m.fibers.CreateFromPortal(p, priority)
}

func (m *Mode) updateFragment(current *fiber.Fiber, frag fiber.Fragment, priority fiber.Priority) *fiber.Fiber {
	if current != nil && current.Kind == fiber.FragmentKind {
		next := m.useFiber(current, priority)
		next.PendingProps = frag.Children
		return next
	}
	return m.fibers.CreateFromFragment(frag.Children, frag.Key, priority)
}
