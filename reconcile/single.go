package reconcile

import "github.com/tonyjiang88215/react/fiber"

// reconcileSingleChild implements spec §4.3's single-child scan: walk
// the current sibling chain looking for a fiber whose key matches key.
// The first such fiber is reused via reuse if it also matches kind and
// type; every other current child -- both those scanned before it and
// everything left after it -- is deleted, since a keyed child list can
// have at most one fiber per key. If no match is found, every current
// child is deleted and create builds a fresh fiber.
func (m *Mode) reconcileSingleChild(
	parent *fiber.Fiber,
	currentFirstChild *fiber.Fiber,
	key *string,
	matches func(c *fiber.Fiber) bool,
	reuse func(c *fiber.Fiber) (*fiber.Fiber, error),
	create func() (*fiber.Fiber, error),
) (*fiber.Fiber, error) {
	child := currentFirstChild
	for child != nil {
		if fiber.KeyEqual(child.Key, key) {
			if matches(child) {
				reused, err := reuse(child)
				if err != nil {
					return nil, err
				}
				m.deleteRemainingChildren(parent, child.Sibling)
				return linkChild(parent, nil, m.placeSingleChild(reused, true)), nil
			}
			m.deleteChild(parent, child)
			child = child.Sibling
			break
		}
		m.deleteChild(parent, child)
		child = child.Sibling
	}
	m.deleteRemainingChildren(parent, child)

	created, err := create()
	if err != nil {
		return nil, err
	}
	return linkChild(parent, nil, m.placeSingleChild(created, false)), nil
}

func (m *Mode) reconcileSingleTextChild(parent, currentFirstChild *fiber.Fiber, text string, priority fiber.Priority) (*fiber.Fiber, error) {
	return m.reconcileSingleChild(parent, currentFirstChild, nil,
		func(c *fiber.Fiber) bool { return c.Kind == fiber.HostText },
		func(c *fiber.Fiber) (*fiber.Fiber, error) { return m.updateText(c, text, priority), nil },
		func() (*fiber.Fiber, error) { return m.updateText(nil, text, priority), nil },
	)
}

func (m *Mode) reconcileSingleElementChild(parent, currentFirstChild *fiber.Fiber, el fiber.Element, priority fiber.Priority) (*fiber.Fiber, error) {
	return m.reconcileSingleChild(parent, currentFirstChild, el.Key,
		func(c *fiber.Fiber) bool { return c.Kind == fiber.HostElement && c.Type == el.Type },
		func(c *fiber.Fiber) (*fiber.Fiber, error) { return m.updateElement(c, el, priority) },
		func() (*fiber.Fiber, error) { return m.updateElement(nil, el, priority) },
	)
}

func (m *Mode) reconcileSingleCoroutineChild(parent, currentFirstChild *fiber.Fiber, co fiber.Coroutine, priority fiber.Priority) (*fiber.Fiber, error) {
	return m.reconcileSingleChild(parent, currentFirstChild, co.Key,
		func(c *fiber.Fiber) bool { return c.Kind == fiber.CoroutineComponent },
		func(c *fiber.Fiber) (*fiber.Fiber, error) { return m.updateCoroutine(c, co, priority), nil },
		func() (*fiber.Fiber, error) { return m.updateCoroutine(nil, co, priority), nil },
	)
}

func (m *Mode) reconcileSingleYieldChild(parent, currentFirstChild *fiber.Fiber, y fiber.Yield, priority fiber.Priority) (*fiber.Fiber, error) {
	return m.reconcileSingleChild(parent, currentFirstChild, y.Key,
		func(c *fiber.Fiber) bool { return c.Kind == fiber.YieldComponent },
		func(c *fiber.Fiber) (*fiber.Fiber, error) { return m.updateYield(c, y, priority), nil },
		func() (*fiber.Fiber, error) { return m.updateYield(nil, y, priority), nil },
	)
}

func (m *Mode) reconcileSinglePortalChild(parent, currentFirstChild *fiber.Fiber, p fiber.Portal, priority fiber.Priority) (*fiber.Fiber, error) {
	return m.reconcileSingleChild(parent, currentFirstChild, p.Key,
		func(c *fiber.Fiber) bool {
			node, ok := c.StateNode.(fiber.PortalStateNode)
			return c.Kind == fiber.HostPortal && ok &&
				node.ContainerInfo == p.ContainerInfo && node.Implementation == p.Implementation
		},
		func(c *fiber.Fiber) (*fiber.Fiber, error) { return m.updatePortal(c, p, priority), nil },
		func() (*fiber.Fiber, error) { return m.updatePortal(nil, p, priority), nil },
	)
}

func (m *Mode) reconcileSingleFragmentChild(parent, currentFirstChild *fiber.Fiber, frag fiber.Fragment, priority fiber.Priority) (*fiber.Fiber, error) {
	return m.reconcileSingleChild(parent, currentFirstChild, frag.Key,
		func(c *fiber.Fiber) bool { return c.Kind == fiber.FragmentKind },
		func(c *fiber.Fiber) (*fiber.Fiber, error) { return m.updateFragmentWithChildren(c, frag, priority) },
		func() (*fiber.Fiber, error) { return m.updateFragmentWithChildren(nil, frag, priority) },
	)
}
