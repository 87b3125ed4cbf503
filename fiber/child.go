package fiber

// ChildDescription is the closed set of values describing a fiber's
// next children (spec §3). nil, bool, and the interface zero value are
// "empty" and carry no description; plain strings/numbers are the
// implicit text case and are normalized by the dispatcher rather than
// implementing this interface directly.
type ChildDescription interface {
	childDescription()
}

// Element describes a host or component element.
type Element struct {
	Key   *string
	Type  any
	Props any
	// Ref is the raw ref value as declared by the author: nil, a
	// callable fiber.Ref, a func(any), or a string identifying a legacy
	// string ref.
	Ref   any
	Owner *Fiber
}

func (Element) childDescription() {}

// Coroutine describes a coroutine-component child.
type Coroutine struct {
	Key     *string
	Handler any
	Props   any
}

func (Coroutine) childDescription() {}

// Yield describes a yield-component child produced by a coroutine.
type Yield struct {
	Key          *string
	Continuation any
	Value        any
}

func (Yield) childDescription() {}

// Portal describes a subtree rendered into a different host container.
type Portal struct {
	Key            *string
	ContainerInfo  any
	Implementation any
	Children       any
}

func (Portal) childDescription() {}

// Fragment describes a grouped sequence of children with no host
// representation of its own. Children is either a []ChildDescription
// (random access) or a lazy sequence exposing an iterator factory
// (see package iter). Fragment is used both for an explicit, possibly
// keyed Fragment element and, implicitly with Key == nil, for a bare
// nested sequence found inside another sequence (spec §4.8).
type Fragment struct {
	Key      *string
	Children any
}

func (Fragment) childDescription() {}
