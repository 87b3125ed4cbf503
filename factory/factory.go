// Package factory holds the reconciler's external collaborators: the
// fiber factory and reified-yield factory that spec §6 says are
// "consumed from" outside this module, plus one concrete FiberFactory
// implementation for tests and the cmd/reconcile demo to use. No
// ReifiedYieldFactory implementation is provided.
// Component rendering itself -- evaluating a class or function
// component to produce its next child description -- stays out of
// scope; DefaultFactory only constructs the fiber shell and, for
// elements whose Type was registered, a stateNode instance.
package factory

import (
	"sync"

	"github.com/tonyjiang88215/react/fiber"
)

// FiberFactory constructs new fibers from child descriptions and
// clones fibers for the work-in-progress tree (spec §6).
type FiberFactory interface {
	CreateFromText(text string, priority fiber.Priority) *fiber.Fiber
	CreateFromElement(el fiber.Element, priority fiber.Priority) *fiber.Fiber
	CreateFromCoroutine(co fiber.Coroutine, priority fiber.Priority) *fiber.Fiber
	CreateFromYield(y fiber.Yield, reified any, priority fiber.Priority) *fiber.Fiber
	CreateFromPortal(p fiber.Portal, priority fiber.Priority) *fiber.Fiber
	CreateFromFragment(children any, key *string, priority fiber.Priority) *fiber.Fiber
	Clone(f *fiber.Fiber, priority fiber.Priority) *fiber.Fiber
}

// ReifiedYieldFactory turns a yield description into (and updates) the
// opaque continuation value the coroutine machinery consumes.
type ReifiedYieldFactory interface {
	CreateReifiedYield(y fiber.Yield) any
	CreateUpdatedReifiedYield(previous any, y fiber.Yield) any
}

// Registry maps an element Type to a constructor for its stateNode,
// mirroring resorch's Registry: a (key -> compiled builder closure)
// table protected by a RWMutex, compiled once at registration time and
// looked up by value identity thereafter. Here the key is an element
// Type instead of a (kind, driver) pair, since the fiber shell itself
// is generic across element types and only the stateNode construction
// is type-specific.
type Registry struct {
	mu    sync.RWMutex
	build map[any]func(props any) any
}

// NewRegistry returns an empty element-type registry.
func NewRegistry() *Registry {
	return &Registry{build: make(map[any]func(props any) any)}
}

// Register installs the stateNode constructor for elementType. A later
// Register call for the same elementType overwrites the earlier one,
// matching the "last registration wins" convention hot-reloadable UI
// trees rely on.
func (r *Registry) Register(elementType any, build func(props any) any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.build[elementType] = build
}

func (r *Registry) instantiate(elementType any, props any) any {
	r.mu.RLock()
	build, ok := r.build[elementType]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return build(props)
}

// DefaultFactory is the reference FiberFactory implementation used by
// the reconcile package's own tests and by cmd/reconcile. A host
// renderer targeting a real platform supplies its own FiberFactory
// instead.
type DefaultFactory struct {
	registry *Registry

	mu     sync.Mutex
	nextID uint64
}

// NewDefaultFactory returns a DefaultFactory backed by registry. A nil
// registry is treated as empty: elements are still constructed, just
// without a stateNode instance.
func NewDefaultFactory(registry *Registry) *DefaultFactory {
	if registry == nil {
		registry = NewRegistry()
	}
	return &DefaultFactory{registry: registry}
}

func (f *DefaultFactory) allocID() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

func (f *DefaultFactory) CreateFromText(text string, priority fiber.Priority) *fiber.Fiber {
	return &fiber.Fiber{
		Kind:                fiber.HostText,
		PendingProps:        text,
		StateNode:           text,
		PendingWorkPriority: priority,
	}
}

func (f *DefaultFactory) CreateFromElement(el fiber.Element, priority fiber.Priority) *fiber.Fiber {
	return &fiber.Fiber{
		Kind:                fiber.HostElement,
		Key:                 el.Key,
		Type:                el.Type,
		PendingProps:        el.Props,
		StateNode:           f.registry.instantiate(el.Type, el.Props),
		PendingWorkPriority: priority,
	}
}

func (f *DefaultFactory) CreateFromCoroutine(co fiber.Coroutine, priority fiber.Priority) *fiber.Fiber {
	return &fiber.Fiber{
		Kind:                fiber.CoroutineComponent,
		Key:                 co.Key,
		Type:                co.Handler,
		PendingProps:        co,
		PendingWorkPriority: priority,
	}
}

func (f *DefaultFactory) CreateFromYield(y fiber.Yield, reified any, priority fiber.Priority) *fiber.Fiber {
	return &fiber.Fiber{
		Kind:                fiber.YieldComponent,
		Key:                 y.Key,
		Type:                reified,
		PendingProps:        y,
		PendingWorkPriority: priority,
	}
}

func (f *DefaultFactory) CreateFromPortal(p fiber.Portal, priority fiber.Priority) *fiber.Fiber {
	return &fiber.Fiber{
		Kind: fiber.HostPortal,
		Key:  p.Key,
		StateNode: fiber.PortalStateNode{
			ContainerInfo:  p.ContainerInfo,
			Implementation: p.Implementation,
		},
		PendingProps:        p.Children,
		PendingWorkPriority: priority,
	}
}

func (f *DefaultFactory) CreateFromFragment(children any, key *string, priority fiber.Priority) *fiber.Fiber {
	return &fiber.Fiber{
		Kind:                fiber.FragmentKind,
		Key:                 key,
		PendingProps:        children,
		PendingWorkPriority: priority,
	}
}

// Clone returns a shallow copy of f for the work-in-progress tree: a
// fresh *fiber.Fiber sharing f's descriptive fields but cross-linked to
// f via Alternate, with its own sibling-chain position reset by the
// caller (spec §4.2).
func (f *DefaultFactory) Clone(src *fiber.Fiber, priority fiber.Priority) *fiber.Fiber {
	clone := &fiber.Fiber{
		Kind:                src.Kind,
		Key:                 src.Key,
		Type:                src.Type,
		PendingProps:        src.PendingProps,
		StateNode:           src.StateNode,
		Ref:                 src.Ref,
		Return:              src.Return,
		Child:               src.Child,
		PendingWorkPriority: priority,
	}
	clone.Alternate = src
	src.Alternate = clone
	return clone
}
