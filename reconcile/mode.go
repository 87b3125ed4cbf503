// Package reconcile implements child-list reconciliation: diffing a
// fiber's current children against a newly rendered child description
// to produce the next child-fiber chain, tagged with the host effects
// a committer must apply (spec §4).
//
// The algorithm is parameterized at runtime by two booleans,
// shouldClone and shouldTrackSideEffects, exactly as spec §4.1
// describes -- monomorphizing the three combinations into separate
// code paths is a later optimization this package does not take on.
package reconcile

import (
	"github.com/tonyjiang88215/react/diagnostics"
	"github.com/tonyjiang88215/react/factory"
	"github.com/tonyjiang88215/react/fiber"
)

// Mode is a configured reconciler. The zero value is not usable; build
// one with NewChildReconciler, NewInPlaceReconciler, or NewMounter.
type Mode struct {
	fibers factory.FiberFactory
	yields factory.ReifiedYieldFactory

	shouldClone            bool
	shouldTrackSideEffects bool

	sink        diagnostics.Sink
	devWarnings bool
}

// Option configures a Mode beyond its required collaborators.
type Option func(*Mode)

// WithDiagnosticSink routes non-fatal diagnostics (duplicate-key
// warnings) to sink instead of discarding them.
func WithDiagnosticSink(sink diagnostics.Sink) Option {
	return func(m *Mode) { m.sink = sink }
}

// WithDevWarnings enables the dev-mode duplicate-key scan (spec §7).
// It is off by default: the scan costs an extra pass over the new
// children and is meant for development builds only.
func WithDevWarnings(enabled bool) Option {
	return func(m *Mode) { m.devWarnings = enabled }
}

// WithReifiedYieldFactory supplies the collaborator used to reify yield
// child descriptions. Reconcilers that never see Yield children can
// omit this.
func WithReifiedYieldFactory(y factory.ReifiedYieldFactory) Option {
	return func(m *Mode) { m.yields = y }
}

func newMode(fibers factory.FiberFactory, shouldClone, shouldTrackSideEffects bool, opts []Option) *Mode {
	m := &Mode{
		fibers:                 fibers,
		shouldClone:            shouldClone,
		shouldTrackSideEffects: shouldTrackSideEffects,
		sink:                   diagnostics.NopSink{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewChildReconciler builds the reconciler used for a normal update
// pass: fibers are cloned onto the work-in-progress tree and Placement
// and Deletion effects are recorded (shouldClone=true,
// shouldTrackSideEffects=true).
func NewChildReconciler(fibers factory.FiberFactory, opts ...Option) *Mode {
	return newMode(fibers, true, true, opts)
}

// NewInPlaceReconciler builds a reconciler that mutates the current
// tree directly rather than cloning, while still tracking side effects
// (shouldClone=false, shouldTrackSideEffects=true). Spec §4.1 notes
// this variant is used when the work-in-progress tree already equals
// the current tree.
func NewInPlaceReconciler(fibers factory.FiberFactory, opts ...Option) *Mode {
	return newMode(fibers, false, true, opts)
}

// NewMounter builds the reconciler used for an initial mount: no
// current tree exists yet, fibers are never cloned, and no effects are
// recorded since the whole subtree is already a fresh Placement at the
// root (shouldClone=false, shouldTrackSideEffects=false).
func NewMounter(fibers factory.FiberFactory, opts ...Option) *Mode {
	return newMode(fibers, false, false, opts)
}

// Reconcile diffs returningFiber's current children (read from
// currentFirstChild) against newChild, the just-rendered child
// description, and returns the head of the next child-fiber chain.
//
// newChild may be nil/bool (empty), a string/number (implicit text), a
// fiber.ChildDescription, or a top-level set of children expressed as
// []fiber.ChildDescription, []any, or an iter.IterableSequence.
func (m *Mode) Reconcile(
	returningFiber *fiber.Fiber,
	currentFirstChild *fiber.Fiber,
	newChild any,
	priority fiber.Priority,
) (*fiber.Fiber, error) {
	switch v := newChild.(type) {
	case []fiber.ChildDescription:
		items := make([]any, len(v))
		for i, c := range v {
			items[i] = c
		}
		return m.reconcileChildrenArray(returningFiber, currentFirstChild, items, priority)
	case []any:
		return m.reconcileChildrenArray(returningFiber, currentFirstChild, v, priority)
	default:
		if seq, ok := asIterableSequence(v); ok {
			return m.reconcileChildrenIterator(returningFiber, currentFirstChild, seq, priority)
		}
	}

	desc, err := normalizeChild(newChild, returningFiber)
	if err != nil {
		return nil, err
	}

	if desc == nil {
		m.deleteRemainingChildren(returningFiber, currentFirstChild)
		return nil, nil
	}

	switch v := desc.(type) {
	case textChild:
		return m.reconcileSingleTextChild(returningFiber, currentFirstChild, string(v), priority)
	case fiber.Element:
		return m.reconcileSingleElementChild(returningFiber, currentFirstChild, v, priority)
	case fiber.Coroutine:
		return m.reconcileSingleCoroutineChild(returningFiber, currentFirstChild, v, priority)
	case fiber.Yield:
		return m.reconcileSingleYieldChild(returningFiber, currentFirstChild, v, priority)
	case fiber.Portal:
		return m.reconcileSinglePortalChild(returningFiber, currentFirstChild, v, priority)
	case fiber.Fragment:
		return m.reconcileSingleFragmentChild(returningFiber, currentFirstChild, v, priority)
	default:
		m.deleteRemainingChildren(returningFiber, currentFirstChild)
		return nil, nil
	}
}
