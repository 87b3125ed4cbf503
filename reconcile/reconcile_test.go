package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyjiang88215/react/diagnostics"
	"github.com/tonyjiang88215/react/factory"
	"github.com/tonyjiang88215/react/fiber"
)

func keyPtr(s string) *string { return &s }

func siblingSlice(first *fiber.Fiber) []*fiber.Fiber {
	var out []*fiber.Fiber
	for f := first; f != nil; f = f.Sibling {
		out = append(out, f)
	}
	return out
}

func keyed(children ...fiber.ChildDescription) []fiber.ChildDescription {
	return children
}

func li(key string) fiber.Element {
	return fiber.Element{Key: keyPtr(key), Type: "li"}
}

func TestMount_CreatesChildrenWithNoPlacement(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	m := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}

	first, err := m.Reconcile(root, nil, keyed(li("a"), li("b"), li("c")), 0)
	require.NoError(t, err)

	children := siblingSlice(first)
	require.Len(t, children, 3)
	for _, c := range children {
		assert.Equal(t, fiber.NoEffect, c.EffectTag, "mount never tags Placement")
	}
}

func TestUpdate_ReusesMatchingKeyedElements(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, keyed(li("a"), li("b"), li("c")), 0)
	oldA, oldB, oldC := root.Child, root.Child.Sibling, root.Child.Sibling.Sibling

	m := NewChildReconciler(fibers)
	next, err := m.Reconcile(root, root.Child, keyed(li("a"), li("b"), li("c")), 1)
	require.NoError(t, err)

	children := siblingSlice(next)
	require.Len(t, children, 3)
	assert.Same(t, oldA, children[0].Alternate)
	assert.Same(t, oldB, children[1].Alternate)
	assert.Same(t, oldC, children[2].Alternate)
	for _, c := range children {
		assert.Equal(t, fiber.NoEffect, c.EffectTag, "unchanged order needs no placement")
	}
}

func TestUpdate_TagsFibersBehindHighWaterMarkOnReorder(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, keyed(li("a"), li("b"), li("c")), 0)

	m := NewChildReconciler(fibers)
	// c (old index 2) moves to the front. lastPlacedIndex advances to 2
	// on c, so a (old index 0) and b (old index 1) now sit behind the
	// high-water mark and are the ones tagged for re-insertion -- c
	// itself needs no host move since nothing ahead of it shifted.
	next, err := m.Reconcile(root, root.Child, keyed(li("c"), li("a"), li("b")), 1)
	require.NoError(t, err)

	children := siblingSlice(next)
	require.Len(t, children, 3)
	assert.Equal(t, "c", *children[0].Key)
	assert.False(t, children[0].EffectTag.Has(fiber.Placement), "c advances the high-water mark, no move needed")
	assert.True(t, children[1].EffectTag.Has(fiber.Placement), "a now trails the high-water mark c set")
	assert.True(t, children[2].EffectTag.Has(fiber.Placement), "b now trails the high-water mark c set")
}

func TestUpdate_DeletesRemovedChildren(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, keyed(li("a"), li("b"), li("c")), 0)

	m := NewChildReconciler(fibers)
	next, err := m.Reconcile(root, root.Child, keyed(li("a")), 1)
	require.NoError(t, err)

	children := siblingSlice(next)
	require.Len(t, children, 1)
	assert.Equal(t, "a", *children[0].Key)

	var deletions []*fiber.Fiber
	for d := root.ProgressedFirstDeletion; d != nil; d = d.NextEffect {
		deletions = append(deletions, d)
	}
	require.Len(t, deletions, 2)
	assert.Equal(t, "b", *deletions[0].Key, "deletions are appended in visit order")
	assert.Equal(t, "c", *deletions[1].Key)
	for _, d := range deletions {
		assert.True(t, d.EffectTag.Has(fiber.Deletion))
	}
}

func TestUpdate_AppendsNewKeyedChild(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, keyed(li("a"), li("b")), 0)

	m := NewChildReconciler(fibers)
	next, err := m.Reconcile(root, root.Child, keyed(li("a"), li("b"), li("c")), 1)
	require.NoError(t, err)

	children := siblingSlice(next)
	require.Len(t, children, 3)
	assert.Equal(t, "c", *children[2].Key)
	assert.True(t, children[2].EffectTag.Has(fiber.Placement))
	assert.Nil(t, children[2].Alternate)
}

func TestUpdate_SingleTextChildReplacesElement(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, li("a"), 0)

	m := NewChildReconciler(fibers)
	next, err := m.Reconcile(root, root.Child, "hello", 1)
	require.NoError(t, err)

	require.NotNil(t, next)
	assert.Equal(t, fiber.HostText, next.Kind)
	assert.Equal(t, "hello", next.StateNode)
	assert.Nil(t, next.Sibling)

	var deletions []*fiber.Fiber
	for d := root.ProgressedFirstDeletion; d != nil; d = d.NextEffect {
		deletions = append(deletions, d)
	}
	require.Len(t, deletions, 1)
}

func TestUpdate_EmptyChildDeletesAll(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, keyed(li("a"), li("b")), 0)

	m := NewChildReconciler(fibers)
	next, err := m.Reconcile(root, root.Child, nil, 1)
	require.NoError(t, err)
	assert.Nil(t, next)

	var deletions []*fiber.Fiber
	for d := root.ProgressedFirstDeletion; d != nil; d = d.NextEffect {
		deletions = append(deletions, d)
	}
	require.Len(t, deletions, 2)
}

func TestUpdate_FragmentReconcilesNestedChildren(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}

	frag := fiber.Fragment{Children: keyed(li("a"), li("b"))}
	root.Child, _ = mounter.Reconcile(root, nil, frag, 0)
	require.Equal(t, fiber.FragmentKind, root.Child.Kind)
	require.NotNil(t, root.Child.Child)
	oldFragment := root.Child

	m := NewChildReconciler(fibers)
	nextFrag := fiber.Fragment{Children: keyed(li("a"), li("b"), li("c"))}
	next, err := m.Reconcile(root, root.Child, nextFrag, 1)
	require.NoError(t, err)

	require.NotNil(t, next)
	grandchildren := siblingSlice(next.Child)
	require.Len(t, grandchildren, 3)
	assert.Same(t, oldFragment, next.Alternate)
	for _, gc := range grandchildren {
		assert.Same(t, next, gc.Return)
	}
}

func TestUpdate_StringRefWithoutOwnerIsFatal(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	m := NewChildReconciler(fibers)

	// A nil returningFiber means normalizeChild has no owner to inherit
	// the element into, so the string ref is left genuinely ownerless.
	_, err := m.Reconcile(nil, nil, fiber.Element{Type: "input", Ref: "theInput"}, 0)
	require.Error(t, err)
	var missing diagnostics.MissingOwnerError
	require.ErrorAs(t, err, &missing)
}

type warnSpy struct {
	warnings []diagnostics.DuplicateKeyWarning
}

func (s *warnSpy) Warn(w diagnostics.DuplicateKeyWarning) {
	s.warnings = append(s.warnings, w)
}

func TestDevWarnings_DuplicateKeyReported(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	spy := &warnSpy{}
	m := NewMounter(fibers, WithDevWarnings(true), WithDiagnosticSink(spy))
	root := &fiber.Fiber{Kind: fiber.HostElement}

	_, err := m.Reconcile(root, nil, keyed(li("a"), li("a")), 0)
	require.NoError(t, err)
	require.Len(t, spy.warnings, 1)
	assert.Equal(t, "a", spy.warnings[0].Key)
}

func TestUpdate_SparseSlotLookaheadTreatsGapAsInsertion(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}

	// Mounting [null, "hello"] skips the null slot entirely, so the sole
	// surviving fiber ("hello") lands at Index 1, not 0 -- the old chain
	// now has a gap at Index 0.
	root.Child, _ = mounter.Reconcile(root, nil, []any{nil, "hello"}, 0)
	oldHello := root.Child
	require.Equal(t, 1, oldHello.Index)
	require.Nil(t, oldHello.Sibling)

	m := NewChildReconciler(fibers)
	next, err := m.Reconcile(root, root.Child, []any{"world", "hello2"}, 1)
	require.NoError(t, err)

	children := siblingSlice(next)
	require.Len(t, children, 2)
	// The gap at newIdx 0 must be filled by a fresh fiber, not by
	// wrongly reusing oldHello (whose Index of 1 belongs at newIdx 1).
	assert.Equal(t, "world", children[0].StateNode)
	assert.Nil(t, children[0].Alternate, "the sparse slot is an insertion, not a reuse")
	assert.Equal(t, "hello2", children[1].StateNode)
	assert.Same(t, oldHello, children[1].Alternate, "oldHello is still matched against its correct newIdx")
}

func TestInPlaceReconciler_MutatesExistingFiberAndTracksEffects(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, keyed(li("a"), li("b")), 0)
	oldA := root.Child

	m := NewInPlaceReconciler(fibers)
	next, err := m.Reconcile(root, root.Child, keyed(li("a")), 1)
	require.NoError(t, err)

	require.NotNil(t, next)
	assert.Same(t, oldA, next, "in-place mode reuses the same fiber object")
	assert.Nil(t, next.Sibling, "the removed sibling must not leak through")

	var deletions []*fiber.Fiber
	for d := root.ProgressedFirstDeletion; d != nil; d = d.NextEffect {
		deletions = append(deletions, d)
	}
	require.Len(t, deletions, 1)
	assert.Equal(t, "b", *deletions[0].Key)
}

func TestUpdate_CoroutineReusesAcrossHandlerChange(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	handlerA := func() {}
	root.Child, _ = mounter.Reconcile(root, nil, fiber.Coroutine{Key: keyPtr("co"), Handler: handlerA, Props: 1}, 0)
	oldCo := root.Child
	require.Equal(t, fiber.CoroutineComponent, oldCo.Kind)

	m := NewChildReconciler(fibers)
	handlerB := func() {}
	next, err := m.Reconcile(root, root.Child, fiber.Coroutine{Key: keyPtr("co"), Handler: handlerB, Props: 2}, 1)
	require.NoError(t, err)

	require.NotNil(t, next)
	// Reuse is decided on kind alone: a changed Handler does not force a
	// delete-and-recreate, it just refreshes PendingProps in place.
	assert.Same(t, oldCo, next.Alternate)
	refreshed, ok := next.PendingProps.(fiber.Coroutine)
	require.True(t, ok)
	assert.Equal(t, 2, refreshed.Props)
	assert.Equal(t, "co", *refreshed.Key)

	var deletions []*fiber.Fiber
	for d := root.ProgressedFirstDeletion; d != nil; d = d.NextEffect {
		deletions = append(deletions, d)
	}
	assert.Empty(t, deletions, "a handler change alone must not delete the coroutine")
}

func TestMount_YieldAndPortalChildrenAreCreated(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	m := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}

	first, err := m.Reconcile(root, nil, keyed(
		fiber.Yield{Key: keyPtr("y"), Value: "v1"},
		fiber.Portal{Key: keyPtr("p"), ContainerInfo: "container-1"},
	), 0)
	require.NoError(t, err)

	children := siblingSlice(first)
	require.Len(t, children, 2)
	assert.Equal(t, fiber.YieldComponent, children[0].Kind)
	assert.Equal(t, fiber.HostPortal, children[1].Kind)
	for _, c := range children {
		assert.Equal(t, fiber.NoEffect, c.EffectTag, "mount never tags Placement")
	}
}

func TestUpdate_PortalReusesSameContainerAndRecreatesOnContainerChange(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	mounter := NewMounter(fibers)
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Child, _ = mounter.Reconcile(root, nil, fiber.Portal{Key: keyPtr("p"), ContainerInfo: "container-1", Children: "a"}, 0)
	oldPortal := root.Child

	m := NewChildReconciler(fibers)
	sameContainer, err := m.Reconcile(root, root.Child, fiber.Portal{Key: keyPtr("p"), ContainerInfo: "container-1", Children: "b"}, 1)
	require.NoError(t, err)
	require.NotNil(t, sameContainer)
	assert.Same(t, oldPortal, sameContainer.Alternate, "same container info reuses the portal fiber")

	root.Child = sameContainer
	sameContainer.Return = root
	differentContainer, err := m.Reconcile(root, root.Child, fiber.Portal{Key: keyPtr("p"), ContainerInfo: "container-2", Children: "c"}, 2)
	require.NoError(t, err)
	require.NotNil(t, differentContainer)
	assert.Nil(t, differentContainer.Alternate, "a different container forces a fresh portal fiber")
}
