package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyjiang88215/react/factory"
	"github.com/tonyjiang88215/react/fiber"
)

func TestCloneChildFibers_ClonesWhenChainStillAliasesCurrent(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	current := &fiber.Fiber{Kind: fiber.HostElement}
	a := &fiber.Fiber{Kind: fiber.HostElement, Key: keyPtr("a"), Return: current}
	b := &fiber.Fiber{Kind: fiber.HostElement, Key: keyPtr("b"), Return: current, Sibling: nil}
	a.Sibling = b
	current.Child = a

	workInProgress := &fiber.Fiber{Kind: fiber.HostElement, Alternate: current, Child: a}

	m := NewChildReconciler(fibers)
	m.CloneChildFibers(current, workInProgress)

	clones := siblingSlice(workInProgress.Child)
	require.Len(t, clones, 2)
	assert.Same(t, a, clones[0].Alternate)
	assert.Same(t, b, clones[1].Alternate)
	for _, c := range clones {
		assert.Same(t, workInProgress, c.Return)
	}
	assert.NotSame(t, a, clones[0], "a fresh clone must be a distinct object")
}

func TestCloneChildFibers_SkipsCloneWhenChainAlreadyOwnedByWorkInProgress(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	current := &fiber.Fiber{Kind: fiber.HostElement}
	currentChild := &fiber.Fiber{Kind: fiber.HostElement, Key: keyPtr("a"), Return: current}
	current.Child = currentChild

	ownChild := &fiber.Fiber{Kind: fiber.HostElement, Key: keyPtr("a")}
	workInProgress := &fiber.Fiber{Kind: fiber.HostElement, Alternate: current, Child: ownChild}

	m := NewChildReconciler(fibers)
	m.CloneChildFibers(current, workInProgress)

	assert.Same(t, ownChild, workInProgress.Child, "an already-owned chain must not be re-cloned")
	assert.Same(t, workInProgress, ownChild.Return, "the existing chain's Return pointers are still reset")
}

func TestCloneChildFibers_NilChildIsNoop(t *testing.T) {
	fibers := factory.NewDefaultFactory(nil)
	workInProgress := &fiber.Fiber{Kind: fiber.HostElement}

	m := NewChildReconciler(fibers)
	m.CloneChildFibers(nil, workInProgress)

	assert.Nil(t, workInProgress.Child)
}
