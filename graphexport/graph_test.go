package graphexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyjiang88215/react/fiber"
)

func TestFromFiber_WalksChildAndSiblingChains(t *testing.T) {
	key := "a"
	root := &fiber.Fiber{Kind: fiber.HostElement}
	child := &fiber.Fiber{Kind: fiber.HostElement, Key: &key, EffectTag: fiber.Placement}
	sibling := &fiber.Fiber{Kind: fiber.HostText, EffectTag: fiber.Deletion}
	root.Child = child
	child.Sibling = sibling

	g := FromFiber(root)

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "HostElement(a)", g.Nodes[1].Label)
	assert.Equal(t, "Placement", g.Nodes[1].EffectTag)
	assert.Equal(t, "Deletion", g.Nodes[2].EffectTag)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "child", g.Edges[0].Kind)
	assert.Equal(t, "sibling", g.Edges[1].Kind)
}

func TestFromFiber_NilRootProducesEmptyGraph(t *testing.T) {
	g := FromFiber(nil)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestGraph_DOTIncludesEffectTagAndDashedSiblingEdge(t *testing.T) {
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Sibling = &fiber.Fiber{Kind: fiber.HostText, EffectTag: fiber.Placement}

	dot := FromFiber(root).DOT()
	assert.Contains(t, dot, "digraph fibers")
	assert.Contains(t, dot, "[Placement]")
	assert.Contains(t, dot, "style=dashed")
}

func TestGraph_MermaidIncludesDottedSiblingArrow(t *testing.T) {
	root := &fiber.Fiber{Kind: fiber.HostElement}
	root.Sibling = &fiber.Fiber{Kind: fiber.HostText}

	mermaid := FromFiber(root).Mermaid()
	assert.Contains(t, mermaid, "graph TD")
	assert.Contains(t, mermaid, "-.->")
}

func TestEscape_QuotesAreEscaped(t *testing.T) {
	assert.Equal(t, `a\"b`, escapeDOT(`a"b`))
	assert.Equal(t, `a\"b`, escapeMermaid(`a"b`))
}
