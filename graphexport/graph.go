// Package graphexport renders a fiber tree to Graphviz DOT and Mermaid
// text, adapted from resorch's dependency-graph exporter (graph.go):
// the same alias-then-edges approach, with nodes keyed by fiber
// identity instead of a resolved ID, and edges drawn from Child and
// Sibling instead of "depends on".
package graphexport

import (
	"fmt"
	"strings"

	"github.com/tonyjiang88215/react/fiber"
)

// Node is one fiber rendered as a graph node.
type Node struct {
	Label     string
	Kind      string
	EffectTag string
}

// Edge connects two nodes; Kind is "child" or "sibling".
type Edge struct {
	From int
	To   int
	Kind string
}

// Graph is a snapshot of a fiber tree flattened for export.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// FromFiber walks root's Child/Sibling chains and captures every fiber
// reachable from it into a Graph.
func FromFiber(root *fiber.Fiber) Graph {
	g := Graph{}
	index := make(map[*fiber.Fiber]int)
	var order []*fiber.Fiber

	var visit func(f *fiber.Fiber)
	visit = func(f *fiber.Fiber) {
		if f == nil {
			return
		}
		if _, ok := index[f]; ok {
			return
		}
		index[f] = len(g.Nodes)
		order = append(order, f)
		g.Nodes = append(g.Nodes, Node{
			Label:     nodeLabel(f),
			Kind:      f.Kind.String(),
			EffectTag: effectLabel(f.EffectTag),
		})
		visit(f.Child)
		visit(f.Sibling)
	}
	visit(root)

	for i, f := range order {
		if f.Child != nil {
			g.Edges = append(g.Edges, Edge{From: i, To: index[f.Child], Kind: "child"})
		}
		if f.Sibling != nil {
			g.Edges = append(g.Edges, Edge{From: i, To: index[f.Sibling], Kind: "sibling"})
		}
	}
	return g
}

func nodeLabel(f *fiber.Fiber) string {
	if f.Key != nil {
		return fmt.Sprintf("%s(%s)", f.Kind, *f.Key)
	}
	return f.Kind.String()
}

func effectLabel(tag fiber.EffectTag) string {
	var parts []string
	if tag.Has(fiber.Placement) {
		parts = append(parts, "Placement")
	}
	if tag.Has(fiber.Deletion) {
		parts = append(parts, "Deletion")
	}
	if len(parts) == 0 {
		return "NoEffect"
	}
	return strings.Join(parts, "|")
}

// DOT exports Graphviz DOT text.
func (g Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph fibers {\n")
	b.WriteString("  rankdir=TB;\n")

	for i, n := range g.Nodes {
		label := escapeDOT(n.Label)
		if n.EffectTag != "NoEffect" {
			label = label + "\\n[" + escapeDOT(n.EffectTag) + "]"
		}
		b.WriteString(fmt.Sprintf("  n%d [label=\"%s\"];\n", i, label))
	}
	for _, e := range g.Edges {
		style := ""
		if e.Kind == "sibling" {
			style = " [style=dashed]"
		}
		b.WriteString(fmt.Sprintf("  n%d -> n%d%s;\n", e.From, e.To, style))
	}
	b.WriteString("}\n")
	return b.String()
}

// Mermaid exports Mermaid graph text.
func (g Graph) Mermaid() string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for i, n := range g.Nodes {
		label := escapeMermaid(n.Label)
		if n.EffectTag != "NoEffect" {
			label = label + "<br/>[" + escapeMermaid(n.EffectTag) + "]"
		}
		b.WriteString(fmt.Sprintf("    n%d[\"%s\"]\n", i, label))
	}
	for _, e := range g.Edges {
		arrow := "-->"
		if e.Kind == "sibling" {
			arrow = "-.->"
		}
		b.WriteString(fmt.Sprintf("    n%d %s n%d\n", e.From, arrow, e.To))
	}
	return b.String()
}

func escapeDOT(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func escapeMermaid(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}
