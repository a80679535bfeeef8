// Package network reconstructs the node/edge structure embedded in a graph
// document's traces and summarises it.
package network

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/ritzau/network-navigator/pkg/figure"
	"github.com/ritzau/network-navigator/pkg/labels"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// positionScale quantises coordinates so that an edge endpoint and the node
// it was drawn from compare equal despite float formatting.
const positionScale = 1e6

type position [3]int64

// Node is one marker of a point-trace.
type Node struct {
	ID        int64   `json:"id"`
	Label     string  `json:"label"`
	Community string  `json:"community"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}

// Network is the graph recovered from a document.
type Network struct {
	graph     *simple.UndirectedGraph
	nodes     []Node
	byPos     map[position]int64
	segments  int
	dangling  int
	selfLoops int
}

// Build recovers the network from doc. Markers of point-traces become
// nodes, labelled through table; consecutive vertices of line-traces become
// edges between the nodes at their endpoints. A null vertex ends a polyline.
// Endpoints that match no node are counted, never an error.
func Build(doc *figure.Document, table *labels.Table) *Network {
	if table == nil {
		table = labels.Default()
	}

	n := &Network{
		graph: simple.NewUndirectedGraph(),
		byPos: make(map[position]int64),
	}

	for i, tr := range doc.Data {
		if tr.IsPoints() {
			n.addNodes(i, tr, table)
		}
	}
	for _, tr := range doc.Data {
		if tr.IsLines() {
			n.addEdges(tr)
		}
	}
	return n
}

func (n *Network) addNodes(index int, tr figure.Trace, table *labels.Table) {
	xs, ys, zs := tr.Coords()
	text, _ := tr.Text()

	community := tr.Name()
	if community == "" {
		community = fmt.Sprintf("trace %d", index)
	}

	for i := range min(len(xs), len(ys), len(zs)) {
		p, ok := vertex(xs[i], ys[i], zs[i])
		if !ok {
			continue
		}
		key := quantise(p)
		if _, exists := n.byPos[key]; exists {
			continue
		}

		label := fmt.Sprintf("%s #%d", community, i)
		if i < len(text) {
			if code, ok := text[i].(string); ok && code != "" {
				label = table.Lookup(code)
			}
		}

		id := int64(len(n.nodes))
		n.graph.AddNode(simple.Node(id))
		n.byPos[key] = id
		n.nodes = append(n.nodes, Node{ID: id, Label: label, Community: community, X: p[0], Y: p[1], Z: p[2]})
	}
}

func (n *Network) addEdges(tr figure.Trace) {
	xs, ys, zs := tr.Coords()

	var prev *[3]float64
	for i := range min(len(xs), len(ys), len(zs)) {
		p, ok := vertex(xs[i], ys[i], zs[i])
		if !ok {
			prev = nil
			continue
		}
		if prev != nil {
			n.addSegment(*prev, p)
		}
		prev = &p
	}
}

func (n *Network) addSegment(a, b [3]float64) {
	n.segments++

	from, okA := n.byPos[quantise(a)]
	to, okB := n.byPos[quantise(b)]
	if !okA {
		n.dangling++
	}
	if !okB {
		n.dangling++
	}
	if !okA || !okB {
		return
	}
	if from == to {
		n.selfLoops++
		return
	}
	if n.graph.HasEdgeBetween(from, to) {
		return
	}
	n.graph.SetEdge(n.graph.NewEdge(n.graph.Node(from), n.graph.Node(to)))
}

// Nodes returns the recovered nodes in document order.
func (n *Network) Nodes() []Node {
	return slices.Clone(n.nodes)
}

// Degree returns the number of distinct neighbours of node id.
func (n *Network) Degree(id int64) int {
	return n.graph.From(id).Len()
}

// Neighbours returns the labels of the nodes adjacent to id, sorted.
func (n *Network) Neighbours(id int64) []string {
	it := n.graph.From(id)
	out := make([]string, 0, it.Len())
	for it.Next() {
		out = append(out, n.nodes[it.Node().ID()].Label)
	}
	slices.Sort(out)
	return out
}

// EdgeCount returns the number of distinct node pairs joined by a segment.
func (n *Network) EdgeCount() int {
	return n.graph.Edges().Len()
}

// Components returns the connected components as lists of node labels,
// largest first.
func (n *Network) Components() [][]string {
	comps := topo.ConnectedComponents(n.graph)
	out := make([][]string, 0, len(comps))
	for _, comp := range comps {
		names := make([]string, 0, len(comp))
		for _, node := range comp {
			names = append(names, n.nodes[node.ID()].Label)
		}
		slices.Sort(names)
		out = append(out, names)
	}
	slices.SortFunc(out, func(a, b []string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
	return out
}

func vertex(x, y, z any) ([3]float64, bool) {
	var p [3]float64
	for i, v := range []any{x, y, z} {
		f, ok := number(v)
		if !ok {
			return p, false
		}
		p[i] = f
	}
	return p, true
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func quantise(p [3]float64) position {
	return position{
		int64(math.Round(p[0] * positionScale)),
		int64(math.Round(p[1] * positionScale)),
		int64(math.Round(p[2] * positionScale)),
	}
}
