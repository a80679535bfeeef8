package network

import (
	"cmp"
	"slices"

	"github.com/ritzau/network-navigator/pkg/figure"
)

// DefaultTopDegree is how many hub nodes a summary lists.
const DefaultTopDegree = 5

// NodeDegree pairs a node label with its neighbours.
type NodeDegree struct {
	Label      string   `json:"label"`
	Community  string   `json:"community"`
	Degree     int      `json:"degree"`
	Neighbours []string `json:"neighbours"`
}

// Community counts the nodes of one point-trace.
type Community struct {
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
}

// Summary describes a document's traces and the network they draw.
type Summary struct {
	Traces      int `json:"traces"`
	PointTraces int `json:"pointTraces"`
	LineTraces  int `json:"lineTraces"`
	OtherTraces int `json:"otherTraces"`

	Modes map[string]int `json:"modes"` // trace count per mode string

	Nodes             int `json:"nodes"`
	Edges             int `json:"edges"`
	Segments          int `json:"segments"`
	DanglingEndpoints int `json:"danglingEndpoints"`
	SelfLoops         int `json:"selfLoops"`
	Components        int `json:"components"`
	LargestComponent  int `json:"largestComponent"`
	Isolated          int `json:"isolated"`

	Communities []Community  `json:"communities"`
	TopDegree   []NodeDegree `json:"topDegree"`
}

// Summary describes n, which must have been built from doc. top limits the
// number of hub nodes listed; a negative top lists none.
func (n *Network) Summary(doc *figure.Document, top int) Summary {
	s := Summary{
		Traces:            len(doc.Data),
		Modes:             doc.CountByMode(),
		Nodes:             len(n.nodes),
		Edges:             n.EdgeCount(),
		Segments:          n.segments,
		DanglingEndpoints: n.dangling,
		SelfLoops:         n.selfLoops,
		Communities:       []Community{},
		TopDegree:         []NodeDegree{},
	}

	for _, tr := range doc.Data {
		switch {
		case tr.IsPoints():
			s.PointTraces++
		case tr.IsLines():
			s.LineTraces++
		default:
			s.OtherTraces++
		}
	}

	counts := make(map[string]int)
	var order []string
	type ranked struct {
		NodeDegree
		id int64
	}
	degrees := make([]ranked, 0, len(n.nodes))
	for _, node := range n.nodes {
		if _, seen := counts[node.Community]; !seen {
			order = append(order, node.Community)
		}
		counts[node.Community]++

		d := n.Degree(node.ID)
		if d == 0 {
			s.Isolated++
		}
		degrees = append(degrees, ranked{NodeDegree{Label: node.Label, Community: node.Community, Degree: d}, node.ID})
	}
	for _, name := range order {
		s.Communities = append(s.Communities, Community{Name: name, Nodes: counts[name]})
	}

	comps := n.Components()
	s.Components = len(comps)
	if len(comps) > 0 {
		s.LargestComponent = len(comps[0])
	}

	slices.SortStableFunc(degrees, func(a, b ranked) int {
		if c := cmp.Compare(b.Degree, a.Degree); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	top = max(0, min(top, len(degrees)))
	for _, r := range degrees[:top] {
		r.Neighbours = n.Neighbours(r.id)
		s.TopDegree = append(s.TopDegree, r.NodeDegree)
	}

	return s
}
