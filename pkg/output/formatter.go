package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/network-navigator/pkg/labels"
	"github.com/ritzau/network-navigator/pkg/network"
	"github.com/ritzau/network-navigator/pkg/theme"
)

// PrintSummary prints a coloured report of a document's network.
func PrintSummary(w io.Writer, source string, s network.Summary, components [][]string) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Fprintln(w, "Network Navigator - Document Summary")
	bold.Fprintln(w, "====================================")
	fmt.Fprintf(w, "Document: %s\n", source)
	fmt.Fprintf(w, "Traces: %d (%d node, %d edge, %d other)\n", s.Traces, s.PointTraces, s.LineTraces, s.OtherTraces)
	fmt.Fprintf(w, "Nodes: %d\n", s.Nodes)
	fmt.Fprintf(w, "Edges: %d (from %d segments)\n", s.Edges, s.Segments)

	if s.DanglingEndpoints > 0 {
		yellow.Fprintf(w, "Dangling endpoints: %d\n", s.DanglingEndpoints)
	}
	if s.SelfLoops > 0 {
		yellow.Fprintf(w, "Self loops: %d\n", s.SelfLoops)
	}
	fmt.Fprintln(w)

	if len(s.Communities) > 0 {
		bold.Fprintln(w, "COMMUNITIES:")
		for _, c := range s.Communities {
			cyan.Fprintf(w, "  %s", c.Name)
			fmt.Fprintf(w, " (%d nodes)\n", c.Nodes)
		}
		fmt.Fprintln(w)
	}

	if len(s.TopDegree) > 0 {
		bold.Fprintln(w, "MOST CONNECTED:")
		for _, nd := range s.TopDegree {
			fmt.Fprintf(w, "  %-40s %3d", nd.Label, nd.Degree)
			if len(nd.Neighbours) > 0 {
				fmt.Fprintf(w, "  %s", strings.Join(nd.Neighbours, ", "))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if len(components) > 1 {
		red.Fprintf(w, "DISCONNECTED: %d components\n", len(components))
		for _, comp := range components[1:] {
			yellow.Fprintf(w, "  %s\n", strings.Join(comp, ", "))
		}
		fmt.Fprintln(w)
	}

	switch {
	case s.Nodes == 0:
		yellow.Fprintln(w, "Summary: document contains no nodes")
	case s.Components == 1:
		green.Fprintf(w, "Summary: %d nodes, %d edges, fully connected\n", s.Nodes, s.Edges)
		green.Fprintln(w, "✓ Every node is reachable")
	default:
		yellow.Fprintf(w, "Summary: %d nodes, %d edges, %d components (%d isolated)\n",
			s.Nodes, s.Edges, s.Components, s.Isolated)
	}
}

// PrintLabels prints the label table sorted by code.
func PrintLabels(w io.Writer, table *labels.Table) {
	cyan := color.New(color.FgCyan)

	width := 0
	for _, code := range table.Codes() {
		width = max(width, len(code))
	}
	for _, code := range table.Codes() {
		cyan.Fprintf(w, "%-*s", width, code)
		fmt.Fprintf(w, "  %s\n", table.Lookup(code))
	}
}

// PrintThemes lists the given themes, marking the default.
func PrintThemes(w io.Writer, themes []theme.Theme, defaultName string) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	for _, th := range themes {
		if th.Name == defaultName {
			green.Fprintf(w, "* %s", th.Name)
		} else {
			bold.Fprintf(w, "  %s", th.Name)
		}
		fmt.Fprintf(w, "  scene=%s paper=%s edges=%s nodes=%s\n",
			th.SceneBackground, th.PaperBackground, th.EdgeColor, th.NodeTextColor)
	}
}
