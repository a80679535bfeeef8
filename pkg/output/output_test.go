package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ritzau/network-navigator/pkg/figure"
	"github.com/ritzau/network-navigator/pkg/labels"
	"github.com/ritzau/network-navigator/pkg/network"
	"github.com/ritzau/network-navigator/pkg/theme"
)

func init() {
	color.NoColor = true
}

const encodeDocument = `{"data": [{"x": [1.5, 2]}], "layout": {"title": {"text": "t"}}}`

func encode(t *testing.T, format string) string {
	t.Helper()
	doc, err := figure.Parse([]byte(encodeDocument))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		t.Fatalf("Encode(%s) error = %v", format, err)
	}
	return buf.String()
}

func TestEncodeJSON(t *testing.T) {
	out := encode(t, FormatJSON)
	for _, want := range []string{`"x": [`, "1.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeYAML(t *testing.T) {
	out := encode(t, FormatYAML)
	for _, want := range []string{"- 1.5", "text: t"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"1.5"`) {
		t.Errorf("numbers must not be quoted:\n%s", out)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, map[string]int{}, "xml")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("Encode(xml) error = %v, want one naming the format", err)
	}
}

func TestPrintSummary(t *testing.T) {
	s := network.Summary{
		Traces: 3, PointTraces: 2, LineTraces: 1,
		Nodes: 4, Edges: 2, Segments: 3, DanglingEndpoints: 1,
		Components: 2, Isolated: 1,
		Communities: []network.Community{{Name: "A", Nodes: 3}, {Name: "B", Nodes: 1}},
		TopDegree:   []network.NodeDegree{{Label: "CIDP", Degree: 2, Neighbours: []string{"Migraine", "x"}}},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, "doc.json", s, [][]string{{"CIDP", "Migraine", "x"}, {"PTSD"}})

	out := buf.String()
	for _, want := range []string{"Document: doc.json", "Dangling endpoints: 1", "CIDP", "Migraine, x", "DISCONNECTED: 2 components", "  PTSD", "(1 isolated)"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaryConnected(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, "doc.json", network.Summary{Nodes: 2, Edges: 1, Components: 1}, [][]string{{"a", "b"}})

	out := buf.String()
	if !strings.Contains(out, "fully connected") {
		t.Errorf("expected fully connected summary:\n%s", out)
	}
	if strings.Contains(out, "DISCONNECTED") {
		t.Errorf("connected network reported as disconnected:\n%s", out)
	}
}

func TestPrintLabels(t *testing.T) {
	table, err := labels.New(map[string]string{"com_b": "Bee", "com_a": "Ay"})
	if err != nil {
		t.Fatalf("labels.New() error = %v", err)
	}

	var buf bytes.Buffer
	PrintLabels(&buf, table)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "com_a  Ay" || lines[1] != "com_b  Bee" {
		t.Errorf("unexpected labels output %q", lines)
	}
}

func TestPrintThemes(t *testing.T) {
	var themes []theme.Theme
	for _, name := range theme.Names() {
		th, err := theme.Builtin(name)
		if err != nil {
			t.Fatalf("Builtin(%q) error = %v", name, err)
		}
		themes = append(themes, th)
	}

	var buf bytes.Buffer
	PrintThemes(&buf, themes, theme.DefaultName)

	out := buf.String()
	for _, want := range []string{"* light", "  dark"} {
		if !strings.Contains(out, want) {
			t.Errorf("themes output missing %q:\n%s", want, out)
		}
	}
}
