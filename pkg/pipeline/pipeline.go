// Package pipeline turns a loaded graph document into a render descriptor
// for the 3D viewer.
package pipeline

import (
	"github.com/ritzau/network-navigator/pkg/camera"
	"github.com/ritzau/network-navigator/pkg/figure"
	"github.com/ritzau/network-navigator/pkg/labels"
	"github.com/ritzau/network-navigator/pkg/logging"
	"github.com/ritzau/network-navigator/pkg/theme"
)

// Pipeline renders documents with a fixed theme and label table. It holds no
// mutable state and may be used from many goroutines.
type Pipeline struct {
	theme  theme.Theme
	labels *labels.Table
}

// New creates a pipeline. A nil table means labels.Default().
func New(th theme.Theme, table *labels.Table) *Pipeline {
	if table == nil {
		table = labels.Default()
	}
	return &Pipeline{theme: th, labels: table}
}

// Default returns a pipeline using the default theme and label table.
func Default() *Pipeline {
	return New(theme.Default(), labels.Default())
}

// Theme returns the pipeline's theme.
func (p *Pipeline) Theme() theme.Theme {
	return p.theme
}

// Labels returns the pipeline's label table.
func (p *Pipeline) Labels() *labels.Table {
	return p.labels
}

// WithTheme returns a pipeline sharing p's labels but using th.
func (p *Pipeline) WithTheme(th theme.Theme) *Pipeline {
	return &Pipeline{theme: th, labels: p.labels}
}

// Render runs all stages over doc for the given zoom level. doc is not
// modified. The only error is camera.ErrInvalidZoom, reported before any
// stage runs.
func (p *Pipeline) Render(doc *figure.Document, zoom float64) (*figure.Document, error) {
	eye, err := camera.Eye(zoom)
	if err != nil {
		return nil, err
	}

	logging.Debug("rendering document", "traces", len(doc.Data), "zoom", zoom, "theme", p.theme.Name)

	// 1. Drop the exporter's template
	out := StripTemplate(doc)

	// 2. Codes to display labels, before anything reads text
	out = ResolveLabels(out, p.labels)

	// 3. Edge and node styles
	out = NormalizeStyle(out, p.theme)

	// 4. No axis chrome
	out = SuppressScene(out)

	// 5. Backgrounds
	out = ApplyBackground(out, p.theme)

	// 6. Camera from zoom
	out = PlaceCamera(out, eye)

	// 7. Legend, title and margins
	out = ComposeLegendAndTitle(out, p.theme)

	logging.Trace("render complete", "traces", len(out.Data), "eye", eye)

	return out, nil
}

// Render runs the default pipeline.
func Render(doc *figure.Document, zoom float64) (*figure.Document, error) {
	return Default().Render(doc, zoom)
}
