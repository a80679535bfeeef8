package pipeline

import (
	"github.com/ritzau/network-navigator/pkg/figure"
	"github.com/ritzau/network-navigator/pkg/labels"
	"github.com/ritzau/network-navigator/pkg/theme"
	"gonum.org/v1/gonum/spatial/r3"
)

// Layout keys written by the stages.
const (
	keyScene  = "scene"
	keyCamera = "camera"
	keyEye    = "eye"
	keyLegend = "legend"
	keyTitle  = "title"
	keyMargin = "margin"
	keyFont   = "font"
)

// sceneAxes are the spatial axes under layout.scene.
var sceneAxes = []string{"xaxis", "yaxis", "zaxis"}

// StripTemplate drops layout.template. Exported figures carry the template
// of the exporting library, which the viewer must never receive.
func StripTemplate(doc *figure.Document) *figure.Document {
	return doc.WithLayout(figure.Without(doc.Layout, figure.KeyTemplate))
}

// ResolveLabels replaces every text entry of every point-trace with its
// display label. Entries stay index-aligned with the point positions; codes
// missing from the table and non-string entries are kept as they are.
func ResolveLabels(doc *figure.Document, table *labels.Table) *figure.Document {
	return doc.MapTraces(func(tr figure.Trace) figure.Trace {
		if !tr.IsPoints() {
			return tr
		}
		text, ok := tr.Text()
		if !ok {
			return tr
		}

		resolved := make([]any, len(text))
		for i, entry := range text {
			if code, ok := entry.(string); ok {
				resolved[i] = table.Lookup(code)
			} else {
				resolved[i] = entry
			}
		}
		return tr.With("text", resolved)
	})
}

// NormalizeStyle writes the theme's edge style into every line-trace and its
// node style into every point-trace. Style keys the theme does not cover
// (per-community marker colours, hover settings) are left alone.
func NormalizeStyle(doc *figure.Document, th theme.Theme) *figure.Document {
	return doc.MapTraces(func(tr figure.Trace) figure.Trace {
		switch {
		case tr.IsLines():
			return styleEdges(tr, th)
		case tr.IsPoints():
			return styleNodes(tr, th)
		default:
			return tr
		}
	})
}

func styleEdges(tr figure.Trace, th theme.Theme) figure.Trace {
	tr = tr.Update("line", func(line figure.Object) figure.Object {
		return figure.Set(line, figure.Object{
			"width": th.EdgeWidth,
			"color": th.EdgeColor,
		})
	})
	return tr.With("opacity", th.EdgeOpacity)
}

func styleNodes(tr figure.Trace, th theme.Theme) figure.Trace {
	tr = tr.Update("marker", func(marker figure.Object) figure.Object {
		marker = figure.Set(marker, figure.Object{"size": th.NodeMarkerSize})
		return figure.Update(marker, "line", func(border figure.Object) figure.Object {
			return figure.Set(border, figure.Object{
				"width": th.NodeBorderWidth,
				"color": th.NodeBorderColor,
			})
		})
	})
	return tr.Update("textfont", func(font figure.Object) figure.Object {
		return figure.Set(font, fontStyle(th.NodeTextColor, th.NodeTextSize, th.FontFamily))
	})
}

// SuppressScene hides all axis chrome of the axes present under
// layout.scene. Only relative node placement carries meaning, so tick
// labels, background planes, grids, zero lines and titles all go. Running it
// more than once has no further effect.
func SuppressScene(doc *figure.Document) *figure.Document {
	scene := figure.Child(doc.Layout, keyScene)
	if scene == nil {
		return doc
	}

	return doc.UpdateLayout(func(layout figure.Object) figure.Object {
		return figure.Update(layout, keyScene, func(scene figure.Object) figure.Object {
			for _, axis := range sceneAxes {
				if !figure.HasChild(scene, axis) {
					continue
				}
				scene = figure.Update(scene, axis, hideAxis)
			}
			return scene
		})
	})
}

func hideAxis(axis figure.Object) figure.Object {
	axis = figure.Set(axis, figure.Object{
		"showticklabels": false,
		"showbackground": false,
		"showgrid":       false,
		"zeroline":       false,
	})
	return figure.Update(axis, keyTitle, func(title figure.Object) figure.Object {
		return figure.Set(title, figure.Object{"text": ""})
	})
}

// ApplyBackground sets the scene, paper and plot backgrounds.
func ApplyBackground(doc *figure.Document, th theme.Theme) *figure.Document {
	return doc.UpdateLayout(func(layout figure.Object) figure.Object {
		layout = figure.Update(layout, keyScene, func(scene figure.Object) figure.Object {
			return figure.Set(scene, figure.Object{"bgcolor": th.SceneBackground})
		})
		return figure.Set(layout, figure.Object{
			"paper_bgcolor": th.PaperBackground,
			"plot_bgcolor":  th.PlotBackground,
		})
	})
}

// PlaceCamera sets layout.scene.camera.eye. Other camera settings (up,
// center, projection) are kept.
func PlaceCamera(doc *figure.Document, eye r3.Vec) *figure.Document {
	return doc.UpdateLayout(func(layout figure.Object) figure.Object {
		return figure.Update(layout, keyScene, func(scene figure.Object) figure.Object {
			return figure.Update(scene, keyCamera, func(cam figure.Object) figure.Object {
				return figure.Set(cam, figure.Object{
					keyEye: figure.Object{"x": eye.X, "y": eye.Y, "z": eye.Z},
				})
			})
		})
	})
}

// ComposeLegendAndTitle styles the legend box, the centred figure title and
// the outer margins.
func ComposeLegendAndTitle(doc *figure.Document, th theme.Theme) *figure.Document {
	return doc.UpdateLayout(func(layout figure.Object) figure.Object {
		layout = figure.Update(layout, keyLegend, func(legend figure.Object) figure.Object {
			return figure.Set(legend, figure.Object{
				"bgcolor":     th.LegendBackground,
				"bordercolor": th.LegendBorderColor,
				"borderwidth": th.LegendBorderWidth,
				"x":           th.LegendX,
				"y":           th.LegendY,
				keyFont:       fontStyle(th.NodeTextColor, th.NodeTextSize, th.FontFamily),
			})
		})
		layout = figure.Update(layout, keyTitle, func(title figure.Object) figure.Object {
			return figure.Set(title, figure.Object{
				"text":    th.TitleText,
				"x":       0.5,
				"xanchor": "center",
				keyFont:   fontStyle(th.TitleFontColor, th.TitleFontSize, th.FontFamily),
			})
		})
		return figure.Update(layout, keyMargin, func(margin figure.Object) figure.Object {
			return figure.Set(margin, figure.Object{
				"l": th.MarginLeft,
				"r": th.MarginRight,
				"t": th.MarginTop,
				"b": th.MarginBottom,
			})
		})
	})
}

func fontStyle(color string, size float64, family string) figure.Object {
	font := figure.Object{"color": color, "size": size}
	if family != "" {
		font["family"] = family
	}
	return font
}
