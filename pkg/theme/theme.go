package theme

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrUnknownTheme is returned when a theme name has no built-in entry.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrInvalidTheme is returned when a theme fails validation.
	ErrInvalidTheme = errors.New("invalid theme")
)

// Theme holds every style constant the pipeline writes into a document.
type Theme struct {
	Name string `koanf:"name" json:"name" validate:"required"`

	EdgeWidth   float64 `koanf:"edgeWidth" json:"edgeWidth" validate:"finite,gte=0"`
	EdgeColor   string  `koanf:"edgeColor" json:"edgeColor" validate:"colorspec"`
	EdgeOpacity float64 `koanf:"edgeOpacity" json:"edgeOpacity" validate:"finite,gte=0,lte=1"`

	NodeMarkerSize  float64 `koanf:"nodeMarkerSize" json:"nodeMarkerSize" validate:"finite,gt=0"`
	NodeBorderWidth float64 `koanf:"nodeBorderWidth" json:"nodeBorderWidth" validate:"finite,gte=0"`
	NodeBorderColor string  `koanf:"nodeBorderColor" json:"nodeBorderColor" validate:"colorspec"`
	NodeTextColor   string  `koanf:"nodeTextColor" json:"nodeTextColor" validate:"colorspec"`
	NodeTextSize    float64 `koanf:"nodeTextSize" json:"nodeTextSize" validate:"finite,gt=0"`

	SceneBackground string `koanf:"sceneBackground" json:"sceneBackground" validate:"colorspec"`
	PaperBackground string `koanf:"paperBackground" json:"paperBackground" validate:"colorspec"`
	PlotBackground  string `koanf:"plotBackground" json:"plotBackground" validate:"colorspec"`

	LegendBackground  string  `koanf:"legendBackground" json:"legendBackground" validate:"colorspec"`
	LegendBorderColor string  `koanf:"legendBorderColor" json:"legendBorderColor" validate:"colorspec"`
	LegendBorderWidth float64 `koanf:"legendBorderWidth" json:"legendBorderWidth" validate:"finite,gte=0"`
	LegendX           float64 `koanf:"legendX" json:"legendX" validate:"finite"`
	LegendY           float64 `koanf:"legendY" json:"legendY" validate:"finite"`

	TitleText      string  `koanf:"titleText" json:"titleText"`
	TitleFontSize  float64 `koanf:"titleFontSize" json:"titleFontSize" validate:"finite,gt=0"`
	TitleFontColor string  `koanf:"titleFontColor" json:"titleFontColor" validate:"colorspec"`
	FontFamily     string  `koanf:"fontFamily" json:"fontFamily"`

	MarginLeft   float64 `koanf:"marginLeft" json:"marginLeft" validate:"finite,gte=0"`
	MarginRight  float64 `koanf:"marginRight" json:"marginRight" validate:"finite,gte=0"`
	MarginTop    float64 `koanf:"marginTop" json:"marginTop" validate:"finite,gte=0"`
	MarginBottom float64 `koanf:"marginBottom" json:"marginBottom" validate:"finite,gte=0"`
}

// Transparent is the colour used for fully transparent backgrounds.
const Transparent = "rgba(0,0,0,0)"

const defaultTitle = "NeuroCOVID Network Navigator"

// DefaultName is the theme used when none is configured.
const DefaultName = "light"

var builtin = map[string]Theme{
	"light": {
		Name:              "light",
		EdgeWidth:         1.5,
		EdgeColor:         "#888888",
		EdgeOpacity:       0.5,
		NodeMarkerSize:    6,
		NodeBorderWidth:   0.5,
		NodeBorderColor:   "#333333",
		NodeTextColor:     "#222222",
		NodeTextSize:      10,
		SceneBackground:   "#ffffff",
		PaperBackground:   "#ffffff",
		PlotBackground:    "#ffffff",
		LegendBackground:  "rgba(255,255,255,0.8)",
		LegendBorderColor: "#cccccc",
		LegendBorderWidth: 1,
		LegendX:           0.01,
		LegendY:           0.99,
		TitleText:         defaultTitle,
		TitleFontSize:     20,
		TitleFontColor:    "#222222",
		FontFamily:        "Arial, sans-serif",
		MarginTop:         40,
	},
	"dark": {
		Name:              "dark",
		EdgeWidth:         1.5,
		EdgeColor:         "#9aa5b1",
		EdgeOpacity:       0.35,
		NodeMarkerSize:    6,
		NodeBorderWidth:   0.5,
		NodeBorderColor:   "#f5f5f5",
		NodeTextColor:     "#e8e8e8",
		NodeTextSize:      10,
		SceneBackground:   "#111418",
		PaperBackground:   "#111418",
		PlotBackground:    "#111418",
		LegendBackground:  "rgba(17,20,24,0.8)",
		LegendBorderColor: "#444b55",
		LegendBorderWidth: 1,
		LegendX:           0.01,
		LegendY:           0.99,
		TitleText:         defaultTitle,
		TitleFontSize:     20,
		TitleFontColor:    "#f5f5f5",
		FontFamily:        "Arial, sans-serif",
		MarginTop:         40,
	},
	"transparent": {
		Name:              "transparent",
		EdgeWidth:         1,
		EdgeColor:         "#999999",
		EdgeOpacity:       0.4,
		NodeMarkerSize:    5,
		NodeBorderWidth:   0,
		NodeBorderColor:   Transparent,
		NodeTextColor:     "#444444",
		NodeTextSize:      9,
		SceneBackground:   Transparent,
		PaperBackground:   Transparent,
		PlotBackground:    Transparent,
		LegendBackground:  Transparent,
		LegendBorderColor: Transparent,
		LegendBorderWidth: 0,
		LegendX:           0.01,
		LegendY:           0.99,
		TitleText:         defaultTitle,
		TitleFontSize:     18,
		TitleFontColor:    "#444444",
		FontFamily:        "Arial, sans-serif",
		MarginTop:         40,
	},
}

// Default returns the default built-in theme.
func Default() Theme {
	return builtin[DefaultName]
}

// Builtin returns the named built-in theme.
func Builtin(name string) (Theme, error) {
	t, ok := builtin[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, name, Names())
	}
	return t, nil
}

// Names lists the built-in themes in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin))
}

// All returns a copy of every built-in theme keyed by name.
func All() map[string]Theme {
	return maps.Clone(builtin)
}
