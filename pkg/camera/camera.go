// Package camera computes the 3D scene camera position from a zoom level.
package camera

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidZoom is returned for a zoom level that is zero, negative or not
// a finite number.
var ErrInvalidZoom = errors.New("invalid zoom")

// DefaultZoom is used when the host does not supply a zoom level.
const DefaultZoom = 1.0

// BaseEye is the camera eye at zoom 1.
var BaseEye = r3.Vec{X: 1.5, Y: 1.5, Z: 1.2}

// Validate reports whether zoom can be used to place the camera.
func Validate(zoom float64) error {
	switch {
	case math.IsNaN(zoom) || math.IsInf(zoom, 0):
		return fmt.Errorf("%w: %v is not finite", ErrInvalidZoom, zoom)
	case zoom == 0:
		return fmt.Errorf("%w: zoom must not be zero", ErrInvalidZoom)
	case zoom < 0:
		return fmt.Errorf("%w: %v is negative", ErrInvalidZoom, zoom)
	}
	return nil
}

// Eye returns BaseEye scaled by 1/zoom.
func Eye(zoom float64) (r3.Vec, error) {
	return EyeFrom(BaseEye, zoom)
}

// EyeFrom returns base scaled component-wise by 1/zoom.
func EyeFrom(base r3.Vec, zoom float64) (r3.Vec, error) {
	if err := Validate(zoom); err != nil {
		return r3.Vec{}, err
	}
	return r3.Scale(1/zoom, base), nil
}

// Clamp limits a valid zoom to [lo, hi]. It never turns an invalid zoom into
// a valid one; callers validate first.
func Clamp(zoom, lo, hi float64) float64 {
	return math.Min(math.Max(zoom, lo), hi)
}

// Range describes the zoom bounds offered to the viewer.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// DefaultRange is the conventional slider range.
var DefaultRange = Range{Min: 0.5, Max: 2.0, Default: DefaultZoom, Step: 0.1}

// Check verifies the range is usable: positive bounds, min <= default <= max.
func (r Range) Check() error {
	if err := Validate(r.Min); err != nil {
		return fmt.Errorf("zoom min: %w", err)
	}
	if err := Validate(r.Max); err != nil {
		return fmt.Errorf("zoom max: %w", err)
	}
	if r.Min > r.Max {
		return fmt.Errorf("zoom min %v is greater than max %v", r.Min, r.Max)
	}
	if r.Default < r.Min || r.Default > r.Max {
		return fmt.Errorf("default zoom %v outside [%v, %v]", r.Default, r.Min, r.Max)
	}
	return nil
}
