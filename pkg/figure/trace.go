package figure

import "maps"

// Render modes the pipeline knows how to style. Any other mode is passed
// through unmodified.
const (
	ModePoints = "markers+text"
	ModeLines  = "lines"
)

// Trace is a single entry of the document's "data" list.
type Trace map[string]any

// Mode returns the trace's render mode, or "" when it has none.
func (t Trace) Mode() string {
	s, _ := t["mode"].(string)
	return s
}

// IsPoints reports whether t is a point-trace (markers with text labels).
func (t Trace) IsPoints() bool { return t.Mode() == ModePoints }

// IsLines reports whether t is a line-trace (edge polylines).
func (t Trace) IsLines() bool { return t.Mode() == ModeLines }

// Name returns the trace's legend name.
func (t Trace) Name() string {
	s, _ := t["name"].(string)
	return s
}

// Text returns the per-point text sequence. ok is false when the trace has
// no text key or the value is not a list.
func (t Trace) Text() (text []any, ok bool) {
	text, ok = t["text"].([]any)
	return text, ok
}

// Coords returns the x, y and z sequences. Missing axes come back nil.
func (t Trace) Coords() (x, y, z []any) {
	x, _ = t["x"].([]any)
	y, _ = t["y"].([]any)
	z, _ = t["z"].([]any)
	return x, y, z
}

// With returns a shallow copy of t with key set to v.
func (t Trace) With(key string, v any) Trace {
	out := maps.Clone(t)
	if out == nil {
		out = Trace{}
	}
	out[key] = v
	return out
}

// Update returns a shallow copy of t whose key holds fn applied to a copy of
// the nested object stored there (an empty object when absent).
func (t Trace) Update(key string, fn func(Object) Object) Trace {
	return t.With(key, fn(ChildCopy(t, key)))
}
