package figure

import (
	"encoding/json"
	"maps"
)

// Object is a decoded JSON object. Keys the pipeline does not know about are
// carried through untouched.
type Object = map[string]any

// Document is a loaded graph document: a list of traces under "data" and a
// layout mapping under "layout". Any other top-level keys (frames, config)
// are kept in Extra and written back out verbatim.
//
// A Document is treated as immutable once returned by the loader. Code that
// needs a changed document builds a new one with the With* helpers.
type Document struct {
	Data   []Trace
	Layout Object
	Extra  Object
}

// WithData returns a copy of d using data as its trace list.
func (d *Document) WithData(data []Trace) *Document {
	return &Document{Data: data, Layout: d.Layout, Extra: d.Extra}
}

// WithLayout returns a copy of d using layout as its layout mapping.
func (d *Document) WithLayout(layout Object) *Document {
	return &Document{Data: d.Data, Layout: layout, Extra: d.Extra}
}

// MapTraces returns a copy of d with fn applied to every trace. The trace
// count and order never change.
func (d *Document) MapTraces(fn func(Trace) Trace) *Document {
	data := make([]Trace, len(d.Data))
	for i, tr := range d.Data {
		data[i] = fn(tr)
	}
	return d.WithData(data)
}

// UpdateLayout returns a copy of d whose layout is fn applied to a shallow
// copy of the current layout.
func (d *Document) UpdateLayout(fn func(Object) Object) *Document {
	return d.WithLayout(fn(maps.Clone(d.Layout)))
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	data := make([]Trace, len(d.Data))
	for i, tr := range d.Data {
		data[i] = Trace(cloneObject(tr))
	}
	return &Document{
		Data:   data,
		Layout: cloneObject(d.Layout),
		Extra:  cloneObject(d.Extra),
	}
}

// CountByMode returns how many traces carry each render mode.
func (d *Document) CountByMode() map[string]int {
	counts := make(map[string]int)
	for _, tr := range d.Data {
		counts[tr.Mode()]++
	}
	return counts
}

// MarshalJSON writes the document back in its on-disk shape.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(Object, len(d.Extra)+2)
	maps.Copy(out, d.Extra)

	data := d.Data
	if data == nil {
		data = []Trace{}
	}
	layout := d.Layout
	if layout == nil {
		layout = Object{}
	}
	out[keyData] = data
	out[keyLayout] = layout
	return json.Marshal(out)
}

// UnmarshalJSON accepts the same shape as Parse.
func (d *Document) UnmarshalJSON(b []byte) error {
	parsed, err := Parse(b)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func cloneObject(o Object) Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneObject(t)
	case Trace:
		return Trace(cloneObject(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		// strings, json.Number, bool and nil are values already
		return v
	}
}
