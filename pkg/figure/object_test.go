package figure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCopiesAlongPath(t *testing.T) {
	orig := Object{"scene": Object{"bgcolor": "white", "xaxis": Object{}}}

	out := Update(orig, "scene", func(scene Object) Object {
		return Set(scene, Object{"bgcolor": "black"})
	})

	assert.Equal(t, "white", Child(orig, "scene")["bgcolor"])
	assert.Equal(t, "black", Child(out, "scene")["bgcolor"])
	assert.Contains(t, Child(out, "scene"), "xaxis")
}

func TestUpdateCreatesMissingChild(t *testing.T) {
	out := Update(Object{}, "legend", func(legend Object) Object {
		return Set(legend, Object{"x": 1})
	})
	assert.Equal(t, Object{"legend": Object{"x": 1}}, out)
}

func TestUpdateReplacesNonObject(t *testing.T) {
	out := Update(Object{"title": "plain string"}, "title", func(title Object) Object {
		return Set(title, Object{"text": "New"})
	})
	assert.Equal(t, Object{"text": "New"}, Child(out, "title"))
}

func TestWithout(t *testing.T) {
	orig := Object{"template": "plotly", "margin": Object{}}

	out := Without(orig, "template")
	assert.NotContains(t, out, "template")
	assert.Contains(t, orig, "template")

	same := Without(out, "template")
	assert.Equal(t, out, same)
}

func TestTraceWithLeavesOriginal(t *testing.T) {
	tr := Trace{"mode": ModeLines}
	out := tr.Update("line", func(line Object) Object {
		return Set(line, Object{"width": 2})
	})

	assert.NotContains(t, tr, "line")
	assert.Equal(t, Object{"width": 2}, Child(out, "line"))
	assert.Equal(t, ModeLines, out.Mode())
}
