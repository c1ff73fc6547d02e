package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTextRendererAtlas(t *testing.T) {
	tr, err := NewDefaultTextRenderer(16)
	require.NoError(t, err)

	for _, r := range "FPS 0123456789:" {
		assert.True(t, tr.HasGlyph(r), "missing glyph %q", r)
	}
	assert.False(t, tr.HasGlyph('é'))
	assert.Greater(t, tr.LineHeight(1), float32(0))
}

func TestBuildVerticesSixPerGlyph(t *testing.T) {
	tr, err := NewDefaultTextRenderer(16)
	require.NoError(t, err)

	items := []TextItem{{Text: "ab\ncd", Position: [2]float32{10, 10}, Scale: 1, Color: [4]float32{1, 1, 1, 1}}}
	verts := tr.BuildVertices(items, 800, 600)
	require.Len(t, verts, 4*6)

	for _, v := range verts {
		assert.GreaterOrEqual(t, v.Pos[0], float32(-1))
		assert.LessOrEqual(t, v.Pos[0], float32(1))
		assert.GreaterOrEqual(t, v.Pos[1], float32(-1))
		assert.LessOrEqual(t, v.Pos[1], float32(1))
		assert.Equal(t, [4]float32{1, 1, 1, 1}, v.Color)
	}
	// second line sits below the first
	assert.Less(t, verts[12].Pos[1], verts[0].Pos[1])
}

func TestBuildVerticesZeroViewport(t *testing.T) {
	tr, err := NewDefaultTextRenderer(16)
	require.NoError(t, err)
	assert.Nil(t, tr.BuildVertices([]TextItem{{Text: "x"}}, 0, 600))
}

func TestMeasureText(t *testing.T) {
	tr, err := NewDefaultTextRenderer(16)
	require.NoError(t, err)

	w1, h1 := tr.MeasureText("abc", 1)
	w2, h2 := tr.MeasureText("abc\nabc", 1)
	assert.Greater(t, w1, float32(0))
	assert.InDelta(t, w1, w2, 1e-4)
	assert.InDelta(t, 2*h1, h2, 1e-4)

	var nilTR *TextRenderer
	w, h := nilTR.MeasureText("abc", 1)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
