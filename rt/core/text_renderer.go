package core

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	atlasSize    = 512
	atlasPadding = 2
	firstGlyph   = rune(32)
	lastGlyph    = rune(126)
)

// TextVertex matches the HUD vertex buffer layout: pos(8) uv(8) color(16).
type TextVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// TextItem is one block of overlay text. Position is in pixels from the
// top-left corner of the window.
type TextItem struct {
	Text     string
	Position [2]float32
	Scale    float32
	Color    [4]float32
}

type glyph struct {
	uvMin, uvMax [2]float32
	size         [2]float32
	offset       [2]float32
	advance      float32
}

// TextRenderer rasterizes printable ASCII into a single alpha atlas and turns
// text items into clip-space quads.
type TextRenderer struct {
	Atlas  *image.Alpha
	glyphs map[rune]glyph
	ascent float32
	line   float32
}

// NewDefaultTextRenderer uses the embedded Go Regular font.
func NewDefaultTextRenderer(size float64) (*TextRenderer, error) {
	return NewTextRenderer(goregular.TTF, size)
}

func NewTextRenderer(ttf []byte, size float64) (*TextRenderer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	tr := &TextRenderer{
		Atlas:  image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize)),
		glyphs: make(map[rune]glyph, int(lastGlyph-firstGlyph)+1),
		ascent: float32(face.Metrics().Ascent.Ceil()),
		line:   float32(face.Metrics().Height.Ceil()),
	}
	tr.pack(face)
	return tr, nil
}

// pack places glyphs left to right in rows; glyphs that do not fit are skipped.
func (tr *TextRenderer) pack(face font.Face) {
	x, y, rowH := atlasPadding, atlasPadding, 0
	for r := firstGlyph; r <= lastGlyph; r++ {
		bounds, mask, maskPt, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := bounds.Dx(), bounds.Dy()
		if x+w+atlasPadding > atlasSize {
			x = atlasPadding
			y += rowH + 2*atlasPadding
			rowH = 0
		}
		if y+h+atlasPadding > atlasSize {
			return
		}
		draw.Draw(tr.Atlas, image.Rect(x, y, x+w, y+h), mask, maskPt, draw.Src)
		tr.glyphs[r] = glyph{
			uvMin:   [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			uvMax:   [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			size:    [2]float32{float32(w), float32(h)},
			offset:  [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			advance: float32(adv) / 64,
		}
		x += w + 2*atlasPadding
		rowH = max(rowH, h)
	}
}

func (tr *TextRenderer) HasGlyph(r rune) bool {
	_, ok := tr.glyphs[r]
	return ok
}

// BuildVertices emits six vertices per visible glyph in clip space for a
// screenW x screenH target.
func (tr *TextRenderer) BuildVertices(items []TextItem, screenW, screenH int) []TextVertex {
	if screenW <= 0 || screenH <= 0 {
		return nil
	}
	sw, sh := float32(screenW), float32(screenH)
	toClip := func(px, py float32) [2]float32 {
		return [2]float32{px/sw*2 - 1, 1 - py/sh*2}
	}

	var out []TextVertex
	for _, item := range items {
		scale := item.Scale
		if scale == 0 {
			scale = 1
		}
		penX := item.Position[0]
		penY := item.Position[1] + tr.ascent*scale
		for _, r := range item.Text {
			if r == '\n' {
				penX = item.Position[0]
				penY += tr.line * scale
				continue
			}
			g, ok := tr.glyphs[r]
			if !ok {
				continue
			}
			p0 := toClip(penX+g.offset[0]*scale, penY+g.offset[1]*scale)
			p1 := toClip(penX+(g.offset[0]+g.size[0])*scale, penY+(g.offset[1]+g.size[1])*scale)
			topL := TextVertex{Pos: p0, UV: g.uvMin, Color: item.Color}
			topR := TextVertex{Pos: [2]float32{p1[0], p0[1]}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: item.Color}
			botL := TextVertex{Pos: [2]float32{p0[0], p1[1]}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: item.Color}
			botR := TextVertex{Pos: p1, UV: g.uvMax, Color: item.Color}
			out = append(out, topL, topR, botL, topR, botR, botL)
			penX += g.advance * scale
		}
	}
	return out
}

// MeasureText returns the pixel width and height of text at scale.
func (tr *TextRenderer) MeasureText(text string, scale float32) (float32, float32) {
	if tr == nil {
		return 0, 0
	}
	var widest, cur float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			widest = max(widest, cur)
			cur = 0
			lines++
			continue
		}
		if g, ok := tr.glyphs[r]; ok {
			cur += g.advance * scale
		}
	}
	return max(widest, cur), tr.line * scale * float32(lines)
}

func (tr *TextRenderer) LineHeight(scale float32) float32 {
	if tr == nil {
		return 0
	}
	return tr.line * scale
}
