package app

import (
	"fmt"

	"github.com/gekko3d/pathrt/rt/core"
)

const (
	hudMargin = 10
	hudScale  = 1.0
	hintScale = 0.6
)

var (
	hudColor  = [4]float32{1, 1, 0, 1}
	hintColor = [4]float32{0.8, 0.8, 0.8, 0.9}
)

const controlsHint = "WASD move  Space/Ctrl up/down  Shift sprint  arrows light  click grab  R reset  F1 hud"

// HUDLines is the overlay text for the current frame.
func HUDLines(rs *RenderState) []string {
	return []string{
		fmt.Sprintf("FPS: %.1f", rs.Clock.FPS),
		fmt.Sprintf("Samples: %d", rs.Accum.Frames),
		fmt.Sprintf("Scene: %s", rs.Scene.Name),
	}
}

// HUDItems lays the lines out top-left with the controls hint along the
// bottom edge. The hint is dropped when the window is too narrow for it.
func HUDItems(tr *core.TextRenderer, lines []string, screenW, screenH int) []core.TextItem {
	lh := tr.LineHeight(hudScale)
	items := make([]core.TextItem, 0, len(lines)+1)
	for i, l := range lines {
		items = append(items, core.TextItem{
			Text:     l,
			Position: [2]float32{hudMargin, hudMargin + float32(i)*lh},
			Scale:    hudScale,
			Color:    hudColor,
		})
	}
	if w, h := tr.MeasureText(controlsHint, hintScale); w+2*hudMargin <= float32(screenW) {
		items = append(items, core.TextItem{
			Text:     controlsHint,
			Position: [2]float32{hudMargin, float32(screenH) - hudMargin - h},
			Scale:    hintScale,
			Color:    hintColor,
		})
	}
	return items
}

// WindowTitle is refreshed about once per second.
func WindowTitle(base, scene string, fps float64) string {
	return fmt.Sprintf("%s - %s - %.1f fps", base, scene, fps)
}
