package app

import (
	"fmt"

	"github.com/gekko3d/pathrt"
	"github.com/gekko3d/pathrt/rt/core"
)

// ResizeTarget is what a resize has to rebuild.
type ResizeTarget interface {
	ConfigureSurface(w, h uint32)
	RebuildForSize(w, h uint32) error
}

// Viewport receives every accepted framebuffer size.
type Viewport interface {
	OnResize(w, h int)
}

// Resizer reacts to framebuffer size changes. Zero-area sizes (minimized
// windows) and repeats of the current size are ignored.
type Resizer struct {
	Width, Height uint32

	target   ResizeTarget
	viewport Viewport
	accum    *core.Accumulator
	log      pathrt.Logger
}

func NewResizer(target ResizeTarget, viewport Viewport, accum *core.Accumulator, w, h uint32, logger pathrt.Logger) *Resizer {
	return &Resizer{Width: w, Height: h, target: target, viewport: viewport, accum: accum, log: pathrt.OrNop(logger)}
}

// Handle applies a new size. It reports whether anything was rebuilt. On a
// rebuild failure the recorded size is left unchanged so the next event
// retries.
func (r *Resizer) Handle(w, h int) (bool, error) {
	if w <= 0 || h <= 0 {
		r.log.Debugf("ignoring zero-area resize %dx%d", w, h)
		return false, nil
	}
	if r.viewport != nil {
		r.viewport.OnResize(w, h)
	}
	uw, uh := uint32(w), uint32(h)
	if uw == r.Width && uh == r.Height {
		return false, nil
	}

	r.target.ConfigureSurface(uw, uh)
	if err := r.target.RebuildForSize(uw, uh); err != nil {
		return false, fmt.Errorf("resize to %dx%d: %w", w, h, err)
	}
	r.Width, r.Height = uw, uh
	// the history belongs to the old image
	r.accum.Reset()
	r.log.Infof("resized to %dx%d", w, h)
	return true, nil
}
