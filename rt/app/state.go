package app

import (
	"time"

	"github.com/gekko3d/pathrt/rt/core"
	"github.com/gekko3d/pathrt/rt/gpu"
	"github.com/gekko3d/pathrt/rt/input"
	"github.com/gekko3d/pathrt/rt/scenes"
)

// RenderState is everything the loop mutates between frames. The phases of a
// frame receive it by pointer; nothing here is global.
type RenderState struct {
	Scene  *scenes.Scene
	Camera *core.CameraState
	Light  *core.Light
	Accum  core.Accumulator
	Input  *input.State
	Clock  Clock

	ShowHUD   bool
	Presented uint64
}

func NewRenderState(scene *scenes.Scene, width, height int, showHUD bool) *RenderState {
	cam := scene.Camera
	return &RenderState{
		Scene:   scene,
		Camera:  &cam,
		Light:   core.NewLight(core.DefaultLightDirection),
		Input:   input.NewState(width, height),
		ShowHUD: showHUD,
	}
}

// Integrate runs the input phase for one frame and returns the accumulated
// frame count the kernel should use. The frame counts as a sample only once
// Submitted is called.
func (rs *RenderState) Integrate(c *input.Controller, now time.Time) uint32 {
	rs.Clock.Tick(now)
	disturbed := c.Update(rs.Input, rs.Camera, rs.Light, rs.Clock.Seconds())
	if rs.Input.JustPressed(input.KeyF1) {
		rs.ShowHUD = !rs.ShowHUD
	}
	rs.Input.EndFrame()
	return rs.Accum.Begin(disturbed)
}

// Submitted records that the integrated frame reached the GPU.
func (rs *RenderState) Submitted() {
	rs.Accum.Commit()
	rs.Presented++
}

// FrameParams encodes the camera, light and accumulation state. Counts and
// extent are left for the resource manager to fill from what is bound.
func (rs *RenderState) FrameParams(frames uint32, seed float32) gpu.FrameParams {
	return gpu.FrameParams{
		CameraPos:         rs.Camera.Position,
		RandomSeed:        seed,
		CameraDir:         rs.Camera.Orientation(),
		LightDir:          rs.Light.Direction,
		AccumulatedFrames: frames,
	}
}
