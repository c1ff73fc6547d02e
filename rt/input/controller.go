package input

import (
	"github.com/gekko3d/pathrt"
	"github.com/gekko3d/pathrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Controller integrates one frame of input into the camera and light.
type Controller struct {
	Speed            float32 // world units per second
	SprintMultiplier float32
	LightRate        float32 // radians per second
	MouseSensitivity float32 // radians per viewport of mouse travel
}

func NewController(cfg pathrt.Config) *Controller {
	cfg.Normalize()
	return &Controller{
		Speed:            cfg.MoveSpeed,
		SprintMultiplier: cfg.SprintMultiplier,
		LightRate:        cfg.LightRate,
		MouseSensitivity: cfg.MouseSensitivity,
	}
}

// Update applies held keys and the pending mouse delta. It reports whether
// anything that changes the image was observed, which restarts accumulation.
func (c *Controller) Update(s *State, cam *core.CameraState, light *core.Light, dt float32) (disturbed bool) {
	if dt < 0 {
		dt = 0
	}

	if c.look(s, cam) {
		disturbed = true
	}
	if c.move(s, cam, dt) {
		disturbed = true
	}
	if c.turnLight(s, light, dt) {
		disturbed = true
	}
	if s.JustPressed(KeyR) {
		disturbed = true
	}
	return disturbed
}

func (c *Controller) look(s *State, cam *core.CameraState) bool {
	dx, dy := s.ConsumeMouseDelta()
	if dx == 0 && dy == 0 {
		return false
	}
	extent := max(s.Width, s.Height, 1)
	scale := c.MouseSensitivity / float32(extent)
	cam.Yaw -= float32(dx) * scale
	cam.Pitch -= float32(dy) * scale
	cam.ClampPitch()
	return true
}

func (c *Controller) move(s *State, cam *core.CameraState, dt float32) bool {
	held := false
	for _, k := range movementKeys {
		if s.Pressed(k) {
			held = true
			break
		}
	}
	if !held {
		return false
	}

	forward, right := cam.HorizontalBasis()
	var dir mgl32.Vec3
	if s.Pressed(KeyW) {
		dir = dir.Add(forward)
	}
	if s.Pressed(KeyS) {
		dir = dir.Sub(forward)
	}
	if s.Pressed(KeyD) {
		dir = dir.Add(right)
	}
	if s.Pressed(KeyA) {
		dir = dir.Sub(right)
	}
	if s.Pressed(KeySpace) {
		dir[1] += 1
	}
	if s.Pressed(KeyControl) {
		dir[1] -= 1
	}

	speed := c.Speed
	if s.Pressed(KeyShift) {
		speed *= c.SprintMultiplier
	}
	cam.Position = cam.Position.Add(core.SafeNormalize(dir).Mul(speed * dt))
	return true
}

func (c *Controller) turnLight(s *State, light *core.Light, dt float32) bool {
	var aroundX, aroundZ float32
	held := false
	for _, k := range lightKeys {
		if s.Pressed(k) {
			held = true
		}
	}
	if !held {
		return false
	}
	step := c.LightRate * dt
	if s.Pressed(KeyUp) {
		aroundX -= step
	}
	if s.Pressed(KeyDown) {
		aroundX += step
	}
	if s.Pressed(KeyLeft) {
		aroundZ += step
	}
	if s.Pressed(KeyRight) {
		aroundZ -= step
	}
	light.Rotate(aroundX, aroundZ)
	return true
}
