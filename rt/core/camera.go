package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PitchLimit keeps the camera just short of looking straight up or down.
const PitchLimit float32 = 1.54

// CameraState is the camera pose. Orientation is never stored; it is rebuilt
// from Yaw and Pitch whenever it is needed.
type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32 // radians around world +Y
	Pitch    float32 // radians around the camera's X axis, clamped to ±PitchLimit
}

func NewCameraState(position mgl32.Vec3) *CameraState {
	return &CameraState{Position: position}
}

// ClampPitch forces Pitch into [-PitchLimit, PitchLimit].
func (c *CameraState) ClampPitch() {
	c.Pitch = mgl32.Clamp(c.Pitch, -PitchLimit, PitchLimit)
}

// Orientation returns RotY(yaw) * RotX(pitch). The camera looks down its
// local -Z axis.
func (c *CameraState) Orientation() mgl32.Mat3 {
	return mgl32.Rotate3DY(c.Yaw).Mul3(mgl32.Rotate3DX(c.Pitch))
}

func (c *CameraState) Forward() mgl32.Vec3 {
	return c.Orientation().Mul3x1(mgl32.Vec3{0, 0, -1})
}

func (c *CameraState) Right() mgl32.Vec3 {
	return c.Orientation().Mul3x1(mgl32.Vec3{1, 0, 0})
}

// HorizontalBasis returns forward and right projected onto the XZ plane.
// Either vector is zero when its projection degenerates.
func (c *CameraState) HorizontalBasis() (forward, right mgl32.Vec3) {
	f := c.Forward()
	r := c.Right()
	return SafeNormalize(mgl32.Vec3{f.X(), 0, f.Z()}), SafeNormalize(mgl32.Vec3{r.X(), 0, r.Z()})
}

// SafeNormalize returns the zero vector instead of NaNs for (near) zero input.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
