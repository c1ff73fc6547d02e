package core

import "github.com/go-gl/mathgl/mgl32"

// DefaultLightDirection points mostly up with a slight tilt.
var DefaultLightDirection = mgl32.Vec3{0.2, 1.0, 0.05}

// Light is the directional sun light. Direction points towards the light and
// is kept unit length.
type Light struct {
	Direction mgl32.Vec3
}

func NewLight(direction mgl32.Vec3) *Light {
	l := &Light{Direction: direction}
	l.Normalize()
	return l
}

// Rotate turns the light around world X then world Z and renormalizes, so
// float drift never accumulates across frames.
func (l *Light) Rotate(aroundX, aroundZ float32) {
	d := l.Direction
	if aroundX != 0 {
		d = mgl32.Rotate3DX(aroundX).Mul3x1(d)
	}
	if aroundZ != 0 {
		d = mgl32.Rotate3DZ(aroundZ).Mul3x1(d)
	}
	l.Direction = d
	l.Normalize()
}

func (l *Light) Normalize() {
	n := SafeNormalize(l.Direction)
	if n == (mgl32.Vec3{}) {
		n = DefaultLightDirection.Normalize()
	}
	l.Direction = n
}
