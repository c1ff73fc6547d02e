package core

import "github.com/go-gl/mathgl/mgl32"

// Material describes how a surface scatters and emits light.
// GPU layout (32 bytes):
//
//	diffuse_color: vec3<f32>, smoothness: f32,
//	emission_color: vec3<f32>, emission_strength: f32
type Material struct {
	DiffuseColor     mgl32.Vec3
	Smoothness       float32 // 0 = lambertian, 1 = mirror
	EmissionColor    mgl32.Vec3
	EmissionStrength float32
}

func NewMaterial(diffuse mgl32.Vec3, smoothness float32) Material {
	return Material{
		DiffuseColor: diffuse,
		Smoothness:   clamp01(smoothness),
	}
}

// Emissive returns a copy of m that emits color at the given strength.
func (m Material) Emissive(color mgl32.Vec3, strength float32) Material {
	if strength < 0 {
		strength = 0
	}
	m.EmissionColor = color
	m.EmissionStrength = strength
	return m
}

func (m Material) Valid() bool {
	return m.Smoothness >= 0 && m.Smoothness <= 1 && m.EmissionStrength >= 0
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
