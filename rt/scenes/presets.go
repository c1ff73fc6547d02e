// Package scenes builds the fixed scene presets the renderer can show.
package scenes

import (
	"sort"
	"strings"

	"github.com/gekko3d/pathrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Spheres = "spheres"
	Cornell = "cornell"

	Default = Spheres
)

// Scene is an immutable snapshot of everything the ray tracer intersects,
// plus the camera pose the preset is meant to be viewed from.
type Scene struct {
	Name    string
	Spheres []core.Sphere
	Meshes  []core.TriangleMesh
	Camera  core.CameraState
}

func (s *Scene) VertexCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += len(m.Vertices)
	}
	return n
}

// Validate checks every mesh invariant.
func (s *Scene) Validate() error {
	for _, m := range s.Meshes {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

var presets = map[string]func() *Scene{
	Spheres: spheresScene,
	Cornell: cornellScene,
}

// Names lists the known presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name to a preset name. Unknown names resolve to Default
// and report false.
func Lookup(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := presets[key]; ok {
		return key, true
	}
	return Default, false
}

// Build returns a fresh copy of the named preset, falling back to Default
// for names it does not know.
func Build(name string) *Scene {
	key, _ := Lookup(name)
	return presets[key]()
}

func v3(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }

func matte(r, g, b float32) core.Material {
	return core.NewMaterial(v3(r, g, b), 0)
}

func spheresScene() *Scene {
	// green carries an emission color but zero strength, so it renders matte
	green := matte(0.28, 0.94, 0.07)
	green.EmissionColor = v3(0.23, 1.0, 0.01)

	return &Scene{
		Name: Spheres,
		Spheres: []core.Sphere{
			{Position: v3(-4.0, 0.4, -0.4), Radius: 0.4, Material: matte(0.2, 0.2, 0.2)},
			{Position: v3(-2.5, 0.75, -0.2), Radius: 0.75, Material: matte(0.13, 0.51, 0.95)},
			{Position: v3(-0.5, 1.0, 0.0), Radius: 1.0, Material: green},
			{Position: v3(2.0, 1.25, -0.2), Radius: 1.25, Material: matte(1.0, 0.06, 0.06)},
			{Position: v3(5.5, 2.0, -0.4), Radius: 2.0, Material: matte(1, 1, 1)},
			// ground
			{Position: v3(0, -100, 0), Radius: 100, Material: matte(0.38, 0.16, 0.81)},
		},
		Meshes: []core.TriangleMesh{
			core.NewTriangleMesh(
				[]mgl32.Vec3{v3(-3, 0, -3), v3(-1, 0, -3), v3(-2, 2, -3)},
				matte(1.0, 0.5, 0.0).Emissive(v3(1.0, 0.5, 0.0), 0.5),
			),
		},
		Camera: core.CameraState{Position: v3(0, 1, 8)},
	}
}

func cornellScene() *Scene {
	const s = 10
	white := matte(0.8, 0.8, 0.8)

	return &Scene{
		Name: Cornell,
		Spheres: []core.Sphere{
			{Position: v3(-3, 0, 0), Radius: 1, Material: core.NewMaterial(v3(1, 1, 0), 0.2).Emissive(v3(1, 1, 0), 0.2)},
			{Position: v3(0, 0, 0), Radius: 1, Material: core.NewMaterial(v3(1, 1, 1), 1.0)},
			{Position: v3(3, 0, 0), Radius: 1, Material: core.NewMaterial(v3(0, 1, 0), 0.1).Emissive(v3(0, 1, 0), 0.2)},
		},
		Meshes: []core.TriangleMesh{
			// floor
			core.NewQuad(v3(-s, -s, -s), v3(s, -s, -s), v3(s, -s, s), v3(-s, -s, s), white),
			// ceiling
			core.NewQuad(v3(-s, s, -s), v3(s, s, -s), v3(s, s, s), v3(-s, s, s), white),
			// back
			core.NewQuad(v3(-s, -s, -s), v3(s, -s, -s), v3(s, s, -s), v3(-s, s, -s), white),
			// left
			core.NewQuad(v3(-s, -s, -s), v3(-s, -s, s), v3(-s, s, s), v3(-s, s, -s), matte(0.8, 0, 0)),
			// right
			core.NewQuad(v3(s, -s, -s), v3(s, -s, s), v3(s, s, s), v3(s, s, -s), matte(0, 0.8, 0)),
			// front
			core.NewQuad(v3(-s, -s, s), v3(s, -s, s), v3(s, s, s), v3(-s, s, s), white),
			// area light just below the ceiling
			core.NewQuad(v3(-2, 9.9, -2), v3(2, 9.9, -2), v3(2, 9.9, 2), v3(-2, 9.9, 2),
				matte(1, 1, 1).Emissive(v3(1, 1, 1), 5)),
		},
		Camera: core.CameraState{Position: v3(0, 0, 9)},
	}
}
