package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCornellPreset(t *testing.T) {
	s := Build("cornell")
	require.NotNil(t, s)

	assert.Equal(t, Cornell, s.Name)
	assert.Len(t, s.Spheres, 3)
	require.Len(t, s.Meshes, 7)
	for i, m := range s.Meshes {
		assert.Len(t, m.Vertices, 6, "quad %d", i)
	}
	assert.NoError(t, s.Validate())

	light := s.Meshes[6]
	assert.Equal(t, float32(5), light.Material.EmissionStrength)
}

func TestSpheresPreset(t *testing.T) {
	s := Build("spheres")
	assert.Equal(t, Spheres, s.Name)
	assert.Len(t, s.Spheres, 6)
	require.Len(t, s.Meshes, 1)
	assert.Len(t, s.Meshes[0].Vertices, 3)
	assert.NoError(t, s.Validate())
}

func TestSpheresPresetMaterials(t *testing.T) {
	s := Build(Spheres)
	for i, sp := range s.Spheres {
		assert.Equal(t, float32(0), sp.Material.Smoothness, "sphere %d", i)
		assert.Equal(t, float32(0), sp.Material.EmissionStrength, "sphere %d", i)
	}
	green := s.Spheres[2].Material
	assert.Equal(t, float32(0.94), green.DiffuseColor.Y())
	assert.Equal(t, float32(1.0), green.EmissionColor.Y())
}

func TestUnknownNameFallsBack(t *testing.T) {
	for _, name := range []string{"", "nope", "CORNELLX"} {
		s := Build(name)
		assert.Equal(t, Default, s.Name, "name %q", name)
		assert.Len(t, s.Spheres, 6)
		assert.Len(t, s.Meshes, 1)
		assert.Equal(t, 3, s.VertexCount())
	}
}

func TestLookup(t *testing.T) {
	name, ok := Lookup(" Cornell ")
	assert.True(t, ok)
	assert.Equal(t, Cornell, name)

	name, ok = Lookup("garbage")
	assert.False(t, ok)
	assert.Equal(t, Default, name)
}

func TestBuildReturnsFreshCopies(t *testing.T) {
	a := Build(Cornell)
	b := Build(Cornell)
	a.Spheres[0].Radius = 42
	a.Meshes[0].Vertices[0][0] = 42
	assert.NotEqual(t, a.Spheres[0].Radius, b.Spheres[0].Radius)
	assert.NotEqual(t, a.Meshes[0].Vertices[0][0], b.Meshes[0].Vertices[0][0])
}

func TestMaterialsValid(t *testing.T) {
	for _, name := range Names() {
		s := Build(name)
		for i, sp := range s.Spheres {
			assert.True(t, sp.Material.Valid(), "%s sphere %d", name, i)
			assert.Greater(t, sp.Radius, float32(0))
		}
		for i, m := range s.Meshes {
			assert.True(t, m.Material.Valid(), "%s mesh %d", name, i)
		}
	}
	assert.Equal(t, []string{Cornell, Spheres}, Names())
}
