package core

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrVertexCount = errors.New("triangle mesh vertex count is not a multiple of 3")
	ErrAABB        = errors.New("triangle mesh bounding box does not contain its vertices")
)

type Sphere struct {
	Position mgl32.Vec3
	Radius   float32
	Material Material
}

// AABB is stored as two vec4 so the GPU struct needs no extra padding; W is unused.
type AABB struct {
	Min mgl32.Vec4
	Max mgl32.Vec4
}

// AABBOf returns the tightest box around vertices. An empty slice yields a
// zero box.
func AABBOf(vertices []mgl32.Vec3) AABB {
	if len(vertices) == 0 {
		return AABB{}
	}
	lo, hi := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return AABB{Min: lo.Vec4(0), Max: hi.Vec4(0)}
}

func (b AABB) Valid() bool {
	return b.Min.X() <= b.Max.X() && b.Min.Y() <= b.Max.Y() && b.Min.Z() <= b.Max.Z()
}

func (b AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// TriangleMesh is an unindexed triangle list: every three vertices form one
// triangle.
type TriangleMesh struct {
	Vertices []mgl32.Vec3
	AABB     AABB
	Material Material
}

func NewTriangleMesh(vertices []mgl32.Vec3, material Material) TriangleMesh {
	return TriangleMesh{
		Vertices: vertices,
		AABB:     AABBOf(vertices),
		Material: material,
	}
}

// NewQuad splits the quad a-b-c-d into the triangles (a,b,c) and (a,c,d).
func NewQuad(a, b, c, d mgl32.Vec3, material Material) TriangleMesh {
	return NewTriangleMesh([]mgl32.Vec3{a, b, c, a, c, d}, material)
}

func (m TriangleMesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

func (m TriangleMesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrVertexCount, len(m.Vertices))
	}
	if !m.AABB.Valid() {
		return fmt.Errorf("%w: min %v > max %v", ErrAABB, m.AABB.Min, m.AABB.Max)
	}
	for i, v := range m.Vertices {
		if !m.AABB.Contains(v) {
			return fmt.Errorf("%w: vertex %d at %v", ErrAABB, i, v)
		}
	}
	return nil
}
