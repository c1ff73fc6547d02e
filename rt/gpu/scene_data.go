package gpu

import (
	"encoding/binary"

	"github.com/gekko3d/pathrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Byte sizes of the storage buffer elements, matching raytrace.wgsl.
const (
	MaterialSize = 32
	SphereSize   = 48 // position(12) radius(4) material(32)
	VertexSize   = 16 // vec4<f32>, w unused
	MeshSize     = 80 // pad(8) start(4) count(4) aabb(32) material(32)
)

// GPUTriangleMesh locates one mesh inside the shared flat vertex buffer.
type GPUTriangleMesh struct {
	StartIndex  uint32
	VertexCount uint32
	AABB        core.AABB
	Material    core.Material
}

// Flatten concatenates every mesh's vertices into one buffer. Mesh i starts
// where mesh i-1 ended, so the descriptors tile the buffer without gaps.
func Flatten(meshes []core.TriangleMesh) ([]mgl32.Vec4, []GPUTriangleMesh) {
	total := 0
	for _, m := range meshes {
		total += len(m.Vertices)
	}
	vertices := make([]mgl32.Vec4, 0, total)
	descs := make([]GPUTriangleMesh, 0, len(meshes))
	for _, m := range meshes {
		descs = append(descs, GPUTriangleMesh{
			StartIndex:  uint32(len(vertices)),
			VertexCount: uint32(len(m.Vertices)),
			AABB:        m.AABB,
			Material:    m.Material,
		})
		for _, v := range m.Vertices {
			vertices = append(vertices, v.Vec4(0))
		}
	}
	return vertices, descs
}

func putMaterial(b []byte, m core.Material) {
	putVec3(b[0:], m.DiffuseColor)
	putF32(b[12:], m.Smoothness)
	putVec3(b[16:], m.EmissionColor)
	putF32(b[28:], m.EmissionStrength)
}

func getMaterial(b []byte) core.Material {
	return core.Material{
		DiffuseColor:     getVec3(b[0:]),
		Smoothness:       getF32(b[12:]),
		EmissionColor:    getVec3(b[16:]),
		EmissionStrength: getF32(b[28:]),
	}
}

// Storage bindings may not be zero sized, so every encoder below emits at
// least one zeroed element. The kernel bounds its loops by the counts in
// FrameParams, never by arrayLength.

func EncodeSpheres(spheres []core.Sphere) []byte {
	buf := make([]byte, max(len(spheres), 1)*SphereSize)
	for i, s := range spheres {
		o := buf[i*SphereSize:]
		putVec3(o[0:], s.Position)
		putF32(o[12:], s.Radius)
		putMaterial(o[16:], s.Material)
	}
	return buf
}

func EncodeVertices(vertices []mgl32.Vec4) []byte {
	buf := make([]byte, max(len(vertices), 1)*VertexSize)
	for i, v := range vertices {
		putVec4(buf[i*VertexSize:], v)
	}
	return buf
}

func EncodeMeshes(meshes []GPUTriangleMesh) []byte {
	buf := make([]byte, max(len(meshes), 1)*MeshSize)
	for i, m := range meshes {
		o := buf[i*MeshSize:]
		// o[0:8] is the leading vec2 pad
		binary.LittleEndian.PutUint32(o[8:], m.StartIndex)
		binary.LittleEndian.PutUint32(o[12:], m.VertexCount)
		putVec4(o[16:], m.AABB.Min)
		putVec4(o[32:], m.AABB.Max)
		putMaterial(o[48:], m.Material)
	}
	return buf
}

// DecodeMeshes is the inverse of EncodeMeshes for n descriptors.
func DecodeMeshes(buf []byte, n int) []GPUTriangleMesh {
	out := make([]GPUTriangleMesh, 0, n)
	for i := 0; i < n && (i+1)*MeshSize <= len(buf); i++ {
		o := buf[i*MeshSize:]
		out = append(out, GPUTriangleMesh{
			StartIndex:  binary.LittleEndian.Uint32(o[8:]),
			VertexCount: binary.LittleEndian.Uint32(o[12:]),
			AABB:        core.AABB{Min: getVec4(o[16:]), Max: getVec4(o[32:])},
			Material:    getMaterial(o[48:]),
		})
	}
	return out
}
