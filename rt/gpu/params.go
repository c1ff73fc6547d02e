package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameParamsSize is the size of the WGSL Params struct:
//
//	struct Params {
//	    camera_pos: vec3<f32>,          // 0
//	    random_seed: f32,               // 12
//	    camera_dir: mat3x3<f32>,        // 16 (3 columns, 16 bytes each)
//	    light_dir: vec3<f32>,           // 64
//	    accumulated_frames: u32,        // 76
//	    width: u32,                     // 80
//	    height: u32,                    // 84
//	    triangle_mesh_count: u32,       // 88
//	    sphere_count: u32,              // 92
//	} -> 96 bytes
const FrameParamsSize = 96

var ErrShortBuffer = errors.New("buffer too short")

// FrameParams is the per-frame uniform consumed by the ray-trace kernel.
type FrameParams struct {
	CameraPos         mgl32.Vec3
	RandomSeed        float32
	CameraDir         mgl32.Mat3
	LightDir          mgl32.Vec3
	AccumulatedFrames uint32
	Width             uint32
	Height            uint32
	TriangleMeshCount uint32
	SphereCount       uint32
}

func (p FrameParams) Marshal() []byte {
	buf := make([]byte, FrameParamsSize)
	putVec3(buf[0:], p.CameraPos)
	putF32(buf[12:], p.RandomSeed)
	for c := 0; c < 3; c++ {
		// w of every column stays zero
		putVec3(buf[16+c*16:], p.CameraDir.Col(c))
	}
	putVec3(buf[64:], p.LightDir)
	binary.LittleEndian.PutUint32(buf[76:], p.AccumulatedFrames)
	binary.LittleEndian.PutUint32(buf[80:], p.Width)
	binary.LittleEndian.PutUint32(buf[84:], p.Height)
	binary.LittleEndian.PutUint32(buf[88:], p.TriangleMeshCount)
	binary.LittleEndian.PutUint32(buf[92:], p.SphereCount)
	return buf
}

// UnmarshalFrameParams reads the layout Marshal writes, the way the kernel
// sees it.
func UnmarshalFrameParams(buf []byte) (FrameParams, error) {
	if len(buf) < FrameParamsSize {
		return FrameParams{}, fmt.Errorf("frame params: %w: %d < %d", ErrShortBuffer, len(buf), FrameParamsSize)
	}
	var p FrameParams
	p.CameraPos = getVec3(buf[0:])
	p.RandomSeed = getF32(buf[12:])
	p.CameraDir = mgl32.Mat3FromCols(getVec3(buf[16:]), getVec3(buf[32:]), getVec3(buf[48:]))
	p.LightDir = getVec3(buf[64:])
	p.AccumulatedFrames = binary.LittleEndian.Uint32(buf[76:])
	p.Width = binary.LittleEndian.Uint32(buf[80:])
	p.Height = binary.LittleEndian.Uint32(buf[84:])
	p.TriangleMeshCount = binary.LittleEndian.Uint32(buf[88:])
	p.SphereCount = binary.LittleEndian.Uint32(buf[92:])
	return p, nil
}

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func getF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func putVec3(b []byte, v mgl32.Vec3) {
	putF32(b[0:], v[0])
	putF32(b[4:], v[1])
	putF32(b[8:], v[2])
}

func putVec4(b []byte, v mgl32.Vec4) {
	putVec3(b, v.Vec3())
	putF32(b[12:], v[3])
}

func getVec3(b []byte) mgl32.Vec3 {
	return mgl32.Vec3{getF32(b[0:]), getF32(b[4:]), getF32(b[8:])}
}

func getVec4(b []byte) mgl32.Vec4 {
	return getVec3(b).Vec4(getF32(b[12:]))
}
