package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameParamsLayout(t *testing.T) {
	p := FrameParams{
		CameraPos:         mgl32.Vec3{0, 0, 5},
		RandomSeed:        0.25,
		CameraDir:         mgl32.Ident3(),
		LightDir:          mgl32.Vec3{0, 1, 0},
		AccumulatedFrames: 42,
		Width:             1280,
		Height:            720,
		TriangleMeshCount: 1,
		SphereCount:       6,
	}
	buf := p.Marshal()
	require.Len(t, buf, FrameParamsSize)

	f32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(buf[off:]) }

	assert.Equal(t, float32(5), f32(8))
	assert.Equal(t, float32(0.25), f32(12))
	// identity columns, each padded to 16 bytes
	assert.Equal(t, float32(1), f32(16))
	assert.Equal(t, float32(0), f32(28))
	assert.Equal(t, float32(1), f32(36))
	assert.Equal(t, float32(1), f32(56))
	assert.Equal(t, float32(1), f32(68))
	assert.Equal(t, uint32(42), u32(76))
	assert.Equal(t, uint32(1280), u32(80))
	assert.Equal(t, uint32(720), u32(84))
	assert.Equal(t, uint32(1), u32(88))
	assert.Equal(t, uint32(6), u32(92))

	back, err := UnmarshalFrameParams(buf)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestFrameParamsRotatedCameraSurvives(t *testing.T) {
	p := FrameParams{CameraDir: mgl32.Rotate3DY(0.7).Mul3(mgl32.Rotate3DX(-0.3))}
	back, err := UnmarshalFrameParams(p.Marshal())
	require.NoError(t, err)
	assert.True(t, p.CameraDir.ApproxEqual(back.CameraDir))
}

func TestUnmarshalShortBuffer(t *testing.T) {
	_, err := UnmarshalFrameParams(make([]byte, FrameParamsSize-1))
	assert.ErrorIs(t, err, ErrShortBuffer)
}
