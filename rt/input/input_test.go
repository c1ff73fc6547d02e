package input

import (
	"testing"

	"github.com/gekko3d/pathrt"
	"github.com/gekko3d/pathrt/rt/core"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRig() (*Controller, *State, *core.CameraState, *core.Light) {
	return NewController(pathrt.DefaultConfig()),
		NewState(1280, 720),
		core.NewCameraState(mgl32.Vec3{}),
		core.NewLight(core.DefaultLightDirection)
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestIdleFrameIsUndisturbed(t *testing.T) {
	c, s, cam, light := newRig()
	dir := light.Direction

	assert.False(t, c.Update(s, cam, light, 0.016))
	assert.Equal(t, mgl32.Vec3{}, cam.Position)
	assert.Equal(t, dir, light.Direction)
}

func TestForwardMovesAlongMinusZ(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(KeyW)

	assert.True(t, c.Update(s, cam, light, 0.5))
	assertVec(t, mgl32.Vec3{0, 0, -1}, cam.Position)
}

func TestSprintTriplesSpeed(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(KeyW)
	s.Press(KeyShift)

	c.Update(s, cam, light, 0.5)
	assertVec(t, mgl32.Vec3{0, 0, -3}, cam.Position)
}

func TestShiftAloneDoesNotDisturb(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(KeyShift)
	assert.False(t, c.Update(s, cam, light, 0.5))
}

func TestOpposingKeysStillDisturb(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(KeyW)
	s.Press(KeyS)

	assert.True(t, c.Update(s, cam, light, 0.5))
	assertVec(t, mgl32.Vec3{}, cam.Position)
}

func TestVerticalAndStrafe(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(KeySpace)
	c.Update(s, cam, light, 0.5)
	assertVec(t, mgl32.Vec3{0, 1, 0}, cam.Position)

	s.Release(KeySpace)
	s.Press(KeyD)
	c.Update(s, cam, light, 0.5)
	assertVec(t, mgl32.Vec3{1, 1, 0}, cam.Position)
}

func TestMovementStaysHorizontalWhenPitched(t *testing.T) {
	c, s, cam, light := newRig()
	cam.Pitch = 1.2
	s.Press(KeyW)

	c.Update(s, cam, light, 1)
	assert.InDelta(t, 0, cam.Position.Y(), 1e-6)
	assert.InDelta(t, 2, cam.Position.Len(), 1e-5)
}

func TestMouseDeltaConsumedOnce(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(MouseButtonLeft)
	require.True(t, s.Grabbed())

	s.OnCursor(100, 100)
	s.OnCursor(130, 100)

	assert.True(t, c.Update(s, cam, light, 0.016))
	assert.InDelta(t, -30*3.0/1280, cam.Yaw, 1e-6)
	assert.Zero(t, cam.Pitch)

	dx, dy := s.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.False(t, c.Update(s, cam, light, 0.016))
}

func TestMouseIgnoredWhenNotGrabbed(t *testing.T) {
	_, s, _, _ := newRig()
	s.OnCursor(0, 0)
	s.OnCursor(50, 50)

	dx, dy := s.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestPitchClamped(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(MouseButtonLeft)

	s.OnCursor(0, 0)
	s.OnCursor(0, 1e6)
	c.Update(s, cam, light, 0.016)
	assert.Equal(t, -core.PitchLimit, cam.Pitch)

	s.OnCursor(0, -1e6)
	c.Update(s, cam, light, 0.016)
	assert.Equal(t, core.PitchLimit, cam.Pitch)
}

func TestLightKeysRenormalize(t *testing.T) {
	c, s, cam, light := newRig()
	s.Press(KeyUp)
	s.Press(KeyLeft)

	for i := 0; i < 500; i++ {
		require.True(t, c.Update(s, cam, light, 0.1))
		require.InDelta(t, 1, light.Direction.Len(), 1e-5)
	}
}

func TestEscapeUngrabsThenCloses(t *testing.T) {
	_, s, _, _ := newRig()
	var grabs []bool
	s.OnGrab = func(g bool) { grabs = append(grabs, g) }

	s.OnMouseButton(glfw.MouseButtonLeft, glfw.Press)
	assert.True(t, s.Grabbed())

	s.OnKey(glfw.KeyEscape, glfw.Press)
	assert.False(t, s.Grabbed())
	assert.False(t, s.CloseRequested())

	s.OnKey(glfw.KeyEscape, glfw.Release)
	s.OnKey(glfw.KeyEscape, glfw.Press)
	assert.True(t, s.CloseRequested())
	assert.Equal(t, []bool{true, false}, grabs)
}

func TestResetKeyDisturbsOnce(t *testing.T) {
	c, s, cam, light := newRig()
	s.OnKey(glfw.KeyR, glfw.Press)

	assert.True(t, c.Update(s, cam, light, 0.016))
	s.EndFrame()
	assert.False(t, c.Update(s, cam, light, 0.016))
}

func TestUnmappedKeysIgnored(t *testing.T) {
	_, s, _, _ := newRig()
	s.OnKey(glfw.KeyF12, glfw.Press)
	s.Press(Key(-1))
	s.Press(keyCount)
	for k := Key(0); k < keyCount; k++ {
		assert.False(t, s.Pressed(k), "key %d", k)
	}
}

func TestKeyMappingRoundTrip(t *testing.T) {
	for k, g := range keyToGlfw {
		back, ok := FromGlfw(g)
		require.True(t, ok)
		assert.Equal(t, k, back)
		fwd, ok := ToGlfw(k)
		require.True(t, ok)
		assert.Equal(t, g, fwd)
	}
}

func TestAccumulationResetRule(t *testing.T) {
	c, s, cam, light := newRig()
	var acc core.Accumulator

	for i := 0; i < 3; i++ {
		assert.Equal(t, uint32(i), acc.Advance(c.Update(s, cam, light, 0.016)))
	}

	s.Press(KeyA)
	assert.Equal(t, uint32(0), acc.Advance(c.Update(s, cam, light, 0.016)))
	assert.Equal(t, uint32(0), acc.Advance(c.Update(s, cam, light, 0.016)))

	s.Release(KeyA)
	assert.Equal(t, uint32(1), acc.Advance(c.Update(s, cam, light, 0.016)))
}
