package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gekko3d/pathrt"
	"github.com/gekko3d/pathrt/rt/core"
	"github.com/gekko3d/pathrt/rt/input"
	"github.com/gekko3d/pathrt/rt/scenes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopTransitions(t *testing.T) {
	l := NewLoop(nil)
	assert.Equal(t, Idle, l.State())

	require.NoError(t, l.Transition(Rendering))
	assert.ErrorIs(t, l.Transition(Resizing), ErrBadTransition)
	require.NoError(t, l.Transition(Idle))

	require.NoError(t, l.Transition(Resizing))
	assert.ErrorIs(t, l.Transition(Rendering), ErrBadTransition)
	require.NoError(t, l.Transition(Idle))

	require.NoError(t, l.Transition(Idle), "self transition is a no-op")

	require.NoError(t, l.Transition(Closing))
	assert.True(t, l.Closing())
	for _, s := range []LoopState{Idle, Rendering, Resizing} {
		assert.ErrorIs(t, l.Transition(s), ErrBadTransition)
	}
	assert.Equal(t, Closing, l.State())
}

func TestLoopStateString(t *testing.T) {
	assert.Equal(t, "resizing", Resizing.String())
	assert.Equal(t, "LoopState(9)", LoopState(9).String())
}

type fakeTarget struct {
	configured [][2]uint32
	rebuilt    [][2]uint32
	fail       error
}

func (f *fakeTarget) ConfigureSurface(w, h uint32) {
	f.configured = append(f.configured, [2]uint32{w, h})
}

func (f *fakeTarget) RebuildForSize(w, h uint32) error {
	if f.fail != nil {
		return f.fail
	}
	f.rebuilt = append(f.rebuilt, [2]uint32{w, h})
	return nil
}

func TestResizerRebuildsAndResets(t *testing.T) {
	target := &fakeTarget{}
	acc := core.Accumulator{Frames: 40}
	view := input.NewState(800, 600)
	r := NewResizer(target, view, &acc, 800, 600, nil)

	changed, err := r.Handle(1024, 768)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, [][2]uint32{{1024, 768}}, target.configured)
	assert.Equal(t, [][2]uint32{{1024, 768}}, target.rebuilt)
	assert.Equal(t, uint32(0), acc.Advance(false))
	assert.Equal(t, uint32(1024), r.Width)
	assert.Equal(t, 1024, view.Width)
	assert.Equal(t, 768, view.Height)
}

func TestResizerIgnoresZeroAndSameSize(t *testing.T) {
	target := &fakeTarget{}
	acc := core.Accumulator{Frames: 7}
	view := input.NewState(800, 600)
	r := NewResizer(target, view, &acc, 800, 600, nil)

	for _, size := range [][2]int{{0, 600}, {800, 0}, {0, 0}, {-1, 5}, {800, 600}} {
		changed, err := r.Handle(size[0], size[1])
		require.NoError(t, err)
		assert.False(t, changed, "%v", size)
	}
	assert.Empty(t, target.configured)
	assert.Empty(t, target.rebuilt)
	assert.Equal(t, uint32(7), acc.Frames)
	// a minimized window keeps the last usable viewport
	assert.Equal(t, 800, view.Width)
	assert.Equal(t, 600, view.Height)
}

func TestResizerFailureRetries(t *testing.T) {
	boom := errors.New("device lost")
	target := &fakeTarget{fail: boom}
	acc := core.Accumulator{Frames: 3}
	r := NewResizer(target, nil, &acc, 800, 600, nil)

	_, err := r.Handle(640, 480)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint32(800), r.Width)

	target.fail = nil
	changed, err := r.Handle(640, 480)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestClockFPS(t *testing.T) {
	var c Clock
	start := time.Unix(100, 0)
	c.Tick(start)
	assert.Zero(t, c.Dt)

	for i := 1; i <= 60; i++ {
		c.Tick(start.Add(time.Duration(i) * time.Second / 60))
	}
	assert.InDelta(t, 1.0/60, c.Seconds(), 1e-4)
	assert.InDelta(t, 60, c.FPS, 0.5)

	c.Tick(c.Time.Add(-time.Second))
	assert.Zero(t, c.Dt)
}

func newTestState(t *testing.T) *RenderState {
	t.Helper()
	return NewRenderState(scenes.Build(scenes.Cornell), 800, 600, true)
}

func TestRenderStateStartsAtPresetCamera(t *testing.T) {
	rs := newTestState(t)
	preset := scenes.Build(scenes.Cornell)
	assert.Equal(t, preset.Camera.Position, rs.Camera.Position)

	rs.Camera.Position = mgl32.Vec3{9, 9, 9}
	assert.Equal(t, preset.Camera.Position, rs.Scene.Camera.Position)
}

func TestRenderStateIntegrate(t *testing.T) {
	rs := newTestState(t)
	ctrl := input.NewController(pathrt.DefaultConfig())
	now := time.Unix(0, 0)

	frame := func(ms int) uint32 {
		n := rs.Integrate(ctrl, now.Add(time.Duration(ms)*time.Millisecond))
		rs.Submitted()
		return n
	}

	assert.Equal(t, uint32(0), frame(0))
	assert.Equal(t, uint32(1), frame(16))
	assert.Equal(t, uint32(2), frame(32))

	rs.Input.Press(input.KeyW)
	assert.Equal(t, uint32(0), frame(48))
	rs.Input.Release(input.KeyW)
	assert.Equal(t, uint32(1), frame(64))
	assert.Equal(t, uint64(5), rs.Presented)

	p := rs.FrameParams(1, 0.5)
	assert.Equal(t, rs.Camera.Position, p.CameraPos)
	assert.Equal(t, rs.Light.Direction, p.LightDir)
	assert.Equal(t, uint32(1), p.AccumulatedFrames)
	assert.Equal(t, rs.Camera.Orientation(), p.CameraDir)
}

func TestSkippedFrameIsNotASample(t *testing.T) {
	rs := newTestState(t)
	ctrl := input.NewController(pathrt.DefaultConfig())
	now := time.Unix(0, 0)

	rs.Integrate(ctrl, now)
	rs.Submitted()
	rs.Integrate(ctrl, now.Add(16*time.Millisecond))
	rs.Submitted()

	// encode fails after integration: no Submitted
	assert.Equal(t, uint32(2), rs.Integrate(ctrl, now.Add(32*time.Millisecond)))
	assert.Equal(t, uint32(2), rs.Integrate(ctrl, now.Add(48*time.Millisecond)))
	rs.Submitted()
	assert.Equal(t, uint32(3), rs.Integrate(ctrl, now.Add(64*time.Millisecond)))

	// a failed disturbed frame still discards the history next time
	rs.Input.Press(input.KeyW)
	assert.Equal(t, uint32(0), rs.Integrate(ctrl, now.Add(80*time.Millisecond)))
	rs.Input.Release(input.KeyW)
	assert.Equal(t, uint32(0), rs.Integrate(ctrl, now.Add(96*time.Millisecond)))
	assert.Equal(t, uint64(3), rs.Presented)
}

func TestF1TogglesHUD(t *testing.T) {
	rs := newTestState(t)
	ctrl := input.NewController(pathrt.DefaultConfig())

	rs.Input.Press(input.KeyF1)
	rs.Integrate(ctrl, time.Unix(1, 0))
	assert.False(t, rs.ShowHUD)

	// held key does not toggle again
	rs.Integrate(ctrl, time.Unix(2, 0))
	assert.False(t, rs.ShowHUD)

	rs.Input.Release(input.KeyF1)
	rs.Input.Press(input.KeyF1)
	rs.Integrate(ctrl, time.Unix(3, 0))
	assert.True(t, rs.ShowHUD)
}

func TestHUDText(t *testing.T) {
	rs := newTestState(t)
	rs.Clock.FPS = 59.94
	rs.Accum.Frames = 12

	lines := HUDLines(rs)
	assert.Equal(t, []string{"FPS: 59.9", "Samples: 12", "Scene: cornell"}, lines)

	tr, err := core.NewDefaultTextRenderer(20)
	require.NoError(t, err)

	wide := HUDItems(tr, lines, 1920, 1080)
	require.Len(t, wide, 4)
	assert.Equal(t, controlsHint, wide[3].Text)
	assert.Less(t, wide[0].Position[1], wide[1].Position[1])
	assert.Less(t, wide[2].Position[1], wide[3].Position[1])

	narrow := HUDItems(tr, lines, 100, 1080)
	assert.Len(t, narrow, 3)

	assert.NotEmpty(t, tr.BuildVertices(wide, 1920, 1080))
}

func TestWindowTitle(t *testing.T) {
	title := WindowTitle("pathrt", "spheres", 30)
	assert.True(t, strings.HasPrefix(title, "pathrt"))
	assert.Contains(t, title, "spheres")
	assert.Contains(t, title, "30.0 fps")
}
