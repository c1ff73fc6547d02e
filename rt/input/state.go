package input

import "github.com/go-gl/glfw/v3.3/glfw"

// State is what the window system has told us since the last frame. The
// glfw callbacks write it; the controller reads it once per frame.
type State struct {
	pressed     [keyCount]bool
	justPressed [keyCount]bool

	mouseDX, mouseDY float64
	lastX, lastY     float64
	haveLast         bool

	grabbed        bool
	closeRequested bool

	Width, Height int

	// OnGrab is told whenever the pointer lock changes so the window can
	// switch cursor modes.
	OnGrab func(grabbed bool)
}

func NewState(width, height int) *State {
	return &State{Width: width, Height: height}
}

func (s *State) Pressed(k Key) bool {
	return k >= 0 && k < keyCount && s.pressed[k]
}

// JustPressed reports a press edge seen since the last EndFrame.
func (s *State) JustPressed(k Key) bool {
	return k >= 0 && k < keyCount && s.justPressed[k]
}

func (s *State) Press(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	if !s.pressed[k] {
		s.justPressed[k] = true
	}
	s.pressed[k] = true

	switch k {
	case KeyEscape:
		if s.grabbed {
			s.setGrabbed(false)
		} else {
			s.closeRequested = true
		}
	case MouseButtonLeft:
		if !s.grabbed {
			s.setGrabbed(true)
		}
	}
}

func (s *State) Release(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	s.pressed[k] = false
}

// OnKey is the glfw key callback body.
func (s *State) OnKey(key glfw.Key, action glfw.Action) {
	k, ok := FromGlfw(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		s.Press(k)
	case glfw.Release:
		s.Release(k)
	}
}

func (s *State) OnMouseButton(button glfw.MouseButton, action glfw.Action) {
	k, ok := mouseToKey[button]
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		s.Press(k)
	case glfw.Release:
		s.Release(k)
	}
}

// OnCursor accumulates motion while the pointer is locked.
func (s *State) OnCursor(x, y float64) {
	if s.grabbed && s.haveLast {
		s.mouseDX += x - s.lastX
		s.mouseDY += y - s.lastY
	}
	s.lastX, s.lastY = x, y
	s.haveLast = true
}

func (s *State) OnResize(w, h int) {
	s.Width, s.Height = w, h
}

// ConsumeMouseDelta returns the motion accumulated since the last call and
// zeroes it.
func (s *State) ConsumeMouseDelta() (dx, dy float64) {
	dx, dy = s.mouseDX, s.mouseDY
	s.mouseDX, s.mouseDY = 0, 0
	return dx, dy
}

func (s *State) Grabbed() bool {
	return s.grabbed
}

func (s *State) CloseRequested() bool {
	return s.closeRequested
}

// EndFrame clears the press edges.
func (s *State) EndFrame() {
	s.justPressed = [keyCount]bool{}
}

func (s *State) setGrabbed(g bool) {
	s.grabbed = g
	// the first cursor event after a mode switch jumps
	s.haveLast = false
	s.mouseDX, s.mouseDY = 0, 0
	if s.OnGrab != nil {
		s.OnGrab(g)
	}
}
