package input

import "github.com/go-gl/glfw/v3.3/glfw"

// Key is a window-system independent key id.
type Key int

const (
	KeyA Key = iota
	KeyD
	KeyR
	KeyS
	KeyW
	KeySpace
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyShift
	KeyControl
	MouseButtonLeft
	MouseButtonRight

	keyCount
)

var keyToGlfw = map[Key]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyD:       glfw.KeyD,
	KeyR:       glfw.KeyR,
	KeyS:       glfw.KeyS,
	KeyW:       glfw.KeyW,
	KeySpace:   glfw.KeySpace,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyF1:      glfw.KeyF1,
	KeyShift:   glfw.KeyLeftShift,
	KeyControl: glfw.KeyLeftControl,
}

var glfwToKey = func() map[glfw.Key]Key {
	m := make(map[glfw.Key]Key, len(keyToGlfw))
	for k, g := range keyToGlfw {
		m[g] = k
	}
	return m
}()

var mouseToKey = map[glfw.MouseButton]Key{
	glfw.MouseButtonLeft:  MouseButtonLeft,
	glfw.MouseButtonRight: MouseButtonRight,
}

// FromGlfw maps a glfw key to a Key. Unmapped keys report false.
func FromGlfw(k glfw.Key) (Key, bool) {
	key, ok := glfwToKey[k]
	return key, ok
}

// ToGlfw is the inverse of FromGlfw.
func ToGlfw(k Key) (glfw.Key, bool) {
	g, ok := keyToGlfw[k]
	return g, ok
}

// movement and light keys disturb the accumulated image while held.
var (
	movementKeys = []Key{KeyW, KeyS, KeyA, KeyD, KeySpace, KeyControl}
	lightKeys    = []Key{KeyUp, KeyDown, KeyLeft, KeyRight}
)
