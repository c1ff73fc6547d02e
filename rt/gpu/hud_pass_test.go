package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A failed NewHUDPass releases whatever it built so far; that has to be safe
// from any point of construction.
func TestHUDPassReleasePartial(t *testing.T) {
	h := &HUDPass{vertexCount: 4}
	assert.NotPanics(t, func() {
		h.Release()
		h.Release()
	})
	assert.Equal(t, HUDPass{}, *h)

	var nilPass *HUDPass
	assert.NotPanics(t, func() { nilPass.Release() })
	assert.NotPanics(t, func() { nilPass.Draw(nil) })
}

func TestHUDPassUpdateEmpty(t *testing.T) {
	h := &HUDPass{vertexCount: 12}
	assert.NoError(t, h.Update(nil))
	assert.Equal(t, uint32(0), h.vertexCount)
	assert.NotPanics(t, func() { h.Draw(nil) })
}
