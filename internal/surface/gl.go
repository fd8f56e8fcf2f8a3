//go:build !android

package surface

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GL is the desktop surface. Init must run on the thread owning the GL
// context.
type GL struct {
	width, height int
}

func NewGL() *GL { return &GL{} }

func (s *GL) Init(width, height int, scale float32) error {
	w, h, err := Viewport(width, height, scale)
	if err != nil {
		return err
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.Viewport(0, 0, int32(w), int32(h))
	s.width, s.height = w, h
	return nil
}

// Resize follows framebuffer size changes.
func (s *GL) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == s.width && height == s.height) {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	s.width, s.height = width, height
}

func (s *GL) Clear(argb uint32) {
	r, g, b, a := RGBA(argb)
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
