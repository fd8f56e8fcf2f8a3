//go:build android

package surface

import (
	"golang.org/x/mobile/gl"
)

// Mobile is the Android surface over the x/mobile GL context handed out by
// the lifecycle event.
type Mobile struct {
	ctx           gl.Context
	width, height int
}

func NewMobile(ctx gl.Context) *Mobile { return &Mobile{ctx: ctx} }

func (s *Mobile) Init(width, height int, scale float32) error {
	w, h, err := Viewport(width, height, scale)
	if err != nil {
		return err
	}
	s.ctx.Disable(gl.DEPTH_TEST)
	s.ctx.Disable(gl.CULL_FACE)
	s.ctx.Enable(gl.BLEND)
	s.ctx.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	s.ctx.Viewport(0, 0, w, h)
	s.width, s.height = w, h
	return nil
}

// Resize follows size events.
func (s *Mobile) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == s.width && height == s.height) {
		return
	}
	s.ctx.Viewport(0, 0, width, height)
	s.width, s.height = width, height
}

func (s *Mobile) Clear(argb uint32) {
	r, g, b, a := RGBA(argb)
	s.ctx.ClearColor(r, g, b, a)
	s.ctx.Clear(gl.COLOR_BUFFER_BIT)
}
