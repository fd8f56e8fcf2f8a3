// Package surface implements the display surface the engine clears and draws
// into: OpenGL through go-gl on desktop, x/mobile/gl on Android, and a
// headless variant for runs without a window.
package surface

import "fmt"

// RGBA splits a 0xAARRGGBB colour into normalized components.
func RGBA(argb uint32) (r, g, b, a float32) {
	a = float32(argb>>24&0xff) / 255
	r = float32(argb>>16&0xff) / 255
	g = float32(argb>>8&0xff) / 255
	b = float32(argb&0xff) / 255
	return
}

// Viewport is the pixel size of a width x height surface at scale.
func Viewport(width, height int, scale float32) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if scale <= 0 {
		return 0, 0, fmt.Errorf("invalid surface scale %v", scale)
	}
	return int(float32(width) * scale), int(float32(height) * scale), nil
}

// Headless is a surface without a display. It keeps the viewport and the
// last clear colour so runs can be inspected.
type Headless struct {
	Width, Height int
	Clears        int
	Last          uint32
}

func (h *Headless) Init(width, height int, scale float32) error {
	w, hh, err := Viewport(width, height, scale)
	if err != nil {
		return err
	}
	h.Width, h.Height = w, hh
	return nil
}

func (h *Headless) Clear(argb uint32) {
	h.Clears++
	h.Last = argb
}
