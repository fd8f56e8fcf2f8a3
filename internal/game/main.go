//go:build !android

package game

import (
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"gamehost/internal/assets"
	"gamehost/internal/audio"
	"gamehost/internal/config"
	"gamehost/internal/logging"
	"gamehost/internal/surface"
	"gamehost/internal/touch"
)

// RunDesktop opens a window and drives a session until the window closes or
// Escape is pressed. Assets come from cfg.AssetDir.
func RunDesktop(cfg config.Config, log *zap.Logger) error {
	runtime.LockOSThread()
	log = logging.OrNop(log)

	window, err := initWindow(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	gl := surface.NewGL()
	deps := Deps{
		Log:     log,
		Store:   assets.FS(os.DirFS(cfg.AssetDir)),
		Surface: gl,
	}
	if mixer, err := audio.New(log); err != nil {
		log.Warn("audio init failed (continuing without sound)", zap.Error(err))
	} else {
		deps.Audio = mixer
		defer mixer.Close()
	}

	s, err := Init(cfg, deps)
	if err != nil {
		return err
	}
	defer s.Close()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) { gl.Resize(w, h) })
	bindMouse(window, &mouse{emit: func(x, y float32, phase touch.Phase) { s.Touch(x, y, phase) }})

	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		s.Update()
		s.RenderFrame()
		window.SwapBuffers()
	}
	return nil
}
