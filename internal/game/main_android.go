//go:build android

package game

import (
	"go.uber.org/zap"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	mtouch "golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"

	"gamehost/internal/assets"
	"gamehost/internal/audio"
	"gamehost/internal/config"
	"gamehost/internal/logging"
	"gamehost/internal/surface"
	"gamehost/internal/touch"
)

type mobileHost struct {
	cfg   config.Config
	log   *zap.Logger
	mixer *audio.Mixer

	glctx   gl.Context
	screen  *surface.Mobile
	session *Session
	fingers pointers
}

// RunAndroid runs the x/mobile event loop. The session starts on the first
// size event after the GL context becomes available, sized to the screen,
// and is torn down when the app leaves the visible stage.
func RunAndroid(cfg config.Config, log *zap.Logger) {
	h := &mobileHost{cfg: cfg, log: logging.OrNop(log)}
	if mixer, err := audio.New(h.log); err != nil {
		h.log.Warn("audio init failed (continuing without sound)", zap.Error(err))
	} else {
		h.mixer = mixer
	}

	app.Main(func(a app.App) {
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					h.glctx, _ = e.DrawContext.(gl.Context)
					h.screen = surface.NewMobile(h.glctx)
					if h.mixer != nil {
						_ = h.mixer.Resume()
					}
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					h.stop()
					if h.mixer != nil {
						_ = h.mixer.Suspend()
					}
				}
			case size.Event:
				h.resize(e)
			case mtouch.Event:
				h.touch(e)
			case paint.Event:
				if h.glctx == nil || e.External || h.session == nil {
					continue
				}
				h.session.Update()
				h.session.RenderFrame()
				a.Publish()
				a.Send(paint.Event{})
			}
		}
	})
}

func (h *mobileHost) resize(e size.Event) {
	if h.glctx == nil || e.WidthPx <= 0 || e.HeightPx <= 0 {
		return
	}
	if h.session != nil {
		h.screen.Resize(e.WidthPx, e.HeightPx)
		return
	}

	cfg := h.cfg
	cfg.Width, cfg.Height = e.WidthPx, e.HeightPx
	deps := Deps{Log: h.log, Store: assets.Mobile(), Surface: h.screen}
	if h.mixer != nil {
		deps.Audio = h.mixer
	}
	s, err := Init(cfg, deps)
	if err != nil {
		h.log.Error("session init failed", zap.Error(err))
		return
	}
	h.session = s
}

func (h *mobileHost) touch(e mtouch.Event) {
	if h.session == nil {
		return
	}
	var phase touch.Phase
	switch e.Type {
	case mtouch.TypeBegin:
		phase = touch.Begin
	case mtouch.TypeMove:
		phase = touch.Move
	case mtouch.TypeEnd:
		phase = touch.End
	default:
		return
	}
	if h.fingers.accept(int64(e.Sequence), phase) {
		h.session.Touch(e.X, e.Y, phase)
	}
}

func (h *mobileHost) stop() {
	if h.session != nil {
		h.session.Close()
		h.session = nil
	}
	h.fingers = pointers{}
	h.glctx = nil
	h.screen = nil
}
