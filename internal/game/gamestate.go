// Package game owns the running session: it wires the asset store, the
// bootstrap loader, the touch normalizer and the engine instance together,
// and drives them from the platform loops.
package game

import (
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"gamehost/internal/assets"
	"gamehost/internal/config"
	"gamehost/internal/engine"
	"gamehost/internal/errors"
	"gamehost/internal/font"
	"gamehost/internal/logging"
	"gamehost/internal/script"
	"gamehost/internal/touch"
)

// Engine is the engine instance a Session drives. *engine.Game implements it.
type Engine interface {
	State() *lua.LState
	Start()
	Update(dt float32)
	DrawFrame()
	Touch(id int, x, y float32, phase touch.Phase)
	Close()
}

// Deps are the services a Session runs on. Everything is optional: a
// missing store means scripts only come from disk, a missing surface means
// nothing is displayed, and Fonts defaults to the configured font asset.
type Deps struct {
	Log     *zap.Logger
	Store   assets.Store
	Surface engine.Surface
	Fonts   engine.Fonts
	Audio   engine.Audio
	// Engine overrides the engine instance. Deps.Log, Store, Surface, Fonts
	// and Audio are not passed to an override.
	Engine  Engine
	OnError ErrorHandler
}

// live guards the single running session per process.
var live atomic.Bool

// Session is the running game. All methods must be called from the goroutine
// that drives the frame loop.
type Session struct {
	cfg    config.Config
	log    *zap.Logger
	eng    Engine
	touch  *touch.Normalizer
	bus    *ErrorBus
	fonts  *font.Service
	closed bool
}

// Init creates the session. Script failures are logged and published on the
// error bus but do not fail Init; the session then runs without a script.
// Init fails when the configuration is invalid, when another session is
// running, or when the surface cannot be initialized.
func Init(cfg config.Config, deps Deps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "invalid configuration")
	}
	if !live.CompareAndSwap(false, true) {
		return nil, errors.Precondition("a session is already running")
	}

	log := logging.OrNop(deps.Log)
	s := &Session{cfg: cfg, log: log, bus: NewErrorBus()}
	if deps.OnError != nil {
		s.bus.Subscribe(deps.OnError)
	}

	if len(cfg.Extract) > 0 && deps.Store != nil {
		n, err := assets.Extract(log, deps.Store, cfg.ScriptRoot, cfg.Extract)
		s.bus.Emit(err)
		log.Info("assets extracted", zap.Int("count", n), zap.String("root", cfg.ScriptRoot))
	}

	fonts := deps.Fonts
	if fonts == nil && deps.Store != nil && cfg.FontAsset != "" {
		svc, err := font.Load(log, deps.Store, cfg.FontAsset)
		if err != nil {
			log.Warn("font unavailable", zap.String("font", cfg.FontAsset), zap.Error(err))
		} else {
			s.fonts = svc
			fonts = svc
		}
	}

	s.eng = deps.Engine
	if s.eng == nil {
		s.eng = engine.New(engine.Options{
			Log:     log,
			Store:   deps.Store,
			Root:    cfg.ScriptRoot,
			Surface: deps.Surface,
			Fonts:   fonts,
			Audio:   deps.Audio,
			OnError: s.bus.Emit,
		})
	}
	s.touch = touch.New(touch.SinkFunc(s.eng.Touch), log)

	loader := script.NewLoader(script.FromConfig(cfg), deps.Store, log)
	if err := loader.Run(s.eng.State()); err != nil {
		s.bus.Emit(err)
	}

	if deps.Surface != nil {
		if err := deps.Surface.Init(cfg.Width, cfg.Height, cfg.Scale); err != nil {
			s.release()
			return nil, errors.Wrap(errors.PhaseSurface, errors.KindIO, err, "surface init")
		}
	}

	s.eng.Start()
	log.Info("session started",
		zap.String("entry", cfg.EntryScript),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Float32("scale", cfg.Scale))
	return s, nil
}

// Update advances the engine by one fixed tick.
func (s *Session) Update() {
	s.mustLive("Update")
	s.eng.Update(s.cfg.Tick)
}

// RenderFrame draws one frame.
func (s *Session) RenderFrame() {
	s.mustLive("RenderFrame")
	s.eng.DrawFrame()
}

// Touch normalizes a pointer event and forwards it to the engine. It reports
// whether the event was forwarded.
func (s *Session) Touch(x, y float32, phase touch.Phase) bool {
	s.mustLive("Touch")
	return s.touch.Handle(x, y, phase)
}

// Touching reports whether a touch sequence is in progress.
func (s *Session) Touching() bool {
	s.mustLive("Touching")
	return s.touch.Active()
}

// OnError subscribes fn to errors reported after the call.
func (s *Session) OnError(fn ErrorHandler) { s.bus.Subscribe(fn) }

// Errors delivers reported errors until Close. Errors are dropped when
// nobody drains the channel.
func (s *Session) Errors() <-chan error { return s.bus.Errors() }

// LastError is the most recent reported error, or nil.
func (s *Session) LastError() error { return s.bus.Last() }

// Config is the configuration the session was created with.
func (s *Session) Config() config.Config { return s.cfg }

// Close releases the engine and lets a new session start. Closing twice is a
// no-op; any other use after Close panics.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.release()
	s.log.Info("session closed")
}

func (s *Session) release() {
	s.closed = true
	if s.eng != nil {
		s.eng.Close()
	}
	if s.fonts != nil {
		if err := s.fonts.Close(); err != nil {
			s.log.Warn("font close failed", zap.Error(err))
		}
	}
	s.bus.Close()
	live.Store(false)
}

func (s *Session) mustLive(op string) {
	if s == nil {
		panic(errors.Precondition(op + " called before Init"))
	}
	if s.closed {
		panic(errors.Precondition(op + " called after Close"))
	}
}
