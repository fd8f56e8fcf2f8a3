// Package engine is the script-driven game instance the session drives. It
// owns the Lua state and forwards the frame loop, touches and drawing to the
// callbacks the user script registers with framework.start.
package engine

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"gamehost/internal/assets"
	"gamehost/internal/errors"
	"gamehost/internal/logging"
	"gamehost/internal/script"
	"gamehost/internal/touch"
)

// Surface is the display surface the engine draws into.
type Surface interface {
	Init(width, height int, scale float32) error
	Clear(argb uint32)
}

// Fonts measures text for script layout.
type Fonts interface {
	Measure(text string, size float64) (int, error)
}

// Audio plays PCM buffers.
type Audio interface {
	Play(pcm []byte) error
}

// DefaultBackground is the clear colour until a script sets one.
const DefaultBackground uint32 = 0xff000000

// Options wires the engine to its services. Every field is optional.
type Options struct {
	Log     *zap.Logger
	Store   assets.Store
	// Root is the script root. Asset names under it are looked up relative
	// to it, the same way the bootstrap host module resolves them.
	Root    string
	Surface Surface
	Fonts   Fonts
	Audio   Audio
	// OnError receives every error raised by a script callback.
	OnError func(error)
}

// Game is one engine instance.
type Game struct {
	L *lua.LState

	log     *zap.Logger
	store   assets.Store
	root    string
	surface Surface
	fonts   Fonts
	audio   Audio
	onError func(error)

	callbacks  *lua.LTable
	background uint32
	started    bool
	frames     uint64
}

// New creates an engine instance with a fresh Lua state and the framework
// module preloaded.
func New(opts Options) *Game {
	g := &Game{
		L:          lua.NewState(),
		log:        logging.OrNop(opts.Log),
		store:      opts.Store,
		root:       opts.Root,
		surface:    opts.Surface,
		fonts:      opts.Fonts,
		audio:      opts.Audio,
		onError:    opts.OnError,
		background: DefaultBackground,
	}
	g.L.PreloadModule("framework", g.openFramework)
	return g
}

// State returns the Lua state scripts run in.
func (g *Game) State() *lua.LState { return g.L }

// Start runs the init callback once.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.invoke("init")
	g.log.Info("engine started", zap.Bool("scripted", g.callbacks != nil))
}

// Update advances the script simulation by dt seconds.
func (g *Game) Update(dt float32) {
	g.invoke("update", lua.LNumber(dt))
}

// DrawFrame clears the surface and lets the script draw.
func (g *Game) DrawFrame() {
	if g.surface != nil {
		g.surface.Clear(g.background)
	}
	g.invoke("drawframe")
	g.frames++
}

// Touch forwards a normalized touch to the script as (what, x, y, id).
func (g *Game) Touch(id int, x, y float32, phase touch.Phase) {
	g.invoke("touch", lua.LString(phase.String()), lua.LNumber(x), lua.LNumber(y), lua.LNumber(id))
}

// Frames is the number of frames drawn so far.
func (g *Game) Frames() uint64 { return g.frames }

// Close releases the Lua state.
func (g *Game) Close() {
	if g.L != nil {
		g.L.Close()
		g.L = nil
	}
}

// invoke calls the named callback when the script registered one.
func (g *Game) invoke(name string, args ...lua.LValue) {
	if g.callbacks == nil || g.L == nil {
		return
	}
	fn, ok := g.L.GetField(g.callbacks, name).(*lua.LFunction)
	if !ok {
		return
	}
	if err := script.Call(g.L, errors.PhaseEngine, fn, 0, args...); err != nil {
		g.report(name, err)
	}
}

func (g *Game) report(callback string, err error) {
	fields := []zap.Field{zap.String("callback", callback)}
	var e *errors.Error
	if errors.As(err, &e) {
		fields = append(fields, zap.String("error", e.Detail), zap.String("traceback", e.Trace))
	} else {
		fields = append(fields, zap.Error(err))
	}
	g.log.Error("script callback failed", fields...)
	if g.onError != nil {
		g.onError(err)
	}
}
