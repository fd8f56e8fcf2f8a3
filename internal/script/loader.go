// Package script takes a freshly created Lua runtime to "user script
// running": it installs the host module and the asset searcher, compiles the
// embedded bootstrap program and calls it with the work dir and entry script.
//
// Failures never propagate past Run's caller as panics. They are logged with
// message and traceback and returned as *errors.Error values so the session
// can publish them on its error bus.
package script

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"gamehost/internal/assets"
	"gamehost/internal/config"
	"gamehost/internal/errors"
	"gamehost/internal/logging"
)

// Bootstrap is the startup procedure run with (root, script).
const Bootstrap = `local root, script = ...
local host = require "host"
host.WorkDir = root
assert(script, "I need a script name")
host.ScriptDir = string.match(script, [[(.*)/[^/]*$]]) or "."
package.path = host.SearchPath
local f = assert(host.loadscript(script))
f(script)
`

// Config locates the scripts.
type Config struct {
	// Root is the working directory passed as the first bootstrap argument.
	Root string
	// Entry is the entry script path passed as the second argument.
	Entry string
	// SearchPath is the package.path template; {root} expands to Root.
	SearchPath string
	// Program replaces Bootstrap when set.
	Program string
}

// FromConfig picks the script fields out of the bridge configuration.
func FromConfig(c config.Config) Config {
	return Config{
		Root:       c.ScriptRoot,
		Entry:      c.EntryScript,
		SearchPath: c.SearchPath,
	}
}

// Loader runs the bootstrap sequence against a Lua state.
type Loader struct {
	cfg   Config
	store assets.Store
	log   *zap.Logger
}

// NewLoader returns a loader. store may be nil, in which case scripts are
// only found on the filesystem.
func NewLoader(cfg Config, store assets.Store, log *zap.Logger) *Loader {
	return &Loader{cfg: cfg, store: store, log: logging.OrNop(log)}
}

// Run bootstraps L and returns nil once the entry script has run. A compile
// failure of the bootstrap program has kind compile; anything raised while it
// runs, including a missing or broken entry script, has kind runtime.
func (l *Loader) Run(L *lua.LState) error {
	l.install(L)

	program := l.cfg.Program
	if program == "" {
		program = Bootstrap
	}

	var t trap
	handler := L.NewFunction(t.handle)

	fn, err := L.LoadString(program)
	if err != nil {
		cerr := errors.Compile("bootstrap", err)
		l.log.Error("bootstrap compile failed", zap.Error(err))
		return cerr
	}

	L.Push(fn)
	L.Push(lua.LString(l.cfg.Root))
	if l.cfg.Entry == "" {
		L.Push(lua.LNil)
	} else {
		L.Push(lua.LString(l.cfg.Entry))
	}
	if err := L.PCall(2, 0, handler); err != nil {
		rerr := t.err(errors.PhaseBootstrap, err)
		l.log.Error("bootstrap failed",
			zap.String("entry", l.cfg.Entry),
			zap.String("error", rerr.Detail),
			zap.String("traceback", rerr.Trace))
		return rerr
	}

	l.log.Info("entry script loaded", zap.String("entry", l.cfg.Entry))
	return nil
}

func (l *Loader) modulePath() string {
	return config.ExpandSearchPath(l.cfg.SearchPath, l.cfg.Root)
}
