package script

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"gamehost/internal/assets"
)

// install registers the host module and, with a store, the asset searcher.
func (l *Loader) install(L *lua.LState) {
	L.PreloadModule("host", l.openHost)

	if l.store == nil {
		return
	}
	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	loaders, ok := L.GetField(pkg, "loaders").(*lua.LTable)
	if !ok {
		return
	}
	loaders.Append(L.NewFunction(l.searchAssets))
}

func (l *Loader) openHost(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"loadscript": l.loadScript,
		"loadasset":  l.loadAsset,
		"readasset":  l.readAsset,
	})
	mod.RawSetString("SearchPath", lua.LString(l.modulePath()))
	mod.RawSetString("Entry", lua.LString(l.cfg.Entry))
	L.Push(mod)
	return 1
}

// loadscript(path): the file when it exists on disk, else the packaged asset.
func (l *Loader) loadScript(L *lua.LState) int {
	p := L.CheckString(1)
	if _, err := os.Stat(p); err == nil {
		fn, err := L.LoadFile(p)
		if err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(fn)
		return 1
	}
	return l.loadAsset(L)
}

// loadasset(path) compiles a packaged script, returning nil, msg on failure
// like loadfile.
func (l *Loader) loadAsset(L *lua.LState) int {
	name := assets.Relative(l.cfg.Root, L.CheckString(1))
	fn, err := l.compileAsset(L, name)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(fn)
	return 1
}

// readasset(name) returns the raw contents of a packaged resource.
func (l *Loader) readAsset(L *lua.LState) int {
	name := assets.Relative(l.cfg.Root, L.CheckString(1))
	if l.store == nil {
		L.Push(lua.LNil)
		L.Push(lua.LString("no asset store"))
		return 2
	}
	buf, err := assets.Load(l.log, l.store, name)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(buf))
	return 1
}

func (l *Loader) compileAsset(L *lua.LState, name string) (*lua.LFunction, error) {
	if l.store == nil {
		return nil, fmt.Errorf("no asset store for %q", name)
	}
	buf, err := assets.Load(l.log, l.store, name)
	if err != nil {
		return nil, err
	}
	return L.Load(bytes.NewReader(buf), name)
}

// searchAssets is a package.loaders entry resolving require names through the
// search path against the asset store. Misses are quiet: require tries
// several patterns and reports all of them itself.
func (l *Loader) searchAssets(L *lua.LState) int {
	name := L.CheckString(1)
	rel := strings.ReplaceAll(name, ".", "/")

	var tried strings.Builder
	for _, pattern := range strings.Split(l.modulePath(), ";") {
		if pattern == "" {
			continue
		}
		candidate := assets.Relative(l.cfg.Root, strings.ReplaceAll(pattern, "?", rel))
		buf, err := assets.Load(nil, l.store, candidate)
		if err != nil {
			fmt.Fprintf(&tried, "\n\tno asset '%s'", candidate)
			continue
		}
		fn, err := L.Load(bytes.NewReader(buf), candidate)
		if err != nil {
			L.RaiseError("error loading module '%s' from asset '%s':\n\t%s", name, candidate, err.Error())
		}
		L.Push(fn)
		return 1
	}
	L.Push(lua.LString(tried.String()))
	return 1
}
