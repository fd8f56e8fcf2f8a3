package engine

import (
	lua "github.com/yuin/gopher-lua"

	"gamehost/internal/assets"
)

func (g *Game) openFramework(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"start":   g.luaStart,
		"clear":   g.luaClear,
		"play":    g.luaPlay,
		"measure": g.luaMeasure,
		"asset":   g.luaAsset,
		"frames":  g.luaFrames,
	})
	L.Push(mod)
	return 1
}

// framework.start{init=, update=, drawframe=, touch=}
func (g *Game) luaStart(L *lua.LState) int {
	g.callbacks = L.CheckTable(1)
	return 0
}

// framework.clear(0xAARRGGBB) sets the background colour.
func (g *Game) luaClear(L *lua.LState) int {
	g.background = uint32(L.CheckInt64(1))
	return 0
}

// framework.play(asset) plays a packaged PCM buffer.
func (g *Game) luaPlay(L *lua.LState) int {
	name := L.CheckString(1)
	if g.audio == nil {
		return pushFail(L, "audio unavailable")
	}
	buf, err := g.loadAsset(name)
	if err != nil {
		return pushFail(L, err.Error())
	}
	if err := g.audio.Play(buf); err != nil {
		return pushFail(L, err.Error())
	}
	L.Push(lua.LTrue)
	return 1
}

// framework.measure(text, size) returns the advance width in pixels.
func (g *Game) luaMeasure(L *lua.LState) int {
	text := L.CheckString(1)
	size := float64(L.OptNumber(2, 12))
	if g.fonts == nil {
		return pushFail(L, "font unavailable")
	}
	w, err := g.fonts.Measure(text, size)
	if err != nil {
		return pushFail(L, err.Error())
	}
	L.Push(lua.LNumber(w))
	return 1
}

// framework.asset(name) returns the raw bytes of a packaged resource.
func (g *Game) luaAsset(L *lua.LState) int {
	buf, err := g.loadAsset(L.CheckString(1))
	if err != nil {
		return pushFail(L, err.Error())
	}
	L.Push(lua.LString(buf))
	return 1
}

func (g *Game) luaFrames(L *lua.LState) int {
	L.Push(lua.LNumber(g.frames))
	return 1
}

func (g *Game) loadAsset(name string) (assets.Buffer, error) {
	if g.store == nil {
		return nil, assets.ErrNotFound
	}
	return assets.Load(g.log, g.store, assets.Relative(g.root, name))
}

func pushFail(L *lua.LState, msg string) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(msg))
	return 2
}
