package engine

import (
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gamehost/internal/assets"
	"gamehost/internal/errors"
	"gamehost/internal/touch"
)

type fakeSurface struct {
	clears []uint32
}

func (s *fakeSurface) Init(int, int, float32) error { return nil }
func (s *fakeSurface) Clear(argb uint32)            { s.clears = append(s.clears, argb) }

type fakeAudio struct {
	played [][]byte
	err    error
}

func (a *fakeAudio) Play(pcm []byte) error {
	a.played = append(a.played, pcm)
	return a.err
}

type fakeFonts struct{}

func (fakeFonts) Measure(text string, size float64) (int, error) {
	return len(text) * int(size), nil
}

const recordingScript = `
local framework = require "framework"
log = {}
local function push(s) log[#log + 1] = s end
framework.start {
	init = function() push("init") end,
	update = function(dt) push(string.format("update %.2f", dt)) end,
	drawframe = function() push("draw " .. framework.frames()) end,
	touch = function(what, x, y, id) push(string.format("touch %s %d %d %d", what, x, y, id)) end,
}
`

func newGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g := New(opts)
	t.Cleanup(g.Close)
	return g
}

func logOf(t *testing.T, L *lua.LState) []string {
	t.Helper()
	tbl, ok := L.GetGlobal("log").(*lua.LTable)
	require.True(t, ok)
	var out []string
	tbl.ForEach(func(_, v lua.LValue) { out = append(out, v.String()) })
	return out
}

func TestCallbacksFollowTheFrameLoop(t *testing.T) {
	surface := &fakeSurface{}
	g := newGame(t, Options{Surface: surface})
	require.NoError(t, g.L.DoString(recordingScript))

	g.Start()
	g.Start()
	g.Update(0.01)
	g.DrawFrame()
	g.Touch(touch.ID, 10, 20, touch.Begin)
	g.Touch(touch.ID, 11, 21, touch.Move)
	g.Touch(touch.ID, 11, 21, touch.End)
	g.DrawFrame()

	assert.Equal(t, []string{
		"init",
		"update 0.01",
		"draw 0",
		"touch BEGIN 10 20 0",
		"touch MOVE 11 21 0",
		"touch END 11 21 0",
		"draw 1",
	}, logOf(t, g.L))
	assert.Equal(t, []uint32{DefaultBackground, DefaultBackground}, surface.clears)
	assert.Equal(t, uint64(2), g.Frames())
}

func TestScriptlessEngineRuns(t *testing.T) {
	surface := &fakeSurface{}
	g := newGame(t, Options{Surface: surface})

	assert.NotPanics(t, func() {
		g.Start()
		g.Update(0.01)
		g.DrawFrame()
		g.Touch(touch.ID, 1, 1, touch.Begin)
	})
	assert.Len(t, surface.clears, 1)
}

func TestClearSetsBackground(t *testing.T) {
	surface := &fakeSurface{}
	g := newGame(t, Options{Surface: surface})
	require.NoError(t, g.L.DoString(`require("framework").clear(0xff336699)`))

	g.DrawFrame()

	assert.Equal(t, []uint32{0xff336699}, surface.clears)
}

func TestCallbackErrorIsReported(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var reported []error
	g := newGame(t, Options{
		Log:     zap.New(core),
		OnError: func(err error) { reported = append(reported, err) },
	})
	require.NoError(t, g.L.DoString(`
		require("framework").start { update = function() error("tick failed", 0) end }
	`))

	g.Update(0.01)
	g.Update(0.01)

	require.Len(t, reported, 2)
	var e *errors.Error
	require.True(t, errors.As(reported[0], &e))
	assert.Equal(t, errors.PhaseEngine, e.Phase)
	assert.Equal(t, "tick failed", e.Detail)

	entries := logs.FilterMessage("script callback failed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "update", entries[0].ContextMap()["callback"])
	assert.Equal(t, 0, g.L.GetTop())
}

func TestPlayLoadsAssets(t *testing.T) {
	audio := &fakeAudio{}
	store := assets.FS(fstest.MapFS{"hit.pcm": {Data: []byte{1, 2, 3, 4}}})
	g := newGame(t, Options{Store: store, Audio: audio})

	require.NoError(t, g.L.DoString(`
		local fw = require "framework"
		ok = fw.play("hit.pcm")
		missing, why = fw.play("miss.pcm")
	`))

	assert.Equal(t, lua.LTrue, g.L.GetGlobal("ok"))
	assert.Equal(t, lua.LNil, g.L.GetGlobal("missing"))
	assert.Contains(t, g.L.GetGlobal("why").String(), "not_found")
	assert.Equal(t, [][]byte{{1, 2, 3, 4}}, audio.played)
}

func TestPlayWithoutAudioOrFailingDevice(t *testing.T) {
	store := assets.FS(fstest.MapFS{"hit.pcm": {Data: []byte{1}}})

	g := newGame(t, Options{Store: store})
	require.NoError(t, g.L.DoString(`_, why = require("framework").play("hit.pcm")`))
	assert.Equal(t, "audio unavailable", g.L.GetGlobal("why").String())

	g = newGame(t, Options{Store: store, Audio: &fakeAudio{err: fmt.Errorf("device busy")}})
	require.NoError(t, g.L.DoString(`_, why = require("framework").play("hit.pcm")`))
	assert.Equal(t, "device busy", g.L.GetGlobal("why").String())
}

func TestMeasureAndAsset(t *testing.T) {
	store := assets.FS(fstest.MapFS{"sample.lua": {Data: []byte("return 1")}})
	g := newGame(t, Options{Store: store, Fonts: fakeFonts{}})

	require.NoError(t, g.L.DoString(`
		local fw = require "framework"
		width = fw.measure("abc", 10)
		default = fw.measure("ab")
		src = fw.asset("sample.lua")
	`))

	assert.Equal(t, lua.LNumber(30), g.L.GetGlobal("width"))
	assert.Equal(t, lua.LNumber(24), g.L.GetGlobal("default"))
	assert.Equal(t, "return 1", g.L.GetGlobal("src").String())

	g = newGame(t, Options{})
	require.NoError(t, g.L.DoString(`_, why = require("framework").measure("abc")`))
	assert.Equal(t, "font unavailable", g.L.GetGlobal("why").String())
}

func TestAssetNamesUnderRootAreRelative(t *testing.T) {
	store := assets.FS(fstest.MapFS{"img/x.png": {Data: []byte("png")}})
	g := newGame(t, Options{Store: store, Root: "/sdcard/ejoy2d"})

	require.NoError(t, g.L.DoString(`
		local fw = require "framework"
		abs = fw.asset("/sdcard/ejoy2d/img/x.png")
		rel = fw.asset("img/x.png")
	`))

	assert.Equal(t, "png", g.L.GetGlobal("abs").String())
	assert.Equal(t, "png", g.L.GetGlobal("rel").String())
}

func TestCloseIsIdempotent(t *testing.T) {
	g := New(Options{})
	g.Close()
	assert.NotPanics(t, func() {
		g.Close()
		g.Update(0.01)
		g.DrawFrame()
	})
}
