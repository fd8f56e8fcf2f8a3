package assets

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gamehost/internal/errors"
)

func testStore() fstest.MapFS {
	return fstest.MapFS{
		"ex04.lua":          {Data: []byte("print('ex04')\n")},
		"ejoy2d/init.lua":   {Data: []byte("return {}\n")},
		"empty.txt":         {Data: []byte{}},
		"sample.1.ppm":      {Data: bytes.Repeat([]byte{0xAB, 0x00, 0xFF}, 4096)},
		"assets/nested.lua": {Data: []byte("return 1")},
		"assets/dir/.keep":  {Data: []byte("k")},
	}
}

func TestLoadPresent(t *testing.T) {
	fsys := testStore()
	store := FS(fsys)

	for _, name := range []string{"ex04.lua", "ejoy2d/init.lua", "sample.1.ppm"} {
		t.Run(name, func(t *testing.T) {
			buf, err := Load(nil, store, name)
			require.NoError(t, err)

			a, err := store.Open(name)
			require.NoError(t, err)
			defer a.Close()

			assert.Equal(t, int(a.Len()), len(buf))
			assert.Equal(t, fsys[name].Data, []byte(buf))
		})
	}
}

func TestLoadEmptyIsPresent(t *testing.T) {
	buf, err := Load(nil, FS(testStore()), "empty.txt")
	require.NoError(t, err)
	assert.NotNil(t, buf)
	assert.Len(t, buf, 0)
}

func TestLoadMissing(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := &countingStore{}

	buf, err := Load(zap.New(core), store, "missing.lua")

	require.Error(t, err)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, 1, store.opens)

	entries := logs.FilterMessage("asset not found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "missing.lua", entries[0].ContextMap()["asset"])
	assert.True(t, entries[0].Caller.Defined)
}

func TestLoadDirectoryIsMissing(t *testing.T) {
	_, err := Load(nil, FS(testStore()), "assets/dir")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadShortRead(t *testing.T) {
	store := &shortStore{data: []byte("abcd"), size: 10}

	buf, err := Load(nil, store, "short.bin")

	require.Error(t, err)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhaseAsset, Kind: errors.KindShortRead}))
	assert.Contains(t, err.Error(), "read 4 of 10 bytes")
	assert.True(t, store.isClosed)
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"ex04.lua":          "ex04.lua",
		"/ex04.lua":         "ex04.lua",
		"./ejoy2d/init.lua": "ejoy2d/init.lua",
		"a//b/../c.lua":     "a/c.lua",
		"":                  ".",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanName(in), in)
	}
}

func TestRelative(t *testing.T) {
	assert.Equal(t, "ex04.lua", Relative("/sdcard/ejoy2d", "/sdcard/ejoy2d/ex04.lua"))
	assert.Equal(t, "ejoy2d/init.lua", Relative("/sdcard/ejoy2d/", "/sdcard/ejoy2d/ejoy2d/init.lua"))
	assert.Equal(t, "other/x.lua", Relative("/sdcard/ejoy2d", "/other/x.lua"))
	assert.Equal(t, "x.lua", Relative("", "x.lua"))
}

func TestExtract(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "ex04.lua"), []byte("stale"), 0o644))

	n, err := Extract(nil, FS(testStore()), root, []string{"ex04.lua", "ejoy2d/init.lua", "empty.txt", "nope.lua"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 2, n)

	got, err := os.ReadFile(filepath.Join(root, "ex04.lua"))
	require.NoError(t, err)
	assert.Equal(t, "print('ex04')\n", string(got))

	got, err = os.ReadFile(filepath.Join(root, "ejoy2d", "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "return {}\n", string(got))

	_, err = os.Stat(filepath.Join(root, "empty.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractNothing(t *testing.T) {
	n, err := Extract(nil, FS(testStore()), t.TempDir(), nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

type countingStore struct {
	opens int
}

func (s *countingStore) Open(name string) (Asset, error) {
	s.opens++
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

type shortStore struct {
	data     []byte
	size     int64
	isClosed bool
}

func (s *shortStore) Open(string) (Asset, error) {
	return &shortAsset{Reader: bytes.NewReader(s.data), store: s}, nil
}

type shortAsset struct {
	io.Reader
	store *shortStore
}

func (a *shortAsset) Len() int64 { return a.store.size }

func (a *shortAsset) Close() error {
	a.store.isClosed = true
	return nil
}
