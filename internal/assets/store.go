// Package assets opens named resources packaged with the application and
// returns their full contents as owned byte buffers.
//
// The store is provided by the host (the APK asset manager on Android, a
// directory on desktop) and is only borrowed: nothing in this package closes
// or retains it.
package assets

import (
	"io"
	"io/fs"
	"path"
	"strings"
)

// Asset is an open packaged resource.
type Asset interface {
	io.Reader
	io.Closer
	// Len is the resource size in bytes as reported by the store.
	Len() int64
}

// Store opens packaged resources by name. Opening a missing name returns an
// error matching fs.ErrNotExist.
type Store interface {
	Open(name string) (Asset, error)
}

// FS adapts an fs.FS (os.DirFS, embed.FS, fstest.MapFS) into a Store.
func FS(fsys fs.FS) Store {
	return fsStore{fsys: fsys}
}

type fsStore struct {
	fsys fs.FS
}

func (s fsStore) Open(name string) (Asset, error) {
	name = CleanName(name)
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return fsAsset{File: f, size: info.Size()}, nil
}

type fsAsset struct {
	fs.File
	size int64
}

func (a fsAsset) Len() int64 { return a.size }

// CleanName turns an asset reference into the slash separated, rootless form
// stores index by. Asset managers reject leading slashes and "./" prefixes.
func CleanName(name string) string {
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "."
	}
	return path.Clean(name)
}

// Relative maps an absolute script path under root to an asset name:
// "/sdcard/ejoy2d/ex04.lua" under "/sdcard/ejoy2d" is "ex04.lua". Paths
// outside root are returned cleaned but otherwise untouched.
func Relative(root, p string) string {
	root = strings.TrimSuffix(root, "/")
	if root != "" && strings.HasPrefix(p, root+"/") {
		p = p[len(root)+1:]
	}
	return CleanName(p)
}
