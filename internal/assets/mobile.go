package assets

import (
	"fmt"
	"io"
	"io/fs"

	"golang.org/x/mobile/asset"
)

// Mobile returns the store backed by golang.org/x/mobile/asset: the APK
// asset manager on Android, the assets directory next to the executable on
// desktop.
func Mobile() Store {
	return mobileStore{}
}

type mobileStore struct{}

func (mobileStore) Open(name string) (Asset, error) {
	name = CleanName(name)
	f, err := asset.Open(name)
	if err != nil {
		// The asset manager only reports "no such file".
		return nil, fmt.Errorf("%w: %v", fs.ErrNotExist, err)
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("asset %s: length: %w", name, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("asset %s: rewind: %w", name, err)
	}
	return mobileAsset{File: f, size: size}, nil
}

type mobileAsset struct {
	asset.File
	size int64
}

func (a mobileAsset) Len() int64 { return a.size }
