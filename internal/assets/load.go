package assets

import (
	"io"

	"go.uber.org/zap"

	"gamehost/internal/errors"
	"gamehost/internal/logging"
)

// ErrNotFound matches, with errors.Is, the error Load returns for a resource
// the store does not have.
var ErrNotFound = &errors.Error{Phase: errors.PhaseAsset, Kind: errors.KindNotFound}

// Buffer is the full contents of a packaged resource. It is owned by the
// caller; the bridge keeps no reference after Load returns.
type Buffer []byte

// Load reads the named resource in full.
//
// A missing resource returns ErrNotFound and a nil Buffer without allocating.
// A present, empty resource returns an empty non-nil Buffer. A read that ends
// before the store-reported length is an error of kind short_read.
func Load(log *zap.Logger, store Store, name string) (Buffer, error) {
	a, err := store.Open(name)
	if err != nil {
		logging.OrNop(log).WithOptions(zap.AddCaller()).Error("asset not found",
			zap.String("asset", name), zap.Error(err))
		nf := errors.NotFound(errors.PhaseAsset, "asset", name)
		nf.Cause = err
		return nil, nf
	}
	defer a.Close()

	size := a.Len()
	if size < 0 {
		return nil, errors.InvalidInput(errors.PhaseAsset, "negative asset length for "+name)
	}

	buf := make(Buffer, size)
	n, err := io.ReadFull(a, buf)
	if err != nil {
		return nil, errors.ShortRead(name, size, n, err)
	}
	return buf, nil
}
