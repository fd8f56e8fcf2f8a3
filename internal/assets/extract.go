package assets

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"gamehost/internal/logging"
)

// Extract copies the named packaged assets under root, keeping their relative
// layout, so scripts that go through the plain filesystem can see them.
// Directories are created as needed and existing files are overwritten.
// Empty assets are skipped. A failing asset is logged and does not stop the
// remaining ones; the failures come back joined.
func Extract(log *zap.Logger, store Store, root string, names []string) (int, error) {
	log = logging.OrNop(log)
	var (
		written int
		errs    []error
	)
	for _, name := range names {
		buf, err := Load(log, store, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(buf) == 0 {
			continue
		}

		dst := filepath.Join(root, filepath.FromSlash(CleanName(name)))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			log.Error("create asset folder failed", zap.String("path", filepath.Dir(dst)), zap.Error(err))
			errs = append(errs, fmt.Errorf("extract %s: %w", name, err))
			continue
		}
		if err := os.WriteFile(dst, buf, 0o644); err != nil {
			log.Error("copy asset failed", zap.String("asset", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("extract %s: %w", name, err))
			continue
		}
		log.Debug("asset extracted", zap.String("asset", name), zap.String("path", dst), zap.Int("bytes", len(buf)))
		written++
	}
	return written, stderrors.Join(errs...)
}
