// Package font loads the packaged TrueType font and measures text for
// script layout.
package font

import (
	stderrors "errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"gamehost/internal/assets"
	"gamehost/internal/errors"
	"gamehost/internal/logging"
)

// Service measures text in a single font. Faces are cached per size.
type Service struct {
	name string
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Load reads and parses the font asset name.
func Load(log *zap.Logger, store assets.Store, name string) (*Service, error) {
	log = logging.OrNop(log)
	buf, err := assets.Load(log, store, name)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(buf)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseAsset, errors.KindInvalidInput, err, "parse font "+name)
	}
	log.Info("font loaded", zap.String("font", name), zap.Int("bytes", len(buf)))
	return &Service{name: name, font: f, faces: make(map[float64]font.Face)}, nil
}

// Name is the asset the font was loaded from.
func (s *Service) Name() string { return s.name }

// Measure returns the advance width of text at size pixels, rounded.
func (s *Service) Measure(text string, size float64) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidInput(errors.PhaseAsset, fmt.Sprintf("font size %v", size))
	}
	face, err := s.face(size)
	if err != nil {
		return 0, err
	}
	return font.MeasureString(face, text).Round(), nil
}

func (s *Service) face(size float64) (font.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if face, ok := s.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %v: %w", size, err)
	}
	s.faces[size] = face
	return face, nil
}

// Close releases the cached faces.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for size, face := range s.faces {
		if err := face.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(s.faces, size)
	}
	return stderrors.Join(errs...)
}
