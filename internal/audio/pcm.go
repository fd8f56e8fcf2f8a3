// Package audio plays the PCM buffers scripts ask for through
// framework.play. Buffers are raw interleaved stereo float32 LE at
// SampleRate, the same format the mixer context is opened with.
package audio

import (
	stderrors "errors"
	"fmt"
	"io"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	// FrameSize is the byte size of one stereo float32 frame.
	FrameSize = ChannelCount * 4

	// MaxVoices bounds simultaneous players to avoid clipping.
	MaxVoices = 8

	DefaultVolume = 0.58
)

var (
	ErrNotReady = stderrors.New("audio device not ready")
	ErrBusy     = stderrors.New("too many sounds playing")
	ErrEmpty    = stderrors.New("empty sound")
)

// checkPCM rejects buffers that are not whole frames.
func checkPCM(pcm []byte) error {
	if len(pcm) == 0 {
		return ErrEmpty
	}
	if len(pcm)%FrameSize != 0 {
		return fmt.Errorf("pcm length %d is not a multiple of %d", len(pcm), FrameSize)
	}
	return nil
}

// Duration of a checked buffer in seconds.
func Duration(pcm []byte) float64 {
	return float64(len(pcm)/FrameSize) / SampleRate
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
