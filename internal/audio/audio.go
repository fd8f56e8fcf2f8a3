//go:build !audio_stub

package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"gamehost/internal/logging"
)

// Mixer plays PCM buffers on the system audio device.
type Mixer struct {
	ctx   *oto.Context
	ready chan struct{}
	log   *zap.Logger

	mu     sync.Mutex
	volume float64
	active atomic.Int32
	wg     sync.WaitGroup
}

// New opens the audio device. The device becomes usable once the context
// signals ready; Play fails with ErrNotReady before that.
func New(log *zap.Logger) (*Mixer, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Mixer{ctx: ctx, ready: ready, log: logging.OrNop(log), volume: DefaultVolume}, nil
}

// Play starts pcm asynchronously.
func (m *Mixer) Play(pcm []byte) error {
	if err := checkPCM(pcm); err != nil {
		return err
	}
	select {
	case <-m.ready:
	default:
		return ErrNotReady
	}
	if m.active.Add(1) > MaxVoices {
		m.active.Add(-1)
		return ErrBusy
	}

	m.mu.Lock()
	volume := m.volume
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.active.Add(-1)
		player := m.ctx.NewPlayer(&soundReader{data: pcm})
		player.SetVolume(volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			m.log.Warn("audio player close failed", zap.Error(err))
		}
	}()
	return nil
}

// SetVolume sets the volume for sounds started after the call.
func (m *Mixer) SetVolume(vol float64) {
	m.mu.Lock()
	m.volume = clamp(vol, 0, 1)
	m.mu.Unlock()
}

// Suspend pauses the device while the app is in the background.
func (m *Mixer) Suspend() error { return m.ctx.Suspend() }

// Resume undoes Suspend.
func (m *Mixer) Resume() error { return m.ctx.Resume() }

// Close waits for playing sounds and suspends the device. oto keeps a
// single context per process, so the device itself stays open.
func (m *Mixer) Close() error {
	m.wg.Wait()
	return m.ctx.Suspend()
}
