// Package touch turns host pointer callbacks into the single-finger touch
// stream the engine consumes.
package touch

import (
	"fmt"

	"go.uber.org/zap"

	"gamehost/internal/logging"
)

// Phase is the pointer phase reported by the host. Values match the
// host-side constants (TOUCH_BEGIN 0, TOUCH_END 1, TOUCH_MOVE 2).
type Phase int

const (
	Begin Phase = 0
	End   Phase = 1
	Move  Phase = 2
)

func (p Phase) String() string {
	switch p {
	case Begin:
		return "BEGIN"
	case End:
		return "END"
	case Move:
		return "MOVE"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Valid reports whether p is one of the three known phases.
func (p Phase) Valid() bool {
	return p == Begin || p == End || p == Move
}

// ID is the synthetic touch identifier. The host class supports a single
// pointer, so every forwarded event carries it.
const ID = 0

// Sink receives normalized touches, usually the engine instance.
type Sink interface {
	Touch(id int, x, y float32, phase Phase)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(id int, x, y float32, phase Phase)

func (f SinkFunc) Touch(id int, x, y float32, phase Phase) { f(id, x, y, phase) }

// state is either idle or touching. Each state decides its own successor,
// so there is no flag to get out of sync with the forwarded stream.
type state interface {
	next(p Phase) (state, bool)
	active() bool
}

type idle struct{}

func (idle) next(p Phase) (state, bool) {
	switch p {
	case Begin:
		return touching{}, true
	case End:
		// Redundant End is passed through; the engine tolerates it.
		return idle{}, true
	}
	return idle{}, false
}

func (idle) active() bool { return false }

type touching struct{}

func (touching) next(p Phase) (state, bool) {
	switch p {
	case Begin, Move:
		return touching{}, true
	case End:
		return idle{}, true
	}
	return touching{}, false
}

func (touching) active() bool { return true }

// Normalizer is the touch state machine. The zero value is idle and tracks
// state without forwarding anything; use New to attach a sink.
type Normalizer struct {
	st   state
	sink Sink
	log  *zap.Logger
}

// New returns an idle normalizer forwarding to sink.
func New(sink Sink, log *zap.Logger) *Normalizer {
	return &Normalizer{st: idle{}, sink: sink, log: logging.OrNop(log)}
}

// Handle feeds one host event and reports whether it reached the sink.
// Move outside an active touch and unknown phases are discarded.
func (n *Normalizer) Handle(x, y float32, p Phase) bool {
	cur := n.current()
	if !p.Valid() {
		n.logger().Debug("unknown touch phase dropped", zap.Int("phase", int(p)))
		return false
	}

	next, forward := cur.next(p)
	n.st = next
	if !forward {
		return false
	}
	if p == End && !cur.active() {
		n.logger().Debug("touch end without begin")
	}
	if n.sink == nil {
		return false
	}
	n.sink.Touch(ID, x, y, p)
	return true
}

// Active reports whether a touch is in progress.
func (n *Normalizer) Active() bool {
	return n.current().active()
}

func (n *Normalizer) current() state {
	if n.st == nil {
		return idle{}
	}
	return n.st
}

func (n *Normalizer) logger() *zap.Logger {
	return logging.OrNop(n.log)
}
