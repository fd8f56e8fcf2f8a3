package game

import (
	"gamehost/internal/touch"
)

// TouchFunc receives pointer events already mapped to touch phases.
type TouchFunc func(x, y float32, phase touch.Phase)

// mouse maps a single-button mouse to touch phases: press begins, motion
// while pressed moves, release ends. A release is always reported; the
// normalizer decides what a stray End means.
type mouse struct {
	down bool
	emit TouchFunc
}

func (m *mouse) press(x, y float32) {
	m.down = true
	m.emit(x, y, touch.Begin)
}

func (m *mouse) release(x, y float32) {
	m.down = false
	m.emit(x, y, touch.End)
}

func (m *mouse) motion(x, y float32) {
	if m.down {
		m.emit(x, y, touch.Move)
	}
}

// pointers keeps the first pointer sequence of a multi-touch screen and drops
// every other pointer until that sequence ends. An End with no sequence in
// progress passes through to the normalizer.
type pointers struct {
	active bool
	seq    int64
}

func (p *pointers) accept(seq int64, phase touch.Phase) bool {
	switch {
	case !p.active:
		switch phase {
		case touch.Begin:
			p.active, p.seq = true, seq
			return true
		case touch.End:
			return true
		default:
			return false
		}
	case seq != p.seq:
		return false
	case phase == touch.End:
		p.active = false
		return true
	default:
		return true
	}
}
