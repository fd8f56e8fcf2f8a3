package game

import "sync"

// ErrorHandler receives errors a session reports without returning them.
type ErrorHandler func(error)

// ErrorBus fans session errors out to subscribers and a buffered channel,
// and remembers the last one for hosts that poll.
type ErrorBus struct {
	mu       sync.Mutex
	handlers []ErrorHandler
	ch       chan error
	last     error
	count    int
	closed   bool
}

// ErrorBacklog is how many errors Errors() buffers before dropping.
const ErrorBacklog = 16

func NewErrorBus() *ErrorBus {
	return &ErrorBus{ch: make(chan error, ErrorBacklog)}
}

func (eb *ErrorBus) Subscribe(fn ErrorHandler) {
	eb.mu.Lock()
	eb.handlers = append(eb.handlers, fn)
	eb.mu.Unlock()
}

// Emit publishes err. Nil errors are ignored and a full channel drops the
// error rather than blocking the frame loop.
func (eb *ErrorBus) Emit(err error) {
	if err == nil {
		return
	}
	eb.mu.Lock()
	if eb.closed {
		eb.mu.Unlock()
		return
	}
	eb.last = err
	eb.count++
	handlers := eb.handlers
	select {
	case eb.ch <- err:
	default:
	}
	eb.mu.Unlock()

	for _, fn := range handlers {
		fn(err)
	}
}

// Errors is closed when the bus closes.
func (eb *ErrorBus) Errors() <-chan error { return eb.ch }

func (eb *ErrorBus) Last() error {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	return eb.last
}

func (eb *ErrorBus) Count() int {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	return eb.count
}

func (eb *ErrorBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.ch)
}
