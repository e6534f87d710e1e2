package stream

import (
	"sync"
)

// Window is one tape snapshot from an observer hook.
type Window struct {
	Pointer int    // Data pointer at snapshot time.
	Base    int    // Tape index of Cells[0].
	Cells   []byte // Copy of the observed window.
}

// Observer retains the most recent tape window for another goroutine to
// poll, e.g. a UI redraw loop.
type Observer struct {
	mu   sync.Mutex
	last Window
	seen bool
}

// Hook returns the observer hook to register with a machine.
func (ob *Observer) Hook() func(ptr int, base int, cells []byte) {
	return func(ptr int, base int, cells []byte) {
		ob.mu.Lock()
		defer ob.mu.Unlock()
		ob.last = Window{
			Pointer: ptr,
			Base:    base,
			Cells:   append([]byte(nil), cells...),
		}
		ob.seen = true
	}
}

// Last returns the most recent snapshot, if any instruction has executed.
func (ob *Observer) Last() (win Window, ok bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	return ob.last, ob.seen
}
