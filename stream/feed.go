package stream

import (
	"sync"
)

// Feed delivers input bytes to a machine running on another goroutine.
// The provider blocks the engine until a byte arrives or the feed is
// closed; this is the intended blocking point for interactive callers.
type Feed struct {
	ch   chan byte
	once sync.Once
}

// NewFeed creates an unbuffered feed.
func NewFeed() *Feed {
	return &Feed{ch: make(chan byte)}
}

// Provide hands one byte to a blocked provider call.
func (fd *Feed) Provide(value byte) {
	fd.ch <- value
}

// Close signals end of input. Blocked and future provider calls observe
// EOF. Safe to call more than once.
func (fd *Feed) Close() {
	fd.once.Do(func() { close(fd.ch) })
}

// Source returns the input hook backed by this feed.
func (fd *Feed) Source() func() (value byte, ok bool) {
	return func() (value byte, ok bool) {
		value, ok = <-fd.ch
		return
	}
}
