package stream

import (
	"bytes"
	"sync"
)

// Buffer is a byte queue usable as both an output sink and an input
// provider. A mutex guards it so a UI goroutine can inspect captured
// output while the engine goroutine is still producing it.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write queues bytes, e.g. to preload program input.
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// Sink returns an output hook that appends emitted bytes.
func (b *Buffer) Sink() func(p []byte) {
	return func(p []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.buf.Write(p)
	}
}

// Source returns an input hook that dequeues one byte per call and reports
// end of input once drained.
func (b *Buffer) Source() func() (value byte, ok bool) {
	return func() (value byte, ok bool) {
		b.mu.Lock()
		defer b.mu.Unlock()
		value, err := b.buf.ReadByte()
		if err != nil {
			return 0, false
		}
		return value, true
	}
}

// Bytes returns a copy of the queued bytes.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

// String returns the queued bytes as a string.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Len returns the number of queued bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

// Reset discards all queued bytes.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}
