package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/bftape/machine"
)

func TestBufferSinkAndSource(t *testing.T) {
	assert := assert.New(t)

	b := &Buffer{}
	sink := b.Sink()
	sink([]byte("ab"))
	sink([]byte{0xff})
	assert.Equal([]byte{'a', 'b', 0xff}, b.Bytes())
	assert.Equal(3, b.Len())

	source := b.Source()
	for _, want := range []byte{'a', 'b', 0xff} {
		value, ok := source()
		assert.True(ok)
		assert.Equal(want, value)
	}
	_, ok := source()
	assert.False(ok)
}

func TestBufferAsMachineInput(t *testing.T) {
	assert := assert.New(t)

	in := &Buffer{}
	in.Write([]byte("Z"))
	out := &Buffer{}

	m := machine.NewWithTape(",.,.", 2)
	m.SetInputProvider(in.Source())
	m.SetOutputSink(out.Sink())
	assert.NoError(m.Run())

	// Drained input reads as EOF and stores zero.
	assert.Equal([]byte{'Z', 0}, out.Bytes())
}

func TestFeedBlocksUntilProvided(t *testing.T) {
	require := require.New(t)

	feed := NewFeed()
	out := &Buffer{}

	m := machine.NewWithTape(",.", 2)
	m.SetInputProvider(feed.Source())
	m.SetOutputSink(out.Sink())

	done := make(chan error, 1)
	go func() {
		done <- m.Run()
	}()

	// The engine is blocked in the provider until a byte arrives.
	select {
	case err := <-done:
		require.Failf("engine did not block", "returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	feed.Provide('Q')
	require.NoError(<-done)
	require.Equal([]byte{'Q'}, out.Bytes())
}

func TestFeedCloseIsEof(t *testing.T) {
	assert := assert.New(t)

	feed := NewFeed()
	feed.Close()
	feed.Close() // idempotent

	source := feed.Source()
	value, ok := source()
	assert.False(ok)
	assert.Equal(byte(0), value)
}

func TestObserverLast(t *testing.T) {
	assert := assert.New(t)

	ob := &Observer{}
	_, ok := ob.Last()
	assert.False(ok)

	m := machine.NewWithTape("+>+", 8)
	m.SetTapeObserver(4, ob.Hook())
	assert.NoError(m.Run())

	win, ok := ob.Last()
	assert.True(ok)
	assert.Equal(1, win.Pointer)
	assert.Len(win.Cells, 4)
	assert.Equal(byte(1), win.Cells[win.Pointer-win.Base])
}

func TestEscape(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		input []byte
		want  string
	}){
		{"plain", []byte("Hello!"), "Hello!"},
		{"whitespace", []byte("a\tb\nc"), "a\tb\nc"},
		{"control", []byte{0x00, 0x1b}, `\x00\x1B`},
		{"high", []byte{0x7f, 0xfe}, `\x7F\xFE`},
	}

	for _, entry := range table {
		assert.Equal(entry.want, Escape(entry.input), entry.name)
	}
}
