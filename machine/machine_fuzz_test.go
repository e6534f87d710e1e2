package machine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzMachine(f *testing.F) {
	f.Add("+++.")
	f.Add("[")
	f.Add("]")
	f.Add("+[]")
	f.Add("++[>+++<-]>.")
	f.Add("+a+")
	f.Add(",,..")
	f.Add("<")

	f.Fuzz(func(t *testing.T, code string) {
		assert := assert.New(t)

		m := NewWithTape(code, 256)
		m.SetOutputSink(func(p []byte) {})
		m.SetInputProvider(func() (value byte, ok bool) { return })

		err := m.RunWithControl(NewStepControl(10000))
		if err != nil {
			// Every failure is one of the declared error kinds.
			var bounds ErrPointerBounds
			var invalid ErrInvalidCharacter
			var bracket ErrUnmatchedBracket
			var limit ErrStepLimit
			ok := errors.As(err, &bounds) ||
				errors.As(err, &invalid) ||
				errors.As(err, &bracket) ||
				errors.As(err, &limit)
			assert.True(ok, "unexpected error kind: %v", err)
		}

		// Parsing is deterministic regardless of run outcome.
		first, perr1 := Parse(code)
		second, perr2 := Parse(code)
		assert.Equal(perr1, perr2)
		if perr1 == nil {
			for i := 0; i < first.Len(); i++ {
				assert.Equal(first.Jump(i), second.Jump(i))
			}
		}
	})
}
