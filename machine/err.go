package machine

import (
	"errors"

	"github.com/ezrec/bftape/translate"
)

var f = translate.From

var (
	// Run control outcomes. User-triggerable, not program bugs.
	ErrCanceled = errors.New(f("execution canceled"))
)

// ErrPointerBounds indicates a pointer move that would leave the tape.
type ErrPointerBounds struct {
	Ip      int  // Instruction index of the offending move.
	Pointer int  // Pointer value before the move.
	Op      rune // The move operator, '<' or '>'.
}

func (err ErrPointerBounds) Error() string {
	return f("pointer out of bounds (ptr=%d, op=%c) at instruction %d", err.Pointer, err.Op, err.Ip)
}

func (err ErrPointerBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrPointerBounds)
	return
}

// ErrInvalidCharacter indicates a dispatched character outside the
// instruction set. Validation does not reject these; dispatch does.
type ErrInvalidCharacter struct {
	Ch rune
	Ip int
}

func (err ErrInvalidCharacter) Error() string {
	return f("invalid character '%c' at instruction %d", err.Ch, err.Ip)
}

func (err ErrInvalidCharacter) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidCharacter)
	return
}

// ErrUnmatchedBracket indicates bracket validation failed.
type ErrUnmatchedBracket struct {
	Ip   int  // Position of the unmatched bracket.
	Open bool // True for an unmatched '[', false for an unmatched ']'.
}

func (err ErrUnmatchedBracket) Error() string {
	side := ']'
	if err.Open {
		side = '['
	}
	return f("unmatched bracket '%c' at instruction %d", side, err.Ip)
}

func (err ErrUnmatchedBracket) Is(target error) (ok bool) {
	_, ok = target.(ErrUnmatchedBracket)
	return
}

// ErrStepLimit indicates the cooperative step ceiling was reached.
type ErrStepLimit struct {
	Limit int
}

func (err ErrStepLimit) Error() string {
	return f("step limit exceeded (%d)", err.Limit)
}

func (err ErrStepLimit) Is(target error) (ok bool) {
	_, ok = target.(ErrStepLimit)
	return
}

// ErrIo wraps a console read or write failure with its instruction index.
type ErrIo struct {
	Ip  int
	Err error
}

func (err ErrIo) Error() string {
	return f("i/o error at instruction %d: %v", err.Ip, err.Err)
}

func (err ErrIo) Unwrap() error {
	return err.Err
}
