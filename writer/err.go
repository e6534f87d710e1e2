package writer

import (
	"github.com/ezrec/bftape/translate"
)

var f = translate.From

// ErrInvalidCharacter indicates a character outside the instruction set.
type ErrInvalidCharacter struct {
	Ch  rune
	Pos int
}

func (err ErrInvalidCharacter) Error() string {
	return f("invalid character '%c' at offset %d", err.Ch, err.Pos)
}

func (err ErrInvalidCharacter) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidCharacter)
	return
}

// ErrUnmatchedBracket indicates unbalanced loop brackets.
type ErrUnmatchedBracket struct {
	Pos  int
	Open bool
}

func (err ErrUnmatchedBracket) Error() string {
	side := ']'
	if err.Open {
		side = '['
	}
	return f("unmatched bracket '%c' at offset %d", side, err.Pos)
}

func (err ErrUnmatchedBracket) Is(target error) (ok bool) {
	_, ok = target.(ErrUnmatchedBracket)
	return
}
