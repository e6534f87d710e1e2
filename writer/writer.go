// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package writer synthesizes Brainfuck programs that print a given byte
// sequence. Per output byte it compares a wrap-aware delta encoding against
// loop-based builds from zero and keeps the shortest candidate; the result
// is a cheap heuristic, not a guarantee of minimal program length.
package writer

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"strings"
)

// DefaultMaxLoopFactor bounds the outer loop counter search.
const DefaultMaxLoopFactor = 16

var _writer_defines = map[string]string{
	"MAX_LOOP_FACTOR": fmt.Sprintf("%v", DefaultMaxLoopFactor),
}

// Defines for the writer.
func Defines() iter.Seq2[string, string] {
	return maps.All(_writer_defines)
}

// Options configure the generator. Immutable once supplied.
type Options struct {
	UseLoops      bool  // Use loop-based multiplication when building from zero.
	MaxLoopFactor uint8 // Maximum outer loop counter to consider.
	Wrapping      bool  // Assume cells wrap on a ring of 256.
}

// DefaultOptions returns the standard generator configuration.
func DefaultOptions() Options {
	return Options{
		UseLoops:      true,
		MaxLoopFactor: DefaultMaxLoopFactor,
		Wrapping:      true,
	}
}

// Writer generates program text for one input byte sequence.
type Writer struct {
	input   []byte
	options Options
}

// New creates a writer with DefaultOptions.
func New(input []byte) *Writer {
	return WithOptions(input, DefaultOptions())
}

// WithOptions creates a writer with explicit options.
func WithOptions(input []byte, options Options) *Writer {
	return &Writer{input: input, options: options}
}

// Generate produces program text that outputs the input bytes in order.
//
// The generator tracks a simulated cursor holding the last value written to
// the working cell (starting at 0). For each byte it emits the shorter of
// the delta encoding from the cursor and the best build-from-zero encoding,
// then a '.' to print it. Ties favor the delta encoding.
func (w *Writer) Generate() (code string, err error) {
	var out strings.Builder
	cursor := byte(0)

	for _, target := range w.input {
		delta := w.encodeDelta(cursor, target)
		zero := w.encodeFromZero(target)

		best := zero
		if len(delta) <= len(zero) {
			best = delta
		}

		out.WriteString(best)
		out.WriteByte('.')
		cursor = target
	}

	code = out.String()
	err = Check(code)
	return
}

// encodeDelta returns the increment/decrement run from cursor to target.
// With wrapping enabled this is the shortest path on a ring of 256.
func (w *Writer) encodeDelta(cursor byte, target byte) string {
	if cursor == target {
		return ""
	}

	if w.options.Wrapping {
		forward := target - cursor
		backward := cursor - target
		if forward <= backward {
			return strings.Repeat("+", int(forward))
		}
		return strings.Repeat("-", int(backward))
	}

	if target > cursor {
		return strings.Repeat("+", int(target-cursor))
	}
	return strings.Repeat("-", int(cursor-target))
}

// encodeFromZero builds target in the current cell regardless of its prior
// value. The plain form clears the cell and increments up to target; with
// loops enabled it also searches multiplicative factorings:
//
//	[-]           clear current cell
//	>[-]<         ensure the temp cell is zero
//	+{a} [>+{b}<-] multiply a*b into temp
//	> +/-{r}      adjust the remainder target-a*b
//	[<+>-]<       move the result back, return the pointer
func (w *Writer) encodeFromZero(target byte) string {
	best := "[-]" + strings.Repeat("+", int(target))
	if !w.options.UseLoops || target == 0 {
		return best
	}

	for a := 1; a <= int(w.options.MaxLoopFactor); a++ {
		b := int(math.Round(float64(target) / float64(a)))
		if b < 1 {
			b = 1
		}
		if b > 255 {
			b = 255
		}

		var seq strings.Builder
		seq.WriteString("[-]")
		seq.WriteString(">[-]<")
		seq.WriteString(strings.Repeat("+", a))
		seq.WriteString("[>")
		seq.WriteString(strings.Repeat("+", b))
		seq.WriteString("<-]")
		seq.WriteByte('>')

		r := int(target) - a*b
		if r > 0 {
			seq.WriteString(strings.Repeat("+", r))
		} else if r < 0 {
			seq.WriteString(strings.Repeat("-", -r))
		}

		seq.WriteString("[<+>-]<")

		if seq.Len() < len(best) {
			best = seq.String()
		}
	}

	return best
}

// Check validates program text against the instruction set and bracket
// structure. Generated output always passes; the check exists for callers
// that feed writer output through further tooling.
func Check(code string) (err error) {
	var stack []int
	for i, c := range []rune(code) {
		switch c {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) == 0 {
				err = ErrUnmatchedBracket{Pos: i}
				return
			}
			stack = stack[:len(stack)-1]
		case '>', '<', '+', '-', '.', ',':
			// pass
		default:
			err = ErrInvalidCharacter{Ch: c, Pos: i}
			return
		}
	}

	if len(stack) > 0 {
		err = ErrUnmatchedBracket{Pos: stack[len(stack)-1], Open: true}
	}
	return
}
