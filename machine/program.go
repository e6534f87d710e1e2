// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

// Instructions is the complete instruction set.
const Instructions = "><+-.,[]"

// Program is validated source text plus its bracket jump table.
// Immutable once built by Parse.
type Program struct {
	code []rune
	jump []int // Matching bracket index, or -1 at non-bracket positions.
}

// Parse scans text and builds the bracket jump table.
//
// The scan is purely structural: '[' pushes its index, ']' pops and records
// a bidirectional entry. An unmatched ']' fails immediately at its own
// index; unmatched '[' is reported after the scan at the innermost unclosed
// position. Characters outside the instruction set are NOT rejected here -
// they fail later during dispatch, so a successful Parse does not imply a
// runnable program.
func Parse(text string) (prog *Program, err error) {
	code := []rune(text)
	jump := make([]int, len(code))
	for i := range jump {
		jump[i] = -1
	}

	var stack []int
	for i, c := range code {
		switch c {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) == 0 {
				err = ErrUnmatchedBracket{Ip: i}
				return
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jump[open] = i
			jump[i] = open
		}
	}

	if len(stack) > 0 {
		// Top of the stack is the innermost unclosed bracket.
		err = ErrUnmatchedBracket{Ip: stack[len(stack)-1], Open: true}
		return
	}

	prog = &Program{code: code, jump: jump}
	return
}

// Len returns the instruction count.
func (prog *Program) Len() int {
	return len(prog.code)
}

// At returns the instruction at ip.
func (prog *Program) At(ip int) rune {
	return prog.code[ip]
}

// Jump returns the matching bracket index for ip, or -1 if ip is not a
// bracket position.
func (prog *Program) Jump(ip int) int {
	return prog.jump[ip]
}

// String returns the program source text.
func (prog *Program) String() string {
	return string(prog.code)
}
