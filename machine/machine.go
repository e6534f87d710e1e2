package machine

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
)

// DefaultTapeSize is the tape length used by New.
const DefaultTapeSize = 30000

var _machine_defines = map[string]string{
	"TAPE_SIZE": fmt.Sprintf("%v", DefaultTapeSize),
}

// Defines for the machine.
func Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// Machine executes one program against one tape. The tape, pointer, and
// dispatch loop are owned exclusively by the machine; callers redirect I/O
// through the hook setters instead of touching the loop.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Input  io.Reader // Console input for ','; defaults to os.Stdin.
	Output io.Writer // Console output for '.'; defaults to os.Stdout.

	code    string
	tape    []byte
	pointer int

	sink     func(p []byte)
	provider func() (value byte, ok bool)
	observer func(ptr int, base int, cells []byte)
	window   int
}

// New creates a machine with the default 30,000 cell tape.
func New(code string) *Machine {
	return NewWithTape(code, DefaultTapeSize)
}

// NewWithTape creates a machine with a custom tape length.
func NewWithTape(code string, cells int) *Machine {
	return &Machine{
		code: code,
		tape: make([]byte, cells),
	}
}

// Pointer returns the current data pointer.
func (m *Machine) Pointer() int {
	return m.pointer
}

// Cell returns the tape cell at index.
func (m *Machine) Cell(index int) byte {
	return m.tape[index]
}

// SetOutputSink redirects '.' output away from the console. The sink is
// invoked synchronously on the executing goroutine and may not fail.
func (m *Machine) SetOutputSink(sink func(p []byte)) {
	m.sink = sink
}

// SetInputProvider redirects ',' input away from the console. Returning
// ok == false signals end of input, which sets the cell to zero.
func (m *Machine) SetInputProvider(provider func() (value byte, ok bool)) {
	m.provider = provider
}

// SetTapeObserver registers a hook invoked after every instruction with the
// pointer and a fixed-size window of tape memory centered on it.
func (m *Machine) SetTapeObserver(window int, observer func(ptr int, base int, cells []byte)) {
	if window < 1 {
		window = 1
	}
	m.window = window
	m.observer = observer
}

// Run validates and executes the program to completion.
func (m *Machine) Run() error {
	_, err := m.execute(nil, false)
	return err
}

// RunWithControl executes under a cooperative cancellation flag and step
// ceiling. Both checks happen before each instruction's side effect.
func (m *Machine) RunWithControl(ctrl *StepControl) error {
	_, err := m.execute(ctrl, false)
	return err
}

// RunDebug executes in trace mode: '.' emits no real output and ','
// simulates immediate end of input, but pointer and tape advance exactly as
// a real run would. Each executed instruction contributes one Step.
func (m *Machine) RunDebug() ([]Step, error) {
	return m.execute(nil, true)
}

// RunDebugWithControl is RunDebug under a StepControl.
func (m *Machine) RunDebugWithControl(ctrl *StepControl) ([]Step, error) {
	return m.execute(ctrl, true)
}

// execute is the dispatch core shared by all run modes.
func (m *Machine) execute(ctrl *StepControl, debug bool) (rows []Step, err error) {
	prog, err := Parse(m.code)
	if err != nil {
		return
	}

	if m.Verbose {
		log.Printf("machine: run %d instructions on %d cells", prog.Len(), len(m.tape))
	}

	var steps int
	for ip := 0; ip < prog.Len(); ip++ {
		if ctrl != nil {
			if ctrl.Canceled() {
				err = ErrCanceled
				return
			}
			if ctrl.MaxSteps > 0 && steps >= ctrl.MaxSteps {
				err = ErrStepLimit{Limit: ctrl.MaxSteps}
				return
			}
		}

		instr := prog.At(ip)
		fetch := ip
		pointer := m.pointer
		cell := m.tape[m.pointer]
		var action string

		switch instr {
		case '>':
			if m.pointer >= len(m.tape)-1 {
				err = ErrPointerBounds{Ip: ip, Pointer: m.pointer, Op: '>'}
				return
			}
			m.pointer++
			if debug {
				action = f("Moved pointer head to index %d", m.pointer)
			}
		case '<':
			if m.pointer == 0 {
				err = ErrPointerBounds{Ip: ip, Pointer: m.pointer, Op: '<'}
				return
			}
			m.pointer--
			if debug {
				action = f("Moved pointer head to index %d", m.pointer)
			}
		case '+':
			after := cell + 1
			m.tape[m.pointer] = after
			if debug {
				action = f("Increment cell[%d] from %d to %d", pointer, cell, after)
			}
		case '-':
			after := cell - 1
			m.tape[m.pointer] = after
			if debug {
				action = f("Decrement cell[%d] from %d to %d", pointer, cell, after)
			}
		case '.':
			if debug {
				action = f("Output byte '%c' (suppressed in debug)", rune(cell))
			} else {
				err = m.emit(ip, cell)
				if err != nil {
					return
				}
			}
		case ',':
			if debug {
				m.tape[m.pointer] = 0
				action = f("Read byte from stdin -> simulated EOF (set cell to 0)")
			} else {
				err = m.read(ip)
				if err != nil {
					return
				}
			}
		case '[':
			if cell == 0 {
				target := prog.Jump(ip)
				if debug {
					action = f("Cell is 0; jump forward to matching ']' at IP %d", target)
				}
				ip = target
			} else if debug {
				action = f("Enter loop (cell != 0)")
			}
		case ']':
			if cell != 0 {
				target := prog.Jump(ip)
				if debug {
					action = f("Cell != 0; jump back to matching '[' at IP %d", target)
				}
				ip = target
			} else if debug {
				action = f("Exit loop (cell is 0)")
			}
		default:
			err = ErrInvalidCharacter{Ch: instr, Ip: ip}
			return
		}

		if debug {
			rows = append(rows, Step{
				N:       steps,
				Ip:      fetch,
				Pointer: pointer,
				Cell:    cell,
				Instr:   instr,
				Action:  action,
			})
		}
		steps++

		if m.observer != nil {
			m.observe()
		}
	}

	return
}

// emit sends one output byte to the sink hook, or to the console.
func (m *Machine) emit(ip int, value byte) (err error) {
	if m.sink != nil {
		m.sink([]byte{value})
		return
	}

	out := m.Output
	if out == nil {
		out = os.Stdout
	}
	_, err = out.Write([]byte{value})
	if err != nil {
		err = ErrIo{Ip: ip, Err: err}
	}
	return
}

// read fills the current cell from the provider hook, or the console.
// End of input sets the cell to zero; that is a normal outcome.
func (m *Machine) read(ip int) (err error) {
	if m.provider != nil {
		value, ok := m.provider()
		if !ok {
			value = 0
		}
		m.tape[m.pointer] = value
		return
	}

	in := m.Input
	if in == nil {
		in = os.Stdin
	}
	var one [1]byte
	n, rerr := in.Read(one[:])
	switch {
	case n > 0:
		m.tape[m.pointer] = one[0]
	case rerr == nil || errors.Is(rerr, io.EOF):
		m.tape[m.pointer] = 0
	default:
		err = ErrIo{Ip: ip, Err: rerr}
	}
	return
}

// observe sends the observer a window of tape memory centered on the
// pointer, with the base clamped to the tape bounds.
func (m *Machine) observe() {
	window := m.window
	if window > len(m.tape) {
		window = len(m.tape)
	}

	base := m.pointer - window/2
	if base > len(m.tape)-window {
		base = len(m.tape) - window
	}
	if base < 0 {
		base = 0
	}

	m.observer(m.pointer, base, m.tape[base:base+window])
}
