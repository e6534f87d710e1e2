package machine

import (
	"fmt"
	"io"
)

// Step is one row of a debug trace. Pointer and Cell are the values before
// the instruction executed; Ip is the index the instruction was fetched
// from, including for taken jumps.
type Step struct {
	N       int    // Step number, counted from 0.
	Ip      int    // Instruction index.
	Pointer int    // Data pointer before the step.
	Cell    byte   // Cell value before the step.
	Instr   rune   // The instruction character.
	Action  string // Human-readable description of the effect.
}

// Render writes rows as the debug trace table.
func Render(w io.Writer, rows []Step) (err error) {
	_, err = fmt.Fprintln(w, "STEP | IP  | PTR | CELL | INSTR | ACTION")
	if err != nil {
		return
	}
	_, err = fmt.Fprintln(w, "-----+-----+-----+------+-------+------------------------------------------------")
	if err != nil {
		return
	}

	for _, row := range rows {
		_, err = fmt.Fprintf(w, "%-4d | %-3d | %-3d | %-4d |  %c    | %s\n",
			row.N, row.Ip, row.Pointer, row.Cell, row.Instr, row.Action)
		if err != nil {
			return
		}
	}

	return
}
