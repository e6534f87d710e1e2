// Package script runs Starlark batch scripts against the machine and
// writer, for test harnesses and one-off batch jobs. The builtins mirror the
// library entry points: run, trace, and generate.
package script

import (
	"fmt"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bftape/internal"
	"github.com/ezrec/bftape/machine"
	"github.com/ezrec/bftape/runner"
	"github.com/ezrec/bftape/stream"
	"github.com/ezrec/bftape/writer"
)

// Exec runs a Starlark script with the bftape builtins and the numeric
// defines of every package predeclared. src may be nil to read the file at
// name, or a string/[]byte of source text.
func Exec(name string, src any) (globals starlark.StringDict, err error) {
	thread := starlark.Thread{Name: name}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{
		"run":      starlark.NewBuiltin("run", builtinRun),
		"trace":    starlark.NewBuiltin("trace", builtinTrace),
		"generate": starlark.NewBuiltin("generate", builtinGenerate),
	}
	for key, value := range internal.IterSeq2Concat(
		machine.Defines(),
		writer.Defines(),
		runner.Defines(),
	) {
		number, perr := strconv.ParseInt(value, 0, 64)
		if perr != nil {
			// Ignore non-integer defines.
			continue
		}
		pred[key] = starlark.MakeInt64(number)
	}

	globals, err = starlark.ExecFileOptions(&opts, &thread, name, src, pred)
	return
}

// run(code, input="", tape=TAPE_SIZE, max_steps=0) executes code and
// returns its output as a string.
func builtinRun(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var code string
	var input string
	tape := machine.DefaultTapeSize
	var maxSteps int
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"code", &code, "input?", &input, "tape?", &tape, "max_steps?", &maxSteps)
	if err != nil {
		return nil, err
	}

	in := &stream.Buffer{}
	in.Write([]byte(input))
	out := &stream.Buffer{}

	m := machine.NewWithTape(code, tape)
	m.SetInputProvider(in.Source())
	m.SetOutputSink(out.Sink())

	err = m.RunWithControl(machine.NewStepControl(maxSteps))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	return starlark.String(out.String()), nil
}

// trace(code, tape=TAPE_SIZE) debug-runs code and returns the trace rows
// as a list of strings.
func builtinTrace(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var code string
	tape := machine.DefaultTapeSize
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "code", &code, "tape?", &tape)
	if err != nil {
		return nil, err
	}

	rows, err := machine.NewWithTape(code, tape).RunDebug()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	var values []starlark.Value
	for _, row := range rows {
		text := fmt.Sprintf("%d|%d|%d|%d|%c|%s",
			row.N, row.Ip, row.Pointer, row.Cell, row.Instr, row.Action)
		values = append(values, starlark.String(text))
	}
	return starlark.NewList(values), nil
}

// generate(text, loops=True, max_factor=MAX_LOOP_FACTOR) returns program
// text that prints the bytes of text.
func builtinGenerate(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	loops := true
	factor := writer.DefaultMaxLoopFactor
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"text", &text, "loops?", &loops, "max_factor?", &factor)
	if err != nil {
		return nil, err
	}

	options := writer.Options{
		UseLoops:      loops,
		MaxLoopFactor: uint8(factor),
		Wrapping:      true,
	}
	code, err := writer.WithOptions([]byte(text), options).Generate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}

	return starlark.String(code), nil
}
