// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package runner executes programs with bounded time and step budgets.
// The machine itself only ever stops cooperatively; a wall-clock timeout is
// a race between the worker's result channel and a timer, after which the
// shared cancel flag is set and the worker is still waited on.
package runner

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
	"strconv"
	"time"

	"github.com/ezrec/bftape/machine"
)

// DefaultTimeout is the wall-clock budget when none is configured.
const DefaultTimeout = 2000 * time.Millisecond

var _runner_defines = map[string]string{
	"TIMEOUT_MS": fmt.Sprintf("%v", int(DefaultTimeout/time.Millisecond)),
}

// Defines for the runner.
func Defines() iter.Seq2[string, string] {
	return maps.All(_runner_defines)
}

// Runner configures bounded execution. The zero TapeSize and limits are
// filled from defaults; In and Out default to the process console.
type Runner struct {
	Verbose  bool
	TapeSize int
	Timeout  time.Duration // Wall-clock budget; 0 disables the timer.
	MaxSteps int           // Step ceiling; 0 means unbounded.

	In  io.Reader
	Out io.Writer
}

// NewRunner creates a runner with the default tape and timeout.
func NewRunner() *Runner {
	return &Runner{
		TapeSize: machine.DefaultTapeSize,
		Timeout:  DefaultTimeout,
	}
}

// FromEnv overrides limits from BF_TIMEOUT_MS and BF_MAX_STEPS.
// Unset or malformed values leave the current configuration alone.
func (r *Runner) FromEnv() {
	if ms, err := strconv.Atoi(os.Getenv("BF_TIMEOUT_MS")); err == nil && ms > 0 {
		r.Timeout = time.Duration(ms) * time.Millisecond
	}
	if steps, err := strconv.Atoi(os.Getenv("BF_MAX_STEPS")); err == nil && steps > 0 {
		r.MaxSteps = steps
	}
}

func (r *Runner) newMachine(code string) *machine.Machine {
	m := machine.NewWithTape(code, r.TapeSize)
	m.Verbose = r.Verbose
	m.Input = r.In
	m.Output = r.Out
	return m
}

// Run executes code under the step ceiling only.
func (r *Runner) Run(code string) error {
	return r.newMachine(code).RunWithControl(machine.NewStepControl(r.MaxSteps))
}

// RunWithTimeout executes code on a worker goroutine and races its result
// against the wall-clock budget. On timeout the cancel flag is set and the
// worker's acknowledgement is awaited; the machine observes the flag at the
// next step boundary, so worst-case latency is one instruction. When both
// ceiling and timeout are active, whichever triggers first determines the
// reported error.
func (r *Runner) RunWithTimeout(code string) (err error) {
	if r.Timeout <= 0 {
		return r.Run(code)
	}

	ctrl := machine.NewStepControl(r.MaxSteps)
	m := r.newMachine(code)

	done := make(chan error, 1)
	go func() {
		done <- m.RunWithControl(ctrl)
	}()

	select {
	case err = <-done:
	case <-time.After(r.Timeout):
		if r.Verbose {
			log.Printf("runner: timeout after %v, canceling", r.Timeout)
		}
		ctrl.Cancel()
		err = <-done
	}
	return
}

// RunDebug executes in trace mode and writes the step table to w.
func (r *Runner) RunDebug(code string, w io.Writer) (err error) {
	rows, err := r.newMachine(code).RunDebugWithControl(machine.NewStepControl(r.MaxSteps))
	if rerr := machine.Render(w, rows); rerr != nil && err == nil {
		err = rerr
	}
	return
}
