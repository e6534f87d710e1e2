package machine

import (
	"sync/atomic"
)

// StepControl pairs an optional step ceiling with a shared cancellation
// flag. The flag is the only state touched by two parties - the dispatch
// loop reads it once per step, exactly one external controller sets it -
// so access is atomic and lock-free.
type StepControl struct {
	MaxSteps int // Maximum instruction steps; 0 means unbounded.

	canceled atomic.Bool
}

// NewStepControl creates a control with the given step ceiling.
func NewStepControl(maxSteps int) *StepControl {
	return &StepControl{MaxSteps: maxSteps}
}

// Cancel requests a cooperative stop. The running machine observes the
// request at the next step boundary, before that step's side effect.
func (ctrl *StepControl) Cancel() {
	ctrl.canceled.Store(true)
}

// Canceled reports whether a stop has been requested.
func (ctrl *StepControl) Canceled() bool {
	return ctrl.canceled.Load()
}
