package sim

import (
	"errors"
	"fmt"
)

// ErrBudgetRearmed is returned when an instruction budget is armed a second
// time before the previously installed ceiling has fired.
var ErrBudgetRearmed = errors.New("instruction budget already armed")

// An InstructionBudget bounds the detailed-timing phase of a run by installing
// a hard stop after a fixed number of retired instructions on any one hardware
// thread. It is write-once per activation.
type InstructionBudget struct {
	scheduler MaxInstsScheduler

	armed     bool
	threads   int
	perThread uint64
}

// NewInstructionBudget creates an InstructionBudget that installs its ceiling
// through the given scheduler.
func NewInstructionBudget(s MaxInstsScheduler) *InstructionBudget {
	return &InstructionBudget{scheduler: s}
}

// Arm installs the stop condition. The ceiling is delivered back to the
// controller as an ExitEventMaxInsts exit event, not as an out-of-band
// interrupt.
func (b *InstructionBudget) Arm(threads int, perThread uint64) error {
	if threads <= 0 {
		panic("instruction budget needs at least one thread")
	}

	if b.armed {
		return fmt.Errorf("%w with %d instructions per thread",
			ErrBudgetRearmed, b.perThread)
	}

	b.armed = true
	b.threads = threads
	b.perThread = perThread
	b.scheduler.ScheduleMaxInsts(perThread)

	return nil
}

// Armed reports whether a ceiling is currently installed.
func (b *InstructionBudget) Armed() bool {
	return b.armed
}

// PerThread returns the installed per-thread ceiling, or zero if the budget
// has not been armed.
func (b *InstructionBudget) PerThread() uint64 {
	return b.perThread
}
