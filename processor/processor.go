// Package processor provides the switchable processor abstraction that backs
// the two fidelity levels of a run: fast functional cores used to reach the
// region of interest, and detailed timing cores used inside it.
package processor

import (
	"errors"
	"fmt"

	"github.com/sarchlab/phasesim/sim"
)

// State identifies which representation of the cores is active.
type State int

const (
	// StateFunctional is the fast approximate representation.
	StateFunctional State = iota

	// StateTiming is the cycle-accurate detailed representation.
	StateTiming
)

func (s State) String() string {
	switch s {
	case StateFunctional:
		return "Functional"
	case StateTiming:
		return "Timing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInvalidSwitch is returned when SwitchToTiming is called while the timing
// cores are already active. A second switch means a handler fired out of
// order.
var ErrInvalidSwitch = errors.New("processor already switched to timing cores")

// A SwitchableProcessor represents all cores of the simulated machine. It
// starts on functional cores and switches to timing cores exactly once per
// run. The ISA and core count are fixed at construction.
type SwitchableProcessor struct {
	isa   sim.ISA
	cores int
	state State
}

// SwitchToTiming replaces the functional cores with timing cores. The switch
// is one-directional; calling it again returns ErrInvalidSwitch.
func (p *SwitchableProcessor) SwitchToTiming() error {
	if p.state == StateTiming {
		return ErrInvalidSwitch
	}

	p.state = StateTiming

	return nil
}

// CurrentState returns which core representation is active.
func (p *SwitchableProcessor) CurrentState() State {
	return p.state
}

// CurrentISA returns the instruction-set architecture of the cores.
func (p *SwitchableProcessor) CurrentISA() sim.ISA {
	return p.isa
}

// Cores returns the number of cores the processor represents.
func (p *SwitchableProcessor) Cores() int {
	return p.cores
}
