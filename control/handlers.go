package control

import (
	"fmt"

	"github.com/sarchlab/phasesim/sim"
)

// DefaultMaxInstsPerThread is the instruction ceiling installed on the timing
// cores when the region of interest begins.
const DefaultMaxInstsPerThread uint64 = 10_000_000

// A Switcher moves the processor from functional cores to timing cores.
type Switcher interface {
	SwitchToTiming() error
}

// A BudgetArmer installs a per-thread instruction ceiling on the model.
type BudgetArmer interface {
	Arm(threads int, perThread uint64) error
}

// A WorkBeginEnv carries the capabilities the work-begin reaction needs.
// Handlers receive exactly these capabilities rather than reaching for the
// model or the processor through shared state.
type WorkBeginEnv struct {
	Notices   NoticeSink
	Stats     sim.StatsResetter
	Processor Switcher
	Budget    BudgetArmer
	Threads   int

	// MaxInsts is the per-thread instruction ceiling.
	// DefaultMaxInstsPerThread applies when zero.
	MaxInsts uint64
}

func notice(sink NoticeSink, text string) Effect {
	return Effect{
		Name:  "notice",
		Apply: func() error { sink.Notice(text); return nil },
	}
}

// NewExitSequence builds the reaction to generic exit events. Architectures
// without region-of-interest markers get a single halting step, selected here
// at construction. All others treat the first exit as kernel boot completion
// and the second as init completion, and keep running. A third generic exit
// exhausts the sequence and ends the run with an error.
func NewExitSequence(isa sim.ISA, notices NoticeSink) *Sequence {
	if !isa.HasROIMarkers() {
		return NewSequence(Step{Halt: true})
	}

	return NewSequence(
		Step{Effects: []Effect{
			notice(notices, "Exiting the simulation for kernel boot"),
		}},
		Step{Effects: []Effect{
			notice(notices, "Exiting the simulation for systemd complete"),
		}},
	)
}

// NewWorkBeginSequence builds the single-step reaction to the work-begin
// marker: announce the switch, reset the accumulated statistics, switch to
// the timing cores, and bound the detailed phase with an instruction budget.
// The statistics are cleared strictly before the switch completes and before
// the budget is armed.
func NewWorkBeginSequence(env WorkBeginEnv) *Sequence {
	limit := env.MaxInsts
	if limit == 0 {
		limit = DefaultMaxInstsPerThread
	}

	return NewSequence(Step{
		Effects: []Effect{
			notice(env.Notices, "Work begin. Switching to detailed cores"),
			{
				Name:  "reset-stats",
				Apply: func() error { env.Stats.ResetStats(); return nil },
			},
			{
				Name:  "switch-to-timing",
				Apply: env.Processor.SwitchToTiming,
			},
			notice(env.Notices, fmt.Sprintf(
				"Running for %d instructions on any thread", limit)),
			{
				Name:  "arm-budget",
				Apply: func() error { return env.Budget.Arm(env.Threads, limit) },
			},
		},
	})
}

// NewWorkEndSequence builds the single-step reaction to the work-end marker.
func NewWorkEndSequence(notices NoticeSink) *Sequence {
	return NewSequence(Step{
		Effects: []Effect{notice(notices, "Work end")},
		Halt:    true,
	})
}

// NewMaxInstsSequence builds the single-step reaction to the instruction
// ceiling firing: the detailed phase is over, so the run halts.
func NewMaxInstsSequence(notices NoticeSink) *Sequence {
	return NewSequence(Step{
		Effects: []Effect{
			notice(notices, "Instruction budget reached"),
		},
		Halt: true,
	})
}
