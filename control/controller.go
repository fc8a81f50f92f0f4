package control

import (
	"fmt"

	"github.com/sarchlab/phasesim/hooking"
	"github.com/sarchlab/phasesim/sim"
)

// HookPosBeforeStep fires right before a handler step's effects are applied.
var HookPosBeforeStep = &hooking.HookPos{Name: "BeforeStep"}

// HookPosAfterStep fires after a handler step's effects have all been applied.
var HookPosAfterStep = &hooking.HookPos{Name: "AfterStep"}

// A StepRecord describes one handler step as it is applied. It is the Item
// carried by the controller's hooks.
type StepRecord struct {
	Kind    sim.ExitEventKind
	Cursor  int
	Effects int
	Halt    bool
}

// A TerminationReason reports how a run ended normally.
type TerminationReason struct {
	// Kind is the event whose handler decided to halt.
	Kind sim.ExitEventKind

	// Cursor is the position of the halting step within its sequence.
	Cursor int

	// Fired is the total number of handler steps applied during the run.
	Fired int
}

// A Controller drives the hardware model through its phases. It resumes the
// model until an exit event fires, advances the matching handler sequence one
// step, applies the step's effects in order, and stops the model once a step
// decides to halt.
type Controller struct {
	*hooking.HookableBase

	model    sim.Model
	registry *Registry
}

// NewController creates a Controller over the given model and handler
// registry.
func NewController(model sim.Model, registry *Registry) *Controller {
	return &Controller{
		HookableBase: hooking.NewHookableBase(),
		model:        model,
		registry:     registry,
	}
}

// Run drives the model until a handler halts the run or the control protocol
// diverges. Divergence is fatal: an unregistered event, an exhausted handler
// sequence, or an effect whose precondition does not hold all end the run
// with an error naming the event kind and the handler cursor, and no further
// effects are applied.
func (c *Controller) Run() (TerminationReason, error) {
	fired := 0

	for {
		kind, err := c.model.RunUntilExit()
		if err != nil {
			return TerminationReason{}, fmt.Errorf("hardware model: %w", err)
		}

		seq, err := c.registry.Lookup(kind)
		if err != nil {
			return TerminationReason{}, err
		}

		cursor := seq.Cursor()

		step, err := seq.Advance()
		if err != nil {
			return TerminationReason{}, fmt.Errorf("%s handler: %w", kind, err)
		}

		record := StepRecord{
			Kind:    kind,
			Cursor:  cursor,
			Effects: len(step.Effects),
			Halt:    step.Halt,
		}
		hookCtx := hooking.HookCtx{
			Domain: c,
			Pos:    HookPosBeforeStep,
			Item:   record,
		}
		c.InvokeHook(hookCtx)

		if err := applyEffects(step.Effects); err != nil {
			return TerminationReason{}, fmt.Errorf(
				"%s handler, step %d: %w", kind, cursor, err)
		}

		hookCtx.Pos = HookPosAfterStep
		c.InvokeHook(hookCtx)

		fired++

		if step.Halt {
			c.model.StopModel()
			return TerminationReason{Kind: kind, Cursor: cursor, Fired: fired}, nil
		}
	}
}

func applyEffects(effects []Effect) error {
	for _, e := range effects {
		if err := e.Apply(); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
	}

	return nil
}
