package control

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/phasesim/hooking"
	"github.com/sarchlab/phasesim/processor"
	"github.com/sarchlab/phasesim/sim"
)

type stepLogHook struct {
	entries []string
}

func (h *stepLogHook) Func(ctx hooking.HookCtx) {
	record := ctx.Item.(StepRecord)
	h.entries = append(h.entries,
		ctx.Pos.Name+":"+record.Kind.String())
}

// fullRunFixture wires a controller over a replay model the way the
// simulation builder does, with a real switchable processor and budget.
type fullRunFixture struct {
	model      *sim.ReplayModel
	proc       *processor.SwitchableProcessor
	notices    *NoticeBuffer
	controller *Controller
}

func newFullRunFixture(
	isa sim.ISA,
	script []sim.ExitEventKind,
) *fullRunFixture {
	f := &fullRunFixture{
		model:   sim.NewReplayModel(isa, 4, script),
		proc:    processor.MakeBuilder().WithISA(isa).WithCores(4).Build(),
		notices: NewNoticeBuffer(),
	}

	registry := NewRegistry()
	registry.Register(sim.ExitEventExit, NewExitSequence(isa, f.notices))
	registry.Register(sim.ExitEventWorkBegin, NewWorkBeginSequence(WorkBeginEnv{
		Notices:   f.notices,
		Stats:     f.model,
		Processor: f.proc,
		Budget:    sim.NewInstructionBudget(f.model),
		Threads:   f.model.ThreadCount(),
	}))
	registry.Register(sim.ExitEventWorkEnd, NewWorkEndSequence(f.notices))

	f.controller = NewController(f.model, registry)

	return f
}

var _ = Describe("Controller", func() {
	It("should drive a full run through boot, ROI, and work end", func() {
		f := newFullRunFixture(sim.ISAX86, []sim.ExitEventKind{
			sim.ExitEventExit,
			sim.ExitEventExit,
			sim.ExitEventWorkBegin,
			sim.ExitEventWorkEnd,
		})

		reason, err := f.controller.Run()
		Expect(err).ToNot(HaveOccurred())
		Expect(reason.Kind).To(Equal(sim.ExitEventWorkEnd))
		Expect(reason.Cursor).To(Equal(0))
		Expect(reason.Fired).To(Equal(4))

		Expect(f.proc.CurrentState()).To(Equal(processor.StateTiming))
		Expect(f.model.Stopped()).To(BeTrue())
		Expect(f.notices.Snapshot()).To(Equal([]string{
			"Exiting the simulation for kernel boot",
			"Exiting the simulation for systemd complete",
			"Work begin. Switching to detailed cores",
			"Running for 10000000 instructions on any thread",
			"Work end",
		}))
	})

	It("should reset stats exactly once, before the switch and the budget",
		func() {
			f := newFullRunFixture(sim.ISAX86, []sim.ExitEventKind{
				sim.ExitEventWorkBegin,
				sim.ExitEventWorkEnd,
			})

			_, err := f.controller.Run()
			Expect(err).ToNot(HaveOccurred())

			Expect(f.model.Calls()).To(Equal([]string{
				"RunUntilExit->WorkBegin",
				"ResetStats",
				"ScheduleMaxInsts(10000000)",
				"RunUntilExit->WorkEnd",
				"StopModel",
			}))
		})

	It("should reach work end on a no-ROI architecture", func() {
		f := newFullRunFixture(sim.ISAARM, []sim.ExitEventKind{
			sim.ExitEventWorkEnd,
		})

		reason, err := f.controller.Run()
		Expect(err).ToNot(HaveOccurred())
		Expect(reason.Kind).To(Equal(sim.ExitEventWorkEnd))
		Expect(f.proc.CurrentState()).To(Equal(processor.StateFunctional))
		Expect(f.notices.Snapshot()).To(Equal([]string{"Work end"}))
	})

	It("should halt on the first exit on a no-ROI architecture", func() {
		f := newFullRunFixture(sim.ISAARM, []sim.ExitEventKind{
			sim.ExitEventExit,
		})

		reason, err := f.controller.Run()
		Expect(err).ToNot(HaveOccurred())
		Expect(reason.Kind).To(Equal(sim.ExitEventExit))
		Expect(f.notices.Snapshot()).To(BeEmpty())
	})

	It("should fail on an unregistered event and stop reacting", func() {
		notices := NewNoticeBuffer()
		registry := NewRegistry()
		registry.Register(sim.ExitEventExit,
			NewExitSequence(sim.ISAX86, notices))

		model := sim.NewReplayModel(sim.ISAX86, 4, []sim.ExitEventKind{
			sim.ExitEventExit,
			sim.ExitEventWorkBegin,
			sim.ExitEventExit,
		})
		controller := NewController(model, registry)

		_, err := controller.Run()
		Expect(err).To(MatchError(ErrUnknownEvent))

		// Only the first exit reacted; nothing fired after the failure.
		Expect(notices.Snapshot()).To(Equal([]string{
			"Exiting the simulation for kernel boot",
		}))
		Expect(model.Stopped()).To(BeFalse())
	})

	It("should fail when an event fires beyond its handler's steps", func() {
		f := newFullRunFixture(sim.ISAX86, []sim.ExitEventKind{
			sim.ExitEventWorkBegin,
			sim.ExitEventWorkBegin,
		})

		_, err := f.controller.Run()
		Expect(err).To(MatchError(ErrSequenceExhausted))
		Expect(f.proc.CurrentState()).To(Equal(processor.StateTiming))
	})

	It("should treat an effect failure as fatal", func() {
		recorder := &callRecorder{}
		switchErr := errors.New("switch refused")
		budget := &recordingBudget{r: recorder}

		notices := NewNoticeBuffer()
		registry := NewRegistry()
		registry.Register(sim.ExitEventWorkBegin,
			NewWorkBeginSequence(WorkBeginEnv{
				Notices:   notices,
				Stats:     recordingStats{recorder},
				Processor: &recordingSwitcher{r: recorder, err: switchErr},
				Budget:    budget,
				Threads:   4,
			}))

		model := sim.NewReplayModel(sim.ISAX86, 4, []sim.ExitEventKind{
			sim.ExitEventWorkBegin,
		})
		controller := NewController(model, registry)

		_, err := controller.Run()
		Expect(err).To(MatchError(switchErr))

		// Effects after the failing one never run.
		Expect(budget.calls).To(Equal(0))
	})

	It("should invoke hooks around every handler step", func() {
		f := newFullRunFixture(sim.ISAX86, []sim.ExitEventKind{
			sim.ExitEventExit,
			sim.ExitEventWorkEnd,
		})

		hook := &stepLogHook{}
		f.controller.AcceptHook(hook)

		_, err := f.controller.Run()
		Expect(err).ToNot(HaveOccurred())

		Expect(hook.entries).To(Equal([]string{
			"BeforeStep:Exit",
			"AfterStep:Exit",
			"BeforeStep:WorkEnd",
			"AfterStep:WorkEnd",
		}))
	})
})
