package control

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/phasesim/sim"
)

type callRecorder struct {
	calls []string
}

func (r *callRecorder) record(entry string) {
	r.calls = append(r.calls, entry)
}

type recordingSink struct {
	r *callRecorder
}

func (s recordingSink) Notice(text string) {
	s.r.record("notice:" + text)
}

type recordingStats struct {
	r *callRecorder
}

func (s recordingStats) ResetStats() {
	s.r.record("reset-stats")
}

type recordingSwitcher struct {
	r     *callRecorder
	err   error
	calls int
}

func (s *recordingSwitcher) SwitchToTiming() error {
	s.calls++
	if s.err != nil {
		return s.err
	}

	s.r.record("switch-to-timing")

	return nil
}

type recordingBudget struct {
	r     *callRecorder
	calls int
}

func (b *recordingBudget) Arm(threads int, perThread uint64) error {
	b.calls++
	b.r.record("arm-budget")

	return nil
}

func advanceAndApply(seq *Sequence) (Step, error) {
	step, err := seq.Advance()
	if err != nil {
		return Step{}, err
	}

	return step, applyEffects(step.Effects)
}

var _ = Describe("Exit sequence", func() {
	var recorder *callRecorder

	BeforeEach(func() {
		recorder = &callRecorder{}
	})

	It("should keep running through boot and init completion", func() {
		seq := NewExitSequence(sim.ISAX86, recordingSink{recorder})

		step, err := advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())
		Expect(step.Halt).To(BeFalse())
		Expect(recorder.calls).To(Equal([]string{
			"notice:Exiting the simulation for kernel boot",
		}))

		step, err = advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())
		Expect(step.Halt).To(BeFalse())
		Expect(recorder.calls).To(Equal([]string{
			"notice:Exiting the simulation for kernel boot",
			"notice:Exiting the simulation for systemd complete",
		}))
	})

	It("should fail on a third firing", func() {
		seq := NewExitSequence(sim.ISAX86, recordingSink{recorder})

		_, err := advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())
		_, err = advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())

		_, err = seq.Advance()
		Expect(err).To(MatchError(ErrSequenceExhausted))
	})

	It("should halt immediately without notices for a no-ROI ISA", func() {
		seq := NewExitSequence(sim.ISAARM, recordingSink{recorder})

		step, err := advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())
		Expect(step.Halt).To(BeTrue())
		Expect(recorder.calls).To(BeEmpty())
	})
})

var _ = Describe("Work-begin sequence", func() {
	var (
		recorder *callRecorder
		switcher *recordingSwitcher
		budget   *recordingBudget
		seq      *Sequence
	)

	BeforeEach(func() {
		recorder = &callRecorder{}
		switcher = &recordingSwitcher{r: recorder}
		budget = &recordingBudget{r: recorder}
		seq = NewWorkBeginSequence(WorkBeginEnv{
			Notices:   recordingSink{recorder},
			Stats:     recordingStats{recorder},
			Processor: switcher,
			Budget:    budget,
			Threads:   4,
		})
	})

	It("should reset stats before switching, and switch before arming", func() {
		step, err := advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())
		Expect(step.Halt).To(BeFalse())

		Expect(recorder.calls).To(Equal([]string{
			"notice:Work begin. Switching to detailed cores",
			"reset-stats",
			"switch-to-timing",
			"notice:Running for 10000000 instructions on any thread",
			"arm-budget",
		}))
	})

	It("should fire at most once", func() {
		_, err := advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())

		_, err = seq.Advance()
		Expect(err).To(MatchError(ErrSequenceExhausted))
		Expect(switcher.calls).To(Equal(1))
		Expect(budget.calls).To(Equal(1))
	})
})

var _ = Describe("Work-end sequence", func() {
	It("should halt on its first firing", func() {
		recorder := &callRecorder{}
		seq := NewWorkEndSequence(recordingSink{recorder})

		step, err := advanceAndApply(seq)
		Expect(err).ToNot(HaveOccurred())
		Expect(step.Halt).To(BeTrue())
		Expect(recorder.calls).To(Equal([]string{"notice:Work end"}))
	})
})
