package control

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/phasesim/sim"
)

var _ = Describe("Sequence", func() {
	It("should advance one step per firing", func() {
		seq := NewSequence(
			Step{},
			Step{Halt: true},
		)

		Expect(seq.Cursor()).To(Equal(0))
		Expect(seq.Len()).To(Equal(2))

		step, err := seq.Advance()
		Expect(err).ToNot(HaveOccurred())
		Expect(step.Halt).To(BeFalse())
		Expect(seq.Cursor()).To(Equal(1))

		step, err = seq.Advance()
		Expect(err).ToNot(HaveOccurred())
		Expect(step.Halt).To(BeTrue())
		Expect(seq.Cursor()).To(Equal(2))
	})

	It("should fail when advanced past its last step", func() {
		seq := NewSequence(Step{Halt: true})

		_, err := seq.Advance()
		Expect(err).ToNot(HaveOccurred())

		_, err = seq.Advance()
		Expect(err).To(MatchError(ErrSequenceExhausted))
	})

	It("should reject an empty step list", func() {
		Expect(func() { NewSequence() }).To(Panic())
	})
})

var _ = Describe("Registry", func() {
	var registry *Registry

	BeforeEach(func() {
		registry = NewRegistry()
	})

	It("should look up registered sequences", func() {
		seq := NewSequence(Step{Halt: true})
		registry.Register(sim.ExitEventWorkEnd, seq)

		found, err := registry.Lookup(sim.ExitEventWorkEnd)
		Expect(err).ToNot(HaveOccurred())
		Expect(found).To(BeIdenticalTo(seq))
	})

	It("should fail on unregistered kinds", func() {
		_, err := registry.Lookup(sim.ExitEventWorkBegin)
		Expect(err).To(MatchError(ErrUnknownEvent))
	})

	It("should reject duplicated registration", func() {
		registry.Register(sim.ExitEventExit, NewSequence(Step{}))

		Expect(func() {
			registry.Register(sim.ExitEventExit, NewSequence(Step{}))
		}).To(Panic())
	})

	It("should report registered kinds in order", func() {
		registry.Register(sim.ExitEventWorkEnd, NewSequence(Step{Halt: true}))
		registry.Register(sim.ExitEventExit, NewSequence(Step{}))

		Expect(registry.Kinds()).To(Equal([]sim.ExitEventKind{
			sim.ExitEventExit,
			sim.ExitEventWorkEnd,
		}))
	})
})
