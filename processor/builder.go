package processor

import "github.com/sarchlab/phasesim/sim"

// Builder can be used to build a SwitchableProcessor.
type Builder struct {
	isa   sim.ISA
	cores int
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		isa:   sim.ISAX86,
		cores: 1,
	}
}

// WithISA sets the instruction-set architecture of the cores.
func (b Builder) WithISA(isa sim.ISA) Builder {
	b.isa = isa
	return b
}

// WithCores sets the number of cores.
func (b Builder) WithCores(n int) Builder {
	b.cores = n
	return b
}

// Build builds the processor, starting on functional cores.
func (b Builder) Build() *SwitchableProcessor {
	if b.cores <= 0 {
		panic("a processor needs at least one core")
	}

	return &SwitchableProcessor{
		isa:   b.isa,
		cores: b.cores,
		state: StateFunctional,
	}
}
