package simulation

import (
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/phasesim/control"
	"github.com/sarchlab/phasesim/monitoring"
	"github.com/sarchlab/phasesim/phaserecording"
	"github.com/sarchlab/phasesim/processor"
	"github.com/sarchlab/phasesim/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	isa      sim.ISA
	cores    int
	maxInsts uint64

	model  sim.Model
	script []sim.ExitEventKind

	logger *logrus.Logger

	monitorOn   bool
	monitorPort int

	recordingOn    bool
	outputFileName string
}

// MakeBuilder creates a builder with default parameters: four X86 cores, the
// default instruction ceiling, recording on, monitoring off.
func MakeBuilder() Builder {
	return Builder{
		isa:         sim.ISAX86,
		cores:       4,
		recordingOn: true,
	}
}

// WithISA sets the instruction-set architecture of the simulated machine.
func (b Builder) WithISA(isa sim.ISA) Builder {
	b.isa = isa
	return b
}

// WithCores sets the number of simulated cores.
func (b Builder) WithCores(n int) Builder {
	b.cores = n
	return b
}

// WithMaxInsts sets the per-thread instruction ceiling installed when the
// region of interest begins.
func (b Builder) WithMaxInsts(n uint64) Builder {
	b.maxInsts = n
	return b
}

// WithModel sets the hardware model to control. Without one, the simulation
// falls back to a replay model playing the default event script for the ISA.
func (b Builder) WithModel(m sim.Model) Builder {
	b.model = m
	return b
}

// WithEventScript sets the exit events the fallback replay model raises.
func (b Builder) WithEventScript(script []sim.ExitEventKind) Builder {
	b.script = script
	return b
}

// WithLogger sets the logger notices are forwarded to.
func (b Builder) WithLogger(logger *logrus.Logger) Builder {
	b.logger = logger
	return b
}

// WithMonitoring enables the monitoring server.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutRecording disables the run recorder.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the output file name for the run recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.cores <= 0 {
		panic("a simulation needs at least one core")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// DefaultEventScript returns the exit events a well-behaved workload raises
// for the given ISA.
func DefaultEventScript(isa sim.ISA) []sim.ExitEventKind {
	if !isa.HasROIMarkers() {
		return []sim.ExitEventKind{sim.ExitEventExit}
	}

	return []sim.ExitEventKind{
		sim.ExitEventExit,
		sim.ExitEventExit,
		sim.ExitEventWorkBegin,
		sim.ExitEventWorkEnd,
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:      xid.New().String(),
		notices: control.NewNoticeBuffer(),
	}

	s.proc = processor.MakeBuilder().
		WithISA(b.isa).
		WithCores(b.cores).
		Build()

	s.model = b.model
	if s.model == nil {
		script := b.script
		if script == nil {
			script = DefaultEventScript(b.isa)
		}

		s.model = sim.NewReplayModel(b.isa, b.cores, script)
	}

	logger := b.logger
	if logger == nil {
		logger = logrus.New()
	}

	var sink control.NoticeSink = control.NoticeSinks{
		control.LogrusNoticeSink{Logger: logger},
		s.notices,
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "phasesim_run_" + s.id
		}

		s.recorder = phaserecording.NewRecorder(outputPath)
		sink = phaserecording.NewRecordingNoticeSink(s.recorder, sink)
	}

	s.registry = b.buildRegistry(s, sink)
	s.controller = control.NewController(s.model, s.registry)

	if b.recordingOn {
		s.controller.AcceptHook(phaserecording.NewPhaseTraceRecorder(s.recorder))
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterRegistry(s.registry)
		s.monitor.RegisterProcessor(s.proc)
		s.monitor.RegisterNotices(s.notices)
		s.monitor.StartServer()
	}

	return s
}

func (b Builder) buildRegistry(
	s *Simulation,
	sink control.NoticeSink,
) *control.Registry {
	registry := control.NewRegistry()

	registry.Register(sim.ExitEventExit,
		control.NewExitSequence(b.isa, sink))
	registry.Register(sim.ExitEventWorkBegin,
		control.NewWorkBeginSequence(control.WorkBeginEnv{
			Notices:   sink,
			Stats:     s.model,
			Processor: s.proc,
			Budget:    sim.NewInstructionBudget(s.model),
			Threads:   s.model.ThreadCount(),
			MaxInsts:  b.maxInsts,
		}))
	registry.Register(sim.ExitEventWorkEnd,
		control.NewWorkEndSequence(sink))
	registry.Register(sim.ExitEventMaxInsts,
		control.NewMaxInstsSequence(sink))

	return registry
}
