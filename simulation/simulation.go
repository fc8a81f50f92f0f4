// Package simulation assembles a complete run: the hardware model, the
// switchable processor, the default handler set, and the optional recording
// and monitoring services around them.
package simulation

import (
	"github.com/sarchlab/phasesim/control"
	"github.com/sarchlab/phasesim/monitoring"
	"github.com/sarchlab/phasesim/phaserecording"
	"github.com/sarchlab/phasesim/processor"
	"github.com/sarchlab/phasesim/sim"
)

// A Simulation owns everything that lives for exactly one run.
type Simulation struct {
	id string

	model      sim.Model
	proc       *processor.SwitchableProcessor
	registry   *control.Registry
	controller *control.Controller
	notices    *control.NoticeBuffer

	recorder phaserecording.Recorder
	monitor  *monitoring.Monitor
}

// ID returns the simulation ID.
func (s *Simulation) ID() string {
	return s.id
}

// Run drives the model until a handler halts the run or the control protocol
// diverges.
func (s *Simulation) Run() (control.TerminationReason, error) {
	return s.controller.Run()
}

// GetModel returns the hardware model under control.
func (s *Simulation) GetModel() sim.Model {
	return s.model
}

// GetProcessor returns the switchable processor.
func (s *Simulation) GetProcessor() *processor.SwitchableProcessor {
	return s.proc
}

// GetRegistry returns the handler registry.
func (s *Simulation) GetRegistry() *control.Registry {
	return s.registry
}

// GetController returns the phase controller.
func (s *Simulation) GetController() *control.Controller {
	return s.controller
}

// GetRecorder returns the run recorder, or nil when recording is disabled.
func (s *Simulation) GetRecorder() phaserecording.Recorder {
	return s.recorder
}

// GetMonitor returns the monitor, or nil when monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// Notices returns the buffer holding the notices emitted so far.
func (s *Simulation) Notices() *control.NoticeBuffer {
	return s.notices
}

// Terminate releases the services owned by the simulation.
func (s *Simulation) Terminate() {
	if s.recorder != nil {
		s.recorder.Close()
	}

	if s.monitor != nil {
		s.monitor.StopServer()
	}
}
