package sim

// A StatsResetter clears all accumulated performance statistics back to zero.
type StatsResetter interface {
	ResetStats()
}

// A MaxInstsScheduler installs an instruction-count stop condition on the
// hardware model. Once any one thread retires perThread instructions, the
// model raises ExitEventMaxInsts.
type MaxInstsScheduler interface {
	ScheduleMaxInsts(perThread uint64)
}

// A Model is the boundary to the hardware model under simulation. The model
// and the phase controller execute strictly alternately: RunUntilExit advances
// simulated time until an exit event fires, and no model state changes while
// the controller reacts to the event.
type Model interface {
	StatsResetter
	MaxInstsScheduler

	// RunUntilExit resumes the simulated execution and returns when the model
	// raises an exit event.
	RunUntilExit() (ExitEventKind, error)

	// StopModel stops the simulated execution. It is called once, after a
	// handler decides to halt the run.
	StopModel()

	// ISA returns the instruction-set architecture the model is configured
	// with.
	ISA() ISA

	// ThreadCount returns the number of hardware threads the model simulates.
	ThreadCount() int
}
