package sim

import "fmt"

// An ExitEventKind tags the reason the hardware model returned control to the
// phase controller. The set of kinds is fixed before the run starts.
type ExitEventKind int

const (
	// ExitEventExit is the generic exit raised by the simulated workload, for
	// example at kernel boot completion or when the init system finishes
	// starting services.
	ExitEventExit ExitEventKind = iota

	// ExitEventWorkBegin marks the beginning of the region of interest.
	ExitEventWorkBegin

	// ExitEventWorkEnd marks the end of the region of interest.
	ExitEventWorkEnd

	// ExitEventMaxInsts is raised when any one hardware thread retires the
	// number of instructions registered through ScheduleMaxInsts.
	ExitEventMaxInsts
)

func (k ExitEventKind) String() string {
	switch k {
	case ExitEventExit:
		return "Exit"
	case ExitEventWorkBegin:
		return "WorkBegin"
	case ExitEventWorkEnd:
		return "WorkEnd"
	case ExitEventMaxInsts:
		return "MaxInsts"
	default:
		return fmt.Sprintf("ExitEventKind(%d)", int(k))
	}
}
