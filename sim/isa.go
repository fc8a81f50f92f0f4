package sim

import "fmt"

// ISA identifies the instruction-set architecture the hardware model is
// configured with. It is fixed at model construction.
type ISA int

const (
	// ISAX86 runs full-system workloads with region-of-interest markers.
	ISAX86 ISA = iota

	// ISAARM runs syscall-emulation workloads without region-of-interest
	// markers.
	ISAARM

	// ISARISCV runs full-system workloads with region-of-interest markers.
	ISARISCV
)

func (i ISA) String() string {
	switch i {
	case ISAX86:
		return "X86"
	case ISAARM:
		return "ARM"
	case ISARISCV:
		return "RISCV"
	default:
		return fmt.Sprintf("ISA(%d)", int(i))
	}
}

// HasROIMarkers reports whether workloads for the ISA annotate the region of
// interest with work-begin and work-end markers. When they do not, the first
// generic exit ends the run.
func (i ISA) HasROIMarkers() bool {
	return i != ISAARM
}

// ParseISA converts a string flag value into an ISA.
func ParseISA(s string) (ISA, error) {
	switch s {
	case "x86", "X86":
		return ISAX86, nil
	case "arm", "ARM":
		return ISAARM, nil
	case "riscv", "RISCV":
		return ISARISCV, nil
	default:
		return 0, fmt.Errorf("unknown ISA %q", s)
	}
}
