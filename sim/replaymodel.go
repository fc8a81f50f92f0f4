package sim

import (
	"errors"
	"fmt"
)

// ErrScriptExhausted is returned by a ReplayModel when the controller resumes
// it after the scripted exit events have all fired.
var ErrScriptExhausted = errors.New("replay script exhausted")

// A ReplayModel plays back a fixed script of exit events instead of simulating
// hardware. It stands in for a full model in tests and demo runs, and records
// every capability call made against it so that call ordering can be checked.
type ReplayModel struct {
	isa     ISA
	threads int
	script  []ExitEventKind

	pos     int
	stopped bool
	calls   []string
}

// NewReplayModel creates a ReplayModel that raises the scripted events in
// order, one per RunUntilExit call.
func NewReplayModel(isa ISA, threads int, script []ExitEventKind) *ReplayModel {
	if threads <= 0 {
		panic("replay model needs at least one thread")
	}

	return &ReplayModel{
		isa:     isa,
		threads: threads,
		script:  script,
	}
}

// RunUntilExit raises the next scripted exit event.
func (m *ReplayModel) RunUntilExit() (ExitEventKind, error) {
	if m.stopped {
		return 0, errors.New("replay model resumed after StopModel")
	}

	if m.pos >= len(m.script) {
		return 0, fmt.Errorf("%w after %d events", ErrScriptExhausted, m.pos)
	}

	kind := m.script[m.pos]
	m.pos++
	m.record("RunUntilExit->" + kind.String())

	return kind, nil
}

// StopModel stops the playback. Further RunUntilExit calls fail.
func (m *ReplayModel) StopModel() {
	m.stopped = true
	m.record("StopModel")
}

// ResetStats records the statistics reset.
func (m *ReplayModel) ResetStats() {
	m.record("ResetStats")
}

// ScheduleMaxInsts records the instruction ceiling registration.
func (m *ReplayModel) ScheduleMaxInsts(perThread uint64) {
	m.record(fmt.Sprintf("ScheduleMaxInsts(%d)", perThread))
}

// ISA returns the architecture the model was created with.
func (m *ReplayModel) ISA() ISA {
	return m.isa
}

// ThreadCount returns the number of hardware threads the model pretends to
// simulate.
func (m *ReplayModel) ThreadCount() int {
	return m.threads
}

// Stopped reports whether StopModel has been called.
func (m *ReplayModel) Stopped() bool {
	return m.stopped
}

// Calls returns the capability calls made against the model, in order.
func (m *ReplayModel) Calls() []string {
	dup := make([]string, len(m.calls))
	copy(dup, m.calls)
	return dup
}

func (m *ReplayModel) record(entry string) {
	m.calls = append(m.calls, entry)
}
