package phaserecording

import (
	"github.com/sarchlab/phasesim/control"
	"github.com/sarchlab/phasesim/hooking"
)

// A StepEntry is one row of the handler-step trace.
type StepEntry struct {
	Seq     int
	Kind    string
	Cursor  int
	Effects int
	Halt    bool
}

// A NoticeEntry is one row of the notice log.
type NoticeEntry struct {
	Seq  int
	Text string
}

// A PhaseTraceRecorder is a controller hook that writes one row per applied
// handler step. Attach it to the controller before the run starts.
type PhaseTraceRecorder struct {
	recorder Recorder
	seq      int
}

// NewPhaseTraceRecorder creates the step-trace table and returns the hook
// that fills it.
func NewPhaseTraceRecorder(recorder Recorder) *PhaseTraceRecorder {
	recorder.CreateTable("phase_steps", StepEntry{})

	return &PhaseTraceRecorder{recorder: recorder}
}

// Func records the step once its effects have been applied.
func (t *PhaseTraceRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != control.HookPosAfterStep {
		return
	}

	record := ctx.Item.(control.StepRecord)

	t.recorder.InsertData("phase_steps", StepEntry{
		Seq:     t.seq,
		Kind:    record.Kind.String(),
		Cursor:  record.Cursor,
		Effects: record.Effects,
		Halt:    record.Halt,
	})
	t.seq++
}

// A RecordingNoticeSink writes every notice to the recorder and forwards it
// to the next sink.
type RecordingNoticeSink struct {
	recorder Recorder
	next     control.NoticeSink
	seq      int
}

// NewRecordingNoticeSink creates the notice table and returns the sink that
// fills it. The next sink may be nil.
func NewRecordingNoticeSink(
	recorder Recorder,
	next control.NoticeSink,
) *RecordingNoticeSink {
	recorder.CreateTable("notices", NoticeEntry{})

	return &RecordingNoticeSink{recorder: recorder, next: next}
}

// Notice records the notice and hands it on.
func (s *RecordingNoticeSink) Notice(text string) {
	s.recorder.InsertData("notices", NoticeEntry{Seq: s.seq, Text: text})
	s.seq++

	if s.next != nil {
		s.next.Notice(text)
	}
}
