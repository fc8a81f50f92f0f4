// Package control implements the phase controller: the loop that reacts to
// the exit events a hardware model raises and decides whether the run
// continues.
//
// Each exit event kind owns a Sequence, a resumable reaction advanced one step
// per firing of its event. The same event kind can therefore trigger a
// different reaction at each occurrence while the controller itself stays
// free of occurrence counters.
package control

import (
	"errors"
	"fmt"
)

// An Effect is one named side effect of a handler step. The controller applies
// a step's effects in the order the step lists them; an effect error is fatal
// to the run.
type Effect struct {
	Name  string
	Apply func() error
}

// A Step is one reaction of a handler sequence: the side effects to apply and
// whether the controller must halt the run afterwards.
type Step struct {
	Effects []Effect
	Halt    bool
}

// ErrSequenceExhausted is returned when an event fires more times than its
// handler sequence has steps for.
var ErrSequenceExhausted = errors.New("handler sequence exhausted")

// A Sequence is the reaction to one exit event kind. Its cursor advances by
// one per firing and never resets within a run, so the sequence resumes
// exactly where the previous firing left off.
type Sequence struct {
	steps  []Step
	cursor int
}

// NewSequence creates a Sequence from the given steps.
func NewSequence(steps ...Step) *Sequence {
	if len(steps) == 0 {
		panic("a handler sequence needs at least one step")
	}

	return &Sequence{steps: steps}
}

// Cursor returns the number of steps that have already fired.
func (s *Sequence) Cursor() int {
	return s.cursor
}

// Len returns the total number of steps in the sequence.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// Advance consumes the next step. It fails with ErrSequenceExhausted when the
// event fires after the last step has already been consumed.
func (s *Sequence) Advance() (Step, error) {
	if s.cursor >= len(s.steps) {
		return Step{}, fmt.Errorf("%w after step %d",
			ErrSequenceExhausted, s.cursor-1)
	}

	step := s.steps[s.cursor]
	s.cursor++

	return step, nil
}
