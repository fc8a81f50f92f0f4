package control

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/phasesim/sim"
)

// ErrUnknownEvent is returned when the model raises an exit event that has no
// registered handler sequence.
var ErrUnknownEvent = errors.New("no handler registered for exit event")

// A Registry maps each exit event kind to its handler sequence. It is
// populated once before the run starts and never mutated afterwards.
type Registry struct {
	sequences map[sim.ExitEventKind]*Sequence
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sequences: make(map[sim.ExitEventKind]*Sequence),
	}
}

// Register installs the handler sequence for kind. Registering the same kind
// twice is a configuration error.
func (r *Registry) Register(kind sim.ExitEventKind, seq *Sequence) {
	if _, exists := r.sequences[kind]; exists {
		panic("handler for " + kind.String() + " already registered")
	}

	r.sequences[kind] = seq
}

// Lookup returns the handler sequence for kind. An unregistered kind is a
// protocol divergence and fails with ErrUnknownEvent.
func (r *Registry) Lookup(kind sim.ExitEventKind) (*Sequence, error) {
	seq, ok := r.sequences[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, kind)
	}

	return seq, nil
}

// Kinds returns the registered event kinds in ascending order.
func (r *Registry) Kinds() []sim.ExitEventKind {
	kinds := make([]sim.ExitEventKind, 0, len(r.sequences))
	for kind := range r.sequences {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}
