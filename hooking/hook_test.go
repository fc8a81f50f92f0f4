package hooking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderedHook struct {
	name  string
	order *[]string
}

func (h *orderedHook) Func(_ HookCtx) {
	*h.order = append(*h.order, h.name)
}

func TestHooksFireInRegistrationOrder(t *testing.T) {
	base := NewHookableBase()

	var order []string
	base.AcceptHook(&orderedHook{name: "first", order: &order})
	base.AcceptHook(&orderedHook{name: "second", order: &order})

	base.InvokeHook(HookCtx{Domain: base})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 2, base.NumHooks())
}

func TestDuplicatedHookPanics(t *testing.T) {
	base := NewHookableBase()

	var order []string
	hook := &orderedHook{name: "only", order: &order}
	base.AcceptHook(hook)

	assert.Panics(t, func() { base.AcceptHook(hook) })
}
