package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarchlab/phasesim/sim"
)

func TestParseEventScript(t *testing.T) {
	script, err := parseEventScript(sim.ISAX86,
		[]string{"exit", "WorkBegin", " maxinsts "})
	require.NoError(t, err)

	assert.Equal(t, []sim.ExitEventKind{
		sim.ExitEventExit,
		sim.ExitEventWorkBegin,
		sim.ExitEventMaxInsts,
	}, script)
}

func TestParseEventScriptDefaults(t *testing.T) {
	script, err := parseEventScript(sim.ISAARM, nil)
	require.NoError(t, err)
	assert.Equal(t, []sim.ExitEventKind{sim.ExitEventExit}, script)
}

func TestParseEventScriptRejectsUnknownTokens(t *testing.T) {
	_, err := parseEventScript(sim.ISAX86, []string{"reboot"})
	require.Error(t, err)
}
