package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayModelPlaysScriptInOrder(t *testing.T) {
	model := NewReplayModel(ISAX86, 4, []ExitEventKind{
		ExitEventExit,
		ExitEventWorkBegin,
		ExitEventWorkEnd,
	})

	for _, want := range []ExitEventKind{
		ExitEventExit, ExitEventWorkBegin, ExitEventWorkEnd,
	} {
		kind, err := model.RunUntilExit()
		require.NoError(t, err)
		assert.Equal(t, want, kind)
	}

	_, err := model.RunUntilExit()
	require.ErrorIs(t, err, ErrScriptExhausted)
}

func TestReplayModelRecordsCapabilityCalls(t *testing.T) {
	model := NewReplayModel(ISAX86, 2, []ExitEventKind{ExitEventWorkBegin})

	_, err := model.RunUntilExit()
	require.NoError(t, err)

	model.ResetStats()
	model.ScheduleMaxInsts(10_000_000)
	model.StopModel()

	assert.Equal(t, []string{
		"RunUntilExit->WorkBegin",
		"ResetStats",
		"ScheduleMaxInsts(10000000)",
		"StopModel",
	}, model.Calls())
	assert.True(t, model.Stopped())
}

func TestReplayModelDoesNotResumeAfterStop(t *testing.T) {
	model := NewReplayModel(ISAARM, 1, []ExitEventKind{
		ExitEventExit, ExitEventExit,
	})

	_, err := model.RunUntilExit()
	require.NoError(t, err)

	model.StopModel()

	_, err = model.RunUntilExit()
	require.Error(t, err)
}
