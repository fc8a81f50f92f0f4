package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestROIMarkers(t *testing.T) {
	assert.True(t, ISAX86.HasROIMarkers())
	assert.True(t, ISARISCV.HasROIMarkers())
	assert.False(t, ISAARM.HasROIMarkers())
}

func TestParseISA(t *testing.T) {
	isa, err := ParseISA("arm")
	require.NoError(t, err)
	assert.Equal(t, ISAARM, isa)

	_, err = ParseISA("sparc")
	require.Error(t, err)
}

func TestExitEventKindString(t *testing.T) {
	assert.Equal(t, "WorkBegin", ExitEventWorkBegin.String())
	assert.Equal(t, "ExitEventKind(99)", ExitEventKind(99).String())
}
