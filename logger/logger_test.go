package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLoggerBeforeInitialize(t *testing.T) {
	// Package init installs a no-op logger so early log calls don't panic.
	require.NotNil(t, Logger)
	Logger.Infow("no-op", "key", "value")
}

func TestInitializeConsole(t *testing.T) {
	require.NoError(t, Initialize(false, false))
	assert.False(t, JSONOutput)
	require.NotNil(t, Logger)
}

func TestInitializeJSON(t *testing.T) {
	require.NoError(t, Initialize(true, true))
	assert.True(t, JSONOutput)
	require.NotNil(t, Logger)
}
