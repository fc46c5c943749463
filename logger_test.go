package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerFormats(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := NewLogger(format)
		require.Nil(t, err)
		require.NotNil(t, logger)
	}
	_, err := NewLogger("xml")
	require.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestSetLogLevel(t *testing.T) {
	previous := AtomicLevel.Level()
	t.Cleanup(func() { AtomicLevel.SetLevel(previous) })

	SetLogLevel("debug")
	require.Equal(t, zapcore.DebugLevel, AtomicLevel.Level())
	SetLogLevel("loud")
	require.Equal(t, zapcore.DebugLevel, AtomicLevel.Level())
	SetLogLevel("WARN")
	require.Equal(t, zapcore.WarnLevel, AtomicLevel.Level())
}
