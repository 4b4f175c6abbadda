package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("trace")
	require.NoError(t, err)
	assert.Equal(t, LevelTrace, lvl)

	lvl, err = ParseLevel("Warning")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestModuleFilter(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, LevelTrace, false)))

	DisableModule(HostMonitoring)
	Debug(HostMonitoring, "hidden")
	assert.Empty(t, buf.String())

	EnableModules("host, cli")
	defer DisableModule(HostMonitoring)
	defer DisableModule(CLIMonitoring)
	Debug(HostMonitoring, "stage halted", "stage", 3)
	out := buf.String()
	assert.Contains(t, out, "stage halted")
	assert.Contains(t, out, "module=host")
	assert.Contains(t, out, "stage=3")
	assert.Contains(t, out, "DEBUG")
	assert.True(t, IsModuleEnabled(CLIMonitoring))
}

func TestInfoIgnoresModuleFilter(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, LevelInfo, false)))
	DisableModule(IntcodeMonitoring)

	Info(IntcodeMonitoring, "vm halted", "steps", 7)
	Trace(IntcodeMonitoring, "below level")
	assert.Contains(t, buf.String(), "vm halted")
	assert.NotContains(t, buf.String(), "below level")
}
