package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colorfulnotion/intcode/intcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intcode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, intcode.DefaultMinMemory, c.MinMemory)
	assert.Zero(t, c.MaxMemory)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "max_memory: 1048576\ntrace: true\ndebug: intcode,host\n")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, intcode.DefaultMinMemory, c.MinMemory)
	assert.Equal(t, int64(1048576), c.MaxMemory)
	assert.True(t, c.Trace)
	assert.Equal(t, "intcode,host", c.Debug)
	assert.Equal(t, "info", c.LogLevel)

	vc := c.VMConfig()
	assert.Equal(t, intcode.Config{MinMemory: intcode.DefaultMinMemory, MaxMemory: 1048576, Trace: true}, vc)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "min_memory: [1, 2]\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "max_memroy: 10\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "min_memory: -4\n"))
	assert.ErrorContains(t, err, "min_memory must not be negative")
}

func TestStringRoundTrips(t *testing.T) {
	c := Default()
	c.Debug = "all"
	path := writeConfig(t, c.String())
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
