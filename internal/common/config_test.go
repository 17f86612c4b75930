package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wifey.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 3, config.Gather.MaxRetries)
	assert.Equal(t, 15*time.Second, config.Gather.RequestTimeout)
	assert.Equal(t, "https://singmalls.app", config.Gather.PrimaryBaseURL)
	assert.True(t, config.Gather.SecondaryEnabled)
	assert.False(t, config.Scheduler.Enabled)

	require.NoError(t, config.Validate())
}

func TestLoadFromFiles_Overrides(t *testing.T) {
	path := writeConfigFile(t, `
environment = "production"

[server]
port = 9090

[gather]
max_retries = 5
inter_request_delay = "250ms"
`)

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 5, config.Gather.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, config.Gather.InterRequestDelay)

	// Untouched settings keep their defaults
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "https://singmalls.app", config.Gather.PrimaryBaseURL)
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	first := writeConfigFile(t, "[server]\nport = 9001\n")
	second := writeConfigFile(t, "[server]\nport = 9002\n")

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 9002, config.Server.Port)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WIFEY_SERVER_PORT", "7070")
	t.Setenv("WIFEY_LOG_LEVEL", "debug")
	t.Setenv("WIFEY_BADGER_PATH", "/tmp/wifey-data")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "/tmp/wifey-data", config.Storage.Badger.Path)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 8181, "0.0.0.0")
	assert.Equal(t, 8181, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave the config untouched
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 8181, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	config := NewDefaultConfig()
	config.Server.Port = -1
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Logging.Level = "verbose"
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Gather.PrimaryBaseURL = "not a url"
	assert.Error(t, config.Validate())
}
