package http

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HTTP_SERVER_HOST", "HTTP_APP_IDLE_TIMEOUT_DURATION", "HTTP_APP_WRITE_TIMEOUT_DURATION", "HTTP_APP_SHUTDOWN_TIMEOUT_DURATION"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadHTTPServerConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadHTTPServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Host)
	assert.Equal(t, 90*time.Second, cfg.Timeouts.Write)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.ShutdownWait)
}

func TestLoadHTTPServerConfig_FromFile(t *testing.T) {
	clearServerEnv(t)

	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_SERVER_HOST=:9999\nHTTP_APP_IDLE_TIMEOUT_DURATION=2m\n"), 0o600))

	cfg, err := LoadHTTPServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Host)
	assert.Equal(t, 2*time.Minute, cfg.Timeouts.Idle)
}

func TestLoadHTTPServerConfig_Invalid(t *testing.T) {
	t.Setenv("HTTP_APP_WRITE_TIMEOUT_DURATION", "soon")

	_, err := LoadHTTPServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "HTTP_APP_WRITE_TIMEOUT_DURATION")
}
