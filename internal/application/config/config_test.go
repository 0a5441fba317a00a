package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("APP_LOG_LEVEL", "")

	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Audit.FetchTimeout)
	assert.Equal(t, int64(1_000_000), cfg.Audit.FetchMaxBytes)
	assert.Equal(t, 12000, cfg.Audit.MaxContentChars)
	assert.False(t, cfg.Audit.AllowPrivateHosts)
}

func TestLoadAppConfig_FromFile(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "LLM_API_KEY", "LLM_MODEL", "OPENAI_API_KEY", "AUDIT_FETCH_TIMEOUT_DURATION"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "config.env")
	content := "LLM_PROVIDER=anthropic\nLLM_API_KEY=key\nAUDIT_FETCH_TIMEOUT_DURATION=3s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.LLM.Model)
	assert.Equal(t, 3*time.Second, cfg.Audit.FetchTimeout)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing api key", env: map[string]string{"LLM_API_KEY": "", "OPENAI_API_KEY": ""}, want: "llm api key is empty"},
		{name: "unknown provider", env: map[string]string{"LLM_API_KEY": "k", "LLM_PROVIDER": "mystery"}, want: "not supported"},
		{name: "bad duration", env: map[string]string{"LLM_API_KEY": "k", "LLM_TIMEOUT_DURATION": "soon"}, want: "invalid duration"},
		{name: "bad log level", env: map[string]string{"LLM_API_KEY": "k", "APP_LOG_LEVEL": "loud"}, want: "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
