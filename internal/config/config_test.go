package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LEXIS_ENV", "LEXIS_HTTP_ADDR", "LEXIS_DB", "LEXIS_TIMEZONE",
		"LEXIS_DAILY_WORDS", "LEXIS_DAILY_MAX_QUESTIONS", "LEXIS_VOCAB_FILE",
		"LEXIS_REMOTE_GRADING", "LEXIS_GRADING_TIMEOUT", "LEXIS_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.RemoteGrading)
	assert.Equal(t, 5, cfg.Daily.WordCount)
	assert.Equal(t, 10, cfg.Daily.MaxQuestions)
	assert.Equal(t, 20*time.Second, cfg.GradingTimeout)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, "", cfg.LLM.Provider)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEXIS_ENV", "production")
	t.Setenv("LEXIS_HTTP_ADDR", ":9090")
	t.Setenv("LEXIS_TIMEZONE", "UTC")
	t.Setenv("LEXIS_DAILY_WORDS", "8")
	t.Setenv("LEXIS_REMOTE_GRADING", "false")
	t.Setenv("LEXIS_GRADING_TIMEOUT", "5s")
	t.Setenv("LEXIS_LLM_PROVIDER", "mock")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, 8, cfg.Daily.WordCount)
	assert.False(t, cfg.RemoteGrading)
	assert.Equal(t, 5*time.Second, cfg.GradingTimeout)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoadDiscoversVendorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.Anthropic.APIKey)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"LEXIS_TIMEZONE":        "Mars/Olympus",
		"LEXIS_DAILY_WORDS":     "five",
		"LEXIS_REMOTE_GRADING":  "maybe",
		"LEXIS_GRADING_TIMEOUT": "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}
