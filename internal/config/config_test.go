package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "SESSION_STORE", "LOG_FORMAT", "OPENAI_API_KEY", "SHUTDOWN_TIMEOUT", "GIN_MODE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.True(t, cfg.IsProduction())
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "duration string", value: "15s", want: 15 * time.Second},
		{name: "plain seconds", value: "30", want: 30 * time.Second},
		{name: "garbage falls back", value: "soon", want: 5 * time.Second},
		{name: "unset falls back", value: "", want: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_TIMEOUT", tt.value)
			assert.Equal(t, tt.want, getDuration("TEST_TIMEOUT", 5*time.Second))
		})
	}
}
