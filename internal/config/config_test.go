package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("SOME_UNSET_KEY", "")
	assert.Equal(t, "fallback", getEnv("SOME_UNSET_KEY", "fallback"))

	t.Setenv("SOME_SET_KEY", "value")
	assert.Equal(t, "value", getEnv("SOME_SET_KEY", "fallback"))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("PAGE_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("PAGE_TIMEOUT", time.Minute))

	t.Setenv("PAGE_TIMEOUT", "not-a-duration")
	assert.Equal(t, time.Minute, getEnvDuration("PAGE_TIMEOUT", time.Minute))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_BANK", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "BRADESCO", cfg.DefaultBank)
	assert.Equal(t, "3050", cfg.DefaultBranch)
	assert.Equal(t, "7223-0", cfg.DefaultAccount)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
}
