package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "test message")
}

func TestWithComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithComponent(NewWithWriter(buf), "extractor")

	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "extractor")
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)

	got.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}

func TestFromContextMissingReturnsDefault(t *testing.T) {
	got := FromContext(context.Background())
	// Must not panic and must be usable.
	got.Debug().Msg("noop")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "debug", levelFromEnv().String())

	t.Setenv("LOG_LEVEL", "ERROR")
	assert.Equal(t, "error", levelFromEnv().String())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "info", levelFromEnv().String())
}
