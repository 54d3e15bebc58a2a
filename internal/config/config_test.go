package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	var cfg Server
	require.NoError(t, Load(&cfg))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DFAKIT_ADDR", ":9999")
	t.Setenv("DFAKIT_REDIS_ADDR", "localhost:6379")
	t.Setenv("DFAKIT_SESSION_TTL", "30m")

	var cfg Server
	require.NoError(t, Load(&cfg))

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *Server
	assert.ErrorIs(t, Load(cfg), ErrNilPointer)
}
