// Package config loads server settings from the environment, with an
// optional .env file for development.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilPointer is returned when Load is given a nil destination.
var ErrNilPointer = errors.New("nil pointer provided to config loader")

// Server holds the dfakit serve settings. Flags may override these.
type Server struct {
	Addr          string        `env:"DFAKIT_ADDR" envDefault:":8080"`
	LogLevel      string        `env:"DFAKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"DFAKIT_LOG_FORMAT" envDefault:"text"`
	RedisAddr     string        `env:"DFAKIT_REDIS_ADDR"` // empty: in-memory session store
	RedisPassword string        `env:"DFAKIT_REDIS_PASSWORD"`
	RedisDB       int           `env:"DFAKIT_REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"DFAKIT_SESSION_TTL" envDefault:"0"` // 0: drafts never expire
}

var defaultEnvLoaded sync.Once

// Load parses environment variables into v. The default .env file is
// loaded once per process; a missing file is not an error.
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
