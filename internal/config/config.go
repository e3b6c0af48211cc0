package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Config interface {
	EnvConfig
	CorsConfig
	DiscordConfig
	SessionConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
}

type CorsConfig interface {
	GetAllowedMethods() string
	GetAllowedHeaders() string
	GetPreflightMaxAge() int
}

// Settings is the immutable configuration for one process. It is read from the
// environment once by New and then handed to the server at construction.
type Settings struct {
	EnvVars
	Cors
	Discord
	Session
	Security
}

var _ Config = Settings{}

// New reads the environment and validates the result.
func New() (Settings, error) {
	s := Settings{
		EnvVars:  loadEnvVars(),
		Cors:     defaultCors(),
		Discord:  loadDiscord(),
		Session:  loadSession(),
		Security: loadSecurity(),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks required secrets and URL formats.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("[config Validate] invalid settings: %w", err)
	}
	return nil
}
