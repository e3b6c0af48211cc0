package config

import "time"

type SessionConfig interface {
	GetJWTSecret() string
	GetSessionSecret() string
	GetSessionTokenExpiry() time.Duration
	GetSessionRefreshAfter() time.Duration
}

type Session struct {
	JWTSecret string `validate:"required"`
	// SessionSecret is loaded and required but no code path signs with it yet.
	SessionSecret string        `validate:"required"`
	TokenExpiry   time.Duration `validate:"gtfield=RefreshAfter"`
	RefreshAfter  time.Duration `validate:"gt=0"`
}

var _ SessionConfig = Session{}

func loadSession() Session {
	return Session{
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		SessionSecret: GetEnv("SESSION_SECRET", ""),
		TokenExpiry:   14 * 24 * time.Hour,
		RefreshAfter:  24 * time.Hour,
	}
}

func (s Session) GetJWTSecret() string {
	return s.JWTSecret
}

func (s Session) GetSessionSecret() string {
	return s.SessionSecret
}

func (s Session) GetSessionTokenExpiry() time.Duration {
	return s.TokenExpiry
}

func (s Session) GetSessionRefreshAfter() time.Duration {
	return s.RefreshAfter
}
