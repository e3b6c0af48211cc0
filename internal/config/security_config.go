package config

import "time"

type SecurityConfig interface {
	GetEnableRateLimiting() bool
	GetRateLimit() RateLimit
}

// RateLimit allows Requests per Window for each client IP, with Burst
// requests available at once. TrustProxy keys clients on the last
// X-Forwarded-For hop instead of the connection address.
type RateLimit struct {
	Requests   int           `validate:"gt=0"`
	Window     time.Duration `validate:"gt=0"`
	Burst      int           `validate:"gt=0"`
	TrustProxy bool
}

type Security struct {
	EnableRateLimiting bool
	RateLimit          RateLimit
}

var _ SecurityConfig = Security{}

func loadSecurity() Security {
	return Security{
		EnableRateLimiting: getEnvBool("RATELIMIT_ENABLED", false),
		RateLimit: RateLimit{
			Requests:   getEnvInt("RATELIMIT_REQUESTS", 30),
			Window:     getEnvSeconds("RATELIMIT_WINDOW_SEC", time.Minute),
			Burst:      getEnvInt("RATELIMIT_BURST", 10),
			TrustProxy: getEnvBool("RATELIMIT_TRUST_PROXY", false),
		},
	}
}

func (s Security) GetEnableRateLimiting() bool {
	return s.EnableRateLimiting
}

func (s Security) GetRateLimit() RateLimit {
	return s.RateLimit
}
