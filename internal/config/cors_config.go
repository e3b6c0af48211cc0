package config

// Cors holds the fixed preflight answer. The allowed origin is not configured:
// every response echoes the caller's Origin header.
type Cors struct {
	AllowedMethods  string `validate:"required"`
	AllowedHeaders  string `validate:"required"`
	PreflightMaxAge int    `validate:"gt=0"`
}

var _ CorsConfig = Cors{}

func defaultCors() Cors {
	return Cors{
		AllowedMethods:  "GET, POST, OPTIONS",
		AllowedHeaders:  "Content-Type, Authorization",
		PreflightMaxAge: 86400,
	}
}

func (c Cors) GetAllowedMethods() string {
	return c.AllowedMethods
}

func (c Cors) GetAllowedHeaders() string {
	return c.AllowedHeaders
}

func (c Cors) GetPreflightMaxAge() int {
	return c.PreflightMaxAge
}
