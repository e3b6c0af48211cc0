package discord

import (
	"fmt"

	apperrors "github.com/cyberacme/auth-edge/internal/errors"
)

const (
	OpTokenExchange = "token exchange"
	OpFetchUser     = "fetch user"
)

// ProviderError is a non-2xx answer from Discord. Body is the raw response body.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("discord %s failed with status %d", e.Op, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return apperrors.ErrProviderResponse
}
