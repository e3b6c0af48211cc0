package token

import (
	"fmt"
	"time"

	"github.com/cyberacme/auth-edge/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator mints session tokens for authenticated Discord users.
type Creator struct {
	config config.SessionConfig
	signer Signer
}

func NewCreator(cfg config.SessionConfig, signer Signer) *Creator {
	return &Creator{
		config: cfg,
		signer: signer,
	}
}

// NewSessionClaims stamps iat, refreshAfter and exp from one clock reading so
// the offsets are exact.
func (c *Creator) NewSessionClaims(discordID string) SessionClaims {
	issuedAt := NowTimeFunc().Truncate(time.Second)
	return SessionClaims{
		DiscordID:    discordID,
		RefreshAfter: jwt.NewNumericDate(issuedAt.Add(c.config.GetSessionRefreshAfter())),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   discordID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.config.GetSessionTokenExpiry())),
		},
	}
}

// CreateSessionToken returns the signed compact token for discordID.
func (c *Creator) CreateSessionToken(discordID string) (string, error) {
	signed, err := c.signer.Sign(c.NewSessionClaims(discordID))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
