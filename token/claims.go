package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the session token handed to the browser
// after a successful Discord login.
type SessionClaims struct {
	// DiscordID is the Discord user id; Subject carries the same value.
	DiscordID string `json:"discordId"`

	// RefreshAfter tells the client when to log in again. It is advisory;
	// only ExpiresAt bounds validity.
	RefreshAfter *jwt.NumericDate `json:"refreshAfter"`

	jwt.RegisteredClaims
}

var _ jwt.Claims = SessionClaims{}

// Validate is called by the JWT parser after the registered claims pass.
func (c SessionClaims) Validate() error {
	if c.DiscordID == "" {
		return errors.New("session token has no discordId")
	}
	if c.IssuedAt == nil || c.RefreshAfter == nil || c.ExpiresAt == nil {
		return errors.New("session token is missing a timestamp")
	}
	if !c.IssuedAt.Before(c.RefreshAfter.Time) || !c.RefreshAfter.Before(c.ExpiresAt.Time) {
		return errors.New("session token timestamps out of order")
	}
	return nil
}
