package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/cyberacme/auth-edge/internal/config"
	"github.com/cyberacme/auth-edge/token"
	"github.com/stretchr/testify/require"
)

const testDiscordID = "80351110224678912"

func setNow(t *testing.T, now time.Time) {
	t.Helper()
	previous := token.NowTimeFunc
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = previous })
}

func sessionConfig() config.Session {
	return config.Session{
		JWTSecret:     secretStr,
		SessionSecret: "session",
		TokenExpiry:   14 * 24 * time.Hour,
		RefreshAfter:  24 * time.Hour,
	}
}

func TestCreator_NewSessionClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 500_000_000, time.UTC)
	setNow(t, now)

	claims := token.NewCreator(sessionConfig(), token.NewHMACSigner(secretStr)).NewSessionClaims(testDiscordID)

	require.Equal(t, testDiscordID, claims.DiscordID)
	require.Equal(t, testDiscordID, claims.Subject)
	require.Equal(t, now.Truncate(time.Second).Unix(), claims.IssuedAt.Unix())
	require.Equal(t, int64(24*3600), claims.RefreshAfter.Unix()-claims.IssuedAt.Unix())
	require.Equal(t, int64(14*24*3600), claims.ExpiresAt.Unix()-claims.IssuedAt.Unix())
	require.NoError(t, claims.Validate())
}

func TestCreator_CreateSessionToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	setNow(t, now)
	signer := token.NewHMACSigner(secretStr)

	signed, err := token.NewCreator(sessionConfig(), signer).CreateSessionToken(testDiscordID)
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(signed, "."))

	payload := decodeSegment(t, strings.Split(signed, ".")[1])
	require.Equal(t, testDiscordID, payload["discordId"])
	require.Equal(t, testDiscordID, payload["sub"])
	require.EqualValues(t, 1700000000, payload["iat"])
	require.EqualValues(t, 1700000000+24*3600, payload["refreshAfter"])
	require.EqualValues(t, 1700000000+14*24*3600, payload["exp"])

	var claims token.SessionClaims
	require.NoError(t, signer.Verify(signed, &claims))
	require.Equal(t, testDiscordID, claims.DiscordID)
}

func TestSessionClaims_Validate(t *testing.T) {
	setNow(t, time.Unix(1700000000, 0))
	good := token.NewCreator(sessionConfig(), token.NewHMACSigner(secretStr)).NewSessionClaims(testDiscordID)

	t.Run("missing id", func(t *testing.T) {
		c := good
		c.DiscordID = ""
		require.Error(t, c.Validate())
	})

	t.Run("refreshAfter beyond expiry", func(t *testing.T) {
		c := good
		c.RefreshAfter = c.ExpiresAt
		require.Error(t, c.Validate())
	})

	t.Run("missing timestamp", func(t *testing.T) {
		c := good
		c.RefreshAfter = nil
		require.Error(t, c.Validate())
	})
}

func TestCreator_SignerFailure(t *testing.T) {
	_, err := token.NewCreator(sessionConfig(), token.NewHMACSigner("")).CreateSessionToken(testDiscordID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to sign session token")
}
