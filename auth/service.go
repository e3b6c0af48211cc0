package auth

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cyberacme/auth-edge/discord"
	apperrors "github.com/cyberacme/auth-edge/internal/errors"
	"github.com/cyberacme/auth-edge/token"
)

var (
	_ Provider      = (*discord.Client)(nil)
	_ SessionIssuer = (*token.Creator)(nil)
)

// Provider is the upstream identity provider.
type Provider interface {
	Exchange(ctx context.Context, code, redirectURI string) (*discord.TokenResponse, error)
	FetchUser(ctx context.Context, accessToken string) (*discord.User, error)
}

// SessionIssuer mints the signed session token for a provider user id.
type SessionIssuer interface {
	CreateSessionToken(discordID string) (string, error)
}

// LoginResult is the outcome of a code exchange. It marshals as one object:
// every field of the provider token response plus jwt and user.
type LoginResult struct {
	Tokens *discord.TokenResponse
	JWT    string
	User   *discord.User
}

func (r LoginResult) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if r.Tokens != nil {
		body = r.Tokens.Fields()
	}
	body["jwt"] = r.JWT
	body["user"] = r.User
	return json.Marshal(body)
}

// Service holds no state between calls; each login is two sequential provider
// requests followed by a local signing step.
type Service struct {
	provider Provider
	sessions SessionIssuer
}

func NewService(provider Provider, sessions SessionIssuer) *Service {
	return &Service{
		provider: provider,
		sessions: sessions,
	}
}

// Login exchanges code for provider tokens, looks up the user they belong to
// and signs a session token for that user. Provider failures come back as
// *discord.ProviderError somewhere in the chain.
func (s *Service) Login(ctx context.Context, code, redirectURI string) (*LoginResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.ErrMissingCode
	}

	tokens, err := s.provider.Exchange(ctx, code, redirectURI)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth Login] exchange code")
	}

	user, err := s.provider.FetchUser(ctx, tokens.AccessToken)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth Login] fetch user")
	}

	sessionToken, err := s.sessions.CreateSessionToken(user.ID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth Login] create session token")
	}

	return &LoginResult{
		Tokens: tokens,
		JWT:    sessionToken,
		User:   user,
	}, nil
}

// Me returns the profile for a provider access token. The service's own
// session token is not accepted here.
func (s *Service) Me(ctx context.Context, accessToken string) (*discord.User, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, apperrors.ErrMissingBearerToken
	}

	user, err := s.provider.FetchUser(ctx, accessToken)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth Me] fetch user")
	}
	return user, nil
}
