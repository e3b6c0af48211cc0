package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cyberacme/auth-edge/internal/config"
	apperrors "github.com/cyberacme/auth-edge/internal/errors"
	"golang.org/x/oauth2"
)

const (
	tokenPath     = "/oauth2/token"
	authorizePath = "/oauth2/authorize"
	currentUser   = "/users/@me"

	// maxErrorBody caps how much of a failed response is kept for diagnostics.
	maxErrorBody = 64 * 1024
)

// Client talks to the Discord OAuth2 and user endpoints. It holds no per-user
// state and is safe for concurrent use.
type Client struct {
	oauth      *oauth2.Config
	userURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(cfg config.DiscordConfig) *Client {
	base := strings.TrimRight(cfg.GetDiscordAPIBase(), "/")
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetDiscordClientID(),
			ClientSecret: cfg.GetDiscordClientSecret(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + authorizePath,
				TokenURL:  base + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"identify"},
		},
		userURL:    base + currentUser,
		timeout:    cfg.GetProviderTimeout(),
		httpClient: &http.Client{Timeout: cfg.GetProviderTimeout()},
	}
}

// Exchange trades a one-time authorization code for tokens. redirectURI must
// be byte-for-byte the one used when the code was issued. The call is never
// retried since the code is single use.
func (c *Client) Exchange(ctx context.Context, code, redirectURI string) (*TokenResponse, error) {
	recorder := &bodyRecorder{next: c.transport()}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
		Transport: recorder,
		Timeout:   c.timeout,
	})

	tok, err := c.oauth.Exchange(ctx, code, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if apperrors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &ProviderError{
				Op:         OpTokenExchange,
				StatusCode: failureStatus(retrieveErr.Response.StatusCode),
				Body:       string(retrieveErr.Body),
			}
		}
		return nil, apperrors.Wrapf(err, "[discord Exchange] token request")
	}

	var tokens TokenResponse
	if err := json.Unmarshal(recorder.body.Bytes(), &tokens); err == nil && tokens.AccessToken != "" {
		return &tokens, nil
	}

	// Not a JSON body; x/oauth2 also accepts form encoded responses.
	scope, _ := tok.Extra("scope").(string)
	return &TokenResponse{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    expiresIn(tok.Extra("expires_in")),
		RefreshToken: tok.RefreshToken,
		Scope:        scope,
	}, nil
}

// FetchUser returns the profile of the user that owns accessToken.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[discord FetchUser] build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[discord FetchUser] request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ProviderError{
			Op:         OpFetchUser,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperrors.Wrapf(err, "[discord FetchUser] decode profile")
	}
	if user.ID == "" {
		return nil, fmt.Errorf("[discord FetchUser] %w", apperrors.ErrMissingUserID)
	}
	return &user, nil
}

// failureStatus keeps an error-bearing 2xx token response from reaching the
// caller as a success status.
func failureStatus(status int) int {
	if status >= 200 && status <= 299 {
		return http.StatusBadGateway
	}
	return status
}

func (c *Client) transport() http.RoundTripper {
	if c.httpClient.Transport != nil {
		return c.httpClient.Transport
	}
	return http.DefaultTransport
}

// bodyRecorder keeps a copy of every response body read through it. x/oauth2
// only exposes the token fields it models.
type bodyRecorder struct {
	next http.RoundTripper
	body bytes.Buffer
}

func (b *bodyRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := b.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = struct {
		io.Reader
		io.Closer
	}{io.TeeReader(resp.Body, &b.body), resp.Body}
	return resp, nil
}

func expiresIn(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
