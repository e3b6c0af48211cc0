package discord_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cyberacme/auth-edge/discord"
	"github.com/cyberacme/auth-edge/internal/config"
	apperrors "github.com/cyberacme/auth-edge/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "client-1"
	testClientSecret = "secret-1"
	testCode         = "auth-code-1"
	testRedirectURI  = "https://cyberacme.dev/auth/callback"
	testAccessToken  = "access-1"
)

const userPayload = `{"id":"80351110224678912","username":"nelly","discriminator":"0","avatar":null,"global_name":"Nelly","flags":64,"mfa_enabled":true}`

func newClient(apiBase string) *discord.Client {
	return discord.NewClient(config.Discord{
		ClientID:        testClientID,
		ClientSecret:    testClientSecret,
		APIBase:         apiBase,
		ProviderTimeout: 5 * time.Second,
	})
}

func TestClient_Exchange(t *testing.T) {
	t.Run("posts the form and returns tokens", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/oauth2/token", r.URL.Path)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, testCode, r.PostForm.Get("code"))
			assert.Equal(t, testClientID, r.PostForm.Get("client_id"))
			assert.Equal(t, testClientSecret, r.PostForm.Get("client_secret"))
			assert.Equal(t, testRedirectURI, r.PostForm.Get("redirect_uri"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":604800,"refresh_token":"refresh-1","scope":"identify"}`))
		}))
		defer srv.Close()

		tok, err := newClient(srv.URL).Exchange(context.Background(), testCode, testRedirectURI)
		require.NoError(t, err)
		require.Equal(t, "access-1", tok.AccessToken)
		require.Equal(t, "Bearer", tok.TokenType)
		require.Equal(t, 604800, tok.ExpiresIn)
		require.Equal(t, "refresh-1", tok.RefreshToken)
		require.Equal(t, "identify", tok.Scope)
	})

	t.Run("keeps fields exactly as sent", func(t *testing.T) {
		const body = `{"access_token":"access-1","token_type":"Bearer","expires_in":604800,"scope":"identify webhook.incoming","webhook":{"id":"1","url":"https://discord.com/api/webhooks/1/x"}}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		tok, err := newClient(srv.URL).Exchange(context.Background(), testCode, testRedirectURI)
		require.NoError(t, err)
		require.Empty(t, tok.RefreshToken)

		out, err := json.Marshal(tok)
		require.NoError(t, err)
		require.JSONEq(t, body, string(out))
		require.NotContains(t, tok.Fields(), "refresh_token")
	})

	t.Run("form encoded response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
			_, _ = w.Write([]byte("access_token=access-1&token_type=Bearer&expires_in=3600&scope=identify"))
		}))
		defer srv.Close()

		tok, err := newClient(srv.URL).Exchange(context.Background(), testCode, testRedirectURI)
		require.NoError(t, err)
		require.Equal(t, "access-1", tok.AccessToken)
		require.Equal(t, 3600, tok.ExpiresIn)
		require.Equal(t, "identify", tok.Scope)
	})

	t.Run("error body with success status becomes bad gateway", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Exchange(context.Background(), testCode, testRedirectURI)
		var providerErr *discord.ProviderError
		require.ErrorAs(t, err, &providerErr)
		require.Equal(t, discord.OpTokenExchange, providerErr.Op)
		require.Equal(t, http.StatusBadGateway, providerErr.StatusCode)
		require.JSONEq(t, `{"error":"invalid_grant"}`, providerErr.Body)
	})

	t.Run("provider rejection keeps status and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Exchange(context.Background(), testCode, testRedirectURI)
		require.Error(t, err)

		var providerErr *discord.ProviderError
		require.ErrorAs(t, err, &providerErr)
		require.Equal(t, discord.OpTokenExchange, providerErr.Op)
		require.Equal(t, http.StatusBadRequest, providerErr.StatusCode)
		require.JSONEq(t, `{"error":"invalid_grant"}`, providerErr.Body)
		require.True(t, apperrors.Is(err, apperrors.ErrProviderResponse))
	})

	t.Run("unreachable provider is not a provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := newClient(url).Exchange(context.Background(), testCode, testRedirectURI)
		require.Error(t, err)
		var providerErr *discord.ProviderError
		require.False(t, apperrors.As(err, &providerErr))
	})
}

func TestClient_FetchUser(t *testing.T) {
	t.Run("sends bearer token and keeps every field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/@me", r.URL.Path)
			assert.Equal(t, "Bearer "+testAccessToken, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(userPayload))
		}))
		defer srv.Close()

		user, err := newClient(srv.URL).FetchUser(context.Background(), testAccessToken)
		require.NoError(t, err)
		require.Equal(t, "80351110224678912", user.ID)
		require.Equal(t, "nelly", user.Username)
		require.Equal(t, "0", user.Discriminator)
		require.Nil(t, user.Avatar)

		out, err := json.Marshal(user)
		require.NoError(t, err)
		require.JSONEq(t, userPayload, string(out))
	})

	t.Run("rejected token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"401: Unauthorized","code":0}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).FetchUser(context.Background(), "expired")
		var providerErr *discord.ProviderError
		require.ErrorAs(t, err, &providerErr)
		require.Equal(t, discord.OpFetchUser, providerErr.Op)
		require.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	})

	t.Run("profile without id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"username":"ghost"}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).FetchUser(context.Background(), testAccessToken)
		require.ErrorIs(t, err, apperrors.ErrMissingUserID)
	})
}

func TestUser_MarshalWithoutRaw(t *testing.T) {
	avatar := "a_1269e74af4df7417b13759eae50c83dc"
	out, err := json.Marshal(discord.User{ID: "1", Username: "nelly", Discriminator: "0", Avatar: &avatar})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"1","username":"nelly","discriminator":"0","avatar":"a_1269e74af4df7417b13759eae50c83dc"}`, string(out))
}
