package server

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/cyberacme/auth-edge/discord"
	apperrors "github.com/cyberacme/auth-edge/internal/errors"
	"github.com/rs/zerolog"
)

const maxRequestBody = 16 * 1024

type tokenRequest struct {
	Code string `json:"code" validate:"required"`
}

// DiscordToken exchanges a Discord authorization code for provider tokens,
// the user's profile and a signed session token.
func (s *Server) DiscordToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		req, err := decodeTokenRequest(r.Body)
		if err != nil {
			logger.Error().Err(err).Msg("failed to parse token request body")
			s.writeInternalError(w, err, nil)
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Missing authorization code", nil)
			return
		}

		redirectURI := s.redirectURIFor(r)
		result, err := s.auth.Login(r.Context(), req.Code, redirectURI)
		if err != nil {
			s.writeLoginError(w, r, err, redirectURI)
			return
		}

		logger.Info().Str("discord_id", result.User.ID).Msg("discord login succeeded")
		writeJSON(w, http.StatusOK, result)
	}
}

// decodeTokenRequest only fails on a body that is not JSON at all. Valid JSON
// of the wrong shape, such as an array or a non-string code, leaves Code empty.
func decodeTokenRequest(body io.Reader) (tokenRequest, error) {
	var req tokenRequest
	err := json.NewDecoder(io.LimitReader(body, maxRequestBody)).Decode(&req)

	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return req, nil
	case errors.As(err, &typeErr):
		return tokenRequest{}, nil
	default:
		return tokenRequest{}, err
	}
}

func (s *Server) writeLoginError(w http.ResponseWriter, r *http.Request, err error, redirectURI string) {
	logger := zerolog.Ctx(r.Context())

	if errors.Is(err, apperrors.ErrMissingCode) {
		writeJSONError(w, http.StatusBadRequest, "Missing authorization code", nil)
		return
	}

	var providerErr *discord.ProviderError
	if errors.As(err, &providerErr) {
		logger.Warn().
			Str("op", providerErr.Op).
			Int("status", providerErr.StatusCode).
			Str("redirect_uri", redirectURI).
			Msg("discord rejected login")

		if providerErr.Op == discord.OpTokenExchange {
			writeJSONError(w, providerErr.StatusCode, "Token exchange failed", map[string]any{
				"status":      providerErr.StatusCode,
				"details":     providerErr.Body,
				"redirectUri": redirectURI,
			})
			return
		}
		writeJSONError(w, providerErr.StatusCode, "Failed to fetch user info", map[string]any{
			"status": providerErr.StatusCode,
		})
		return
	}

	logger.Error().Err(err).Msg("discord login failed")
	s.writeInternalError(w, err, nil)
}

// Me returns the Discord profile for the bearer token. The token is Discord's
// access token, not the session token.
func (s *Server) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		accessToken := bearerToken(r.Header.Get("Authorization"))
		if accessToken == "" {
			writeJSONError(w, http.StatusUnauthorized, "Missing authorization token", nil)
			return
		}

		user, err := s.auth.Me(r.Context(), accessToken)
		if err != nil {
			var providerErr *discord.ProviderError
			if errors.As(err, &providerErr) {
				logger.Warn().Int("status", providerErr.StatusCode).Msg("discord rejected access token")
				writeJSONError(w, providerErr.StatusCode, "Failed to fetch user info", map[string]any{
					"status": providerErr.StatusCode,
				})
				return
			}
			logger.Error().Err(err).Msg("user lookup failed")
			s.writeInternalError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

// bearerToken strips an optional "Bearer " scheme from an Authorization value.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		header = header[7:]
	}
	return strings.TrimSpace(header)
}

// redirectURIFor picks the redirect URI registered for the deployment the
// request came through. Host is used first, then the Origin header.
func (s *Server) redirectURIFor(r *http.Request) string {
	hostname := hostOnly(r.Host)
	if hostname == "" {
		if origin, err := url.Parse(r.Header.Get("Origin")); err == nil {
			hostname = origin.Hostname()
		}
	}
	return s.config.GetRedirectRoutes().Resolve(hostname, s.config.GetDefaultRedirectURI())
}

func hostOnly(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return hostport
}
