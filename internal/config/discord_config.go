package config

import "time"

type DiscordConfig interface {
	GetDiscordClientID() string
	GetDiscordClientSecret() string
	GetDiscordAPIBase() string
	GetRedirectRoutes() RedirectRoutes
	GetDefaultRedirectURI() string
	GetProviderTimeout() time.Duration
}

const (
	defaultDiscordAPIBase  = "https://discord.com/api"
	defaultProviderTimeout = 10 * time.Second
)

type Discord struct {
	ClientID           string         `validate:"required"`
	ClientSecret       string         `validate:"required"`
	APIBase            string         `validate:"required,url"`
	RedirectRoutes     RedirectRoutes `validate:"dive"`
	DefaultRedirectURI string         `validate:"required,url"`
	ProviderTimeout    time.Duration  `validate:"gt=0"`
}

var _ DiscordConfig = Discord{}

func loadDiscord() Discord {
	fallback := GetEnv("DISCORD_REDIRECT_URI", "http://localhost:5173/auth/callback")
	return Discord{
		ClientID:     GetEnv("DISCORD_CLIENT_ID", ""),
		ClientSecret: GetEnv("DISCORD_CLIENT_SECRET", ""),
		APIBase:      GetEnv("DISCORD_API_BASE", defaultDiscordAPIBase),
		RedirectRoutes: RedirectRoutes{
			{
				Name:        "production",
				HostPattern: GetEnv("REDIRECT_HOST_PROD", "cyberacme.dev"),
				RedirectURI: GetEnv("DISCORD_REDIRECT_URI_PROD", fallback),
			},
			{
				Name:        "preview",
				HostPattern: GetEnv("REDIRECT_HOST_PREVIEW", "pages.dev"),
				RedirectURI: GetEnv("DISCORD_REDIRECT_URI_PREVIEW", fallback),
			},
			{
				Name:        "local",
				HostPattern: GetEnv("REDIRECT_HOST_LOCAL", "localhost"),
				RedirectURI: GetEnv("DISCORD_REDIRECT_URI_LOCAL", fallback),
			},
		},
		DefaultRedirectURI: fallback,
		ProviderTimeout:    getEnvSeconds("PROVIDER_TIMEOUT_SEC", defaultProviderTimeout),
	}
}

func (d Discord) GetDiscordClientID() string {
	return d.ClientID
}

func (d Discord) GetDiscordClientSecret() string {
	return d.ClientSecret
}

// GetDiscordAPIBase is the API root, e.g. "https://discord.com/api". The token
// and user endpoints are derived from it.
func (d Discord) GetDiscordAPIBase() string {
	return d.APIBase
}

func (d Discord) GetRedirectRoutes() RedirectRoutes {
	return d.RedirectRoutes
}

func (d Discord) GetDefaultRedirectURI() string {
	return d.DefaultRedirectURI
}

func (d Discord) GetProviderTimeout() time.Duration {
	return d.ProviderTimeout
}
