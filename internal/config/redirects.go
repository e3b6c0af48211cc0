package config

import "strings"

// RedirectRoute maps a deployment hostname to the redirect URI that was
// registered with Discord for it.
type RedirectRoute struct {
	Name        string
	HostPattern string `validate:"required"`
	RedirectURI string `validate:"required,url"`
}

// Matches reports whether hostname is the pattern itself or a subdomain of it.
func (r RedirectRoute) Matches(hostname string) bool {
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	pattern := strings.ToLower(r.HostPattern)
	if hostname == "" || pattern == "" {
		return false
	}
	return hostname == pattern || strings.HasSuffix(hostname, "."+pattern)
}

// RedirectRoutes is evaluated in order; the first match wins.
type RedirectRoutes []RedirectRoute

// Resolve returns the redirect URI for hostname, or fallback when no route
// matches.
func (rr RedirectRoutes) Resolve(hostname, fallback string) string {
	for _, route := range rr {
		if route.Matches(hostname) {
			return route.RedirectURI
		}
	}
	return fallback
}
