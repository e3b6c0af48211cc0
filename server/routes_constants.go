package server

// Route path constants
const (
	RouteDiscordToken = "/auth/discord/token"
	RouteMe           = "/auth/me"
)
