package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+RouteDiscordToken, ChainMiddleware(s.DiscordToken(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMe, ChainMiddleware(s.Me(), s.APIMiddleware()...))

	// Everything else, any method
	s.RegisterRouteFunc("/", s.NotFound())
}

// NotFound answers every unknown route with a plain text 404.
func (s *Server) NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeText)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not found"))
	}
}
