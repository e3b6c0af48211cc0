package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cyberacme/auth-edge/auth"
	"github.com/cyberacme/auth-edge/internal/config"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env           string // Environment (e.g., "DEV", "PRODUCTION")
	production    bool
	mux           *http.ServeMux
	handler       http.Handler
	routes        []string
	apiMiddleware []func(http.HandlerFunc) http.HandlerFunc
	config        config.Config
	auth          *auth.Service
	validate      *validator.Validate
}

// New wires the routes and the global middleware. The production flag is
// taken from cfg once here; handlers never read the environment.
func New(cfg config.Config, authService *auth.Service) *Server {
	s := &Server{
		env:        cfg.GetEnv(),
		production: cfg.IsProduction(),
		mux:        http.NewServeMux(),
		config:     cfg,
		auth:       authService,
		validate:   validator.New(),
	}

	if cfg.GetEnableRateLimiting() {
		s.apiMiddleware = append(s.apiMiddleware, RateLimitMiddleware(cfg.GetRateLimit()))
	}

	s.initRoutes()
	s.logRoutes()

	s.handler = ChainMiddleware(s.mux.ServeHTTP,
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.CorsMiddleware,
	)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != config.EnvDev {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
