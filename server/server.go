package server

import (
	"net/http"

	"github.com/jrsteele09/go-session-auth/accounts"
	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/rs/zerolog"
)

// Server exposes the credential and account flows over HTTP. It owns no
// business rules: handlers decode plain request data, call a flow, and map
// the tagged error outcome to a status code.
type Server struct {
	mux          *http.ServeMux
	config       config.Config
	credentials  *auth.Service
	accounts     *accounts.Service
	deserializer *auth.Deserializer
	logger       zerolog.Logger
}

func New(cfg config.Config, credentials *auth.Service, accountsService *accounts.Service, deserializer *auth.Deserializer, logger zerolog.Logger) *Server {
	s := &Server{
		mux:          http.NewServeMux(),
		config:       cfg,
		credentials:  credentials,
		accounts:     accountsService,
		deserializer: deserializer,
		logger:       logger,
	}

	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRouteFunc(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, handler)
}
