package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-session-auth/auth"
)

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

func (s *Server) apiMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{
		s.RecoverMiddleware,
		s.LoggingMiddleware,
		s.DeserializeUserMiddleware,
	}
}

func (s *Server) protectedMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.apiMiddleware(), s.RequireAuthMiddleware)
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetEnv() == "DEV" {
			s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		}
		next(w, r)
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				writeJSON(w, http.StatusInternalServerError, apiResponse{
					Status:  "error",
					Message: "Internal server error",
					Code:    http.StatusInternalServerError,
				})
			}
		}()
		next(w, r)
	}
}

// DeserializeUserMiddleware resolves the caller's identity from the
// Authorization header. Requests without a token pass through anonymously,
// requests with a malformed or expired token are rejected outright, and
// requests carrying a token for a revoked session continue as anonymous.
func (s *Server) DeserializeUserMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearerToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		claims, err := s.deserializer.Deserialize(r.Context(), bearerToken)
		if err != nil {
			s.respondError(w, err)
			return
		}

		if claims != nil {
			r = r.WithContext(auth.WithIdentity(r.Context(), claims))
		}
		next(w, r)
	}
}

func (s *Server) RequireAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.RequireIdentity(r.Context()); err != nil {
			s.respondError(w, err)
			return
		}
		next(w, r)
	}
}
