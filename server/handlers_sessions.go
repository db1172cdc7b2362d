package server

import (
	"net/http"

	"github.com/jrsteele09/go-session-auth/auth"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
)

// RefreshHeader carries the refresh token on the refresh route. The
// Authorization header stays reserved for access tokens.
const RefreshHeader = "x-refresh"

// CreateSessionHandler logs a user in and returns an access/refresh token pair
func (s *Server) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		tokenPair, err := s.credentials.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondSuccess(w, http.StatusCreated, tokenPair)
	}
}

// RefreshSessionHandler exchanges the refresh token in the x-refresh header
// for a new access token.
func (s *Server) RefreshSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken := r.Header.Get(RefreshHeader)
		if refreshToken == "" {
			s.respondError(w, errs.Wrapf(errs.ErrUnauthorized, "[RefreshSessionHandler] missing %s header", RefreshHeader))
			return
		}

		accessToken, err := s.credentials.Refresh(r.Context(), refreshToken)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondSuccess(w, http.StatusOK, map[string]string{"accessToken": accessToken})
	}
}

// DeleteSessionHandler invalidates the caller's own session. The session ID
// comes from the verified access-token claims, never from the request body.
func (s *Server) DeleteSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.RequireIdentity(r.Context())
		if err != nil {
			s.respondError(w, err)
			return
		}

		if err := s.credentials.Logout(r.Context(), claims.SessionID); err != nil {
			s.respondError(w, err)
			return
		}

		s.respondMessage(w, http.StatusOK, "session invalidated")
	}
}

// HealthHandler reports process liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respondMessage(w, http.StatusOK, "ok")
	}
}
