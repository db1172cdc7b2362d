package server

import (
	"net/http"

	"github.com/jrsteele09/go-session-auth/accounts"
	"github.com/jrsteele09/go-session-auth/auth"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
)

// CreateUserHandler registers a new, unverified account
func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		user, err := s.accounts.Register(r.Context(), accounts.RegisterInput{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Password:  req.Password,
		})
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondSuccess(w, http.StatusCreated, user)
	}
}

// VerifyUserHandler marks an account verified when the supplied code matches
func (s *Server) VerifyUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userID")
		code := r.PathValue("verificationCode")

		if err := s.accounts.VerifyEmail(r.Context(), userID, code); err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				s.respondBadRequest(w, "could not verify user")
				return
			}
			s.respondError(w, err)
			return
		}

		s.respondMessage(w, http.StatusOK, "user verified")
	}
}

// ForgotPasswordHandler starts a password reset. The response is identical
// whether or not the email maps to an account.
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	const message = "if a user with that email is registered, a password reset email has been sent"

	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		if err := s.accounts.ForgotPassword(r.Context(), req.Email); err != nil {
			s.respondError(w, err)
			return
		}

		s.respondMessage(w, http.StatusOK, message)
	}
}

// ResetPasswordHandler completes a password reset and revokes every session
// belonging to the user.
func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userID")
		code := r.PathValue("passwordResetCode")

		var req resetPasswordRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		if err := s.accounts.ResetPassword(r.Context(), userID, code, req.Password); err != nil {
			s.respondError(w, err)
			return
		}

		s.respondMessage(w, http.StatusOK, "password updated")
	}
}

// CurrentUserHandler returns the user snapshot embedded in the caller's
// access token. No store lookup happens here - the data can lag behind
// profile changes until the next refresh.
func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.RequireIdentity(r.Context())
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondSuccess(w, http.StatusOK, claims)
	}
}
