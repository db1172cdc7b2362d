// Package accounts implements registration, email verification, and the
// password reset flow, including the cascading session revocation that a
// successful reset triggers.
package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/notify"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/rs/zerolog"
)

// Repos holds the repository dependencies for the accounts Service
type Repos struct {
	Users    users.UserRepo // Repository for user accounts
	Sessions sessions.Repo  // Repository for session records
}

// RegisterInput is the data needed to create a new account
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Service implements the account lifecycle flows
type Service struct {
	repos    Repos
	hasher   users.Hasher
	notifier notify.Notifier
	newCode  func() string // one-time code generator (injectable for testing)
	logger   zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance
type ServiceOption func(*Service)

// WithCodeFunc overrides the one-time code generator (primarily for testing)
func WithCodeFunc(newCode func() string) ServiceOption {
	return func(s *Service) {
		s.newCode = newCode
	}
}

// NewService initializes an accounts Service with required dependencies
func NewService(repos Repos, hasher users.Hasher, notifier notify.Notifier, logger zerolog.Logger, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] Sessions repo is required")
	}
	if hasher == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] hasher is required")
	}
	if notifier == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] notifier is required")
	}

	service := &Service{
		repos:    repos,
		hasher:   hasher,
		notifier: notifier,
		newCode:  func() string { return uuid.New().String() },
		logger:   logger,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Register creates a new unverified account and dispatches its verification
// code. A duplicate email returns ErrConflict.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*users.User, error) {
	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[Register] hashing password: %v", err)
	}

	user := &users.User{
		Email:            users.NormalizeEmail(input.Email),
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		PasswordHash:     passwordHash,
		VerificationCode: s.newCode(),
	}

	created, err := s.repos.Users.Create(ctx, user)
	if err != nil {
		if errs.Is(err, errs.ErrConflict) {
			return nil, errs.ErrConflict
		}
		return nil, errs.Wrapf(errs.ErrInternal, "[Register] Users.Create: %v", err)
	}

	s.dispatch(ctx, notify.Message{
		To:      created.Email,
		Subject: "Please verify your email",
		Body:    fmt.Sprintf("Verification code: %s. ID: %s", created.VerificationCode, created.ID),
	})

	s.logger.Info().Str("userID", created.ID).Msg("user created")
	return created, nil
}

// VerifyEmail consumes a verification code. Verifying an already-verified
// account succeeds (idempotent); a wrong code never flips the flag.
func (s *Service) VerifyEmail(ctx context.Context, userID, code string) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			s.logger.Debug().Str("userID", userID).Msg("verification attempt for unknown user")
			return errs.Wrapf(errs.ErrNotFound, "[VerifyEmail] could not verify user")
		}
		return errs.Wrapf(errs.ErrInternal, "[VerifyEmail] GetByID: %v", err)
	}

	if user.Verified {
		return nil
	}

	if user.VerificationCode != code {
		return errs.Wrapf(errs.ErrBadRequest, "[VerifyEmail] could not verify user")
	}

	user.Verified = true
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return errs.Wrapf(errs.ErrInternal, "[VerifyEmail] Users.Update: %v", err)
	}

	s.logger.Info().Str("userID", user.ID).Msg("user verified")
	return nil
}

// ForgotPassword issues a new reset code, overwriting any prior one. An
// unknown email reports the same success outcome as a known one to resist
// account enumeration; an unverified account is the single exception and
// returns ErrNotVerified.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repos.Users.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			s.logger.Debug().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return errs.Wrapf(errs.ErrInternal, "[ForgotPassword] GetByEmail: %v", err)
	}

	if !user.Verified {
		return errs.ErrNotVerified
	}

	code := s.newCode()
	user.PasswordResetCode = &code
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return errs.Wrapf(errs.ErrInternal, "[ForgotPassword] Users.Update: %v", err)
	}

	s.dispatch(ctx, notify.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body:    fmt.Sprintf("Password reset code: %s. ID: %s", code, user.ID),
	})

	s.logger.Info().Str("userID", user.ID).Msg("password reset email sent")
	return nil
}

// ResetPassword consumes a reset code, replaces the password digest, and
// revokes every session the user owns. No token issued before the reset
// may remain usable afterwards.
func (s *Service) ResetPassword(ctx context.Context, userID, code, newPassword string) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return errs.Wrapf(errs.ErrBadRequest, "[ResetPassword] unknown user")
		}
		return errs.Wrapf(errs.ErrInternal, "[ResetPassword] GetByID: %v", err)
	}

	if user.PasswordResetCode == nil || *user.PasswordResetCode != code {
		return errs.Wrapf(errs.ErrBadRequest, "[ResetPassword] reset code mismatch")
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return errs.Wrapf(errs.ErrInternal, "[ResetPassword] hashing password: %v", err)
	}

	user.PasswordResetCode = nil
	user.PasswordHash = passwordHash
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return errs.Wrapf(errs.ErrInternal, "[ResetPassword] Users.Update: %v", err)
	}

	if err := s.repos.Sessions.InvalidateAll(ctx, user.ID); err != nil {
		return errs.Wrapf(errs.ErrInternal, "[ResetPassword] Sessions.InvalidateAll: %v", err)
	}

	s.logger.Info().Str("userID", user.ID).Msg("password reset, all sessions invalidated")
	return nil
}

// dispatch sends a notification without failing the calling flow
func (s *Service) dispatch(ctx context.Context, msg notify.Message) {
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("failed to send email")
	}
}
