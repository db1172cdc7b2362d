package auth

import (
	"context"

	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/token"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/rs/zerolog"
)

// Repos holds the repository dependencies for the credential Service
type Repos struct {
	Users    users.UserRepo // Repository for user accounts
	Sessions sessions.Repo  // Repository for session records
}

// TokenPair is the result of a successful login
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service orchestrates login, refresh, and logout over the session store
// and the token codec.
type Service struct {
	repos  Repos
	codec  *token.Codec
	hasher users.Hasher
	logger zerolog.Logger
}

// NewService initializes a credential Service with required dependencies
func NewService(repos Repos, codec *token.Codec, hasher users.Hasher, logger zerolog.Logger) (*Service, error) {
	if repos.Users == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] Sessions repo is required")
	}
	if codec == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] codec is required")
	}
	if hasher == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewService] hasher is required")
	}

	return &Service{
		repos:  repos,
		codec:  codec,
		hasher: hasher,
		logger: logger,
	}, nil
}

// Login checks the credentials and mints an access/refresh token pair bound
// to a freshly created session. An unknown email and a wrong password both
// return ErrInvalidCredentials so that the response does not reveal whether
// the account exists. An existing but unverified account returns
// ErrNotVerified, a distinct and known residual enumeration signal.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repos.Users.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, errs.Wrapf(errs.ErrInternal, "[Login] GetByEmail: %v", err)
	}

	if !user.Verified {
		return nil, errs.ErrNotVerified
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, errs.ErrInvalidCredentials
	}

	session, err := s.repos.Sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[Login] Sessions.Create: %v", err)
	}

	refreshToken, err := s.codec.SignRefresh(token.NewRefreshClaims(user.ID, session.ID))
	if err != nil {
		return nil, errs.Wrapf(err, "[Login] SignRefresh")
	}

	accessToken, err := s.codec.SignAccess(token.NewAccessClaims(user, session.ID))
	if err != nil {
		return nil, errs.Wrapf(err, "[Login] SignAccess")
	}

	s.logger.Info().Str("userID", user.ID).Str("sessionID", session.ID).Msg("session created")

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a refresh token for a new access token carrying a fresh
// user snapshot bound to the same session. The refresh token itself is not
// rotated: it stays usable until its own expiry or session invalidation,
// which means a leaked refresh token has no reuse signal (known weakness).
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, revokedSession, err := s.codec.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		if errs.Is(err, errs.ErrInvalidToken) {
			return "", errs.Wrapf(errs.ErrUnauthorized, "[Refresh] invalid refresh token")
		}
		return "", err
	}
	if revokedSession {
		return "", errs.Wrapf(errs.ErrUnauthorized, "[Refresh] session revoked")
	}

	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return "", errs.Wrapf(errs.ErrUnauthorized, "[Refresh] user no longer exists")
		}
		return "", errs.Wrapf(errs.ErrInternal, "[Refresh] GetByID: %v", err)
	}

	accessToken, err := s.codec.SignAccess(token.NewAccessClaims(user, claims.SessionID))
	if err != nil {
		return "", errs.Wrapf(err, "[Refresh] SignAccess")
	}

	return accessToken, nil
}

// Logout invalidates a single session. The sessionID must come from the
// caller's resolved access-token claims, never from request input.
// Idempotent - logging out an already-invalid session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.repos.Sessions.Invalidate(ctx, sessionID); err != nil {
		return errs.Wrapf(errs.ErrInternal, "[Logout] Sessions.Invalidate: %v", err)
	}
	s.logger.Info().Str("sessionID", sessionID).Msg("session invalidated")
	return nil
}
