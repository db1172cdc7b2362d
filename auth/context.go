package auth

import (
	"context"

	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/token"
	"github.com/rs/zerolog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const identityKey ContextKey = "identity"

// Deserializer resolves the caller's identity from a bearer token. It only
// depends on the token codec; revocation is checked inside Verify.
type Deserializer struct {
	codec  *token.Codec
	logger zerolog.Logger
}

// NewDeserializer creates a Deserializer over the given codec
func NewDeserializer(codec *token.Codec, logger zerolog.Logger) *Deserializer {
	return &Deserializer{codec: codec, logger: logger}
}

// Deserialize resolves a bearer token to one of three outcomes:
//   - no token supplied: (nil, nil) - the request proceeds anonymously
//   - structurally invalid token: ErrForbidden - a hard rejection
//   - revoked but well-formed token: (nil, nil) - silently anonymous
//
// Malformed tokens are rejected, revoked ones are not: clients holding a
// logged-out token keep working as anonymous callers.
func (d *Deserializer) Deserialize(ctx context.Context, bearerToken string) (*token.AccessClaims, error) {
	if bearerToken == "" {
		return nil, nil
	}

	claims, revoked, err := d.codec.VerifyAccess(ctx, bearerToken)
	if err != nil {
		if errs.Is(err, errs.ErrInvalidToken) {
			d.logger.Debug().Err(err).Msg("rejecting malformed bearer token")
			return nil, errs.Wrapf(errs.ErrForbidden, "[Deserialize] invalid access token")
		}
		return nil, err
	}
	if revoked {
		return nil, nil
	}

	return claims, nil
}

// WithIdentity returns a context carrying the resolved claims
func WithIdentity(ctx context.Context, claims *token.AccessClaims) context.Context {
	return context.WithValue(ctx, identityKey, claims)
}

// IdentityFromContext retrieves the resolved claims, if any
func IdentityFromContext(ctx context.Context) (*token.AccessClaims, bool) {
	claims, ok := ctx.Value(identityKey).(*token.AccessClaims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// RequireIdentity returns the resolved claims or ErrForbidden when the
// context is anonymous.
func RequireIdentity(ctx context.Context) (*token.AccessClaims, error) {
	claims, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, errs.ErrForbidden
	}
	return claims, nil
}
