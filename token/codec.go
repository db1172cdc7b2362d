package token

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/rs/zerolog"
)

// SessionGetter is the slice of the session store the codec needs for the
// revocation check on every verification.
type SessionGetter interface {
	Get(ctx context.Context, sessionID string) (*sessions.Session, error)
}

// Codec signs and verifies RS256 tokens for the two key classes.
//
// Verification is two-layered: the cryptographic/structural check
// (signature, expiry, algorithm) is necessary but not sufficient. The
// session named in the claims must also exist and still be valid, which
// requires a store lookup on every call. That lookup is what lets the
// service invalidate already-issued, unexpired tokens.
type Codec struct {
	access     *KeyPair
	refresh    *KeyPair
	sessions   SessionGetter
	accessTTL  time.Duration
	refreshTTL time.Duration
	nowFunc    func() time.Time
	logger     zerolog.Logger
}

// CodecOption defines a function type to modify the Codec instance
type CodecOption func(*Codec)

// WithTokenTTLs overrides the default access (60m) and refresh (7d) expiries
func WithTokenTTLs(accessTTL, refreshTTL time.Duration) CodecOption {
	return func(c *Codec) {
		if accessTTL > 0 {
			c.accessTTL = accessTTL
		}
		if refreshTTL > 0 {
			c.refreshTTL = refreshTTL
		}
	}
}

// WithNowFunc sets the codec clock (primarily for testing)
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec creates a codec from decoded key material. Both key pairs and
// the session getter are required.
func NewCodec(access, refresh *KeyPair, sessionGetter SessionGetter, logger zerolog.Logger, options ...CodecOption) (*Codec, error) {
	if access == nil || access.PrivateKey == nil || access.PublicKey == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewCodec] access key material is missing")
	}
	if refresh == nil || refresh.PrivateKey == nil || refresh.PublicKey == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewCodec] refresh key material is missing")
	}
	if sessionGetter == nil {
		return nil, errs.Wrapf(errs.ErrInternal, "[NewCodec] session getter is required")
	}

	codec := &Codec{
		access:     access,
		refresh:    refresh,
		sessions:   sessionGetter,
		accessTTL:  60 * time.Minute,
		refreshTTL: 7 * 24 * time.Hour,
		nowFunc:    time.Now,
		logger:     logger,
	}

	for _, opt := range options {
		opt(codec)
	}

	return codec, nil
}

// AccessTokenTTL returns the configured access token lifetime
func (c *Codec) AccessTokenTTL() time.Duration { return c.accessTTL }

// SignAccess stamps issued-at/expiry on the claims and signs them with the
// access private key.
func (c *Codec) SignAccess(claims *AccessClaims) (string, error) {
	return c.sign(claims, c.access, c.accessTTL)
}

// SignRefresh stamps issued-at/expiry on the claims and signs them with the
// refresh private key.
func (c *Codec) SignRefresh(claims *RefreshClaims) (string, error) {
	return c.sign(claims, c.refresh, c.refreshTTL)
}

// VerifyAccess verifies a token against the access key class. See Verify
// semantics on the revoked return value.
func (c *Codec) VerifyAccess(ctx context.Context, rawToken string) (claims *AccessClaims, revoked bool, err error) {
	var ac AccessClaims
	revoked, err = c.verify(ctx, rawToken, c.access, &ac)
	if err != nil || revoked {
		return nil, revoked, err
	}
	return &ac, false, nil
}

// VerifyRefresh verifies a token against the refresh key class. See Verify
// semantics on the revoked return value.
func (c *Codec) VerifyRefresh(ctx context.Context, rawToken string) (claims *RefreshClaims, revoked bool, err error) {
	var rc RefreshClaims
	revoked, err = c.verify(ctx, rawToken, c.refresh, &rc)
	if err != nil || revoked {
		return nil, revoked, err
	}
	return &rc, false, nil
}

func (c *Codec) sign(claims sessionClaims, keyPair *KeyPair, ttl time.Duration) (string, error) {
	now := c.nowFunc()
	claims.stamp(now, now.Add(ttl))

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(keyPair.PrivateKey)
	if err != nil {
		return "", errs.Wrapf(errs.ErrInternal, "failed to sign token: %v", err)
	}
	return signedToken, nil
}

// verify runs the structural check and then the session-validity lookup.
// A structural failure (malformed token, wrong algorithm, expired,
// signature mismatch) is a hard ErrInvalidToken. A token that passes the
// structural check but references a missing or invalidated session is
// reported as revoked, not as an error: the token is cryptographically
// intact but logically dead. A failing store lookup is an internal error -
// never treated as "no revocation found".
func (c *Codec) verify(ctx context.Context, rawToken string, keyPair *KeyPair, claims sessionClaims) (revoked bool, err error) {
	parsed, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errs.Wrapf(errs.ErrInvalidToken, "unexpected signing method %v", t.Header["alg"])
		}
		return keyPair.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithTimeFunc(c.nowFunc))

	if err != nil {
		return false, errs.Wrapf(errs.ErrInvalidToken, "token verification failed: %v", err)
	}
	if !parsed.Valid {
		return false, errs.Wrapf(errs.ErrInvalidToken, "token is not valid")
	}

	session, err := c.sessions.Get(ctx, claims.session())
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return true, nil
		}
		return false, errs.Wrapf(errs.ErrInternal, "session lookup failed: %v", err)
	}
	if !session.Valid {
		c.logger.Debug().Str("sessionID", session.ID).Msg("token references a revoked session")
		return true, nil
	}

	return false, nil
}
