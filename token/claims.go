package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-session-auth/users"
)

// AccessClaims is the payload of an access token: the session reference plus
// a snapshot of the user's public profile taken at sign time. The snapshot
// goes stale until the next refresh mints a new access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	SessionID string    `json:"sessionID"`
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefreshClaims is the payload of a refresh token. It is deliberately
// minimal: the session reference and the user ID, nothing else. Resource
// logic never sees a refresh token, it is only exchanged for access tokens.
type RefreshClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sessionID"`
	UserID    string `json:"userID"`
}

// NewAccessClaims snapshots the user's public profile for an access token
func NewAccessClaims(user *users.User, sessionID string) *AccessClaims {
	return &AccessClaims{
		SessionID: sessionID,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewRefreshClaims builds the minimal refresh token payload
func NewRefreshClaims(userID, sessionID string) *RefreshClaims {
	return &RefreshClaims{
		SessionID: sessionID,
		UserID:    userID,
	}
}

// sessionClaims is implemented by both claim types so the codec can run the
// session-validity check without knowing which class it is verifying.
type sessionClaims interface {
	jwt.Claims
	session() string
	stamp(issuedAt, expiresAt time.Time)
}

func (c *AccessClaims) session() string { return c.SessionID }

func (c *AccessClaims) stamp(issuedAt, expiresAt time.Time) {
	c.IssuedAt = jwt.NewNumericDate(issuedAt)
	c.ExpiresAt = jwt.NewNumericDate(expiresAt)
}

func (c *RefreshClaims) session() string { return c.SessionID }

func (c *RefreshClaims) stamp(issuedAt, expiresAt time.Time) {
	c.IssuedAt = jwt.NewNumericDate(issuedAt)
	c.ExpiresAt = jwt.NewNumericDate(expiresAt)
}
