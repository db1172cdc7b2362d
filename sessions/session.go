package sessions

import "time"

// Session is a persisted revocation record. It references its owning user
// by ID only and is never deleted: logout and password reset flip the Valid
// flag, so the store behaves as an append-only revocation log.
type Session struct {
	ID        string    // Unique session identifier (UUID)
	UserID    string    // Owning user ID (reference, never embedded)
	Valid     bool      // False once the session has been revoked
	CreatedAt time.Time
	UpdatedAt time.Time
}
