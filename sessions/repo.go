package sessions

import "context"

// Repo defines the interface for session storage. It is the sole source of
// truth for revocation: token verification consults it on every call, so
// implementations must provide read-after-write consistency - once
// Invalidate or InvalidateAll returns, no subsequent Get may observe a
// stale Valid flag.
type Repo interface {
	// Create stores a new valid session for the user
	Create(ctx context.Context, userID string) (*Session, error)

	// Get retrieves a session by ID; errors.ErrNotFound when absent
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Invalidate flags a single session invalid. Idempotent - invalidating
	// an already-invalid session is not an error.
	Invalidate(ctx context.Context, sessionID string) error

	// InvalidateAll flags every session owned by the user invalid.
	// Idempotent, no-op when the user has no sessions.
	InvalidateAll(ctx context.Context, userID string) error
}
