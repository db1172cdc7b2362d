package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
)

var _ sessions.Repo = (*SessionRepo)(nil)

type SessionRepo struct {
	db DBTX
}

func NewSessionRepo(db DBTX) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, userID string) (*sessions.Session, error) {
	query := `INSERT INTO sessions (user_id)
	          VALUES ($1)
	          RETURNING id, user_id, valid, created_at, updated_at`

	session := &sessions.Session{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&session.ID, &session.UserID, &session.Valid, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	query := `SELECT id, user_id, valid, created_at, updated_at
	          FROM sessions WHERE id = $1`

	session := &sessions.Session{}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID, &session.UserID, &session.Valid, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *SessionRepo) Invalidate(ctx context.Context, sessionID string) error {
	query := `UPDATE sessions SET valid = FALSE, updated_at = now() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SessionRepo) InvalidateAll(ctx context.Context, userID string) error {
	query := `UPDATE sessions SET valid = FALSE, updated_at = now() WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
