// Package postgres provides the production implementations of the user and
// session repositories over PostgreSQL, plus embedded schema migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jrsteele09/go-session-auth/postgres/migrations"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/pressly/goose/v3"
)

// DBTX is the subset of database/sql used by the repositories, satisfied by
// both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RepositoryManager owns the database handle and the repositories built on it
type RepositoryManager struct {
	db       *sql.DB
	users    *UserRepo
	sessions *SessionRepo
}

// NewRepositoryManager opens the database and constructs the repositories
func NewRepositoryManager(dsn string) (*RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &RepositoryManager{
		db:       db,
		users:    NewUserRepo(db),
		sessions: NewSessionRepo(db),
	}, nil
}

func (m *RepositoryManager) Users() users.UserRepo { return m.users }

func (m *RepositoryManager) Sessions() sessions.Repo { return m.sessions }

func (m *RepositoryManager) Close() error { return m.db.Close() }

// RunMigrations applies the embedded goose migrations
func (m *RepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}
