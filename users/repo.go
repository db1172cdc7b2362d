package users

import "context"

// UserRepo is the storage interface for user accounts. Implementations
// return errors.ErrNotFound for missing records and errors.ErrConflict for
// duplicate email addresses.
type UserRepo interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}
