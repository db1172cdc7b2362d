package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
	nowFunc  func() time.Time
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
		nowFunc:  time.Now,
	}
}

// WithNowFunc overrides the repo clock (primarily for testing)
func (ur *FakeUserRepo) WithNowFunc(now func() time.Time) *FakeUserRepo {
	ur.nowFunc = now
	return ur
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIds[user.Email]; ok {
		return nil, errs.ErrConflict
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.CreatedAt = ur.nowFunc()
	stored.UpdatedAt = stored.CreatedAt

	ur.users[stored.ID] = &stored
	ur.emailIds[stored.Email] = stored.ID

	copied := stored
	return &copied, nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *ur.users[id]
	return &copied, nil
}

func (ur *FakeUserRepo) Update(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	existing, ok := ur.users[user.ID]
	if !ok {
		return errs.ErrNotFound
	}

	stored := *user
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = ur.nowFunc()

	delete(ur.emailIds, existing.Email)
	ur.users[stored.ID] = &stored
	ur.emailIds[stored.Email] = stored.ID
	return nil
}
