package fakesessionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions map[string]*sessions.Session
	lock     sync.RWMutex
	nowFunc  func() time.Time
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]*sessions.Session),
		nowFunc:  time.Now,
	}
}

// WithNowFunc overrides the repo clock (primarily for testing)
func (sr *FakeSessionRepo) WithNowFunc(now func() time.Time) *FakeSessionRepo {
	sr.nowFunc = now
	return sr
}

func (sr *FakeSessionRepo) Create(_ context.Context, userID string) (*sessions.Session, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	now := sr.nowFunc()
	session := &sessions.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Valid:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sr.sessions[session.ID] = session

	copied := *session
	return &copied, nil
}

func (sr *FakeSessionRepo) Get(_ context.Context, sessionID string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (sr *FakeSessionRepo) Invalidate(_ context.Context, sessionID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return nil
	}
	session.Valid = false
	session.UpdatedAt = sr.nowFunc()
	return nil
}

func (sr *FakeSessionRepo) InvalidateAll(_ context.Context, userID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for _, session := range sr.sessions {
		if session.UserID == userID {
			session.Valid = false
			session.UpdatedAt = sr.nowFunc()
		}
	}
	return nil
}
