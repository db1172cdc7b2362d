package accounts_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jrsteele09/go-session-auth/accounts"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/notify"
	fakesessionrepo "github.com/jrsteele09/go-session-auth/sessions/repofake"
	"github.com/jrsteele09/go-session-auth/users"
	fakeuserrepo "github.com/jrsteele09/go-session-auth/users/repofake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testUserEmail    = "jane.doe@example.com"
	testUserPassword = "Password123"
)

// recordingNotifier captures dispatched messages instead of sending them
type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
	failWith error
}

func (n *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.messages = append(n.messages, msg)
	return nil
}

func (n *recordingNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}

type testFixture struct {
	userRepo    *fakeuserrepo.FakeUserRepo
	sessionRepo *fakesessionrepo.FakeSessionRepo
	notifier    *recordingNotifier
	hasher      users.Hasher
	service     *accounts.Service
	codes       *codeSequence
}

// codeSequence hands out deterministic one-time codes
type codeSequence struct {
	mu   sync.Mutex
	next int
}

func (c *codeSequence) generate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	return fmt.Sprintf("code-%d", c.next)
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	sr := fakesessionrepo.NewFakeSessionRepo()
	notifier := &recordingNotifier{}
	hasher := users.NewBcryptHasher(4)
	codes := &codeSequence{}

	service, err := accounts.NewService(
		accounts.Repos{Users: ur, Sessions: sr},
		hasher,
		notifier,
		zerolog.Nop(),
		accounts.WithCodeFunc(codes.generate),
	)
	require.NoError(t, err)

	return &testFixture{
		userRepo:    ur,
		sessionRepo: sr,
		notifier:    notifier,
		hasher:      hasher,
		service:     service,
		codes:       codes,
	}
}

func (f *testFixture) register(t *testing.T, email string) *users.User {
	t.Helper()

	user, err := f.service.Register(context.Background(), accounts.RegisterInput{
		Email:     email,
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  testUserPassword,
	})
	require.NoError(t, err)
	return user
}

func (f *testFixture) registerVerified(t *testing.T, email string) *users.User {
	t.Helper()

	user := f.register(t, email)
	stored, err := f.userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.VerifyEmail(context.Background(), user.ID, stored.VerificationCode))
	return user
}

func TestRegisterCreatesUnverifiedUserAndSendsCode(t *testing.T) {
	f := setupTestFixture(t)

	user := f.register(t, testUserEmail)
	require.NotEmpty(t, user.ID)
	require.Equal(t, testUserEmail, user.Email)
	require.False(t, user.Verified)

	// The digest must never be the plaintext password.
	require.NotEqual(t, testUserPassword, user.PasswordHash)
	require.True(t, f.hasher.Verify(user.PasswordHash, testUserPassword))

	messages := f.notifier.sent()
	require.Len(t, messages, 1)
	require.Equal(t, testUserEmail, messages[0].To)
	require.Contains(t, messages[0].Body, user.VerificationCode)
	require.Contains(t, messages[0].Body, user.ID)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	f := setupTestFixture(t)

	user := f.register(t, "  Jane.Doe@Example.COM ")
	require.Equal(t, "jane.doe@example.com", user.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t, testUserEmail)

	_, err := f.service.Register(context.Background(), accounts.RegisterInput{
		Email:     testUserEmail,
		FirstName: "Other",
		LastName:  "Person",
		Password:  testUserPassword,
	})
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestRegisterSurvivesNotifierFailure(t *testing.T) {
	f := setupTestFixture(t)
	f.notifier.failWith = fmt.Errorf("smtp down")

	// A failed verification email must not roll back the account.
	user := f.register(t, testUserEmail)

	stored, err := f.userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, testUserEmail, stored.Email)
}

func TestVerifyEmail(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	user := f.register(t, testUserEmail)

	// Wrong code never flips the flag.
	err := f.service.VerifyEmail(ctx, user.ID, "wrong-code")
	require.ErrorIs(t, err, errs.ErrBadRequest)

	stored, err := f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, stored.Verified)

	require.NoError(t, f.service.VerifyEmail(ctx, user.ID, stored.VerificationCode))

	stored, err = f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, stored.Verified)

	// Re-verifying is idempotent, even with a wrong code.
	require.NoError(t, f.service.VerifyEmail(ctx, user.ID, stored.VerificationCode))
	require.NoError(t, f.service.VerifyEmail(ctx, user.ID, "wrong-code"))
}

func TestVerifyEmailUnknownUser(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.VerifyEmail(context.Background(), "no-such-user", "code-1")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.service.ForgotPassword(context.Background(), "nobody@example.com"))
	require.Empty(t, f.notifier.sent())
}

func TestForgotPasswordUnverifiedUser(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t, testUserEmail)

	err := f.service.ForgotPassword(context.Background(), testUserEmail)
	require.ErrorIs(t, err, errs.ErrNotVerified)
}

func TestForgotPasswordOverwritesPriorCode(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	user := f.registerVerified(t, testUserEmail)

	require.NoError(t, f.service.ForgotPassword(ctx, testUserEmail))
	first, err := f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, first.PasswordResetCode)

	require.NoError(t, f.service.ForgotPassword(ctx, testUserEmail))
	second, err := f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, second.PasswordResetCode)
	require.NotEqual(t, *first.PasswordResetCode, *second.PasswordResetCode)

	// Only the most recent code is redeemable.
	err = f.service.ResetPassword(ctx, user.ID, *first.PasswordResetCode, "NewPassword1")
	require.ErrorIs(t, err, errs.ErrBadRequest)
	require.NoError(t, f.service.ResetPassword(ctx, user.ID, *second.PasswordResetCode, "NewPassword1"))
}

func TestResetPasswordWithoutPriorRequest(t *testing.T) {
	f := setupTestFixture(t)
	user := f.registerVerified(t, testUserEmail)

	err := f.service.ResetPassword(context.Background(), user.ID, "code-1", "NewPassword1")
	require.ErrorIs(t, err, errs.ErrBadRequest)
}

func TestResetPasswordUnknownUser(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.ResetPassword(context.Background(), "no-such-user", "code-1", "NewPassword1")
	require.ErrorIs(t, err, errs.ErrBadRequest)
}

func TestResetPasswordRevokesEverySession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	user := f.registerVerified(t, testUserEmail)

	firstSession, err := f.sessionRepo.Create(ctx, user.ID)
	require.NoError(t, err)
	secondSession, err := f.sessionRepo.Create(ctx, user.ID)
	require.NoError(t, err)
	otherSession, err := f.sessionRepo.Create(ctx, "someone-else")
	require.NoError(t, err)

	require.NoError(t, f.service.ForgotPassword(ctx, testUserEmail))
	stored, err := f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.ResetPassword(ctx, user.ID, *stored.PasswordResetCode, "NewPassword1"))

	// Every session the user owns is revoked, other users are untouched.
	for _, sessionID := range []string{firstSession.ID, secondSession.ID} {
		session, err := f.sessionRepo.Get(ctx, sessionID)
		require.NoError(t, err)
		require.False(t, session.Valid)
	}
	other, err := f.sessionRepo.Get(ctx, otherSession.ID)
	require.NoError(t, err)
	require.True(t, other.Valid)

	// New digest in place, old password gone, reset code cleared.
	updated, err := f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, f.hasher.Verify(updated.PasswordHash, "NewPassword1"))
	require.False(t, f.hasher.Verify(updated.PasswordHash, testUserPassword))
	require.Nil(t, updated.PasswordResetCode)

	// The consumed code cannot be replayed.
	err = f.service.ResetPassword(ctx, user.ID, *stored.PasswordResetCode, "AnotherPass1")
	require.ErrorIs(t, err, errs.ErrBadRequest)
}
