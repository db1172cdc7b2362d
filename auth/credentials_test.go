package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jrsteele09/go-session-auth/auth"
	errs "github.com/jrsteele09/go-session-auth/internal/errors"
	fakesessionrepo "github.com/jrsteele09/go-session-auth/sessions/repofake"
	"github.com/jrsteele09/go-session-auth/token"
	"github.com/jrsteele09/go-session-auth/users"
	fakeuserrepo "github.com/jrsteele09/go-session-auth/users/repofake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "Password123"
)

var (
	keysOnce    sync.Once
	accessKeys  *token.KeyPair
	refreshKeys *token.KeyPair
)

func testKeys(t *testing.T) (*token.KeyPair, *token.KeyPair) {
	t.Helper()
	keysOnce.Do(func() {
		var err error
		accessKeys, err = token.GenerateKeyPair(2048)
		if err != nil {
			panic(err)
		}
		refreshKeys, err = token.GenerateKeyPair(2048)
		if err != nil {
			panic(err)
		}
	})
	return accessKeys, refreshKeys
}

type testFixture struct {
	userRepo    *fakeuserrepo.FakeUserRepo
	sessionRepo *fakesessionrepo.FakeSessionRepo
	codec       *token.Codec
	hasher      users.Hasher
	service     *auth.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	access, refresh := testKeys(t)
	ur := fakeuserrepo.NewFakeUserRepo()
	sr := fakesessionrepo.NewFakeSessionRepo()
	hasher := users.NewBcryptHasher(4)

	codec, err := token.NewCodec(access, refresh, sr, zerolog.Nop())
	require.NoError(t, err)

	service, err := auth.NewService(auth.Repos{Users: ur, Sessions: sr}, codec, hasher, zerolog.Nop())
	require.NoError(t, err)

	return &testFixture{
		userRepo:    ur,
		sessionRepo: sr,
		codec:       codec,
		hasher:      hasher,
		service:     service,
	}
}

func (f *testFixture) createTestUser(t *testing.T, email, password string, verified bool) *users.User {
	t.Helper()

	passwordHash, err := f.hasher.Hash(password)
	require.NoError(t, err)

	created, err := f.userRepo.Create(context.Background(), &users.User{
		Email:            users.NormalizeEmail(email),
		FirstName:        "John",
		LastName:         "Doe",
		PasswordHash:     passwordHash,
		VerificationCode: "code-1",
		Verified:         verified,
	})
	require.NoError(t, err)
	return created
}

func TestLoginReturnsUsableTokenPair(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	user := f.createTestUser(t, testUserEmail, testUserPassword, true)

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, revoked, err := f.codec.VerifyAccess(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.False(t, revoked)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)

	refreshClaims, revoked, err := f.codec.VerifyRefresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.False(t, revoked)
	require.Equal(t, claims.SessionID, refreshClaims.SessionID)
}

func TestLoginNormalizesEmail(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, true)

	_, err := f.service.Login(context.Background(), "  John.Doe@Example.COM ", testUserPassword)
	require.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createTestUser(t, testUserEmail, testUserPassword, true)

	_, unknownErr := f.service.Login(ctx, "nobody@example.com", testUserPassword)
	_, wrongErr := f.service.Login(ctx, testUserEmail, "WrongPassword1")

	// Unknown email and wrong password must be byte-identical to the caller.
	require.ErrorIs(t, unknownErr, errs.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, errs.ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginUnverifiedUser(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, false)

	_, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.ErrorIs(t, err, errs.ErrNotVerified)
}

func TestRefreshMintsFreshSnapshotForSameSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	user := f.createTestUser(t, testUserEmail, testUserPassword, true)

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	oldClaims, _, err := f.codec.VerifyAccess(ctx, pair.AccessToken)
	require.NoError(t, err)

	// Profile changes after login must show up in the refreshed token.
	user.FirstName = "Jonathan"
	require.NoError(t, f.userRepo.Update(ctx, user))

	accessToken, err := f.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	newClaims, revoked, err := f.codec.VerifyAccess(ctx, accessToken)
	require.NoError(t, err)
	require.False(t, revoked)
	require.Equal(t, "Jonathan", newClaims.FirstName)
	require.Equal(t, oldClaims.SessionID, newClaims.SessionID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createTestUser(t, testUserEmail, testUserPassword, true)

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, err = f.service.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestLogoutInvalidatesOnlyThatSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createTestUser(t, testUserEmail, testUserPassword, true)

	first, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)
	second, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	firstClaims, _, err := f.codec.VerifyAccess(ctx, first.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, firstClaims.SessionID))

	// The logged-out session's tokens stop working immediately.
	_, revoked, err := f.codec.VerifyAccess(ctx, first.AccessToken)
	require.NoError(t, err)
	require.True(t, revoked)

	_, err = f.service.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	// The other session is untouched.
	_, revoked, err = f.codec.VerifyAccess(ctx, second.AccessToken)
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createTestUser(t, testUserEmail, testUserPassword, true)

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	claims, _, err := f.codec.VerifyAccess(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, claims.SessionID))
	require.NoError(t, f.service.Logout(ctx, claims.SessionID))
	require.NoError(t, f.service.Logout(ctx, "never-existed"))
}
