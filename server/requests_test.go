package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSessionRequestValidation(t *testing.T) {
	require.NoError(t, createSessionRequest{Email: "john@example.com", Password: "whatever"}.Validate())
	require.Error(t, createSessionRequest{Email: "", Password: "whatever"}.Validate())
	require.Error(t, createSessionRequest{Email: "not-an-email", Password: "whatever"}.Validate())
	require.Error(t, createSessionRequest{Email: "john@example.com", Password: ""}.Validate())
}

func TestCreateUserRequestValidation(t *testing.T) {
	valid := createUserRequest{
		Email:                "john@example.com",
		FirstName:            "John",
		LastName:             "Doe",
		Password:             "Password123",
		PasswordConfirmation: "Password123",
	}
	require.NoError(t, valid.Validate())

	mismatch := valid
	mismatch.PasswordConfirmation = "Password124"
	require.Error(t, mismatch.Validate())

	weak := valid
	weak.Password = "alllowercase"
	weak.PasswordConfirmation = "alllowercase"
	require.Error(t, weak.Validate())

	short := valid
	short.Password = "Ab1"
	short.PasswordConfirmation = "Ab1"
	require.Error(t, short.Validate())

	noName := valid
	noName.FirstName = ""
	require.Error(t, noName.Validate())
}

func TestResetPasswordRequestValidation(t *testing.T) {
	require.NoError(t, resetPasswordRequest{Password: "Password123", PasswordConfirmation: "Password123"}.Validate())
	require.Error(t, resetPasswordRequest{Password: "Password123", PasswordConfirmation: "Different1"}.Validate())
	require.Error(t, resetPasswordRequest{Password: "weak", PasswordConfirmation: "weak"}.Validate())
}

func TestForgotPasswordRequestValidation(t *testing.T) {
	require.NoError(t, forgotPasswordRequest{Email: "john@example.com"}.Validate())
	require.Error(t, forgotPasswordRequest{Email: "nope"}.Validate())
	require.Error(t, forgotPasswordRequest{Email: ""}.Validate())
}
