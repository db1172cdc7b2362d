package users

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// User is an account record. Users are created by registration and mutated
// by email verification, password reset, and password change. They are never
// hard-deleted.
type User struct {
	ID                string    `json:"id,omitempty"`        // Unique identifier for the user
	Email             string    `json:"email,omitempty"`     // Lower-cased, unique email address
	FirstName         string    `json:"firstName,omitempty"` // First name of the user
	LastName          string    `json:"lastName,omitempty"`  // Last name of the user
	PasswordHash      string    `json:"-"`                   // Hashed password - never serialize
	VerificationCode  string    `json:"-"`                   // One-time email verification code, set at creation
	PasswordResetCode *string   `json:"-"`                   // Active password reset code, nil when none issued
	Verified          bool      `json:"verified,omitempty"`  // Has the user proven email ownership
	CreatedAt         time.Time `json:"createdAt,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// NormalizeEmail lower-cases and trims an email address. Every lookup and
// write goes through this so that case variants resolve to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength checks if password meets security requirements:
// - 8 to 32 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 32 {
		return fmt.Errorf("password must be between 8 and 32 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
