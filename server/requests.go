package server

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/jrsteele09/go-session-auth/users"
)

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r createSessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type createUserRequest struct {
	Email                string `json:"email"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

func (r createUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.By(passwordStrengthRule)),
		validation.Field(&r.PasswordConfirmation, validation.Required, validation.In(r.Password).Error("passwords do not match")),
	)
}

func passwordStrengthRule(value interface{}) error {
	password, _ := value.(string)
	return users.ValidatePasswordStrength(password)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r forgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type resetPasswordRequest struct {
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

func (r resetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.By(passwordStrengthRule)),
		validation.Field(&r.PasswordConfirmation, validation.Required, validation.In(r.Password).Error("passwords do not match")),
	)
}

// decodeRequest unmarshals the body into req and runs its validation rules.
// A false return means the response has already been written.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req interface {
	Validate() error
}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.respondBadRequest(w, "invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		s.respondBadRequest(w, err.Error())
		return false
	}
	return true
}
