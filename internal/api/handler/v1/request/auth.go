package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Lookahead groups require regexp2, the stdlib engine doesn't support them.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type SignupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Nickname        string `json:"nickname"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	SitePassword    string `json:"sitePassword"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Nickname, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.FullName, validation.Length(0, 100)),
		validation.Field(&req.SitePassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password, req.ConfirmPassword)
}

func validatePassword(password, confirm string) error {
	passwordExp := regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	if ok, _ := passwordExp.MatchString(password); !ok {
		return errInvalidPassword
	}

	if password != confirm {
		return errConfirmPasswordMismatch
	}

	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
