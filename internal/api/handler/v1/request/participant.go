package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

// UpdateParticipantRequest is a partial update; absent fields stay
// unchanged. A spotTypeId of 0 gives the spot back.
type UpdateParticipantRequest struct {
	Username    *string  `json:"username"`
	Nickname    *string  `json:"nickname"`
	FullName    *string  `json:"fullName"`
	Phone       *string  `json:"phone"`
	Type        *string  `json:"type"`
	AmountPaid  *float32 `json:"amountPaid"`
	SoliAmount  *float32 `json:"soliAmount"`
	TakesSoli   *bool    `json:"takesSoli"`
	DonatesSoli *bool    `json:"donatesSoli"`
	SpotTypeID  *uint    `json:"spotTypeId"`
}

func (req *UpdateParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, is.Email),
		validation.Field(&req.Nickname, validation.Length(2, 50)),
		validation.Field(&req.FullName, validation.Length(0, 100)),
		validation.Field(&req.Type, validation.In(domain.TypeRegular, domain.TypeAdmin)),
	)
}

// CreateParticipantRequest seeds a guest list row that a signup can claim
// later.
type CreateParticipantRequest struct {
	Username   string  `json:"username"`
	Nickname   string  `json:"nickname"`
	FullName   string  `json:"fullName"`
	Phone      string  `json:"phone"`
	SoliAmount float32 `json:"soliAmount"`
}

func (req *CreateParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, is.Email),
		validation.Field(&req.Nickname, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.FullName, validation.Length(0, 100)),
		validation.Field(&req.SoliAmount, validation.Min(float32(0))),
	)
}

type UpdatePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (req *UpdatePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password, req.ConfirmPassword)
}
