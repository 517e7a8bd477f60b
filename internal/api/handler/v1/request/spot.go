package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSpotRequest struct {
	Name        string  `json:"name"`
	Price       uint16  `json:"price"`
	Limit       uint16  `json:"limit"`
	Description *string `json:"description"`
}

func (req *CreateSpotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Limit, validation.Required, validation.Min(uint16(1))),
	)
}

type UpdateSpotRequest struct {
	Name        *string `json:"name"`
	Price       *uint16 `json:"price"`
	Limit       *uint16 `json:"limit"`
	Description *string `json:"description"`
}

func (req *UpdateSpotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 50)),
		validation.Field(&req.Limit, validation.Min(uint16(1))),
	)
}
