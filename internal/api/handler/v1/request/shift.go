package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

// startTimeLayout is the wire format of shift start times, e.g. "16:30".
const startTimeLayout = "15:04"

func dayRule() validation.Rule {
	days := domain.Days()
	values := make([]interface{}, len(days))
	for i, d := range days {
		values[i] = string(d)
	}
	return validation.In(values...)
}

type CreateShiftRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Day         string  `json:"day"`
	StartTime   string  `json:"startTime"`
	HeadCount   int     `json:"headCount"`
	Points      int     `json:"points"`
}

func (req *CreateShiftRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Day, validation.Required, dayRule()),
		validation.Field(&req.StartTime, validation.Required, validation.By(validateStartTime)),
		validation.Field(&req.HeadCount, validation.Required, validation.Min(1)),
		validation.Field(&req.Points, validation.Required, validation.Min(1), validation.Max(2)),
	)
}

// ToDomain assumes Validate has passed.
func (req *CreateShiftRequest) ToDomain() domain.Shift {
	start, _ := time.Parse(startTimeLayout, req.StartTime)
	return domain.Shift{
		Name:        req.Name,
		Description: req.Description,
		Day:         domain.Day(req.Day),
		StartTime:   &start,
		HeadCount:   req.HeadCount,
		Points:      req.Points,
	}
}

type UpdateShiftRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Day         *string `json:"day"`
	StartTime   *string `json:"startTime"`
	HeadCount   *int    `json:"headCount"`
	Points      *int    `json:"points"`
}

func (req *UpdateShiftRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.Day, dayRule()),
		validation.Field(&req.StartTime, validation.By(validateStartTimePtr)),
		validation.Field(&req.HeadCount, validation.Min(1)),
		validation.Field(&req.Points, validation.Min(1), validation.Max(2)),
	)
}

func validateStartTime(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(startTimeLayout, s); err != nil {
		return fmt.Errorf("must be a time in HH:mm format")
	}
	return nil
}

func validateStartTimePtr(value interface{}) error {
	s, _ := value.(*string)
	if s == nil {
		return nil
	}
	return validateStartTime(*s)
}
