package response

import (
	"time"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

// Participant is the API view of a participant. AmountToPay is computed
// per request from the current soli discount, the spot price and payments.
type Participant struct {
	ID          uint             `json:"id"`
	Username    *string          `json:"username"`
	Type        string           `json:"type"`
	Nickname    string           `json:"nickname"`
	FullName    *string          `json:"fullName"`
	Phone       *string          `json:"phone"`
	SoliAmount  float32          `json:"soliAmount"`
	TakesSoli   bool             `json:"takesSoli"`
	DonatesSoli bool             `json:"donatesSoli"`
	AmountPaid  float32          `json:"amountPaid"`
	AmountToPay float32          `json:"amountToPay"`
	ShiftPoints int              `json:"shiftPoints"`
	SpotTypeID  *uint            `json:"spotTypeId"`
	SpotType    *domain.SpotType `json:"spotType"`
	LastLogin   *time.Time       `json:"lastLogin"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func NewParticipant(p domain.Participant, soliDiscount float32) Participant {
	return Participant{
		ID:          p.ID,
		Username:    p.Username,
		Type:        p.Type,
		Nickname:    p.Nickname,
		FullName:    p.FullName,
		Phone:       p.Phone,
		SoliAmount:  p.SoliAmount,
		TakesSoli:   p.TakesSoli,
		DonatesSoli: p.DonatesSoli,
		AmountPaid:  p.AmountPaid,
		AmountToPay: p.AmountToPay(soliDiscount),
		ShiftPoints: p.ShiftPoints,
		SpotTypeID:  p.SpotTypeID,
		SpotType:    p.SpotType,
		LastLogin:   p.LastLogin,
		CreatedAt:   p.CreatedAt,
	}
}

func NewParticipants(participants []domain.Participant, soliDiscount float32) []Participant {
	out := make([]Participant, len(participants))
	for i, p := range participants {
		out[i] = NewParticipant(p, soliDiscount)
	}
	return out
}
