package domain

import (
	"math"
	"time"
)

// DefaultSoliDiscount is the fixed amount a participant who requests the
// solidarity discount pays less. Overridable through configuration.
const DefaultSoliDiscount float32 = 25

// DefaultShiftPointsTarget is the number of shift points every participant
// is expected to collect over the weekend.
const DefaultShiftPointsTarget = 2

const (
	TypeRegular = "reg"
	TypeAdmin   = "admin"
)

type Participant struct {
	ID          uint       `json:"id"`
	Username    *string    `json:"username"`
	Password    *string    `json:"-"`
	Type        string     `json:"type"`
	Nickname    string     `json:"nickname"`
	FullName    *string    `json:"fullName"`
	Phone       *string    `json:"phone"`
	SoliAmount  float32    `json:"soliAmount"`
	TakesSoli   bool       `json:"takesSoli"`
	DonatesSoli bool       `json:"donatesSoli"`
	AmountPaid  float32    `json:"amountPaid"`
	ShiftPoints int        `json:"shiftPoints"`
	IsActivated bool       `json:"-"`
	LastLogin   *time.Time `json:"lastLogin"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	SpotTypeID *uint     `json:"spotTypeId"`
	SpotType   *SpotType `json:"spotType"`
}

func (p Participant) IsAdmin() bool {
	return p.Type == TypeAdmin
}

// AmountToPay is the outstanding balance: spot price plus any pledged soli,
// minus the fixed discount when the participant takes soli, minus what was
// already paid. A participant without a spot owes nothing.
// The identity AmountPaid + AmountToPay == total price always holds.
func (p Participant) AmountToPay(soliDiscount float32) float32 {
	if p.SpotTypeID == nil || p.SpotType == nil {
		return 0
	}
	discount := float32(0)
	if p.TakesSoli {
		discount = soliDiscount
	}
	return float32(p.SpotType.Price) + p.SoliAmount - discount - p.AmountPaid
}

// NetSoli is this participant's contribution to the solidarity pool. A taker
// with a leftover pledge counts as soliAmount - discount so the pledge is not
// double counted.
func (p Participant) NetSoli(soliDiscount float32) float32 {
	if p.TakesSoli {
		return p.SoliAmount - soliDiscount
	}
	return p.SoliAmount
}

// TotalSoli sums the net solidarity balance over all participants.
func TotalSoli(participants []Participant, soliDiscount float32) float32 {
	var total float32
	for _, p := range participants {
		total += p.NetSoli(soliDiscount)
	}
	return total
}

// ClampAmount sanitizes money/count inputs: negative or NaN values become 0.
func ClampAmount(v float32) float32 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	return v
}
