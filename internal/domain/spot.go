package domain

import "time"

// SpotType is an accommodation category (tent, house, tipi, room) with a
// price and an occupancy limit. CurrentCount is computed by the database
// from the participants holding the spot, never written by clients.
type SpotType struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Price        uint16    `json:"price"`
	Limit        uint16    `json:"limit"`
	Description  *string   `json:"description"`
	CurrentCount uint16    `json:"currentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s SpotType) IsFull() bool {
	return s.CurrentCount >= s.Limit
}
