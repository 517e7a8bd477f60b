package response

import (
	"time"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

// Shift is the roster view of a shift. The member list is truncated for
// display; MoreNames counts the hidden members.
type Shift struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Day          domain.Day `json:"day"`
	StartTime    *time.Time `json:"startTime"`
	HeadCount    int        `json:"headCount"`
	CurrentCount int        `json:"currentCount"`
	Points       int        `json:"points"`
	IsFull       bool       `json:"isFull"`
	UserNames    []string   `json:"userNames"`
	MoreNames    int        `json:"moreNames"`
}

func NewShift(s domain.Shift) Shift {
	names := make([]string, len(s.UserNames))
	for i, name := range s.UserNames {
		names[i] = domain.FormatFullName(name)
	}
	shown, more := domain.TruncateNames(names, domain.MaxRosterNames)

	return Shift{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		Day:          s.Day,
		StartTime:    s.StartTime,
		HeadCount:    s.HeadCount,
		CurrentCount: s.CurrentCount,
		Points:       s.Points,
		IsFull:       s.IsFull(),
		UserNames:    shown,
		MoreNames:    more,
	}
}

func NewShifts(shifts []domain.Shift) []Shift {
	out := make([]Shift, len(shifts))
	for i, s := range shifts {
		out[i] = NewShift(s)
	}
	return out
}
