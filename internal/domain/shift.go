package domain

import (
	"sort"
	"time"
)

// Day is the weekend day a shift takes place on. The German labels are the
// wire and database representation.
type Day string

const (
	DayFriday   Day = "Freitag"
	DaySaturday Day = "Samstag"
	DaySunday   Day = "Sonntag"
	DayMonday   Day = "Montag"
)

// Days lists the valid days in schedule order.
func Days() []Day {
	return []Day{DayFriday, DaySaturday, DaySunday, DayMonday}
}

// Rank places days in schedule order. Anything outside the known set ranks
// 0 and therefore sorts before Friday.
func (d Day) Rank() int {
	switch d {
	case DayFriday:
		return 1
	case DaySaturday:
		return 2
	case DaySunday:
		return 3
	case DayMonday:
		return 4
	default:
		return 0
	}
}

func (d Day) Valid() bool {
	return d.Rank() > 0
}

// Shift is a volunteer work slot. CurrentCount and UserNames are derived
// from the membership relation; UserNames is a display projection only,
// membership itself is keyed by participant id.
type Shift struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Day          Day        `json:"day"`
	StartTime    *time.Time `json:"startTime"`
	HeadCount    int        `json:"headCount"`
	CurrentCount int        `json:"currentCount"`
	Points       int        `json:"points"`
	UserNames    []string   `json:"userNames"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (s Shift) IsFull() bool {
	return s.CurrentCount >= s.HeadCount
}

// clockMinutes reduces a timestamp to its wall-clock time of day. The date
// part of StartTime is a placeholder and must not influence ordering.
func clockMinutes(t *time.Time) int {
	if t == nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// SortShifts orders shifts by day (Freitag < Samstag < Sonntag < Montag,
// unknown days first), then by time of day. The sort is stable, so shifts
// with equal day and time keep their relative order.
func SortShifts(shifts []Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		ri, rj := shifts[i].Day.Rank(), shifts[j].Day.Rank()
		if ri != rj {
			return ri < rj
		}
		return clockMinutes(shifts[i].StartTime) < clockMinutes(shifts[j].StartTime)
	})
}
