package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(day, hour, minute int) *time.Time {
	// Deliberately varies the calendar date so tests catch any sort that
	// compares full timestamps instead of wall-clock time.
	t := time.Date(2000, 1, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestDayRank(t *testing.T) {
	assert.Equal(t, 1, DayFriday.Rank())
	assert.Equal(t, 2, DaySaturday.Rank())
	assert.Equal(t, 3, DaySunday.Rank())
	assert.Equal(t, 4, DayMonday.Rank())
	assert.Equal(t, 0, Day("").Rank())
	assert.Equal(t, 0, Day("Dienstag").Rank())
}

func TestSortShiftsGroupsByDayThenTime(t *testing.T) {
	shifts := []Shift{
		{ID: 1, Name: "Aufräumen", Day: DayMonday, StartTime: ts(1, 11, 0)},
		{ID: 2, Name: "Frühstück", Day: DaySaturday, StartTime: ts(28, 9, 30)},
		{ID: 3, Name: "Bar", Day: DayFriday, StartTime: ts(5, 22, 0)},
		{ID: 4, Name: "Einlass", Day: DayFriday, StartTime: ts(30, 15, 0)},
		{ID: 5, Name: "Abwasch", Day: DaySaturday, StartTime: ts(2, 9, 30)},
	}

	SortShifts(shifts)

	var ids []uint
	for _, s := range shifts {
		ids = append(ids, s.ID)
	}
	// Friday by time, then Saturday with the 9:30 tie kept stable, then Monday.
	assert.Equal(t, []uint{4, 3, 2, 5, 1}, ids)
}

func TestSortShiftsIgnoresDatePortion(t *testing.T) {
	// The stored date of the earlier wall-clock shift is *later* in the
	// calendar; ordering must still go by hour and minute only.
	shifts := []Shift{
		{ID: 1, Day: DaySunday, StartTime: ts(20, 18, 0)},
		{ID: 2, Day: DaySunday, StartTime: ts(25, 10, 0)},
	}

	SortShifts(shifts)

	assert.Equal(t, uint(2), shifts[0].ID)
}

func TestSortShiftsUnknownDayFirst(t *testing.T) {
	shifts := []Shift{
		{ID: 1, Day: DayFriday, StartTime: ts(1, 12, 0)},
		{ID: 2, Day: "", StartTime: ts(1, 23, 0)},
	}

	SortShifts(shifts)

	assert.Equal(t, uint(2), shifts[0].ID)
}

func TestSortShiftsDeterministic(t *testing.T) {
	a := []Shift{
		{ID: 1, Day: DaySaturday, StartTime: ts(1, 9, 0)},
		{ID: 2, Day: DayFriday, StartTime: ts(1, 18, 0)},
		{ID: 3, Day: DayFriday, StartTime: ts(1, 9, 0)},
	}
	b := []Shift{a[1], a[2], a[0]}

	SortShifts(a)
	SortShifts(b)
	assert.Equal(t, a, b)

	// Sorting an already sorted list changes nothing.
	c := append([]Shift(nil), a...)
	SortShifts(a)
	assert.Equal(t, c, a)
}
