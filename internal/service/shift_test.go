package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

// fakeShiftRepo mimics the backend of record: membership is keyed by
// participant id and capacity is adjudicated at write time.
type fakeShiftRepo struct {
	shifts  map[uint]*domain.Shift
	members map[uint]map[uint]bool
	nextID  uint
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		shifts:  make(map[uint]*domain.Shift),
		members: make(map[uint]map[uint]bool),
		nextID:  1,
	}
}

func (f *fakeShiftRepo) add(shift domain.Shift) domain.Shift {
	shift.ID = f.nextID
	f.nextID++
	f.shifts[shift.ID] = &shift
	f.members[shift.ID] = make(map[uint]bool)
	return shift
}

func (f *fakeShiftRepo) snapshot(id uint) domain.Shift {
	s := *f.shifts[id]
	s.CurrentCount = len(f.members[id])
	return s
}

func (f *fakeShiftRepo) List(_ context.Context) ([]domain.Shift, error) {
	var shifts []domain.Shift
	for id := range f.shifts {
		shifts = append(shifts, f.snapshot(id))
	}
	return shifts, nil
}

func (f *fakeShiftRepo) FindByID(_ context.Context, id uint) (domain.Shift, error) {
	if _, ok := f.shifts[id]; !ok {
		return domain.Shift{}, ErrShiftNotFound
	}
	return f.snapshot(id), nil
}

func (f *fakeShiftRepo) Create(_ context.Context, shift domain.Shift) (domain.Shift, error) {
	return f.add(shift), nil
}

func (f *fakeShiftRepo) CreateBatch(_ context.Context, shifts []domain.Shift) ([]domain.Shift, error) {
	created := make([]domain.Shift, len(shifts))
	for i, s := range shifts {
		created[i] = f.add(s)
	}
	return created, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, shift domain.Shift) (domain.Shift, error) {
	if _, ok := f.shifts[shift.ID]; !ok {
		return domain.Shift{}, ErrShiftNotFound
	}
	f.shifts[shift.ID] = &shift
	return f.snapshot(shift.ID), nil
}

func (f *fakeShiftRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.shifts[id]; !ok {
		return ErrShiftNotFound
	}
	if len(f.members[id]) > 0 {
		return ErrShiftNotEmpty
	}
	delete(f.shifts, id)
	delete(f.members, id)
	return nil
}

func (f *fakeShiftRepo) AddParticipant(_ context.Context, shiftID, participantID uint) (domain.Shift, error) {
	shift, ok := f.shifts[shiftID]
	if !ok {
		return domain.Shift{}, ErrShiftNotFound
	}
	if f.members[shiftID][participantID] {
		return domain.Shift{}, ErrAlreadyMember
	}
	if len(f.members[shiftID]) >= shift.HeadCount {
		return domain.Shift{}, ErrShiftFull
	}
	f.members[shiftID][participantID] = true
	return f.snapshot(shiftID), nil
}

func (f *fakeShiftRepo) RemoveParticipant(_ context.Context, shiftID, participantID uint) (domain.Shift, error) {
	if _, ok := f.shifts[shiftID]; !ok {
		return domain.Shift{}, ErrShiftNotFound
	}
	if !f.members[shiftID][participantID] {
		return domain.Shift{}, ErrNotMember
	}
	delete(f.members[shiftID], participantID)
	return f.snapshot(shiftID), nil
}

func TestJoinUnderCapacity(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)
	shift := repo.add(domain.Shift{Name: "Bar", Day: domain.DayFriday, HeadCount: 2, Points: 1})

	_, err := svc.Join(context.Background(), shift.ID, 1)
	require.NoError(t, err)

	updated, err := svc.Join(context.Background(), shift.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentCount)
}

func TestJoinAtCapacity(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)
	shift := repo.add(domain.Shift{Name: "Bar", Day: domain.DayFriday, HeadCount: 2})

	_, err := svc.Join(context.Background(), shift.ID, 1)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), shift.ID, 2)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), shift.ID, 3)
	assert.ErrorIs(t, err, ErrShiftFull)

	// The failed attempt must not bump the counter.
	current, err := svc.Get(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.CurrentCount)
}

func TestJoinTwice(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)
	shift := repo.add(domain.Shift{Name: "Küche", Day: domain.DaySaturday, HeadCount: 3})

	_, err := svc.Join(context.Background(), shift.ID, 7)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), shift.ID, 7)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	current, _ := svc.Get(context.Background(), shift.ID)
	assert.Equal(t, 1, current.CurrentCount)
}

func TestLeaveNotMember(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)
	shift := repo.add(domain.Shift{Name: "Abbau", Day: domain.DayMonday, HeadCount: 4})

	_, err := svc.Leave(context.Background(), shift.ID, 9)
	assert.ErrorIs(t, err, ErrNotMember)

	current, _ := svc.Get(context.Background(), shift.ID)
	assert.Equal(t, 0, current.CurrentCount)
}

func TestDeleteNonEmptyShift(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)
	shift := repo.add(domain.Shift{Name: "Bar", Day: domain.DayFriday, HeadCount: 5})

	for id := uint(1); id <= 3; id++ {
		_, err := svc.Join(context.Background(), shift.ID, id)
		require.NoError(t, err)
	}

	err := svc.Delete(context.Background(), shift.ID)
	assert.ErrorIs(t, err, ErrShiftNotEmpty)

	// Shift still exists afterwards.
	_, err = svc.Get(context.Background(), shift.ID)
	assert.NoError(t, err)
}

func TestDeleteEmptyShift(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)
	shift := repo.add(domain.Shift{Name: "Bar", Day: domain.DayFriday, HeadCount: 5})

	require.NoError(t, svc.Delete(context.Background(), shift.ID))

	_, err := svc.Get(context.Background(), shift.ID)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestListSorted(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)

	at := func(hour int) *time.Time {
		t := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC)
		return &t
	}
	repo.add(domain.Shift{Name: "Spät", Day: domain.DaySaturday, StartTime: at(22), HeadCount: 2})
	repo.add(domain.Shift{Name: "Früh", Day: domain.DayFriday, StartTime: at(16), HeadCount: 2})
	repo.add(domain.Shift{Name: "Mittag", Day: domain.DaySaturday, StartTime: at(12), HeadCount: 2})

	shifts, err := svc.List(context.Background())
	require.NoError(t, err)

	var names []string
	for _, s := range shifts {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Früh", "Mittag", "Spät"}, names)
}

func TestImportCSV(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)

	input := strings.Join([]string{
		"day,starttime,name,description,headcount,points",
		"Freitag,16:00,Einlass,Bändchen verteilen,2,1",
		"Samstag,09:30,Frühstück,,4,2",
	}, "\n")

	shifts, err := svc.ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	assert.Equal(t, "Einlass", shifts[0].Name)
	assert.Equal(t, domain.DayFriday, shifts[0].Day)
	assert.Equal(t, 16, shifts[0].StartTime.Hour())
	assert.Equal(t, 2, shifts[0].HeadCount)
	assert.Equal(t, 1, shifts[0].Points)

	assert.Nil(t, shifts[1].Description)
	assert.Equal(t, 2, shifts[1].Points)
}

func TestImportCSVRejectsBadRows(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)

	tests := []struct {
		name  string
		input string
	}{
		{
			name: "unknown day",
			input: "day,starttime,name,description,headcount,points\n" +
				"Dienstag,16:00,Einlass,,2,1",
		},
		{
			name: "bad time",
			input: "day,starttime,name,description,headcount,points\n" +
				"Freitag,25:99,Einlass,,2,1",
		},
		{
			name: "points out of range",
			input: "day,starttime,name,description,headcount,points\n" +
				"Freitag,16:00,Einlass,,2,3",
		},
		{
			name:  "missing column",
			input: "day,starttime,name,headcount,points\nFreitag,16:00,Einlass,2,1",
		},
		{
			name:  "empty file",
			input: "day,starttime,name,description,headcount,points\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ImportCSV(context.Background(), strings.NewReader(tt.input))
			assert.Error(t, err)
			// All-or-nothing: nothing may have been created.
			shifts, _ := svc.List(context.Background())
			assert.Empty(t, shifts)
		})
	}
}
