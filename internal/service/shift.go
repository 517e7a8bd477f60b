package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/repository"
)

var (
	ErrShiftNotFound = repository.ErrShiftNotFound
	ErrShiftNotEmpty = repository.ErrShiftNotEmpty
	ErrShiftFull     = repository.ErrShiftFull
	ErrAlreadyMember = repository.ErrAlreadyMember
	ErrNotMember     = repository.ErrNotMember
)

type ShiftRepository interface {
	List(ctx context.Context) ([]domain.Shift, error)
	FindByID(ctx context.Context, id uint) (domain.Shift, error)
	Create(ctx context.Context, shift domain.Shift) (domain.Shift, error)
	CreateBatch(ctx context.Context, shifts []domain.Shift) ([]domain.Shift, error)
	Update(ctx context.Context, shift domain.Shift) (domain.Shift, error)
	Delete(ctx context.Context, id uint) error
	AddParticipant(ctx context.Context, shiftID, participantID uint) (domain.Shift, error)
	RemoveParticipant(ctx context.Context, shiftID, participantID uint) (domain.Shift, error)
}

type ShiftService struct {
	repo ShiftRepository
}

func NewShiftService(repo ShiftRepository) *ShiftService {
	return &ShiftService{
		repo: repo,
	}
}

// List returns all shifts in roster order: grouped by day, sorted by
// wall-clock start time within the day.
func (s *ShiftService) List(ctx context.Context) ([]domain.Shift, error) {
	shifts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	domain.SortShifts(shifts)

	return shifts, nil
}

func (s *ShiftService) Get(ctx context.Context, id uint) (domain.Shift, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return shift, nil
}

func (s *ShiftService) Create(ctx context.Context, shift domain.Shift) (domain.Shift, error) {
	created, err := s.repo.Create(ctx, shift)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ShiftUpdate mirrors ParticipantUpdate: nil leaves the field unchanged.
type ShiftUpdate struct {
	Name        *string
	Description *string
	Day         *domain.Day
	StartTime   *time.Time
	HeadCount   *int
	Points      *int
}

func (s *ShiftService) Update(ctx context.Context, id uint, update ShiftUpdate) (domain.Shift, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if update.Name != nil {
		shift.Name = *update.Name
	}
	if update.Description != nil {
		shift.Description = update.Description
	}
	if update.Day != nil {
		shift.Day = *update.Day
	}
	if update.StartTime != nil {
		shift.StartTime = update.StartTime
	}
	if update.HeadCount != nil {
		shift.HeadCount = *update.HeadCount
	}
	if update.Points != nil {
		shift.Points = *update.Points
	}

	updated, err := s.repo.Update(ctx, shift)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ShiftService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ShiftService) Join(ctx context.Context, shiftID, participantID uint) (domain.Shift, error) {
	shift, err := s.repo.AddParticipant(ctx, shiftID, participantID)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("s.repo.AddParticipant -> %w", err)
	}

	return shift, nil
}

func (s *ShiftService) Leave(ctx context.Context, shiftID, participantID uint) (domain.Shift, error) {
	shift, err := s.repo.RemoveParticipant(ctx, shiftID, participantID)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("s.repo.RemoveParticipant -> %w", err)
	}

	return shift, nil
}

// csvColumns are the required header fields of a shift import file.
var csvColumns = []string{"day", "starttime", "name", "description", "headcount", "points"}

// ImportCSV parses a shift plan and creates all rows in one transaction.
// Expected columns: day, starttime (HH:mm), name, description, headcount,
// points. A single bad row rejects the whole file.
func (s *ShiftService) ImportCSV(ctx context.Context, r io.Reader) ([]domain.Shift, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv is missing column %q", col)
		}
	}

	var shifts []domain.Shift
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		shift, err := parseShiftRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		shifts = append(shifts, shift)
	}

	if len(shifts) == 0 {
		return nil, errors.New("csv contains no shifts")
	}

	created, err := s.repo.CreateBatch(ctx, shifts)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return created, nil
}

func parseShiftRecord(record []string, index map[string]int) (domain.Shift, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	day := domain.Day(field("day"))
	if !day.Valid() {
		return domain.Shift{}, fmt.Errorf("unknown day %q", field("day"))
	}

	start, err := time.Parse("15:04", field("starttime"))
	if err != nil {
		return domain.Shift{}, fmt.Errorf("bad starttime %q: %w", field("starttime"), err)
	}

	name := field("name")
	if name == "" {
		return domain.Shift{}, errors.New("missing name")
	}

	headCount, err := strconv.Atoi(field("headcount"))
	if err != nil || headCount < 1 {
		return domain.Shift{}, fmt.Errorf("bad headcount %q", field("headcount"))
	}

	points, err := strconv.Atoi(field("points"))
	if err != nil || points < 1 || points > 2 {
		return domain.Shift{}, fmt.Errorf("bad points %q", field("points"))
	}

	shift := domain.Shift{
		Name:      name,
		Day:       day,
		StartTime: &start,
		HeadCount: headCount,
		Points:    points,
	}
	if desc := field("description"); desc != "" {
		shift.Description = &desc
	}

	return shift, nil
}
