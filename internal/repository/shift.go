package repository

import (
	"context"
	"fmt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/repository/dao"
)

var (
	ErrShiftNotFound = dao.ErrShiftNotFound
	ErrShiftNotEmpty = dao.ErrShiftNotEmpty
	ErrShiftFull     = dao.ErrShiftFull
	ErrAlreadyMember = dao.ErrAlreadyMember
	ErrNotMember     = dao.ErrNotMember
)

type ShiftDAO interface {
	List(ctx context.Context) ([]dao.Shift, error)
	FindByID(ctx context.Context, id uint) (dao.Shift, error)
	Insert(ctx context.Context, shift dao.Shift) (dao.Shift, error)
	InsertBatch(ctx context.Context, shifts []dao.Shift) ([]dao.Shift, error)
	Update(ctx context.Context, shift dao.Shift) (dao.Shift, error)
	Delete(ctx context.Context, id uint) error
	AddParticipant(ctx context.Context, shiftID, participantID uint) (dao.Shift, error)
	RemoveParticipant(ctx context.Context, shiftID, participantID uint) (dao.Shift, error)
}

type ShiftRepository struct {
	dao ShiftDAO
}

func NewShiftRepository(dao ShiftDAO) *ShiftRepository {
	return &ShiftRepository{
		dao: dao,
	}
}

func (r *ShiftRepository) List(ctx context.Context) ([]domain.Shift, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	shifts := make([]domain.Shift, len(found))
	for i, s := range found {
		shifts[i] = shiftDaoToDomain(s)
	}

	return shifts, nil
}

func (r *ShiftRepository) FindByID(ctx context.Context, id uint) (domain.Shift, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return shiftDaoToDomain(found), nil
}

func (r *ShiftRepository) Create(ctx context.Context, shift domain.Shift) (domain.Shift, error) {
	created, err := r.dao.Insert(ctx, shiftDomainToDao(shift))
	if err != nil {
		return domain.Shift{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return shiftDaoToDomain(created), nil
}

func (r *ShiftRepository) CreateBatch(ctx context.Context, shifts []domain.Shift) ([]domain.Shift, error) {
	daoShifts := make([]dao.Shift, len(shifts))
	for i, s := range shifts {
		daoShifts[i] = shiftDomainToDao(s)
	}

	created, err := r.dao.InsertBatch(ctx, daoShifts)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	result := make([]domain.Shift, len(created))
	for i, s := range created {
		result[i] = shiftDaoToDomain(s)
	}

	return result, nil
}

func (r *ShiftRepository) Update(ctx context.Context, shift domain.Shift) (domain.Shift, error) {
	updated, err := r.dao.Update(ctx, shiftDomainToDao(shift))
	if err != nil {
		return domain.Shift{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.FindByID(ctx, updated.ID)
}

func (r *ShiftRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ShiftRepository) AddParticipant(ctx context.Context, shiftID, participantID uint) (domain.Shift, error) {
	updated, err := r.dao.AddParticipant(ctx, shiftID, participantID)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("r.dao.AddParticipant -> %w", err)
	}

	return shiftDaoToDomain(updated), nil
}

func (r *ShiftRepository) RemoveParticipant(ctx context.Context, shiftID, participantID uint) (domain.Shift, error) {
	updated, err := r.dao.RemoveParticipant(ctx, shiftID, participantID)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("r.dao.RemoveParticipant -> %w", err)
	}

	return shiftDaoToDomain(updated), nil
}

func shiftDomainToDao(s domain.Shift) dao.Shift {
	return dao.Shift{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Day:         string(s.Day),
		StartTime:   s.StartTime,
		HeadCount:   s.HeadCount,
		Points:      s.Points,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func shiftDaoToDomain(s dao.Shift) domain.Shift {
	shift := domain.Shift{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		Day:          domain.Day(s.Day),
		StartTime:    s.StartTime,
		HeadCount:    s.HeadCount,
		CurrentCount: len(s.Participants),
		Points:       s.Points,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	// Names are a display projection; membership stays keyed by id.
	for _, p := range s.Participants {
		name := p.Nickname
		if p.FullName != nil && *p.FullName != "" {
			name = *p.FullName
		}
		shift.UserNames = append(shift.UserNames, name)
	}

	return shift
}
