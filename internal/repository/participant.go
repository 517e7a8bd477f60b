package repository

import (
	"context"
	"fmt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/repository/dao"
)

var (
	ErrParticipantExists   = dao.ErrParticipantExists
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrSpotFull            = dao.ErrSpotFull
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindByID(ctx context.Context, id uint) (dao.Participant, error)
	FindByUsername(ctx context.Context, username string) (dao.Participant, error)
	List(ctx context.Context) ([]dao.Participant, error)
	Update(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	Delete(ctx context.Context, id uint) error
	AssignSpot(ctx context.Context, participantID uint, spotTypeID *uint) error
	ShiftPoints(ctx context.Context, participantID uint) (int, error)
	ShiftPointsByParticipant(ctx context.Context) (map[uint]int, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.withShiftPoints(ctx, found)
}

func (r *ParticipantRepository) FindByUsername(ctx context.Context, username string) (domain.Participant, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.withShiftPoints(ctx, found)
}

func (r *ParticipantRepository) List(ctx context.Context) ([]domain.Participant, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	points, err := r.dao.ShiftPointsByParticipant(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ShiftPointsByParticipant -> %w", err)
	}

	participants := make([]domain.Participant, len(found))
	for i, p := range found {
		participants[i] = r.daoToDomain(p)
		participants[i].ShiftPoints = points[p.ID]
	}

	return participants, nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	// Reload so the spot association reflects a changed foreign key.
	return r.FindByID(ctx, updated.ID)
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) AssignSpot(ctx context.Context, participantID uint, spotTypeID *uint) error {
	if err := r.dao.AssignSpot(ctx, participantID, spotTypeID); err != nil {
		return fmt.Errorf("r.dao.AssignSpot -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) withShiftPoints(ctx context.Context, p dao.Participant) (domain.Participant, error) {
	points, err := r.dao.ShiftPoints(ctx, p.ID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.ShiftPoints -> %w", err)
	}

	participant := r.daoToDomain(p)
	participant.ShiftPoints = points

	return participant, nil
}

func (r *ParticipantRepository) domainToDao(p domain.Participant) dao.Participant {
	return dao.Participant{
		ID:          p.ID,
		Username:    p.Username,
		Password:    p.Password,
		Type:        p.Type,
		Nickname:    p.Nickname,
		FullName:    p.FullName,
		Phone:       p.Phone,
		SoliAmount:  p.SoliAmount,
		TakesSoli:   p.TakesSoli,
		DonatesSoli: p.DonatesSoli,
		AmountPaid:  p.AmountPaid,
		IsActivated: p.IsActivated,
		LastLogin:   p.LastLogin,
		SpotTypeID:  p.SpotTypeID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	participant := domain.Participant{
		ID:          p.ID,
		Username:    p.Username,
		Password:    p.Password,
		Type:        p.Type,
		Nickname:    p.Nickname,
		FullName:    p.FullName,
		Phone:       p.Phone,
		SoliAmount:  p.SoliAmount,
		TakesSoli:   p.TakesSoli,
		DonatesSoli: p.DonatesSoli,
		AmountPaid:  p.AmountPaid,
		IsActivated: p.IsActivated,
		LastLogin:   p.LastLogin,
		SpotTypeID:  p.SpotTypeID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.SpotType != nil {
		spot := spotDaoToDomain(*p.SpotType)
		participant.SpotType = &spot
	}

	return participant
}
