package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/repository"
)

var (
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrSpotFull            = repository.ErrSpotFull
	ErrSoliConflict        = errors.New("cannot give and take soli at the same time")
	ErrProtectedAccount    = errors.New("the seeded admin account cannot be deleted")
)

// ParticipantUpdate carries the mutable fields of a participant; nil means
// "leave unchanged". A SpotTypeID of 0 clears the spot assignment.
type ParticipantUpdate struct {
	Username    *string
	Nickname    *string
	FullName    *string
	Phone       *string
	Type        *string
	AmountPaid  *float32
	SoliAmount  *float32
	TakesSoli   *bool
	DonatesSoli *bool
	SpotTypeID  *uint
}

type ParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
	FindByUsername(ctx context.Context, username string) (domain.Participant, error)
	List(ctx context.Context) ([]domain.Participant, error)
	Update(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	Delete(ctx context.Context, id uint) error
	AssignSpot(ctx context.Context, participantID uint, spotTypeID *uint) error
}

type ParticipantService struct {
	repo       ParticipantRepository
	adminEmail string
}

func NewParticipantService(repo ParticipantRepository, adminEmail string) *ParticipantService {
	return &ParticipantService{
		repo:       repo,
		adminEmail: adminEmail,
	}
}

func (s *ParticipantService) Get(ctx context.Context, id uint) (domain.Participant, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return participant, nil
}

func (s *ParticipantService) GetByUsername(ctx context.Context, username string) (domain.Participant, error) {
	participant, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	return participant, nil
}

func (s *ParticipantService) List(ctx context.Context) ([]domain.Participant, error) {
	participants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return participants, nil
}

// Update applies a partial update. Solidarity rules are enforced here:
// amounts are clamped at zero, and a participant who takes the soli cannot
// keep a pledge in the same submission.
func (s *ParticipantService) Update(ctx context.Context, id uint, update ParticipantUpdate) (domain.Participant, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if update.SoliAmount != nil && update.TakesSoli != nil && *update.SoliAmount > 0 && *update.TakesSoli {
		return domain.Participant{}, ErrSoliConflict
	}

	if update.SpotTypeID != nil {
		var target *uint
		if *update.SpotTypeID != 0 {
			target = update.SpotTypeID
		}
		if err := s.repo.AssignSpot(ctx, id, target); err != nil {
			return domain.Participant{}, fmt.Errorf("s.repo.AssignSpot -> %w", err)
		}
		participant.SpotTypeID = target
	}

	applyUpdate(&participant, update)

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func applyUpdate(p *domain.Participant, u ParticipantUpdate) {
	if u.Username != nil {
		p.Username = u.Username
	}
	if u.Nickname != nil {
		p.Nickname = *u.Nickname
	}
	if u.FullName != nil {
		p.FullName = u.FullName
	}
	if u.Phone != nil {
		p.Phone = u.Phone
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.AmountPaid != nil {
		p.AmountPaid = domain.ClampAmount(*u.AmountPaid)
	}
	if u.SoliAmount != nil {
		p.SoliAmount = domain.ClampAmount(*u.SoliAmount)
	}
	if u.DonatesSoli != nil {
		p.DonatesSoli = *u.DonatesSoli
	}
	if u.TakesSoli != nil {
		p.TakesSoli = *u.TakesSoli
	}
	// Taking the fixed discount zeroes any simultaneous pledge.
	if p.TakesSoli {
		p.SoliAmount = 0
	}
}

// Create adds a not-yet-activated participant row, the admin path for
// seeding the guest list before people register themselves.
func (s *ParticipantService) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	participant.Type = domain.TypeRegular
	participant.IsActivated = false
	participant.Password = nil

	created, err := s.repo.Create(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ParticipantService) Delete(ctx context.Context, id uint) error {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if participant.Username != nil && *participant.Username == s.adminEmail {
		return ErrProtectedAccount
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ParticipantService) UpdatePassword(ctx context.Context, id uint, password string) (domain.Participant, error) {
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("hashPassword -> %w", err)
	}
	participant.Password = &hash

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
