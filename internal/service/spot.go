package service

import (
	"context"
	"fmt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/repository"
)

var (
	ErrSpotNotFound = repository.ErrSpotNotFound
	ErrSpotNotEmpty = repository.ErrSpotNotEmpty
)

type SpotRepository interface {
	List(ctx context.Context) ([]domain.SpotType, error)
	FindByID(ctx context.Context, id uint) (domain.SpotType, error)
	Create(ctx context.Context, spot domain.SpotType) (domain.SpotType, error)
	Update(ctx context.Context, spot domain.SpotType) (domain.SpotType, error)
	Delete(ctx context.Context, id uint) error
}

type SpotService struct {
	repo SpotRepository
}

func NewSpotService(repo SpotRepository) *SpotService {
	return &SpotService{
		repo: repo,
	}
}

func (s *SpotService) List(ctx context.Context) ([]domain.SpotType, error) {
	spots, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return spots, nil
}

func (s *SpotService) Get(ctx context.Context, id uint) (domain.SpotType, error) {
	spot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.SpotType{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return spot, nil
}

func (s *SpotService) Create(ctx context.Context, spot domain.SpotType) (domain.SpotType, error) {
	created, err := s.repo.Create(ctx, spot)
	if err != nil {
		return domain.SpotType{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// SpotUpdate follows the partial-update convention of the other services.
type SpotUpdate struct {
	Name        *string
	Price       *uint16
	Limit       *uint16
	Description *string
}

func (s *SpotService) Update(ctx context.Context, id uint, update SpotUpdate) (domain.SpotType, error) {
	spot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.SpotType{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if update.Name != nil {
		spot.Name = *update.Name
	}
	if update.Price != nil {
		spot.Price = *update.Price
	}
	if update.Limit != nil {
		spot.Limit = *update.Limit
	}
	if update.Description != nil {
		spot.Description = update.Description
	}

	updated, err := s.repo.Update(ctx, spot)
	if err != nil {
		return domain.SpotType{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *SpotService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
