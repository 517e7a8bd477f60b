package repository

import (
	"context"
	"fmt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/repository/dao"
)

var (
	ErrSpotNotFound = dao.ErrSpotNotFound
	ErrSpotNotEmpty = dao.ErrSpotNotEmpty
)

type SpotDAO interface {
	List(ctx context.Context) ([]dao.SpotType, error)
	FindByID(ctx context.Context, id uint) (dao.SpotType, error)
	Insert(ctx context.Context, spot dao.SpotType) (dao.SpotType, error)
	Update(ctx context.Context, spot dao.SpotType) (dao.SpotType, error)
	Delete(ctx context.Context, id uint) error
}

type SpotRepository struct {
	dao SpotDAO
}

func NewSpotRepository(dao SpotDAO) *SpotRepository {
	return &SpotRepository{
		dao: dao,
	}
}

func (r *SpotRepository) List(ctx context.Context) ([]domain.SpotType, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	spots := make([]domain.SpotType, len(found))
	for i, s := range found {
		spots[i] = spotDaoToDomain(s)
	}

	return spots, nil
}

func (r *SpotRepository) FindByID(ctx context.Context, id uint) (domain.SpotType, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.SpotType{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return spotDaoToDomain(found), nil
}

func (r *SpotRepository) Create(ctx context.Context, spot domain.SpotType) (domain.SpotType, error) {
	created, err := r.dao.Insert(ctx, spotDomainToDao(spot))
	if err != nil {
		return domain.SpotType{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return spotDaoToDomain(created), nil
}

func (r *SpotRepository) Update(ctx context.Context, spot domain.SpotType) (domain.SpotType, error) {
	updated, err := r.dao.Update(ctx, spotDomainToDao(spot))
	if err != nil {
		return domain.SpotType{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.FindByID(ctx, updated.ID)
}

func (r *SpotRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func spotDomainToDao(s domain.SpotType) dao.SpotType {
	return dao.SpotType{
		ID:          s.ID,
		Name:        s.Name,
		Price:       s.Price,
		Limit:       s.Limit,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func spotDaoToDomain(s dao.SpotType) domain.SpotType {
	return domain.SpotType{
		ID:           s.ID,
		Name:         s.Name,
		Price:        s.Price,
		Limit:        s.Limit,
		Description:  s.Description,
		CurrentCount: s.CurrentCount,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
