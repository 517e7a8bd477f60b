package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSpotNotFound = errors.New("spot type not found")
	ErrSpotNotEmpty = errors.New("spot type still has occupants")
)

type SpotType struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Price       uint16 `gorm:"not null"`
	Limit       uint16 `gorm:"not null"`
	Description *string

	// Filled by the occupancy subquery on reads, never written.
	CurrentCount uint16 `gorm:"->"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SpotDAO struct {
	db *gorm.DB
}

func NewSpotDAO(db *gorm.DB) *SpotDAO {
	return &SpotDAO{
		db: db,
	}
}

// withOccupancy selects spot rows together with a live count of the
// participants holding each spot.
func (d *SpotDAO) withOccupancy(tx *gorm.DB) *gorm.DB {
	subQuery := tx.Session(&gorm.Session{NewDB: true}).
		Select("count(*)").
		Where("participants.spot_type_id = spot_types.id").
		Table("participants")

	return tx.Select("*, (?) as current_count", subQuery)
}

func (d *SpotDAO) List(ctx context.Context) ([]SpotType, error) {
	var spots []SpotType

	result := d.withOccupancy(d.db.WithContext(ctx)).Find(&spots)
	if result.Error != nil {
		return nil, result.Error
	}

	return spots, nil
}

func (d *SpotDAO) FindByID(ctx context.Context, id uint) (SpotType, error) {
	var spot SpotType

	result := d.withOccupancy(d.db.WithContext(ctx)).First(&spot, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpotType{}, ErrSpotNotFound
		}

		return SpotType{}, result.Error
	}

	return spot, nil
}

func (d *SpotDAO) Insert(ctx context.Context, spot SpotType) (SpotType, error) {
	result := d.db.WithContext(ctx).Create(&spot)
	if result.Error != nil {
		return SpotType{}, result.Error
	}

	return spot, nil
}

func (d *SpotDAO) Update(ctx context.Context, spot SpotType) (SpotType, error) {
	result := d.db.WithContext(ctx).Save(&spot)
	if result.Error != nil {
		return SpotType{}, result.Error
	}

	return spot, nil
}

// Delete removes a spot type unless any participant still holds it.
func (d *SpotDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var spot SpotType
		if err := tx.First(&spot, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpotNotFound
			}

			return err
		}

		var occupied int64
		if err := tx.Model(&Participant{}).
			Where("spot_type_id = ?", id).
			Count(&occupied).Error; err != nil {
			return err
		}
		if occupied > 0 {
			return ErrSpotNotEmpty
		}

		return tx.Delete(&spot).Error
	})
}
