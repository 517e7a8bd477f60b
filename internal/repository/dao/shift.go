package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftNotEmpty = errors.New("shift still has members")
	ErrShiftFull     = errors.New("shift is full")
	ErrAlreadyMember = errors.New("participant is already in this shift")
	ErrNotMember     = errors.New("participant is not in this shift")
)

type Shift struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description *string
	Day         string `gorm:"not null"`
	StartTime   *time.Time
	HeadCount   int `gorm:"not null"`
	Points      int `gorm:"not null;default:1"`

	Participants []Participant `gorm:"many2many:shift_participants;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ShiftDAO struct {
	db *gorm.DB
}

func NewShiftDAO(db *gorm.DB) *ShiftDAO {
	return &ShiftDAO{
		db: db,
	}
}

func (d *ShiftDAO) List(ctx context.Context) ([]Shift, error) {
	var shifts []Shift

	result := d.db.WithContext(ctx).Preload("Participants").Find(&shifts)
	if result.Error != nil {
		return nil, result.Error
	}

	return shifts, nil
}

func (d *ShiftDAO) FindByID(ctx context.Context, id uint) (Shift, error) {
	var shift Shift

	result := d.db.WithContext(ctx).Preload("Participants").First(&shift, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Shift{}, ErrShiftNotFound
		}

		return Shift{}, result.Error
	}

	return shift, nil
}

func (d *ShiftDAO) Insert(ctx context.Context, shift Shift) (Shift, error) {
	result := d.db.WithContext(ctx).Create(&shift)
	if result.Error != nil {
		return Shift{}, result.Error
	}

	return shift, nil
}

// InsertBatch creates all shifts or none. Used by the CSV import.
func (d *ShiftDAO) InsertBatch(ctx context.Context, shifts []Shift) ([]Shift, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range shifts {
			if err := tx.Create(&shifts[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

func (d *ShiftDAO) Update(ctx context.Context, shift Shift) (Shift, error) {
	result := d.db.WithContext(ctx).Omit("Participants").Save(&shift)
	if result.Error != nil {
		return Shift{}, result.Error
	}

	return shift, nil
}

// Delete refuses to remove a shift that still has members; admins have to
// empty it first.
func (d *ShiftDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift Shift
		if err := tx.First(&shift, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftNotFound
			}

			return err
		}

		var members int64
		if err := tx.Table("shift_participants").
			Where("shift_id = ?", id).
			Count(&members).Error; err != nil {
			return err
		}
		if members > 0 {
			return ErrShiftNotEmpty
		}

		return tx.Delete(&shift).Error
	})
}

// AddParticipant joins a participant into a shift. The shift row is locked
// for the duration of the check-and-insert, so when two sessions race for
// the last place only the first committed transaction succeeds; the other
// sees ErrShiftFull.
func (d *ShiftDAO) AddParticipant(ctx context.Context, shiftID, participantID uint) (Shift, error) {
	var shift Shift

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&shift, shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftNotFound
			}

			return err
		}

		var participant Participant
		if err := tx.First(&participant, participantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}

			return err
		}

		var member int64
		if err := tx.Table("shift_participants").
			Where("shift_id = ? AND participant_id = ?", shiftID, participantID).
			Count(&member).Error; err != nil {
			return err
		}
		if member > 0 {
			return ErrAlreadyMember
		}

		var members int64
		if err := tx.Table("shift_participants").
			Where("shift_id = ?", shiftID).
			Count(&members).Error; err != nil {
			return err
		}
		if members >= int64(shift.HeadCount) {
			return ErrShiftFull
		}

		if err := tx.Model(&shift).Association("Participants").Append(&participant); err != nil {
			return err
		}

		return tx.Preload("Participants").First(&shift, shiftID).Error
	})
	if err != nil {
		return Shift{}, err
	}

	return shift, nil
}

func (d *ShiftDAO) RemoveParticipant(ctx context.Context, shiftID, participantID uint) (Shift, error) {
	var shift Shift

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&shift, shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShiftNotFound
			}

			return err
		}

		var member int64
		if err := tx.Table("shift_participants").
			Where("shift_id = ? AND participant_id = ?", shiftID, participantID).
			Count(&member).Error; err != nil {
			return err
		}
		if member == 0 {
			return ErrNotMember
		}

		if err := tx.Model(&shift).Association("Participants").Delete(&Participant{ID: participantID}); err != nil {
			return err
		}

		return tx.Preload("Participants").First(&shift, shiftID).Error
	})
	if err != nil {
		return Shift{}, err
	}

	return shift, nil
}
