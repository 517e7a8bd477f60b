package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrParticipantExists   = errors.New("participant already exists")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrSpotFull            = errors.New("spot is full")
)

type Participant struct {
	ID uint `gorm:"primaryKey"`

	Username *string `gorm:"uniqueIndex"` // email; empty until an admin-created row is claimed
	Password *string

	Type     string `gorm:"not null;default:reg"`
	Nickname string `gorm:"unique;not null"`
	FullName *string
	Phone    *string

	SoliAmount  float32 `gorm:"not null;default:0"`
	TakesSoli   bool    `gorm:"not null;default:false"`
	DonatesSoli bool    `gorm:"not null;default:false"`
	AmountPaid  float32 `gorm:"not null;default:0"`

	IsActivated bool `gorm:"not null;default:false"`
	LastLogin   *time.Time

	SpotTypeID *uint `gorm:"index"`
	SpotType   *SpotType

	Shifts []Shift `gorm:"many2many:shift_participants;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Participant{}, ErrParticipantExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByID(ctx context.Context, id uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).Preload("SpotType").First(&participant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByUsername(ctx context.Context, username string) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).Preload("SpotType").First(&participant, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) List(ctx context.Context) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).
		Preload("SpotType").
		Order("last_login desc nulls last").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) Update(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Save(&participant)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Participant{}, ErrParticipantExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participant Participant
		if err := tx.First(&participant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}

			return err
		}

		if err := tx.Model(&participant).Association("Shifts").Clear(); err != nil {
			return err
		}

		return tx.Delete(&participant).Error
	})
}

// AssignSpot moves a participant to a spot (or clears the assignment when
// spotTypeID is nil). The spot row is locked so concurrent assignments to
// the last free place are serialized; the first committed one wins.
func (d *ParticipantDAO) AssignSpot(ctx context.Context, participantID uint, spotTypeID *uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participant Participant
		if err := tx.First(&participant, participantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}

			return err
		}

		if spotTypeID == nil {
			return tx.Model(&participant).Update("spot_type_id", nil).Error
		}

		var spot SpotType
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&spot, *spotTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpotNotFound
			}

			return err
		}

		// Re-selecting the spot already held never counts against the limit.
		if participant.SpotTypeID == nil || *participant.SpotTypeID != spot.ID {
			var occupied int64
			if err := tx.Model(&Participant{}).
				Where("spot_type_id = ?", spot.ID).
				Count(&occupied).Error; err != nil {
				return err
			}
			if occupied >= int64(spot.Limit) {
				return ErrSpotFull
			}
		}

		return tx.Model(&participant).Update("spot_type_id", spot.ID).Error
	})
}

// ShiftPoints sums the point values of all shifts the participant joined.
func (d *ParticipantDAO) ShiftPoints(ctx context.Context, participantID uint) (int, error) {
	var points int64

	err := d.db.WithContext(ctx).
		Table("shifts").
		Joins("JOIN shift_participants sp ON sp.shift_id = shifts.id").
		Where("sp.participant_id = ?", participantID).
		Select("COALESCE(SUM(shifts.points), 0)").
		Scan(&points).Error
	if err != nil {
		return 0, err
	}

	return int(points), nil
}

// ShiftPointsByParticipant returns the point totals of every participant with
// at least one shift, keyed by participant id.
func (d *ParticipantDAO) ShiftPointsByParticipant(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		ParticipantID uint
		Points        int
	}

	err := d.db.WithContext(ctx).
		Table("shifts").
		Joins("JOIN shift_participants sp ON sp.shift_id = shifts.id").
		Group("sp.participant_id").
		Select("sp.participant_id AS participant_id, COALESCE(SUM(shifts.points), 0) AS points").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make(map[uint]int, len(rows))
	for _, row := range rows {
		points[row.ParticipantID] = row.Points
	}

	return points, nil
}
