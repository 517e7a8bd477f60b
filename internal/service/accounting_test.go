package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

type fakeSpotRepo struct {
	spots []domain.SpotType
}

func (f *fakeSpotRepo) List(_ context.Context) ([]domain.SpotType, error) {
	return f.spots, nil
}

func (f *fakeSpotRepo) FindByID(_ context.Context, id uint) (domain.SpotType, error) {
	for _, s := range f.spots {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.SpotType{}, ErrSpotNotFound
}

func (f *fakeSpotRepo) Create(_ context.Context, spot domain.SpotType) (domain.SpotType, error) {
	spot.ID = uint(len(f.spots) + 1)
	f.spots = append(f.spots, spot)
	return spot, nil
}

func (f *fakeSpotRepo) Update(_ context.Context, spot domain.SpotType) (domain.SpotType, error) {
	for i, s := range f.spots {
		if s.ID == spot.ID {
			f.spots[i] = spot
			return spot, nil
		}
	}
	return domain.SpotType{}, ErrSpotNotFound
}

func (f *fakeSpotRepo) Delete(_ context.Context, id uint) error {
	for i, s := range f.spots {
		if s.ID == id {
			f.spots = append(f.spots[:i], f.spots[i+1:]...)
			return nil
		}
	}
	return ErrSpotNotFound
}

func TestSoliSummary(t *testing.T) {
	repo := newFakeParticipantRepo()
	repo.add(domain.Participant{Nickname: "taker", TakesSoli: true})
	repo.add(domain.Participant{Nickname: "giver", SoliAmount: 25})
	repo.add(domain.Participant{Nickname: "donor", SoliAmount: 10, DonatesSoli: true})
	repo.add(domain.Participant{Nickname: "neutral"})

	svc := NewAccountingService(repo, &fakeSpotRepo{}, 0)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	// (0-25) + 25 + 10 + 0
	assert.Equal(t, float32(10), summary.TotalSoli)
	assert.Equal(t, 1, summary.Takers)
	assert.Equal(t, 2, summary.Givers)
	assert.Equal(t, float32(10), summary.Donated)
}

func TestSoliDiscountDefault(t *testing.T) {
	svc := NewAccountingService(newFakeParticipantRepo(), &fakeSpotRepo{}, 0)
	assert.Equal(t, float32(domain.DefaultSoliDiscount), svc.SoliDiscount())

	svc = NewAccountingService(newFakeParticipantRepo(), &fakeSpotRepo{}, 30)
	assert.Equal(t, float32(30), svc.SoliDiscount())
}

func TestEstimateBudget(t *testing.T) {
	participants := newFakeParticipantRepo()
	participants.add(domain.Participant{Nickname: "giver", SoliAmount: 50})

	spots := &fakeSpotRepo{spots: []domain.SpotType{
		{ID: 1, Name: "Zelt", Price: 40, Limit: 30},
		{ID: 2, Name: "Bett", Price: 60, Limit: 10},
	}}

	svc := NewAccountingService(participants, spots, 0)

	estimate, err := svc.EstimateBudget(context.Background(), map[uint]int{1: 20}, domain.FixedCosts{
		Venue: 500,
		Food:  300,
	})
	require.NoError(t, err)

	// Spot 1 overridden to 20, spot 2 defaults to its limit.
	assert.Equal(t, 30, estimate.Guests)
	assert.Equal(t, float32(20*40+10*60), estimate.SpotSubtotal)
	assert.Equal(t, float32(50), estimate.TotalSoli)
	assert.Equal(t, float32(800), estimate.FixedCosts)
	assert.Equal(t, estimate.SpotSubtotal+estimate.TotalSoli-estimate.FixedCosts, estimate.Final)
}
