package service

import (
	"context"
	"fmt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

// SoliSummary is the organizer view of the solidarity pool.
type SoliSummary struct {
	TotalSoli float32 `json:"totalSoli"`
	Givers    int     `json:"givers"`
	Takers    int     `json:"takers"`
	Donated   float32 `json:"donated"`
}

// AccountingService computes solidarity balances and budget projections.
// All figures are derived from current participant and spot data; nothing
// here is persisted.
type AccountingService struct {
	participants ParticipantRepository
	spots        SpotRepository
	soliDiscount float32
}

func NewAccountingService(participants ParticipantRepository, spots SpotRepository, soliDiscount float32) *AccountingService {
	if soliDiscount <= 0 {
		soliDiscount = domain.DefaultSoliDiscount
	}
	return &AccountingService{
		participants: participants,
		spots:        spots,
		soliDiscount: soliDiscount,
	}
}

// SoliDiscount reports the discount in effect after defaulting, so callers
// configured with a zero value see what the balances were computed with.
func (s *AccountingService) SoliDiscount() float32 {
	return s.soliDiscount
}

func (s *AccountingService) Summary(ctx context.Context) (SoliSummary, error) {
	participants, err := s.participants.List(ctx)
	if err != nil {
		return SoliSummary{}, fmt.Errorf("s.participants.List -> %w", err)
	}

	summary := SoliSummary{
		TotalSoli: domain.TotalSoli(participants, s.soliDiscount),
	}
	for _, p := range participants {
		if p.TakesSoli {
			summary.Takers++
			continue
		}
		if p.SoliAmount > 0 {
			summary.Givers++
			if p.DonatesSoli {
				summary.Donated += p.SoliAmount
			}
		}
	}

	return summary, nil
}

// EstimateBudget resolves requested spot counts against current prices and
// runs the pure what-if calculation with the live soli total.
func (s *AccountingService) EstimateBudget(ctx context.Context, counts map[uint]int, costs domain.FixedCosts) (domain.BudgetEstimate, error) {
	spots, err := s.spots.List(ctx)
	if err != nil {
		return domain.BudgetEstimate{}, fmt.Errorf("s.spots.List -> %w", err)
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		return domain.BudgetEstimate{}, fmt.Errorf("s.Summary -> %w", err)
	}

	spotCounts := make([]domain.SpotCount, 0, len(spots))
	for _, spot := range spots {
		count, ok := counts[spot.ID]
		if !ok {
			// Unlisted spots default to their configured limit, the same
			// starting point the calculator UI uses.
			count = int(spot.Limit)
		}
		spotCounts = append(spotCounts, domain.SpotCount{
			SpotTypeID: spot.ID,
			Price:      spot.Price,
			Count:      count,
		})
	}

	return domain.EstimateBudget(spotCounts, summary.TotalSoli, costs), nil
}
