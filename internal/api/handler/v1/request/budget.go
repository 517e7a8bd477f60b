package request

import (
	"fmt"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

// BudgetRequest feeds the what-if calculator. SpotCounts maps spot type id
// to an assumed guest count; spots left out default to their limit.
type BudgetRequest struct {
	SpotCounts map[uint]int      `json:"spotCounts"`
	FixedCosts domain.FixedCosts `json:"fixedCosts"`
}

func (req *BudgetRequest) Validate() error {
	for id, count := range req.SpotCounts {
		if count < 0 {
			return fmt.Errorf("count for spot %d must not be negative", id)
		}
	}
	return nil
}
