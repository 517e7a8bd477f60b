package domain

// SpotCount is one line of the budget calculator: how many guests are
// assumed for a spot category at its price.
type SpotCount struct {
	SpotTypeID uint   `json:"spotTypeId"`
	Price      uint16 `json:"price"`
	Count      int    `json:"count"`
}

// FixedCosts are the independently editable expense line items of the
// what-if calculator. They have no computed relation to attendance.
type FixedCosts struct {
	Venue    float32 `json:"venue"`
	Food     float32 `json:"food"`
	Tech     float32 `json:"tech"`
	Mobility float32 `json:"mobility"`
	Fun      float32 `json:"fun"`
	Buffer   float32 `json:"buffer"`
}

func (c FixedCosts) Sum() float32 {
	return c.Venue + c.Food + c.Tech + c.Mobility + c.Fun + c.Buffer
}

type BudgetEstimate struct {
	Guests       int     `json:"guests"`
	SpotSubtotal float32 `json:"spotSubtotal"`
	TotalSoli    float32 `json:"totalSoli"`
	Total        float32 `json:"total"`
	FixedCosts   float32 `json:"fixedCosts"`
	Final        float32 `json:"final"`
}

// EstimateBudget is the pure what-if calculation behind the admin
// "Finanzerecke": income from spots plus the solidarity balance, minus the
// fixed cost lines. Same inputs always yield the same estimate; negative
// counts are treated as 0.
func EstimateBudget(counts []SpotCount, totalSoli float32, costs FixedCosts) BudgetEstimate {
	var subtotal float32
	var guests int
	for _, sc := range counts {
		n := sc.Count
		if n < 0 {
			n = 0
		}
		subtotal += float32(sc.Price) * float32(n)
		guests += n
	}

	total := subtotal + totalSoli
	fixed := costs.Sum()

	return BudgetEstimate{
		Guests:       guests,
		SpotSubtotal: subtotal,
		TotalSoli:    totalSoli,
		Total:        total,
		FixedCosts:   fixed,
		Final:        total - fixed,
	}
}
