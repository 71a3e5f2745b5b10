package core

const (
	BudgetGood    BudgetHealth = "good"
	BudgetWarning BudgetHealth = "warning"
	BudgetOver    BudgetHealth = "over"
)

type (
	// BudgetHealth classifies how much of a budget has been consumed.
	BudgetHealth string

	// BudgetStatus is the derived view of one budget for the current period.
	BudgetStatus struct {
		Spent      Money        `json:"spent"`
		Percentage float64      `json:"percentage"`
		Remaining  Money        `json:"remaining"`
		Health     BudgetHealth `json:"status"`
	}
)

// EvaluateBudget recomputes a budget's utilization from the given
// transactions. The caller restricts the input to the budget's period and to
// expenses; spent is summed over transactions matching the budget's
// category, ignoring the stored cache entirely.
//
// Percentage is 0 when the budget amount is 0, never NaN or Inf. The health
// thresholds are strict: exactly 100% is a warning, exactly 80% is good.
func EvaluateBudget(b Budget, periodExpenses []Transaction) BudgetStatus {
	var spent Money
	for _, t := range periodExpenses {
		if t.Category == b.Category {
			spent = spent.Add(t.Amount)
		}
	}

	var pct float64
	if b.Amount.Cents > 0 {
		pct = float64(spent.Cents) / float64(b.Amount.Cents) * 100
	}

	health := BudgetGood
	switch {
	case pct > 100:
		health = BudgetOver
	case pct > 80:
		health = BudgetWarning
	}

	return BudgetStatus{
		Spent:      spent,
		Percentage: pct,
		Remaining:  b.Amount.Sub(spent),
		Health:     health,
	}
}
