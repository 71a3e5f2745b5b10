package core

import "testing"

func TestEvaluateBudget(t *testing.T) {
	budget := Budget{ID: "b1", Category: "Food & Dining", Amount: Money{Cents: 50000}, Period: PeriodMonthly}

	tests := []struct {
		name       string
		expenses   []Transaction
		wantSpent  int64
		wantPct    float64
		wantRemain int64
		wantHealth BudgetHealth
	}{
		{
			name:       "no transactions",
			expenses:   nil,
			wantSpent:  0,
			wantPct:    0,
			wantRemain: 50000,
			wantHealth: BudgetGood,
		},
		{
			name: "overspent",
			expenses: []Transaction{
				tx(Expense, 40000, "Food & Dining", NewDate(2024, 1, 5)),
				tx(Expense, 12500, "Food & Dining", NewDate(2024, 1, 20)),
			},
			wantSpent:  52500,
			wantPct:    105,
			wantRemain: -2500,
			wantHealth: BudgetOver,
		},
		{
			name: "other categories ignored",
			expenses: []Transaction{
				tx(Expense, 10000, "Shopping", NewDate(2024, 1, 5)),
				tx(Expense, 5000, "Food & Dining", NewDate(2024, 1, 6)),
			},
			wantSpent:  5000,
			wantPct:    10,
			wantRemain: 45000,
			wantHealth: BudgetGood,
		},
		{
			name:       "exactly 80 percent is good",
			expenses:   []Transaction{tx(Expense, 40000, "Food & Dining", NewDate(2024, 1, 5))},
			wantSpent:  40000,
			wantPct:    80,
			wantRemain: 10000,
			wantHealth: BudgetGood,
		},
		{
			name:       "just over 80 percent warns",
			expenses:   []Transaction{tx(Expense, 40001, "Food & Dining", NewDate(2024, 1, 5))},
			wantSpent:  40001,
			wantPct:    float64(40001) / float64(50000) * 100,
			wantRemain: 9999,
			wantHealth: BudgetWarning,
		},
		{
			name:       "exactly 100 percent warns, not over",
			expenses:   []Transaction{tx(Expense, 50000, "Food & Dining", NewDate(2024, 1, 5))},
			wantSpent:  50000,
			wantPct:    100,
			wantRemain: 0,
			wantHealth: BudgetWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBudget(budget, tt.expenses)
			if got.Spent.Cents != tt.wantSpent {
				t.Fatalf("spent = %d, want %d", got.Spent.Cents, tt.wantSpent)
			}
			if got.Percentage != tt.wantPct {
				t.Fatalf("percentage = %v, want %v", got.Percentage, tt.wantPct)
			}
			if got.Remaining.Cents != tt.wantRemain {
				t.Fatalf("remaining = %d, want %d", got.Remaining.Cents, tt.wantRemain)
			}
			if got.Health != tt.wantHealth {
				t.Fatalf("health = %q, want %q", got.Health, tt.wantHealth)
			}
		})
	}
}

func TestEvaluateBudgetZeroAmount(t *testing.T) {
	// A zero budget must evaluate to 0%, never NaN or Inf.
	b := Budget{ID: "b", Category: "Food & Dining", Amount: Money{}}
	got := EvaluateBudget(b, []Transaction{tx(Expense, 1000, "Food & Dining", NewDate(2024, 1, 5))})
	if got.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0", got.Percentage)
	}
	if got.Health != BudgetGood {
		t.Fatalf("health = %q, want %q", got.Health, BudgetGood)
	}
}

func TestEvaluateBudgetDoesNotMutateInput(t *testing.T) {
	b := Budget{ID: "b", Category: "Food & Dining", Amount: Money{Cents: 1000}, Spent: Money{Cents: 42}}
	EvaluateBudget(b, []Transaction{tx(Expense, 999, "Food & Dining", NewDate(2024, 1, 5))})
	if b.Spent.Cents != 42 {
		t.Fatalf("input budget mutated: spent = %d", b.Spent.Cents)
	}
}
