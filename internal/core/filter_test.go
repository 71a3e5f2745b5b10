package core

import "testing"

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Amount: Money{Cents: 5000}, Type: Expense, Category: "Food & Dining", Description: "Grocery run", Date: NewDate(2024, 1, 10)},
		{ID: "2", Amount: Money{Cents: 5000}, Type: Expense, Category: "Shopping", Description: "New shoes", Date: NewDate(2024, 1, 12)},
		{ID: "3", Amount: Money{Cents: 1000}, Type: Expense, Category: "Food & Dining", Description: "Coffee", Date: NewDate(2024, 1, 15)},
		{ID: "4", Amount: Money{Cents: 250000}, Type: Income, Category: "Salary", Description: "January paycheck", Date: NewDate(2024, 1, 31)},
	}
}

func ids(ts []Transaction) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func assertOrder(t *testing.T, got []Transaction, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	}
}

func TestFilterAndSort(t *testing.T) {
	ts := sampleTransactions()

	t.Run("search matches description or category, case-insensitive", func(t *testing.T) {
		assertOrder(t, FilterAndSort(ts, Filter{Search: "GROCERY", SortBy: SortByDate, Order: SortAsc}), "1")
		assertOrder(t, FilterAndSort(ts, Filter{Search: "food", SortBy: SortByDate, Order: SortAsc}), "1", "3")
	})

	t.Run("type and category filters are ANDed", func(t *testing.T) {
		got := FilterAndSort(ts, Filter{Type: "expense", Category: "Food & Dining", SortBy: SortByDate, Order: SortAsc})
		assertOrder(t, got, "1", "3")

		got = FilterAndSort(ts, Filter{Search: "january", Type: "expense", SortBy: SortByDate, Order: SortAsc})
		assertOrder(t, got)
	})

	t.Run("all passes everything", func(t *testing.T) {
		got := FilterAndSort(ts, Filter{Search: "", Type: "all", Category: "all", SortBy: SortByDate, Order: SortAsc})
		assertOrder(t, got, "1", "2", "3", "4")
	})

	t.Run("sort by amount desc is stable for ties", func(t *testing.T) {
		got := FilterAndSort(ts, Filter{SortBy: SortByAmount, Order: SortDesc})
		// The two 5000-cent entries keep their input order.
		assertOrder(t, got, "4", "1", "2", "3")
	})

	t.Run("sort by category asc", func(t *testing.T) {
		got := FilterAndSort(ts, Filter{SortBy: SortByCategory, Order: SortAsc})
		// Ties within "Food & Dining" keep input order.
		assertOrder(t, got, "1", "3", "4", "2")
	})

	t.Run("default sort is date descending", func(t *testing.T) {
		got := FilterAndSort(ts, Filter{})
		assertOrder(t, got, "4", "3", "2", "1")
	})

	t.Run("idempotent", func(t *testing.T) {
		f := Filter{Type: "expense", SortBy: SortByAmount, Order: SortDesc}
		once := FilterAndSort(ts, f)
		twice := FilterAndSort(once, f)
		assertOrder(t, twice, ids(once)...)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		FilterAndSort(ts, Filter{SortBy: SortByAmount, Order: SortAsc})
		assertOrder(t, ts, "1", "2", "3", "4")
	})
}
