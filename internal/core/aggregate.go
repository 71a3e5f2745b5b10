package core

import "time"

// Series holds chart-ready monthly totals. Income and Expenses are parallel
// to Labels, one entry per bucket.
type Series struct {
	Labels   []string `json:"labels"`
	Income   []Money  `json:"income"`
	Expenses []Money  `json:"expenses"`
}

// SumByType sums the amounts of transactions with the given type.
// An empty input sums to zero.
func SumByType(transactions []Transaction, typ TransactionType) Money {
	var total Money
	for _, t := range transactions {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// ExpensesByCategory sums expense amounts per category. Categories with no
// matching expense are absent from the result, never present with zero.
func ExpensesByCategory(transactions []Transaction) map[string]Money {
	sums := make(map[string]Money)
	for _, t := range transactions {
		if t.Type != Expense {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	return sums
}

// FilterByRange returns the transactions whose date falls inside
// [start, end], bounds inclusive.
func FilterByRange(transactions []Transaction, start, end time.Time) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}
	return out
}

// MonthlySeries sums income and expense amounts per bucket. The output
// arrays have exactly one entry per bucket, in bucket order.
func MonthlySeries(transactions []Transaction, buckets []MonthBucket) Series {
	s := Series{
		Labels:   make([]string, len(buckets)),
		Income:   make([]Money, len(buckets)),
		Expenses: make([]Money, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = b.Label
		for _, t := range transactions {
			if !b.Contains(t.Date.Time) {
				continue
			}
			switch t.Type {
			case Income:
				s.Income[i] = s.Income[i].Add(t.Amount)
			case Expense:
				s.Expenses[i] = s.Expenses[i].Add(t.Amount)
			}
		}
	}
	return s
}
