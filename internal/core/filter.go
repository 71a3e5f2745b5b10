package core

import (
	"sort"
	"strings"
)

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type (
	SortField string
	SortOrder string

	// Filter describes the transaction list view: a free-text search, exact
	// type/category predicates, and a sort. Zero values and "all" pass
	// everything; an empty sort defaults to date descending, the order the
	// list view shows.
	Filter struct {
		Search   string
		Type     string
		Category string
		SortBy   SortField
		Order    SortOrder
	}
)

// FilterAndSort applies the filter's predicates and sort to a copy of the
// input. The search term matches case-insensitively against description or
// category; the predicates are ANDed. The sort is stable: transactions with
// equal keys keep their original relative order. The input slice is never
// mutated.
func FilterAndSort(transactions []Transaction, f Filter) []Transaction {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Description), term) &&
			!strings.Contains(strings.ToLower(t.Category), term) {
			continue
		}
		if f.Type != "" && f.Type != "all" && string(t.Type) != f.Type {
			continue
		}
		if f.Category != "" && f.Category != "all" && t.Category != f.Category {
			continue
		}
		out = append(out, t)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}
	order := f.Order
	if order == "" {
		order = SortDesc
	}

	sort.SliceStable(out, func(i, j int) bool {
		var less, equal bool
		switch sortBy {
		case SortByAmount:
			less = out[i].Amount.Cents < out[j].Amount.Cents
			equal = out[i].Amount.Cents == out[j].Amount.Cents
		case SortByCategory:
			less = out[i].Category < out[j].Category
			equal = out[i].Category == out[j].Category
		default:
			less = out[i].Date.Before(out[j].Date.Time)
			equal = out[i].Date.Equal(out[j].Date.Time)
		}
		if equal {
			return false
		}
		if order == SortDesc {
			return !less
		}
		return less
	})

	return out
}
