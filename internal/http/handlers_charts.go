package http

import (
	"net/http"
	"sort"

	"smartbudget/internal/core"
)

type categoryBreakdownItem struct {
	Category core.Category `json:"category"`
	Amount   core.Money    `json:"amount"`
}

type chartResponse struct {
	Range      core.RangeToken         `json:"range"`
	Labels     []string                `json:"labels"`
	Income     []core.Money            `json:"income"`
	Expenses   []core.Money            `json:"expenses"`
	Categories []categoryBreakdownItem `json:"categories"`
}

// handleCharts serves the monthly income/expense series and the expense
// category breakdown for the requested range. Unknown range tokens behave
// like the current month. Responses are cached per range and month.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	token := core.RangeToken(r.URL.Query().Get("range"))
	if token == "" {
		token = core.RangeLast6
	}

	cacheKey := string(token) + ":" + now.Format("2006-01")
	if cached, ok := s.chartCache.Get(cacheKey); ok {
		s.writeJSON(w, http.StatusOK, cached)
		return
	}

	transactions, err := s.transactions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	buckets := core.MonthBuckets(token, now)
	start, end := core.ResolveRange(token, now)
	inRange := core.FilterByRange(transactions, start, end)

	series := core.MonthlySeries(inRange, buckets)

	breakdown := core.ExpensesByCategory(inRange)
	items := make([]categoryBreakdownItem, 0, len(breakdown))
	for name, amount := range breakdown {
		items = append(items, categoryBreakdownItem{
			Category: s.categorySet.Lookup(name),
			Amount:   amount,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Amount.Cents != items[j].Amount.Cents {
			return items[i].Amount.Cents > items[j].Amount.Cents
		}
		return items[i].Category.Name < items[j].Category.Name
	})

	resp := chartResponse{
		Range:      token,
		Labels:     series.Labels,
		Income:     series.Income,
		Expenses:   series.Expenses,
		Categories: items,
	}

	s.chartCache.Set(cacheKey, resp)
	s.writeJSON(w, http.StatusOK, resp)
}
