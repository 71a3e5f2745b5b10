package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"smartbudget/internal/core"
)

type dashboardResponse struct {
	Month              string             `json:"month"`
	Income             core.Money         `json:"income"`
	Expenses           core.Money         `json:"expenses"`
	Net                core.Money         `json:"net"`
	TransactionCount   int                `json:"transactionCount"`
	RecentTransactions []core.Transaction `json:"recentTransactions"`
	Budgets            []budgetStatusItem `json:"budgets"`
	Goals              []goalView         `json:"goals"`
}

const recentTransactionLimit = 5

// handleDashboard assembles the landing view: the current month's totals,
// the five most recent transactions, and every budget and goal with its
// evaluated status. The three collections load concurrently.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.now()

	cacheKey := "dashboard:" + now.Format("2006-01")
	if cached, ok := s.dashboardCache.Get(cacheKey); ok {
		s.writeJSON(w, http.StatusOK, cached)
		return
	}

	var (
		transactions []core.Transaction
		budgets      []core.Budget
		goals        []core.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goals.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err)
		return
	}

	start, end := core.ResolveRange(core.RangeCurrent, now)
	monthTransactions := core.FilterByRange(transactions, start, end)
	monthExpenses := core.FilterAndSort(monthTransactions, core.Filter{Type: string(core.Expense)})

	income := core.SumByType(monthTransactions, core.Income)
	expenses := core.SumByType(monthTransactions, core.Expense)

	recent := transactions
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	budgetItems := make([]budgetStatusItem, len(budgets))
	for i, b := range budgets {
		budgetItems[i] = budgetStatusItem{
			Budget:   b,
			Status:   core.EvaluateBudget(b, monthExpenses),
			Category: s.categorySet.Lookup(b.Category),
		}
	}

	goalItems := make([]goalView, len(goals))
	for i, goal := range goals {
		goalItems[i] = goalView{Goal: goal, Status: core.EvaluateGoal(goal, now)}
	}

	resp := dashboardResponse{
		Month:              now.Format("Jan 2006"),
		Income:             income,
		Expenses:           expenses,
		Net:                income.Sub(expenses),
		TransactionCount:   len(monthTransactions),
		RecentTransactions: recent,
		Budgets:            budgetItems,
		Goals:              goalItems,
	}

	s.dashboardCache.Set(cacheKey, resp)
	s.writeJSON(w, http.StatusOK, resp)
}
