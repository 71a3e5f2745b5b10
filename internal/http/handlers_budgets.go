package http

import (
	"net/http"

	"smartbudget/internal/core"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if !s.decodeJSON(w, r, &b) {
		return
	}

	created, err := s.budgets.Create(r.Context(), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if !s.decodeJSON(w, r, &b) {
		return
	}
	b.ID = r.PathValue("id")

	updated, err := s.budgets.Update(r.Context(), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	w.WriteHeader(http.StatusNoContent)
}

type budgetStatusItem struct {
	Budget   core.Budget       `json:"budget"`
	Status   core.BudgetStatus `json:"status"`
	Category core.Category     `json:"category"`
}

// handleBudgetStatus evaluates every budget against the current month's
// expense transactions. The stored spent cache is never consulted.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.now()

	budgets, err := s.budgets.List(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start, end := core.ResolveRange(core.RangeCurrent, now)
	monthTransactions, err := s.transactions.ListByRange(ctx, start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	monthExpenses := core.FilterAndSort(monthTransactions, core.Filter{Type: string(core.Expense)})

	items := make([]budgetStatusItem, len(budgets))
	for i, b := range budgets {
		items[i] = budgetStatusItem{
			Budget:   b,
			Status:   core.EvaluateBudget(b, monthExpenses),
			Category: s.categorySet.Lookup(b.Category),
		}
	}
	s.writeJSON(w, http.StatusOK, items)
}
