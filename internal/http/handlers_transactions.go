package http

import (
	"net/http"

	"smartbudget/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.transactions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filtered := core.FilterAndSort(transactions, parseFilter(r))
	s.writeJSON(w, http.StatusOK, filtered)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.transactions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if !s.decodeJSON(w, r, &t) {
		return
	}

	created, err := s.transactions.Create(r.Context(), t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if !s.decodeJSON(w, r, &t) {
		return
	}
	t.ID = r.PathValue("id")

	updated, err := s.transactions.Update(r.Context(), t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	w.WriteHeader(http.StatusNoContent)
}
