package http

import (
	"net/http"

	"smartbudget/internal/core"
)

type goalView struct {
	Goal   core.Goal       `json:"goal"`
	Status core.GoalStatus `json:"status"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	now := s.now()
	views := make([]goalView, len(goals))
	for i, g := range goals {
		views[i] = goalView{Goal: g, Status: core.EvaluateGoal(g, now)}
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if !s.decodeJSON(w, r, &g) {
		return
	}

	created, err := s.goals.Create(r.Context(), g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if !s.decodeJSON(w, r, &g) {
		return
	}
	g.ID = r.PathValue("id")

	updated, err := s.goals.Update(r.Context(), g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	w.WriteHeader(http.StatusNoContent)
}

type contributeRequest struct {
	Amount core.Money `json:"amount"`
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req contributeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.goals.Contribute(r.Context(), r.PathValue("id"), req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.invalidateViews()
	s.writeJSON(w, http.StatusOK, goalView{
		Goal:   updated,
		Status: core.EvaluateGoal(updated, s.now()),
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}
