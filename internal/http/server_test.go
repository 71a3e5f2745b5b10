package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartbudget/internal/core"
	"smartbudget/internal/log"
	"smartbudget/internal/services"
	"smartbudget/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	st := memory.New()

	catSvc := services.NewCategoryService(st)
	set, err := catSvc.Set(context.Background())
	if err != nil {
		t.Fatalf("load categories: %v", err)
	}

	s := NewServer(":0", Deps{
		Transactions: services.NewTransactionService(st, set, nil, logger),
		Budgets:      services.NewBudgetService(st, logger),
		Goals:        services.NewGoalService(st, logger),
		Categories:   catSvc,
		CategorySet:  set,
		Logger:       logger,
	})
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/categories", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"amount":      45.50,
		"type":        "expense",
		"category":    "Shopping",
		"description": "Weekly groceries",
		"date":        "2024-01-15",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/transactions = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[core.Transaction](t, rec)
	if created.ID == "" || created.Amount.Cents != 4550 {
		t.Errorf("created = %+v", created)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/transactions/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET transaction = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPut, "/api/transactions/"+created.ID, map[string]any{
		"amount":   60.00,
		"type":     "expense",
		"category": "Shopping",
		"date":     "2024-01-16",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT transaction = %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[core.Transaction](t, rec)
	if updated.Amount.Cents != 6000 {
		t.Errorf("updated amount = %d, want 6000", updated.Amount.Cents)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/transactions/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE transaction = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/transactions/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET deleted transaction = %d, want 404", rec.Code)
	}
}

func TestTransactionValidation(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"amount":   0,
		"type":     "expense",
		"category": "Shopping",
		"date":     "2024-01-15",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST invalid transaction = %d, want 400", rec.Code)
	}
}

func TestTransactionFiltering(t *testing.T) {
	s := newTestServer(t)

	seed := []map[string]any{
		{"amount": 10, "type": "expense", "category": "Shopping", "description": "shoes", "date": "2024-01-01"},
		{"amount": 20, "type": "expense", "category": "Healthcare", "description": "pharmacy", "date": "2024-01-02"},
		{"amount": 30, "type": "income", "category": "Salary", "description": "January pay", "date": "2024-01-03"},
	}
	for _, body := range seed {
		if rec := doJSON(t, s, http.MethodPost, "/api/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed = %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, s, http.MethodGet, "/api/transactions?type=expense", nil)
	got := decodeBody[[]core.Transaction](t, rec)
	if len(got) != 2 {
		t.Errorf("type=expense returned %d, want 2", len(got))
	}

	rec = doJSON(t, s, http.MethodGet, "/api/transactions?search=PHARM", nil)
	got = decodeBody[[]core.Transaction](t, rec)
	if len(got) != 1 || got[0].Category != "Healthcare" {
		t.Errorf("search=PHARM = %+v", got)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/transactions?sortBy=amount&sortOrder=asc", nil)
	got = decodeBody[[]core.Transaction](t, rec)
	if len(got) != 3 || got[0].Amount.Cents != 1000 || got[2].Amount.Cents != 3000 {
		t.Errorf("amount asc order wrong: %+v", got)
	}
}

func TestBudgetDuplicateConflict(t *testing.T) {
	s := newTestServer(t)

	body := map[string]any{"category": "Shopping", "amount": 500}
	if rec := doJSON(t, s, http.MethodPost, "/api/budgets", body); rec.Code != http.StatusCreated {
		t.Fatalf("first POST budget = %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/budgets", body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate POST budget = %d, want 409", rec.Code)
	}
}

func TestGoalContribute(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/goals", map[string]any{
		"name":         "Vacation",
		"targetAmount": 1000,
		"deadline":     "2030-12-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST goal = %d: %s", rec.Code, rec.Body.String())
	}
	goal := decodeBody[core.Goal](t, rec)

	rec = doJSON(t, s, http.MethodPost, "/api/goals/"+goal.ID+"/contribute", map[string]any{
		"amount": 250,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("contribute = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeBody[goalView](t, rec)
	if view.Goal.CurrentAmount.Cents != 25000 {
		t.Errorf("current = %d, want 25000", view.Goal.CurrentAmount.Cents)
	}
	if view.Status.Progress != 25 {
		t.Errorf("progress = %v, want 25", view.Status.Progress)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/goals/"+goal.ID+"/contribute", map[string]any{
		"amount": -5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative contribute = %d, want 400", rec.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET categories = %d", rec.Code)
	}
	got := decodeBody[[]core.Category](t, rec)
	if len(got) != 8 {
		t.Errorf("categories = %d, want 8", len(got))
	}
}
