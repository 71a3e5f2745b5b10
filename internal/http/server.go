// Package http serves the JSON API over the derived views: transactions
// with filtering, budget and goal status, dashboard and chart data.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"smartbudget/internal/cache"
	"smartbudget/internal/core"
	"smartbudget/internal/log"
	"smartbudget/internal/services"
)

type Server struct {
	http.Server

	transactions *services.TransactionService
	budgets      *services.BudgetService
	goals        *services.GoalService
	categories   *services.CategoryService
	categorySet  core.CategorySet

	rateLimiter *rateLimiter

	// Chart and dashboard responses are cached and purged on every write.
	chartCache     *cache.LRUCache[chartResponse]
	dashboardCache *cache.LRUCache[dashboardResponse]
	cacheManager   *cache.Manager

	// clock feeds the derived views; overridden in tests.
	clock func() time.Time

	logger       *log.Logger
	shutdownOnce sync.Once
}

// Deps bundles what the server needs from the rest of the application.
type Deps struct {
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Goals        *services.GoalService
	Categories   *services.CategoryService
	CategorySet  core.CategorySet
	Logger       *log.Logger
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           nil, // set below, after middleware wrapping
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		transactions:   deps.Transactions,
		budgets:        deps.Budgets,
		goals:          deps.Goals,
		categories:     deps.Categories,
		categorySet:    deps.CategorySet,
		rateLimiter:    newRateLimiter(),
		chartCache:     cache.NewLRUCache[chartResponse](50, 5*time.Minute),
		dashboardCache: cache.NewLRUCache[dashboardResponse](10, time.Minute),
		cacheManager:   cache.NewManager(),
		clock:          time.Now,
		logger:         deps.Logger.WithComponent(log.ComponentHTTP),
	}

	s.cacheManager.Register(s.chartCache)
	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/status", s.handleBudgetStatus)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("POST /api/goals/{id}/contribute", s.handleContribute)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/charts", s.handleCharts)

	s.Handler = log.Middleware(s.logger)(s.withProtection(mux))

	return s
}

// withProtection adds security headers and rate-limits mutating requests.
func (s *Server) withProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if !s.rateLimiter.allow(clientAddr(r)) {
				s.logger.WarnContext(r.Context(), "Rate limit exceeded",
					log.FieldClientIP, clientAddr(r),
					log.FieldMethod, r.Method,
					log.FieldPath, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// now returns the evaluation time for derived views. Stored dates are UTC
// days, so the wall clock is normalized to UTC before any month arithmetic.
func (s *Server) now() time.Time {
	return s.clock().UTC()
}

// invalidateViews purges the derived-view caches after any write.
func (s *Server) invalidateViews() {
	s.chartCache.Purge()
	s.dashboardCache.Purge()
}

// Shutdown stops the cache and rate limiter housekeeping, then drains the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
