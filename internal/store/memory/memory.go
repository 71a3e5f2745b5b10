// Package memory implements the entity store as in-process maps with
// optional simulated latency, mirroring the original local-storage services.
package memory

import (
	"context"
	"sync"
	"time"

	"smartbudget/internal/core"
)

type Store struct {
	mu      sync.Mutex
	latency time.Duration

	transactions map[string]core.Transaction
	synced       map[string]bool
	budgets      map[string]core.Budget
	goals        map[string]core.Goal
	categories   []core.Category
}

type Option func(*Store)

// WithLatency makes every operation wait the given duration before
// touching state, imitating the original services' artificial delay.
// The wait honors context cancellation.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithCategories replaces the seed category reference data.
func WithCategories(categories []core.Category) Option {
	return func(s *Store) {
		s.categories = append([]core.Category(nil), categories...)
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		transactions: make(map[string]core.Transaction),
		synced:       make(map[string]bool),
		budgets:      make(map[string]core.Budget),
		goals:        make(map[string]core.Goal),
		categories:   core.DefaultCategories(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	if err := s.wait(ctx); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := s.wait(ctx); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := s.wait(ctx); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[t.ID]; !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	s.transactions[t.ID] = t
	// An updated record needs to be exported again.
	delete(s.synced, t.ID)
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.transactions, id)
	delete(s.synced, id)
	return nil
}

func (s *Store) ListUnsyncedTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, limit)
	for id, t := range s.transactions {
		if s.synced[id] {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkTransactionSynced(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return core.ErrNotFound
	}
	s.synced[id] = true
	return nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	if err := s.wait(ctx); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok {
		return core.Budget{}, core.ErrNotFound
	}
	return b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := s.wait(ctx); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := s.wait(ctx); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[b.ID]; !ok {
		return core.Budget{}, core.ErrNotFound
	}
	s.budgets[b.ID] = b
	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

func (s *Store) ListGoals(ctx context.Context) ([]core.Goal, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) GetGoal(ctx context.Context, id string) (core.Goal, error) {
	if err := s.wait(ctx); err != nil {
		return core.Goal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return core.Goal{}, core.ErrNotFound
	}
	return g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := s.wait(ctx); err != nil {
		return core.Goal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.ID] = g
	return g, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := s.wait(ctx); err != nil {
		return core.Goal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[g.ID]; !ok {
		return core.Goal{}, core.ErrNotFound
	}
	s.goals[g.ID] = g
	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *Store) Close() error { return nil }
