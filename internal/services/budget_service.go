package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartbudget/internal/core"
	"smartbudget/internal/log"
	"smartbudget/internal/store"
)

// BudgetService owns the budget lifecycle and enforces the one-budget-per-
// category invariant.
type BudgetService struct {
	store  store.BudgetStore
	logger *log.Logger
}

func NewBudgetService(s store.BudgetStore, logger *log.Logger) *BudgetService {
	return &BudgetService{
		store:  s,
		logger: logger.WithComponent(log.ComponentBudget),
	}
}

func (s *BudgetService) List(ctx context.Context) ([]core.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

func (s *BudgetService) Get(ctx context.Context, id string) (core.Budget, error) {
	b, err := s.store.GetBudget(ctx, id)
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget %s: %w", id, err)
	}
	return b, nil
}

// GetByCategory returns the budget capping the given category, or
// core.ErrNotFound when none exists.
func (s *BudgetService) GetByCategory(ctx context.Context, category string) (core.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return core.Budget{}, fmt.Errorf("list budgets: %w", err)
	}
	for _, b := range budgets {
		if b.Category == category {
			return b, nil
		}
	}
	return core.Budget{}, core.ErrNotFound
}

// Create stores a new budget. At most one budget may exist per category.
func (s *BudgetService) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	if b.Period == "" {
		b.Period = core.PeriodMonthly
	}
	b.Spent = core.Money{}

	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	if _, err := s.GetByCategory(ctx, b.Category); err == nil {
		return core.Budget{}, fmt.Errorf("category %q: %w", b.Category, core.ErrDuplicateCategory)
	} else if !isNotFound(err) {
		return core.Budget{}, err
	}

	created, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}

	s.logger.InfoContext(ctx, "Budget created",
		log.FieldBudgetID, created.ID,
		log.FieldCategory, created.Category,
		log.FieldAmountCents, created.Amount.Cents)
	return created, nil
}

func (s *BudgetService) Update(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	// Changing the category must not collide with another budget.
	if existing, err := s.GetByCategory(ctx, b.Category); err == nil && existing.ID != b.ID {
		return core.Budget{}, fmt.Errorf("category %q: %w", b.Category, core.ErrDuplicateCategory)
	} else if err != nil && !isNotFound(err) {
		return core.Budget{}, err
	}

	updated, err := s.store.UpdateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget %s: %w", b.ID, err)
	}

	s.logger.InfoContext(ctx, "Budget updated", log.FieldBudgetID, updated.ID)
	return updated, nil
}

func (s *BudgetService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Budget deleted", log.FieldBudgetID, id)
	return nil
}

// UpdateSpent writes the spent cache on the budget covering the category.
// The cache is informational only; budget evaluation always recomputes
// spending from transactions.
func (s *BudgetService) UpdateSpent(ctx context.Context, category string, spent core.Money) error {
	b, err := s.GetByCategory(ctx, category)
	if err != nil {
		if isNotFound(err) {
			return nil // no budget for this category, nothing to cache
		}
		return err
	}

	b.Spent = spent
	if _, err := s.store.UpdateBudget(ctx, b); err != nil {
		return fmt.Errorf("update spent for budget %s: %w", b.ID, err)
	}

	s.logger.DebugContext(ctx, "Budget spent cache updated",
		log.FieldBudgetID, b.ID,
		log.FieldCategory, category,
		log.FieldAmountCents, spent.Cents)
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
