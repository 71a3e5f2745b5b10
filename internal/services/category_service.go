package services

import (
	"context"
	"fmt"

	"smartbudget/internal/core"
	"smartbudget/internal/store"
)

// CategoryService serves the category reference data. Categories are seeded
// by the store backend and not user-editable.
type CategoryService struct {
	store store.CategoryStore
}

func NewCategoryService(s store.CategoryStore) *CategoryService {
	return &CategoryService{store: s}
}

func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) ListByType(ctx context.Context, typ core.TransactionType) ([]core.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return core.NewCategorySet(categories).ByType(typ), nil
}

// Set loads the reference data into a lookup table for the views.
func (s *CategoryService) Set(ctx context.Context) (core.CategorySet, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return core.CategorySet{}, fmt.Errorf("list categories: %w", err)
	}
	return core.NewCategorySet(categories), nil
}
