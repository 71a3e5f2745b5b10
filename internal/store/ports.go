// Package store defines the entity store ports and backend selection.
//
// The store is the single owner of persisted records; everything above it
// works on copies. Missing ids surface as core.ErrNotFound.
package store

import (
	"context"

	"smartbudget/internal/core"
)

type (
	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	BudgetStore interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		GetBudget(ctx context.Context, id string) (core.Budget, error)
		CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		DeleteBudget(ctx context.Context, id string) error
	}

	GoalStore interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
		GetGoal(ctx context.Context, id string) (core.Goal, error)
		CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		DeleteGoal(ctx context.Context, id string) error
	}

	// CategoryStore serves the category reference data. Categories are
	// seeded at startup (memory) or by migration (sqlite) and are not
	// user-editable.
	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
	}

	// SyncStore tracks which transactions the export worker has already
	// written to the external spreadsheet. The pending scan uses it to
	// recover transactions whose queue message was lost.
	SyncStore interface {
		ListUnsyncedTransactions(ctx context.Context, limit int) ([]core.Transaction, error)
		MarkTransactionSynced(ctx context.Context, id string) error
	}

	// Store is the full entity store consumed by the service layer.
	Store interface {
		TransactionStore
		BudgetStore
		GoalStore
		CategoryStore
		SyncStore
		Close() error
	}
)
