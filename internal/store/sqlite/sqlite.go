// Package sqlite persists the entity store in a local SQLite database.
// Schema setup and the category seed run through embedded migrations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smartbudget/internal/core"

	_ "modernc.org/sqlite"
)

const (
	dateLayout    = "2006-01-02"
	instantLayout = time.RFC3339Nano
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		t               core.Transaction
		date, createdAt string
		cents           int64
		typ             string
	)
	if err := row.Scan(&t.ID, &cents, &typ, &t.Category, &t.Description, &date, &createdAt); err != nil {
		return core.Transaction{}, err
	}
	t.Amount = core.Money{Cents: cents}
	t.Type = core.TransactionType(typ)

	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", date, err)
	}
	t.Date = core.DateOf(d)

	c, err := time.Parse(instantLayout, createdAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	t.CreatedAt = c
	return t, nil
}

const transactionColumns = "id, amount_cents, type, category, description, date, created_at"

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions ORDER BY date DESC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, amount_cents, type, category, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Amount.Cents, string(t.Type), t.Category, t.Description,
		t.Date.Format(dateLayout), t.CreatedAt.UTC().Format(instantLayout))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET amount_cents = ?, type = ?, category = ?, description = ?, date = ?, synced = 0
		 WHERE id = ?`,
		t.Amount.Cents, string(t.Type), t.Category, t.Description, t.Date.Format(dateLayout), t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Transaction{}, err
	}
	return s.GetTransaction(ctx, t.ID)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ListUnsyncedTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE synced = 0 ORDER BY created_at LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list unsynced transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) MarkTransactionSynced(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE transactions SET synced = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	return requireRow(res)
}

func scanBudget(row interface{ Scan(...any) error }) (core.Budget, error) {
	var (
		b             core.Budget
		amount, spent int64
		createdAt     string
	)
	if err := row.Scan(&b.ID, &b.Category, &amount, &b.Period, &spent, &createdAt); err != nil {
		return core.Budget{}, err
	}
	b.Amount = core.Money{Cents: amount}
	b.Spent = core.Money{Cents: spent}

	c, err := time.Parse(instantLayout, createdAt)
	if err != nil {
		return core.Budget{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	b.CreatedAt = c
	return b, nil
}

const budgetColumns = "id, category, amount_cents, period, spent_cents, created_at"

func (s *Store) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+budgetColumns+" FROM budgets WHERE id = ?", id)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (id, category, amount_cents, period, spent_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Category, b.Amount.Cents, b.Period, b.Spent.Cents,
		b.CreatedAt.UTC().Format(instantLayout))
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, amount_cents = ?, period = ?, spent_cents = ? WHERE id = ?`,
		b.Category, b.Amount.Cents, b.Period, b.Spent.Cents, b.ID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Budget{}, err
	}
	return s.GetBudget(ctx, b.ID)
}

func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res)
}

func scanGoal(row interface{ Scan(...any) error }) (core.Goal, error) {
	var (
		g                   core.Goal
		target, current     int64
		deadline, createdAt string
	)
	if err := row.Scan(&g.ID, &g.Name, &target, &current, &deadline, &createdAt); err != nil {
		return core.Goal{}, err
	}
	g.TargetAmount = core.Money{Cents: target}
	g.CurrentAmount = core.Money{Cents: current}

	d, err := time.Parse(dateLayout, deadline)
	if err != nil {
		return core.Goal{}, fmt.Errorf("parse deadline %q: %w", deadline, err)
	}
	g.Deadline = core.DateOf(d)

	c, err := time.Parse(instantLayout, createdAt)
	if err != nil {
		return core.Goal{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = c
	return g, nil
}

const goalColumns = "id, name, target_cents, current_cents, deadline, created_at"

func (s *Store) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals ORDER BY deadline")
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) GetGoal(ctx context.Context, id string) (core.Goal, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, core.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (id, name, target_cents, current_cents, deadline, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents,
		g.Deadline.Format(dateLayout), g.CreatedAt.UTC().Format(instantLayout))
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET name = ?, target_cents = ?, current_cents = ?, deadline = ? WHERE id = ?`,
		g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, g.Deadline.Format(dateLayout), g.ID)
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Goal{}, err
	}
	return s.GetGoal(ctx, g.ID)
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, color, icon, type FROM categories ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		var typ string
		if err := rows.Scan(&c.Name, &c.Color, &c.Icon, &typ); err != nil {
			return nil, err
		}
		c.Type = core.TransactionType(typ)
		out = append(out, c)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
