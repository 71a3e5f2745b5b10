package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartbudget/internal/core"
)

func TestTransactionCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateTransaction(ctx, core.Transaction{
		ID:       "t1",
		Amount:   core.Money{Cents: 1000},
		Type:     core.Expense,
		Category: "Shopping",
		Date:     core.NewDate(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetTransaction(ctx, created.ID)
	if err != nil || got.Amount.Cents != 1000 {
		t.Fatalf("get: %+v, %v", got, err)
	}

	got.Amount = core.Money{Cents: 2000}
	if _, err := s.UpdateTransaction(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetTransaction(ctx, "t1")
	if got.Amount.Cents != 2000 {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := s.DeleteTransaction(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetTransaction(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get after delete: %v, want ErrNotFound", err)
	}
	if err := s.DeleteTransaction(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("double delete: %v, want ErrNotFound", err)
	}
}

func TestMissingIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetBudget(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("budget: %v", err)
	}
	if _, err := s.GetGoal(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("goal: %v", err)
	}
	if _, err := s.UpdateBudget(ctx, core.Budget{ID: "nope"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("update budget: %v", err)
	}
}

func TestSeededCategories(t *testing.T) {
	s := New()
	cats, err := s.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != len(core.DefaultCategories()) {
		t.Fatalf("got %d categories", len(cats))
	}

	custom := New(WithCategories([]core.Category{{Name: "Rent", Type: core.Expense}}))
	cats, _ = custom.ListCategories(context.Background())
	if len(cats) != 1 || cats[0].Name != "Rent" {
		t.Fatalf("custom seed not applied: %+v", cats)
	}
}

func TestSyncTracking(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := s.CreateTransaction(ctx, core.Transaction{ID: id, Amount: core.Money{Cents: 100}}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	pending, err := s.ListUnsyncedTransactions(ctx, 10)
	if err != nil || len(pending) != 3 {
		t.Fatalf("pending = %d, %v; want 3", len(pending), err)
	}

	if err := s.MarkTransactionSynced(ctx, "b"); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	pending, _ = s.ListUnsyncedTransactions(ctx, 10)
	if len(pending) != 2 {
		t.Fatalf("pending after mark = %d, want 2", len(pending))
	}

	limited, _ := s.ListUnsyncedTransactions(ctx, 1)
	if len(limited) != 1 {
		t.Fatalf("limit ignored: got %d", len(limited))
	}

	if err := s.MarkTransactionSynced(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("mark missing: %v, want ErrNotFound", err)
	}

	// Updating a synced transaction queues it for export again.
	if _, err := s.UpdateTransaction(ctx, core.Transaction{ID: "b", Amount: core.Money{Cents: 200}}); err != nil {
		t.Fatalf("update b: %v", err)
	}
	pending, _ = s.ListUnsyncedTransactions(ctx, 10)
	if len(pending) != 3 {
		t.Fatalf("pending after update = %d, want 3", len(pending))
	}
}

func TestLatencyHonorsContext(t *testing.T) {
	s := New(WithLatency(time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.ListTransactions(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("latency wait ignored cancellation")
	}
}

func TestLatencyDelaysOperations(t *testing.T) {
	s := New(WithLatency(20 * time.Millisecond))

	start := time.Now()
	if _, err := s.ListTransactions(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("elapsed %v, want >= 20ms", elapsed)
	}
}
