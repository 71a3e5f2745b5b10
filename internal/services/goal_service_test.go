package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartbudget/internal/core"
	"smartbudget/internal/store/memory"
)

func newGoalService() *GoalService {
	return NewGoalService(memory.New(), testLogger())
}

func TestGoalService_ListDeadlineAscending(t *testing.T) {
	svc := newGoalService()
	ctx := context.Background()

	deadlines := []core.Date{
		core.NewDate(2025, 6, 1),
		core.NewDate(2025, 1, 1),
		core.NewDate(2025, 3, 1),
	}
	for i, d := range deadlines {
		if _, err := svc.Create(ctx, core.Goal{
			Name:         string(rune('a' + i)),
			TargetAmount: core.Money{Cents: 1000},
			Deadline:     d,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []core.Date{deadlines[1], deadlines[2], deadlines[0]}
	for i, g := range got {
		if !g.Deadline.Equal(want[i].Time) {
			t.Errorf("List()[%d].Deadline = %v, want %v", i, g.Deadline, want[i])
		}
	}
}

func TestGoalService_Contribute(t *testing.T) {
	svc := newGoalService()
	ctx := context.Background()

	created, err := svc.Create(ctx, core.Goal{
		Name:         "Emergency fund",
		TargetAmount: core.Money{Cents: 100000},
		Deadline:     core.NewDate(2025, 12, 31),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Contribute(ctx, created.ID, core.Money{Cents: 25000})
	if err != nil {
		t.Fatalf("Contribute() error = %v", err)
	}
	if updated.CurrentAmount.Cents != 25000 {
		t.Errorf("CurrentAmount = %d, want 25000", updated.CurrentAmount.Cents)
	}

	// Contributions persist.
	got, _ := svc.Get(ctx, created.ID)
	if got.CurrentAmount.Cents != 25000 {
		t.Errorf("stored CurrentAmount = %d, want 25000", got.CurrentAmount.Cents)
	}

	if _, err := svc.Contribute(ctx, created.ID, core.Money{Cents: 0}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("Contribute(0) error = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.Contribute(ctx, "missing", core.Money{Cents: 100}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Contribute(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGoalService_CompletionSplit(t *testing.T) {
	svc := newGoalService()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	done, _ := svc.Create(ctx, core.Goal{
		Name:         "done",
		TargetAmount: core.Money{Cents: 1000},
		Deadline:     core.NewDate(2025, 1, 1),
	})
	if _, err := svc.Contribute(ctx, done.ID, core.Money{Cents: 1000}); err != nil {
		t.Fatalf("Contribute() error = %v", err)
	}
	if _, err := svc.Create(ctx, core.Goal{
		Name:         "active",
		TargetAmount: core.Money{Cents: 1000},
		Deadline:     core.NewDate(2025, 1, 1),
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	completed, err := svc.ListCompleted(ctx, now)
	if err != nil || len(completed) != 1 || completed[0].Name != "done" {
		t.Errorf("ListCompleted() = %v, %v", completed, err)
	}

	active, err := svc.ListActive(ctx, now)
	if err != nil || len(active) != 1 || active[0].Name != "active" {
		t.Errorf("ListActive() = %v, %v", active, err)
	}
}

func TestGoalService_CreateRejectsInvalid(t *testing.T) {
	svc := newGoalService()

	tests := []struct {
		name    string
		goal    core.Goal
		wantErr error
	}{
		{
			name:    "empty name",
			goal:    core.Goal{TargetAmount: core.Money{Cents: 100}, Deadline: core.NewDate(2025, 1, 1)},
			wantErr: core.ErrEmptyName,
		},
		{
			name:    "zero target",
			goal:    core.Goal{Name: "g", Deadline: core.NewDate(2025, 1, 1)},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "missing deadline",
			goal:    core.Goal{Name: "g", TargetAmount: core.Money{Cents: 100}},
			wantErr: core.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.goal); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
