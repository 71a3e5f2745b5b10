package core

import (
	"errors"
	"testing"
	"time"
)

func TestEvaluateGoal(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		goal         Goal
		wantDays     int
		wantDone     bool
		wantOverdue  bool
		wantHealth   GoalHealth
		wantProgress float64
	}{
		{
			name:         "on track",
			goal:         Goal{TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 25000}, Deadline: NewDate(2024, 12, 31)},
			wantDays:     199,
			wantHealth:   GoalOnTrack,
			wantProgress: 25,
		},
		{
			name:         "urgent at exactly 30 days",
			goal:         Goal{TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 50000}, Deadline: NewDate(2024, 7, 15)},
			wantDays:     30,
			wantHealth:   GoalUrgent,
			wantProgress: 50,
		},
		{
			name:         "overdue by ten days",
			goal:         Goal{TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 50000}, Deadline: NewDate(2024, 6, 5)},
			wantDays:     -10,
			wantOverdue:  true,
			wantHealth:   GoalOverdue,
			wantProgress: 50,
		},
		{
			name:         "completion beats overdue",
			goal:         Goal{TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 100000}, Deadline: NewDate(2024, 1, 1)},
			wantDays:     -166,
			wantDone:     true,
			wantHealth:   GoalCompleted,
			wantProgress: 100,
		},
		{
			name:         "progress exceeds 100 unclamped",
			goal:         Goal{TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 150000}, Deadline: NewDate(2024, 12, 31)},
			wantDays:     199,
			wantDone:     true,
			wantHealth:   GoalCompleted,
			wantProgress: 150,
		},
		{
			name:         "zero target never divides by zero",
			goal:         Goal{TargetAmount: Money{}, CurrentAmount: Money{Cents: 500}, Deadline: NewDate(2024, 12, 31)},
			wantDays:     199,
			wantDone:     true,
			wantHealth:   GoalCompleted,
			wantProgress: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateGoal(tt.goal, now)
			if got.DaysLeft != tt.wantDays {
				t.Fatalf("daysLeft = %d, want %d", got.DaysLeft, tt.wantDays)
			}
			if got.IsCompleted != tt.wantDone {
				t.Fatalf("isCompleted = %v, want %v", got.IsCompleted, tt.wantDone)
			}
			if got.IsOverdue != tt.wantOverdue {
				t.Fatalf("isOverdue = %v, want %v", got.IsOverdue, tt.wantOverdue)
			}
			if got.Health != tt.wantHealth {
				t.Fatalf("health = %q, want %q", got.Health, tt.wantHealth)
			}
			if got.Progress != tt.wantProgress {
				t.Fatalf("progress = %v, want %v", got.Progress, tt.wantProgress)
			}
		})
	}
}

func TestEvaluateGoalIgnoresTimeOfDay(t *testing.T) {
	g := Goal{TargetAmount: Money{Cents: 1000}, Deadline: NewDate(2024, 6, 16)}
	// Late in the evening the deadline is still one whole day away.
	got := EvaluateGoal(g, time.Date(2024, 6, 15, 23, 50, 0, 0, time.UTC))
	if got.DaysLeft != 1 {
		t.Fatalf("daysLeft = %d, want 1", got.DaysLeft)
	}
}

func TestGoalContribute(t *testing.T) {
	g := Goal{ID: "g1", TargetAmount: Money{Cents: 10000}, CurrentAmount: Money{Cents: 9000}}

	updated, err := g.Contribute(Money{Cents: 2500})
	if err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if updated.CurrentAmount.Cents != 11500 {
		t.Fatalf("currentAmount = %d, want 11500", updated.CurrentAmount.Cents)
	}
	// No upper clamp: the goal simply completes.
	if st := EvaluateGoal(updated, time.Now()); !st.IsCompleted {
		t.Fatalf("expected completed goal after overshoot")
	}
	// Input is untouched.
	if g.CurrentAmount.Cents != 9000 {
		t.Fatalf("input goal mutated")
	}

	for _, cents := range []int64{0, -100} {
		if _, err := g.Contribute(Money{Cents: cents}); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("contribute(%d): err = %v, want ErrInvalidAmount", cents, err)
		}
	}
}
