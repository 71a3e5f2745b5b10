package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"smartbudget/internal/core"
	"smartbudget/internal/log"
	"smartbudget/internal/store"
)

// GoalService owns the savings goal lifecycle.
type GoalService struct {
	store  store.GoalStore
	logger *log.Logger
}

func NewGoalService(s store.GoalStore, logger *log.Logger) *GoalService {
	return &GoalService{
		store:  s,
		logger: logger.WithComponent(log.ComponentGoal),
	}
}

// List returns all goals, nearest deadline first.
func (s *GoalService) List(ctx context.Context) ([]core.Goal, error) {
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Deadline.Before(goals[j].Deadline.Time)
	})
	return goals, nil
}

func (s *GoalService) Get(ctx context.Context, id string) (core.Goal, error) {
	g, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal %s: %w", id, err)
	}
	return g, nil
}

func (s *GoalService) Create(ctx context.Context, g core.Goal) (core.Goal, error) {
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC()

	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	created, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	s.logger.InfoContext(ctx, "Goal created",
		log.FieldGoalID, created.ID,
		log.FieldAmountCents, created.TargetAmount.Cents)
	return created, nil
}

func (s *GoalService) Update(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	updated, err := s.store.UpdateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal %s: %w", g.ID, err)
	}

	s.logger.InfoContext(ctx, "Goal updated", log.FieldGoalID, updated.ID)
	return updated, nil
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Goal deleted", log.FieldGoalID, id)
	return nil
}

// Contribute adds a positive amount to the goal's saved total. The total may
// exceed the target; progress is reported unclamped.
func (s *GoalService) Contribute(ctx context.Context, id string, amount core.Money) (core.Goal, error) {
	g, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal %s: %w", id, err)
	}

	g, err = g.Contribute(amount)
	if err != nil {
		return core.Goal{}, err
	}

	updated, err := s.store.UpdateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Goal contribution recorded",
		log.FieldGoalID, id,
		log.FieldOperation, log.OpContribute,
		log.FieldAmountCents, amount.Cents)
	return updated, nil
}

// ListCompleted returns goals whose saved total reached the target.
func (s *GoalService) ListCompleted(ctx context.Context, now time.Time) ([]core.Goal, error) {
	return s.listByCompletion(ctx, now, true)
}

// ListActive returns goals still short of their target.
func (s *GoalService) ListActive(ctx context.Context, now time.Time) ([]core.Goal, error) {
	return s.listByCompletion(ctx, now, false)
}

func (s *GoalService) listByCompletion(ctx context.Context, now time.Time, completed bool) ([]core.Goal, error) {
	goals, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Goal
	for _, g := range goals {
		if core.EvaluateGoal(g, now).IsCompleted == completed {
			out = append(out, g)
		}
	}
	return out, nil
}
