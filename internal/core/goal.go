package core

import "time"

const (
	GoalOnTrack   GoalHealth = "on-track"
	GoalUrgent    GoalHealth = "urgent"
	GoalOverdue   GoalHealth = "overdue"
	GoalCompleted GoalHealth = "completed"
)

// urgentWindowDays is how close a deadline may be before an unfinished goal
// is flagged urgent.
const urgentWindowDays = 30

type (
	// GoalHealth classifies a savings goal by progress and deadline.
	GoalHealth string

	// GoalStatus is the derived view of one goal at a given instant.
	// Progress is unclamped; display layers cap it at 100.
	GoalStatus struct {
		Progress    float64    `json:"progress"`
		DaysLeft    int        `json:"daysLeft"`
		IsCompleted bool       `json:"isCompleted"`
		IsOverdue   bool       `json:"isOverdue"`
		Health      GoalHealth `json:"status"`
	}
)

// EvaluateGoal derives a goal's progress and deadline status at now.
// DaysLeft is a whole-day difference between calendar dates, negative once
// the deadline has passed. Completion takes precedence over overdue, which
// takes precedence over urgency.
func EvaluateGoal(g Goal, now time.Time) GoalStatus {
	var progress float64
	if g.TargetAmount.Cents > 0 {
		progress = float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100
	}

	daysLeft := int(g.Deadline.Sub(DateOf(now).Time).Hours() / 24)
	completed := g.CurrentAmount.Cents >= g.TargetAmount.Cents
	overdue := daysLeft < 0 && !completed

	health := GoalOnTrack
	switch {
	case completed:
		health = GoalCompleted
	case overdue:
		health = GoalOverdue
	case daysLeft <= urgentWindowDays:
		health = GoalUrgent
	}

	return GoalStatus{
		Progress:    progress,
		DaysLeft:    daysLeft,
		IsCompleted: completed,
		IsOverdue:   overdue,
		Health:      health,
	}
}

// Contribute returns a copy of the goal with the amount added to its
// current total. The amount must be positive; there is no upper clamp, so a
// contribution may push the goal past its target.
func (g Goal) Contribute(amount Money) (Goal, error) {
	if amount.Cents <= 0 {
		return Goal{}, ErrInvalidAmount
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	return g, nil
}
