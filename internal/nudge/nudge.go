package nudge

import (
	"context"
	"fmt"

	"github.com/brk3/habit-tracker/internal/logger"
	"github.com/brk3/habit-tracker/pkg/habit"
)

// PendingHabits returns the text of every habit not yet done, in list order.
func PendingHabits(habits []habit.Habit) []string {
	var out []string
	for _, h := range habits {
		if !h.Done {
			out = append(out, h.Text)
		}
	}
	return out
}

// Nudge sends a reminder for the habits still pending. It reports whether a
// reminder was sent; nothing is sent when every habit is done.
func Nudge(ctx context.Context, q Querier, n Notifier) (bool, error) {
	habits, err := q.ListHabits(ctx)
	if err != nil {
		return false, fmt.Errorf("list habits: %w", err)
	}

	pending := PendingHabits(habits)
	if len(pending) == 0 {
		logger.Info("No pending habits, skipping nudge", "total", len(habits))
		return false, nil
	}

	logger.Info("Sending nudge", "pending", len(pending), "total", len(habits))
	if err := n.SendNudge(pending, habit.ProgressOf(habits)); err != nil {
		return false, fmt.Errorf("send nudge: %w", err)
	}
	return true, nil
}
