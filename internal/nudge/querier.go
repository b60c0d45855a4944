package nudge

import (
	"context"

	"github.com/brk3/habit-tracker/pkg/habit"
)

// Querier lists the current habits; both *tracker.Store and
// *apiclient.Client satisfy it.
type Querier interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
}

type Notifier interface {
	SendNudge(pending []string, progress habit.Progress) error
}
