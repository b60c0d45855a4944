package nudge

import "github.com/brk3/habit-tracker/pkg/habit"

type mockNotifier struct {
	called   bool
	pending  []string
	progress habit.Progress
	err      error
}

func (m *mockNotifier) SendNudge(pending []string, progress habit.Progress) error {
	m.called = true
	m.pending = pending
	m.progress = progress
	return m.err
}
