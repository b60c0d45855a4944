package server

import (
	"context"
	"net/http"

	"github.com/brk3/habit-tracker/internal/config"
	"github.com/brk3/habit-tracker/pkg/habit"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HabitStore is the state the server exposes. *tracker.Store satisfies it.
type HabitStore interface {
	Add(ctx context.Context, text string) (habit.State, error)
	Toggle(ctx context.Context, id string, done bool) (habit.State, error)
	Delete(ctx context.Context, id string) (habit.State, error)
	ClearCompleted(ctx context.Context) (habit.State, error)
	ResetAll(ctx context.Context) (habit.State, error)
	Snapshot() habit.State
	Progress() habit.Progress
}

type Server struct {
	cfg   *config.Config
	store HabitStore
}

func New(cfg *config.Config, store HabitStore) *Server {
	s := &Server{cfg: cfg, store: store}
	updateHabitGauges(store.Snapshot())
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.AuthToken != "" {
			r.Use(s.authMiddleware)
		}
		r.Get("/progress", s.getProgress)
		r.Route("/habits", func(r chi.Router) {
			r.Get("/", s.listHabits)
			r.Post("/", s.addHabit)
			r.Delete("/", s.resetHabits)
			r.Post("/clear-completed", s.clearCompleted)
			r.Patch("/{habit_id}", s.toggleHabit)
			r.Delete("/{habit_id}", s.deleteHabit)
		})
	})
	return r
}
