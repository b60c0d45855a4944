package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brk3/habit-tracker/internal/logger"
	"github.com/brk3/habit-tracker/pkg/habit"
	"github.com/brk3/habit-tracker/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
)

const (
	maxTextLength = 200
	maxBodyBytes  = 4 << 10
)

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) writeState(w http.ResponseWriter, op string, code int, st habit.State, err error) {
	if err != nil {
		mutationsTotal.WithLabelValues(op, "error").Inc()
		logger.Error("Failed to persist habits", "op", op, "error", err)
		http.Error(w, `{"error":"storage write failed"}`, http.StatusInternalServerError)
		return
	}
	mutationsTotal.WithLabelValues(op, "ok").Inc()
	updateHabitGauges(st)
	if err := writeJSON(w, code, st); err != nil {
		logger.Error("Failed to serialize state response", "op", op, "error", err)
	}
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, versioninfo.Get()); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	st := s.store.Snapshot()
	logger.DebugContext(r.Context(), "Listing habits", "count", len(st.Habits))
	if err := writeJSON(w, http.StatusOK, st); err != nil {
		logger.Error("Failed to serialize habit list response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getProgress(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, s.store.Progress()); err != nil {
		logger.Error("Failed to serialize progress response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) addHabit(w http.ResponseWriter, r *http.Request) {
	var req AddHabitRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "Invalid JSON in add habit request", "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		http.Error(w, `{"error":"habit text is required"}`, http.StatusBadRequest)
		return
	}
	if len([]rune(text)) > maxTextLength {
		http.Error(w, `{"error":"habit text is too long"}`, http.StatusBadRequest)
		return
	}

	st, err := s.store.Add(r.Context(), text)
	if err == nil {
		logger.Info("Habit added", "id", st.Habits[0].ID)
	}
	s.writeState(w, "add", http.StatusCreated, st, err)
}

func (s *Server) toggleHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	var req ToggleHabitRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "Invalid JSON in toggle habit request", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if req.Done == nil {
		http.Error(w, `{"error":"done is required"}`, http.StatusBadRequest)
		return
	}

	st, err := s.store.Toggle(r.Context(), habitID, *req.Done)
	s.writeState(w, "toggle", http.StatusOK, st, err)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Info("Deleting habit", "habit_id", habitID)

	st, err := s.store.Delete(r.Context(), habitID)
	s.writeState(w, "delete", http.StatusOK, st, err)
}

func (s *Server) clearCompleted(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.ClearCompleted(r.Context())
	s.writeState(w, "clear_completed", http.StatusOK, st, err)
}

func (s *Server) resetHabits(w http.ResponseWriter, r *http.Request) {
	logger.Info("Resetting all habits")
	st, err := s.store.ResetAll(r.Context())
	s.writeState(w, "reset", http.StatusOK, st, err)
}
