// Package tracker owns the authoritative habit list and keeps it in sync
// with a blob store.
//
// Every mutation persists the full list before committing it in memory, so
// a failed write leaves both the in-memory and the durable state as they
// were. Store methods are safe for concurrent use; each call runs to
// completion before the next starts.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brk3/habit-tracker/internal/logger"
	"github.com/brk3/habit-tracker/internal/storage"
	"github.com/brk3/habit-tracker/pkg/habit"
	"github.com/google/uuid"
)

// DefaultKey is the blob key the habit list lives under.
const DefaultKey = "habit-tracker-v1"

var (
	// ErrNotLoaded is returned by mutations made before a successful Load.
	ErrNotLoaded = errors.New("habit store not loaded")
	// ErrPersist wraps a failed write; the in-memory list is left as it was.
	ErrPersist = errors.New("habit list not persisted")
)

// Store holds the ordered habit list for one blob key.
type Store struct {
	mu     sync.Mutex
	blobs  storage.BlobStore
	key    string
	now    func() time.Time
	newID  func() string
	habits []habit.Habit
	loaded bool
}

// Option configures a Store at construction.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock sets the source of CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the id generator; uuid.NewString by default.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// New returns a Store backed by blobs. Call Load before any mutation.
func New(blobs storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs: blobs,
		key:   DefaultKey,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. A missing,
// unparseable or non-array blob yields an empty list and no error; only a
// failure to read the blob store itself is returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.key, err)
	}

	s.habits = []habit.Habit{}
	s.loaded = true
	if !found || len(raw) == 0 {
		logger.Debug("No persisted habits, starting empty", "key", s.key)
		return nil
	}

	var parsed []habit.Habit
	if err := json.Unmarshal(raw, &parsed); err != nil {
		logger.Warn("Discarding unreadable habit list", "key", s.key, "error", err)
		return nil
	}
	s.habits = sanitize(parsed)
	if dropped := len(parsed) - len(s.habits); dropped > 0 {
		logger.Warn("Dropped malformed habits on load", "key", s.key, "dropped", dropped)
	}
	logger.Debug("Loaded habits", "key", s.key, "count", len(s.habits))
	return nil
}

// sanitize drops entries that break the list invariants: a missing id, a
// blank text, or an id already seen earlier in the list.
func sanitize(in []habit.Habit) []habit.Habit {
	out := make([]habit.Habit, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, h := range in {
		if h.ID == "" || strings.TrimSpace(h.Text) == "" {
			continue
		}
		if _, dup := seen[h.ID]; dup {
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Add prepends a new habit. Blank text is ignored and returns the current
// state without writing.
func (s *Store) Add(ctx context.Context, text string) (habit.State, error) {
	// encoding/json writes invalid UTF-8 as U+FFFD; normalise first so the
	// persisted text matches what is held in memory.
	text = strings.TrimSpace(strings.ToValidUTF8(text, "\uFFFD"))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return habit.State{}, ErrNotLoaded
	}
	if text == "" {
		return s.stateLocked(), nil
	}

	h := habit.Habit{
		ID:        s.uniqueIDLocked(),
		Text:      text,
		Done:      false,
		CreatedAt: s.now().UnixMilli(),
	}
	next := make([]habit.Habit, 0, len(s.habits)+1)
	next = append(next, h)
	next = append(next, s.habits...)

	logger.Debug("Adding habit", "id", h.ID)
	return s.commitLocked(ctx, next)
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
}

// Toggle sets done on the habit with the given id. An unknown id leaves the
// list unchanged.
func (s *Store) Toggle(ctx context.Context, id string, done bool) (habit.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return habit.State{}, ErrNotLoaded
	}
	next := make([]habit.Habit, len(s.habits))
	copy(next, s.habits)
	if i := s.indexLocked(id); i >= 0 {
		next[i].Done = done
	}

	logger.Debug("Toggling habit", "id", id, "done", done)
	return s.commitLocked(ctx, next)
}

// Delete removes the habit with the given id, if any.
func (s *Store) Delete(ctx context.Context, id string) (habit.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return habit.State{}, ErrNotLoaded
	}
	next := s.filterLocked(func(h habit.Habit) bool { return h.ID != id })

	logger.Debug("Deleting habit", "id", id)
	return s.commitLocked(ctx, next)
}

func (s *Store) ClearCompleted(ctx context.Context) (habit.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return habit.State{}, ErrNotLoaded
	}
	next := s.filterLocked(func(h habit.Habit) bool { return !h.Done })

	logger.Debug("Clearing completed habits", "removed", len(s.habits)-len(next))
	return s.commitLocked(ctx, next)
}

func (s *Store) ResetAll(ctx context.Context) (habit.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return habit.State{}, ErrNotLoaded
	}

	logger.Debug("Resetting all habits", "removed", len(s.habits))
	return s.commitLocked(ctx, []habit.Habit{})
}

// All returns a copy of the list, newest first.
func (s *Store) All() []habit.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyLocked()
}

func (s *Store) Progress() habit.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return habit.ProgressOf(s.habits)
}

func (s *Store) Snapshot() habit.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked()
}

// ListHabits lets a Store stand in wherever habits are queried remotely.
func (s *Store) ListHabits(_ context.Context) ([]habit.Habit, error) {
	return s.All(), nil
}

func (s *Store) commitLocked(ctx context.Context, next []habit.Habit) (habit.State, error) {
	raw, err := json.Marshal(next)
	if err != nil {
		return s.stateLocked(), fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := s.blobs.Set(ctx, s.key, raw); err != nil {
		logger.Error("Failed to persist habits", "key", s.key, "error", err)
		return s.stateLocked(), fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.habits = next
	return s.stateLocked(), nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) filterLocked(keep func(habit.Habit) bool) []habit.Habit {
	out := make([]habit.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func (s *Store) copyLocked() []habit.Habit {
	return append([]habit.Habit{}, s.habits...)
}

func (s *Store) stateLocked() habit.State {
	return habit.State{
		Habits:   s.copyLocked(),
		Progress: habit.ProgressOf(s.habits),
	}
}
