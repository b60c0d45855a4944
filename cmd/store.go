package cmd

import (
	"context"
	"fmt"

	"github.com/brk3/habit-tracker/internal/apiclient"
	"github.com/brk3/habit-tracker/internal/config"
	"github.com/brk3/habit-tracker/internal/storage"
	"github.com/brk3/habit-tracker/internal/storage/bolt"
	"github.com/brk3/habit-tracker/internal/storage/memory"
	"github.com/brk3/habit-tracker/internal/storage/redis"
	"github.com/brk3/habit-tracker/internal/tracker"
	"github.com/brk3/habit-tracker/pkg/habit"
)

// habitService is what the commands drive: a local tracker.Store or the
// HTTP API of a remote one.
type habitService interface {
	Snapshot(ctx context.Context) (habit.State, error)
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	Add(ctx context.Context, text string) (habit.State, error)
	Toggle(ctx context.Context, id string, done bool) (habit.State, error)
	Delete(ctx context.Context, id string) (habit.State, error)
	ClearCompleted(ctx context.Context) (habit.State, error)
	ResetAll(ctx context.Context) (habit.State, error)
}

type localService struct {
	*tracker.Store
}

func (l localService) Snapshot(context.Context) (habit.State, error) {
	return l.Store.Snapshot(), nil
}

func openBlobStore(ctx context.Context, c *config.Config) (storage.BlobStore, error) {
	switch c.Storage.Backend {
	case "bolt":
		s, err := bolt.Open(c.Storage.BoltPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		s, err := redis.Open(ctx, redis.Options{
			Addr:     c.Storage.RedisAddr,
			Password: c.Storage.RedisPassword,
			DB:       c.Storage.RedisDB,
			Prefix:   c.Storage.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
}

// openLocalStore opens the configured backend and loads the habit list.
// The returned func closes the backend.
func openLocalStore(ctx context.Context, c *config.Config) (*tracker.Store, func(), error) {
	blobs, err := openBlobStore(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	st := tracker.New(blobs, tracker.WithKey(c.Storage.Key))
	if err := st.Load(ctx); err != nil {
		_ = blobs.Close()
		return nil, nil, err
	}
	return st, func() { _ = blobs.Close() }, nil
}

func openService(ctx context.Context, c *config.Config) (habitService, func(), error) {
	if remote {
		client := apiclient.New(c.APIBaseURL)
		client.AuthToken = c.AuthToken
		return client, func() {}, nil
	}
	st, closeFn, err := openLocalStore(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return localService{st}, closeFn, nil
}
