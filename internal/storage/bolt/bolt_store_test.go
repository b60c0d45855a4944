package bolt

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return store, dbPath, cleanup
}

func TestOpen(t *testing.T) {
	store, _, cleanup := newTestStore(t)
	defer cleanup()

	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestGet_Absent(t *testing.T) {
	store, _, cleanup := newTestStore(t)
	defer cleanup()

	v, found, err := store.Get(context.Background(), "habit-tracker-v1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Fatalf("expected key not found, got %q", v)
	}
}

func TestSetGet(t *testing.T) {
	store, _, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, found, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected key to be found")
	}
	if string(v) != `[{"id":"a"}]` {
		t.Fatalf("got %q", v)
	}

	if err := store.Set(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _, _ = store.Get(ctx, "k")
	if string(v) != `[]` {
		t.Fatalf("expected overwrite, got %q", v)
	}
}

func TestKeyIsolation(t *testing.T) {
	store, _, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Set(ctx, "alice", []byte("1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found, _ := store.Get(ctx, "bob"); found {
		t.Fatal("bob should see nothing")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	store, path, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	v, found, err := reopened.Get(ctx, "k")
	if err != nil || !found || string(v) != "v" {
		t.Fatalf("got %q found=%v err=%v", v, found, err)
	}
}
