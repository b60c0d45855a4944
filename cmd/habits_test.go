package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brk3/habit-tracker/internal/config"
	"github.com/brk3/habit-tracker/internal/server"
	"github.com/brk3/habit-tracker/internal/storage/bolt"
	"github.com/brk3/habit-tracker/internal/storage/memory"
	"github.com/brk3/habit-tracker/internal/tracker"
	"github.com/brk3/habit-tracker/pkg/habit"
)

func testDB(t *testing.T) string {
	t.Helper()
	t.Setenv("HABITS_CONFIG", "")
	t.Setenv("HABITS_STORAGE", "bolt")
	path := filepath.Join(t.TempDir(), "habits.db")
	t.Setenv("HABITS_DB_PATH", path)
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v: unexpected error: %v\n%s", args, err, out)
	}
	return out
}

func TestAddCommand_Output(t *testing.T) {
	testDB(t)

	out := mustRun(t, "add", "Drink", "water")
	if !strings.Contains(out, "[ ] 1. Drink water") {
		t.Errorf("expected new habit in output, got:\n%s", out)
	}
	if !strings.Contains(out, "0 / 1 done") {
		t.Errorf("expected progress label, got:\n%s", out)
	}
}

func TestAddCommand_Blank(t *testing.T) {
	testDB(t)

	if _, err := run(t, "add", "   "); err == nil {
		t.Fatal("expected error for blank habit text")
	}
	out := mustRun(t, "list")
	if !strings.Contains(out, "No habits yet") {
		t.Fatalf("blank add should not store anything, got:\n%s", out)
	}
}

func TestAddCommand_MissingArgs(t *testing.T) {
	testDB(t)

	if _, err := run(t, "add"); err == nil {
		t.Fatal("expected error due to missing args")
	}
}

func TestListCommand_Order(t *testing.T) {
	testDB(t)
	mustRun(t, "add", "A")
	mustRun(t, "add", "B")

	out := mustRun(t, "list")
	b := strings.Index(out, "1. B")
	a := strings.Index(out, "2. A")
	if a < 0 || b < 0 || b > a {
		t.Fatalf("expected B before A, got:\n%s", out)
	}
}

func TestDoneUndoCommands(t *testing.T) {
	testDB(t)
	mustRun(t, "add", "A")
	mustRun(t, "add", "B")

	out := mustRun(t, "done", "2")
	if !strings.Contains(out, "[x] 2. A") || !strings.Contains(out, "1 / 2 done") {
		t.Fatalf("expected A done, got:\n%s", out)
	}

	out = mustRun(t, "progress")
	if strings.TrimSpace(out) != "1 / 2 done" {
		t.Fatalf("got progress %q", out)
	}

	out = mustRun(t, "undo", "2")
	if !strings.Contains(out, "0 / 2 done") {
		t.Fatalf("expected A undone, got:\n%s", out)
	}
}

func TestClearCompletedAndResetCommands(t *testing.T) {
	testDB(t)
	mustRun(t, "add", "A")
	mustRun(t, "add", "B")
	mustRun(t, "done", "1")

	out := mustRun(t, "clear-completed")
	if strings.Contains(out, "B") || !strings.Contains(out, "[ ] 1. A") {
		t.Fatalf("expected only A left, got:\n%s", out)
	}

	out = mustRun(t, "reset")
	if !strings.Contains(out, "No habits yet") || !strings.Contains(out, "0 / 0 done") {
		t.Fatalf("expected empty list after reset, got:\n%s", out)
	}
}

func TestDeleteCommand_Unknown(t *testing.T) {
	testDB(t)
	mustRun(t, "add", "A")

	out := mustRun(t, "delete", "no-such-habit")
	if !strings.Contains(out, "1. A") {
		t.Fatalf("unknown id should be a no-op, got:\n%s", out)
	}
	out = mustRun(t, "rm", "1")
	if !strings.Contains(out, "No habits yet") {
		t.Fatalf("expected A deleted, got:\n%s", out)
	}
}

func TestListCommand_CorruptDatabase(t *testing.T) {
	path := testDB(t)
	s, err := bolt.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(context.Background(), tracker.DefaultKey, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	out := mustRun(t, "list")
	if !strings.Contains(out, "No habits yet") {
		t.Fatalf("corrupt data should load as empty, got:\n%s", out)
	}
}

func TestRemoteMode(t *testing.T) {
	testDB(t)
	st := tracker.New(memory.New())
	if err := st.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	c := config.Default()
	ts := httptest.NewServer(server.New(&c, st).Router())
	defer ts.Close()
	t.Setenv("HABITS_API_BASE", ts.URL)
	t.Cleanup(func() { remote = false })

	out := mustRun(t, "--remote", "add", "Remote habit")
	if !strings.Contains(out, "1. Remote habit") {
		t.Fatalf("expected remote add output, got:\n%s", out)
	}
	if got := st.All(); len(got) != 1 || got[0].Text != "Remote habit" {
		t.Fatalf("server store not updated: %+v", got)
	}

	out = mustRun(t, "--remote", "version")
	if !strings.Contains(out, "Server Version:") {
		t.Fatalf("expected server version, got:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	testDB(t)
	out := mustRun(t, "version")
	if !strings.Contains(out, "Client Version:") {
		t.Fatalf("expected client version, got:\n%s", out)
	}
}

func TestNudgeCommand_RequiresConfig(t *testing.T) {
	testDB(t)
	t.Setenv("HABITS_RESEND_API_KEY", "")
	if _, err := run(t, "nudge"); err == nil {
		t.Fatal("expected error without resend api key")
	}
}

func TestResolveID(t *testing.T) {
	habits := []habit.Habit{
		{ID: "abc123", Text: "A"},
		{ID: "abd456", Text: "B"},
		{ID: "xyz789", Text: "C"},
		{ID: "12345678-aaaa-4bbb-8ccc-dddddddddddd", Text: "D"},
	}
	tests := []struct {
		ref  string
		want string
	}{
		{"abc123", "abc123"},
		{"1", "abc123"},
		{"3", "xyz789"},
		{"4", "12345678-aaaa-4bbb-8ccc-dddddddddddd"},
		{"5", "5"},
		{"0", "0"},
		{"x", "xyz789"},
		{"ab", "ab"},
		{"abd", "abd456"},
		{"nope", "nope"},
		{"12345678", "12345678-aaaa-4bbb-8ccc-dddddddddddd"},
		{"1234", "12345678-aaaa-4bbb-8ccc-dddddddddddd"},
	}
	for _, tt := range tests {
		if got := resolveID(habits, tt.ref); got != tt.want {
			t.Errorf("resolveID(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestResolveID_NumericShortID(t *testing.T) {
	habits := []habit.Habit{
		{ID: "12345678-aaaa-4bbb-8ccc-dddddddddddd", Text: "A"},
		{ID: "9f8e7d6c-aaaa-4bbb-8ccc-dddddddddddd", Text: "B"},
	}
	for _, h := range habits {
		if got := resolveID(habits, shortID(h.ID)); got != h.ID {
			t.Errorf("short id %q shown by list resolved to %q, want %q", shortID(h.ID), got, h.ID)
		}
	}
}
