package memory

import (
	"context"
	"testing"
)

func TestGetSet(t *testing.T) {
	m := New()
	ctx := context.Background()

	if _, found, err := m.Get(ctx, "k"); found || err != nil {
		t.Fatalf("expected absent key, found=%v err=%v", found, err)
	}

	buf := []byte("hello")
	if err := m.Set(ctx, "k", buf); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	buf[0] = 'j'

	v, found, err := m.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if string(v) != "hello" {
		t.Fatalf("stored value aliased caller buffer: got %q", v)
	}
}
