package testsupport

import (
	"context"
	"testing"

	"pgnlens/internal/history"
)

// MustOpenHistory opens a history.Store at path for tests and registers cleanup.
func MustOpenHistory(t testing.TB, path string) *history.Store {
	t.Helper()

	store, err := history.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
