package testutil

import (
	"testing"

	"github.com/nhle/ai-manager/internal/store"
)

// NewTestKV creates an in-memory KV repository with all migrations
// applied. It automatically closes the repository when the test completes.
func NewTestKV(t *testing.T) *store.KV {
	t.Helper()

	kv, err := store.NewKV(":memory:")
	if err != nil {
		t.Fatalf("creating test repository: %v", err)
	}

	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("closing test repository: %v", err)
		}
	})

	return kv
}
