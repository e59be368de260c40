package store

import (
	"context"
	"testing"

	"restaurant-seating/internal/testutil"
)

func openStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	st, err := New(testutil.JournalDSN(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(st.Close)
	return st, context.Background()
}
