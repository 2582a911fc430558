package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/kv/kvtest"
)

func TestSQLiteContract(t *testing.T) {
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	kvtest.RunContract(t, s)
}

func TestSQLitePersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := New(ctx, path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	require.NoError(t, s.Set(ctx, "snapshot", []byte(`{"orders":[]}`)))
	require.NoError(t, s.Close())

	reloaded, err := New(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reloaded.Close() })
	got, err := reloaded.Get(ctx, "snapshot")
	require.NoError(t, err)
	require.JSONEq(t, `{"orders":[]}`, string(got))

	var table string
	require.NoError(t, reloaded.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", "storefront_kv").Scan(&table))
	require.Equal(t, "storefront_kv", table)
}
