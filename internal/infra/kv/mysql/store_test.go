package mysql

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/kv/kvtest"
)

func TestMySQLRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), "")
	require.Error(t, err)
}

func TestMySQLContract(t *testing.T) {
	dsn := os.Getenv("STOREFRONT_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_MYSQL_DSN not set")
	}
	s, err := New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	kvtest.RunContract(t, s)
}
