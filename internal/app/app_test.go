package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/infra/kv/memory"
	"storefront/internal/logging"
	"storefront/pkg/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.BoltPath = filepath.Join(t.TempDir(), "storefront.db")
	return cfg
}

func TestNewWithInjectedMedium(t *testing.T) {
	ctx := context.Background()
	medium := memory.New()
	a, err := New(ctx, testConfig(t), Options{Medium: medium, Logger: logging.Nop()})
	require.NoError(t, err)
	defer a.Close()

	svc := a.Service()
	assert.Equal(t, domain.OriginSeed, svc.Origin())
	_, err = svc.AddProduct(ctx, domain.Product{Name: "Wired"})
	require.NoError(t, err)
	assert.Equal(t, 1, medium.Keys())

	path := filepath.Join(t.TempDir(), "storefront.prom")
	require.NoError(t, a.WriteMetrics(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `storefront_operations_total{operation="add_product",result="success"} 1`)
}

func TestNewWritesTraceFile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.TraceFile = filepath.Join(t.TempDir(), "trace.jsonl")

	a, err := New(ctx, cfg, Options{Medium: memory.New(), Logger: logging.Nop()})
	require.NoError(t, err)
	_, err = a.Service().AddProduct(ctx, domain.Product{Name: "Traced"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	raw, err := os.ReadFile(cfg.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"operation":"add_product"`)
	assert.Contains(t, string(raw), `"status":"success"`)
}

func TestNewOpensConfiguredBolt(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, Options{Logger: logging.Nop()})
	require.NoError(t, err)
	loginErr := a.Service().Login(ctx, domain.Credentials{Email: "customer@example.com", Password: "password123"})
	require.NoError(t, loginErr)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, Options{Logger: logging.Nop()})
	require.NoError(t, err)
	defer b.Close()
	assert.True(t, b.Service().Session().IsLoggedIn)
}
