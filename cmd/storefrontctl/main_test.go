package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STOREFRONT_DRIVER", "bolt")
	t.Setenv("STOREFRONT_BOLT_PATH", filepath.Join(dir, "storefront.db"))
	t.Setenv("STOREFRONT_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(strings.NewReader(stdin), &out).Run(append([]string{"storefrontctl", "--env-file", "missing.env"}, args...))
	return out.String(), err
}

func TestStatus(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "origin")
	assert.Contains(t, out, "seed")
	assert.Contains(t, out, "logged out")
}

func TestDump(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "", "dump")
	require.NoError(t, err)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.NotEmpty(t, snap.Products)
	assert.NotEmpty(t, snap.Accounts)
}

func TestOrdersCSVHeaderOnly(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "", "orders", "--csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "order_id,"), out)
}

func TestResetPromptsAndWritesMetrics(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "n\n", "reset")
	assert.ErrorIs(t, err, domain.ErrResetDeclined)
	assert.Contains(t, out, "[y/N]")

	prom := filepath.Join(dir, "metrics.prom")
	out, err = run(t, "", "--metrics-textfile", prom, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "storefront data reset")
	raw, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `operation="reset_data"`)
}
