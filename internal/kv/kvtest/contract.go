// Package kvtest holds the behavioural contract every kv medium must satisfy.
package kvtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/kv/core"
)

// RunContract exercises get/set/overwrite/delete semantics against m.
func RunContract(t *testing.T, m core.Medium) {
	t.Helper()
	ctx := context.Background()

	_, err := m.Get(ctx, "absent")
	require.True(t, errors.Is(err, core.ErrNotFound), "absent key: %v", err)

	require.NoError(t, m.Set(ctx, "snapshot", []byte(`{"products":[]}`)))
	got, err := m.Get(ctx, "snapshot")
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[]}`, string(got))

	require.NoError(t, m.Set(ctx, "snapshot", []byte(`{"products":[{"id":1}]}`)))
	got, err = m.Get(ctx, "snapshot")
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[{"id":1}]}`, string(got))

	require.NoError(t, m.Set(ctx, "isAdmin", []byte("true")))
	require.NoError(t, m.Delete(ctx, "isAdmin"))
	_, err = m.Get(ctx, "isAdmin")
	assert.True(t, errors.Is(err, core.ErrNotFound), "deleted key: %v", err)

	require.NoError(t, m.Delete(ctx, "never-set"))

	got, err = m.Get(ctx, "snapshot")
	require.NoError(t, err, "unrelated delete must keep other keys")
	assert.NotEmpty(t, got)
}
