package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/infra/kv/memory"
	"storefront/internal/seed"
	"storefront/internal/store"
	"storefront/pkg/domain"
)

func dirty(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	loginCustomer(t, svc)
	p, v := seedProduct(t, svc)
	require.NoError(t, svc.AddToCart(ctx, p, v, 1))
	_, err := svc.PlaceOrder(ctx, testAddress)
	require.NoError(t, err)
	require.NoError(t, svc.AddToCart(ctx, p, v, 3))
	_, err = svc.AddProduct(ctx, domain.Product{Name: "Extra"})
	require.NoError(t, err)
	_, err = svc.UpdateSiteSettings(ctx, domain.SiteSettingsPatch{UPIID: strPtr("other@bank")})
	require.NoError(t, err)
}

func TestResetDataRestoresSeed(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	dirty(t, h.svc)
	_, err := h.svc.AddAdministrator(ctx, "Deputy", "pw")
	require.NoError(t, err)

	var asked string
	require.NoError(t, h.svc.ResetData(ctx, func(prompt string) bool {
		asked = prompt
		return true
	}))

	assert.Equal(t, ResetPrompt, asked)
	assert.Equal(t, seed.Snapshot(), h.svc.Snapshot())
	assert.Empty(t, h.svc.Cart())
	assert.Equal(t, domain.Session{}, h.svc.Session())
	assert.Len(t, h.svc.Administrators(), 2, "administrators survive a reset")

	reloaded := h.open(t)
	assert.Equal(t, seed.Snapshot(), reloaded.Snapshot())
	assert.False(t, reloaded.Session().IsLoggedIn)
}

func TestResetDataDeclined(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	dirty(t, h.svc)
	before := h.svc.Snapshot()

	assert.ErrorIs(t, h.svc.ResetData(ctx, func(string) bool { return false }), domain.ErrResetDeclined)
	assert.ErrorIs(t, h.svc.ResetData(ctx, nil), domain.ErrResetDeclined)
	assert.Equal(t, before, h.svc.Snapshot())
	assert.Len(t, h.svc.Cart(), 1)
	assert.True(t, h.svc.Session().IsLoggedIn)
}

func TestCustomSeedServesFirstRunAndReset(t *testing.T) {
	ctx := context.Background()
	custom := func() domain.Snapshot {
		snap := seed.Snapshot()
		snap.Products = snap.Products[:1]
		snap.Configuration.UPIID = "custom@bank"
		return snap
	}
	durable := store.NewDurable(memory.New(), "", nil, store.WithSeed(custom))
	svc, err := Open(ctx, durable, store.NewSession(memory.New(), nil),
		WithClock(ClockFunc(func() time.Time { return fixedNow })),
		WithIDGenerator(&seqIDs{next: 1000}))
	require.NoError(t, err)

	assert.Equal(t, domain.OriginSeed, svc.Origin())
	assert.Equal(t, custom(), svc.Snapshot())

	_, err = svc.AddProduct(ctx, domain.Product{Name: "Extra"})
	require.NoError(t, err)
	require.NoError(t, svc.ResetData(ctx, func(string) bool { return true }))
	assert.Equal(t, custom(), svc.Snapshot())
}
