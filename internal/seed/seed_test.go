package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedShape(t *testing.T) {
	snap := Snapshot()
	require.NotEmpty(t, snap.Products)
	require.NotEmpty(t, snap.Accounts)
	require.NotEmpty(t, snap.Carousel)
	assert.Empty(t, snap.Orders)
	assert.NotNil(t, snap.Orders)
	assert.NotEmpty(t, snap.Configuration.LogoURL)
	assert.NotEmpty(t, snap.Configuration.FaviconURL)
	assert.NotEmpty(t, snap.Configuration.UPIID)
	require.Len(t, Administrators(), 1)
	assert.Equal(t, "Anvar", Administrators()[0].Username)
}

func TestSeedIDsUnique(t *testing.T) {
	snap := Snapshot()
	products := map[int64]bool{}
	variants := map[int64]bool{}
	for _, p := range snap.Products {
		require.False(t, products[p.ID], "duplicate product %d", p.ID)
		products[p.ID] = true
		for _, v := range p.Variants {
			require.False(t, variants[v.ID], "duplicate variant %d", v.ID)
			variants[v.ID] = true
		}
	}
	emails := map[string]bool{}
	for _, a := range snap.Accounts {
		key := strings.ToLower(a.Email)
		require.False(t, emails[key], "duplicate email %s", a.Email)
		emails[key] = true
	}
}

func TestSeedReturnsIndependentCopies(t *testing.T) {
	a := Snapshot()
	a.Products[0].Name = "changed"
	a.Products[0].Variants[0].Price = 1
	b := Snapshot()
	assert.NotEqual(t, "changed", b.Products[0].Name)
	assert.NotEqual(t, 1.0, b.Products[0].Variants[0].Price)

	admins := Administrators()
	admins[0].Username = "x"
	assert.Equal(t, "Anvar", Administrators()[0].Username)
}
