package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("processing").Valid(), "statuses are case sensitive")
	assert.False(t, OrderStatus("").Valid())
}

func TestSessionConsistent(t *testing.T) {
	acct := &Account{ID: 1}
	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{"logged out", Session{}, true},
		{"customer", Session{IsLoggedIn: true, CurrentAccount: acct}, true},
		{"admin", Session{IsLoggedIn: true, IsAdmin: true}, true},
		{"admin with account", Session{IsLoggedIn: true, IsAdmin: true, CurrentAccount: acct}, false},
		{"admin not logged in", Session{IsAdmin: true}, false},
		{"customer without account", Session{IsLoggedIn: true}, false},
		{"account while logged out", Session{CurrentAccount: acct}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.s.Consistent())
		})
	}
}

func TestClonesAreDeep(t *testing.T) {
	p := Product{ID: 1, Variants: []ProductVariant{{ID: 2, Price: 10}}}
	pc := p.Clone()
	pc.Variants[0].Price = 99
	assert.Equal(t, 10.0, p.Variants[0].Price)

	a := Account{ID: 1, Addresses: []ShippingAddress{{City: "Kochi"}}}
	s := Session{IsLoggedIn: true, CurrentAccount: &a}
	sc := s.Clone()
	sc.CurrentAccount.Addresses[0].City = "Pune"
	assert.Equal(t, "Kochi", a.Addresses[0].City)

	o := Order{Items: []CartLineItem{{Quantity: 1}}}
	oc := o.Clone()
	oc.Items[0].Quantity = 5
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestSnapshotCloneNormalizesCollections(t *testing.T) {
	c := Snapshot{}.Clone()
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[],"accounts":[],"orders":[],"configuration":{"logoUrl":"","faviconUrl":"","upiId":""},"carousel":[]}`, string(raw))
}

func TestSiteSettingsPatchApply(t *testing.T) {
	upi := "new@bank"
	cur := SiteSettings{LogoURL: "logo", FaviconURL: "fav", UPIID: "old@bank"}
	got := SiteSettingsPatch{UPIID: &upi}.Apply(cur)
	assert.Equal(t, SiteSettings{LogoURL: "logo", FaviconURL: "fav", UPIID: "new@bank"}, got)
	assert.Equal(t, cur, SiteSettingsPatch{}.Apply(cur))
}

func TestShippingAddressMissingFields(t *testing.T) {
	assert.Empty(t, ShippingAddress{Street: "a", City: "b", PostalCode: "c"}.MissingFields())
	assert.Equal(t, []string{"street", "city", "postalCode"}, ShippingAddress{Region: "x"}.MissingFields())
}

func TestVariantAndLineHelpers(t *testing.T) {
	v := ProductVariant{ID: 7, Size: "Queen", ClothMaterial: "Knitted Fabric", Price: 950}
	assert.Equal(t, "Queen / Knitted Fabric", v.Description())
	got, ok := Product{Variants: []ProductVariant{v}}.Variant(7)
	assert.True(t, ok)
	assert.Equal(t, v, got)
	assert.Equal(t, 2850.0, CartLineItem{Price: 950, Quantity: 3}.Subtotal())
	assert.True(t, Account{Email: "A@b.com"}.EmailMatches("a@B.COM"))
}

func TestErrors(t *testing.T) {
	err := NotFoundError{Entity: EntityOrder, ID: "ORD-1"}
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "order ORD-1 not found", err.Error())

	inv := Invalid("%s is required", "headline")
	assert.ErrorIs(t, inv, ErrValidation)
	assert.Equal(t, "validation failed: headline is required", inv.Error())
}
