package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain"
)

func TestSignupLogsIn(t *testing.T) {
	h := newHarness(t)
	acct, err := h.svc.Signup(context.Background(), "New Shopper", "new@example.com", "pw")
	require.NoError(t, err)

	sess := h.svc.Session()
	assert.True(t, sess.IsLoggedIn)
	assert.False(t, sess.IsAdmin)
	require.NotNil(t, sess.CurrentAccount)
	assert.Equal(t, acct.ID, sess.CurrentAccount.ID)
	assert.NotNil(t, acct.Addresses)
	assert.Len(t, h.svc.Accounts(), 3)
}

func TestSignupRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Signup(context.Background(), "Dup", "CUSTOMER@Example.com", "x")
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
	assert.Len(t, h.svc.Accounts(), 2)
	assert.False(t, h.svc.Session().IsLoggedIn)
}

func TestSignupRequiresFields(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Signup(context.Background(), " ", "a@b.c", "x")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
		err   error
	}{
		{name: "exact", creds: domain.Credentials{Email: "customer@example.com", Password: "password123"}},
		{name: "email case differs", creds: domain.Credentials{Email: "Customer@EXAMPLE.com", Password: "password123"}},
		{name: "password case differs", creds: domain.Credentials{Email: "customer@example.com", Password: "PASSWORD123"}, err: domain.ErrInvalidCredentials},
		{name: "unknown email", creds: domain.Credentials{Email: "nobody@example.com", Password: "password123"}, err: domain.ErrInvalidCredentials},
		{name: "missing password", creds: domain.Credentials{Email: "customer@example.com"}, err: domain.ErrMissingCredentials},
		{name: "missing email", creds: domain.Credentials{Password: "password123"}, err: domain.ErrMissingCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.svc.Login(context.Background(), tc.creds)
			sess := h.svc.Session()
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.False(t, sess.IsLoggedIn)
				return
			}
			require.NoError(t, err)
			assert.True(t, sess.IsLoggedIn)
			require.NotNil(t, sess.CurrentAccount)
			assert.Equal(t, int64(1), sess.CurrentAccount.ID)
		})
	}
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("marker alone", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.svc.Login(ctx, domain.Credentials{Admin: true}))
		sess := h.svc.Session()
		assert.True(t, sess.IsLoggedIn)
		assert.True(t, sess.IsAdmin)
		assert.Nil(t, sess.CurrentAccount)
	})

	t.Run("strict rejects unknown admin", func(t *testing.T) {
		h := newHarness(t, WithStrictAdminLogin(true))
		err := h.svc.Login(ctx, domain.Credentials{Admin: true, Username: "Anvar", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.False(t, h.svc.Session().IsLoggedIn)
	})

	t.Run("strict accepts listed admin", func(t *testing.T) {
		h := newHarness(t, WithStrictAdminLogin(true))
		require.NoError(t, h.svc.Login(ctx, domain.Credentials{Admin: true, Username: "Anvar", Password: "Anvar@26"}))
		assert.True(t, h.svc.Session().IsAdmin)
	})
}

func TestLogoutKeepsCart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	loginCustomer(t, h.svc)
	p, v := seedProduct(t, h.svc)
	require.NoError(t, h.svc.AddToCart(ctx, p, v, 1))

	require.NoError(t, h.svc.Logout(ctx))
	assert.Equal(t, domain.Session{}, h.svc.Session())
	assert.Len(t, h.svc.Cart(), 1)
}

func TestRemoveAccountCascadesOrders(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	loginCustomer(t, h.svc)
	p, v := seedProduct(t, h.svc)
	addr := domain.ShippingAddress{Street: "1 Road", City: "Kochi", PostalCode: "682001"}
	for i := 0; i < 2; i++ {
		require.NoError(t, h.svc.AddToCart(ctx, p, v, 1))
		_, err := h.svc.PlaceOrder(ctx, addr)
		require.NoError(t, err)
	}
	require.Len(t, h.svc.OrdersForAccount(1), 2)

	found, err := h.svc.RemoveAccount(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	for _, o := range h.svc.Orders() {
		assert.NotEqual(t, int64(1), o.UserID)
	}
	assert.Len(t, h.svc.Accounts(), 1)
	assert.False(t, h.svc.Session().IsLoggedIn, "removing the current account logs it out")
}

func TestRemoveUnknownAccount(t *testing.T) {
	h := newHarness(t)
	found, err := h.svc.RemoveAccount(context.Background(), 424242)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, h.svc.Accounts(), 2)
}

func TestAddAccountDoesNotLogIn(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.svc.AddAccount(ctx, "Walk In", "walkin@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, h.svc.Session().IsLoggedIn)

	_, err = h.svc.AddAccount(ctx, "Again", "WALKIN@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestRemoveAdministratorKeepsFloor(t *testing.T) {
	ctx := context.Background()
	log := &captureLogger{}
	h := newHarness(t, WithLogger(log))
	only := h.svc.Administrators()
	require.Len(t, only, 1)

	err := h.svc.RemoveAdministrator(ctx, only[0].ID)
	assert.ErrorIs(t, err, domain.ErrLastAdministrator)
	assert.Equal(t, only, h.svc.Administrators())
	assert.True(t, log.has("w:refusing to remove the last administrator"))

	second, err := h.svc.AddAdministrator(ctx, "Deputy", "pw")
	require.NoError(t, err)
	third, err := h.svc.AddAdministrator(ctx, "Night", "pw")
	require.NoError(t, err)

	require.NoError(t, h.svc.RemoveAdministrator(ctx, second.ID))
	assert.Equal(t, []domain.AdminAccount{only[0], third}, h.svc.Administrators())

	err = h.svc.RemoveAdministrator(ctx, 77777)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
