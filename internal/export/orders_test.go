package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain"
)

func sampleOrders() ([]domain.Order, []domain.Account) {
	accounts := []domain.Account{{ID: 1, Name: "Test Customer"}}
	orders := []domain.Order{
		{
			ID: "ORD-2", UserID: 1, Date: "2026-10-15", Status: domain.OrderShipped, Total: 1045,
			Items: []domain.CartLineItem{
				{ProductID: 1, VariantID: 101, Name: "Mattress", VariantDescription: "Single / Cotton", Quantity: 2, Price: 500},
				{ProductID: 3, VariantID: 301, Name: "Pillow", VariantDescription: "Standard / Cotton", Quantity: 1, Price: 45},
			},
			ShippingAddress: domain.ShippingAddress{City: "Kochi", PostalCode: "682001"},
		},
		{
			ID: "ORD-1", UserID: 99, Date: "2026-10-14", Status: domain.OrderCancelled, Total: 80,
			Items: []domain.CartLineItem{{ProductID: 4, VariantID: 401, Name: "Protector", Quantity: 1, Price: 80}},
		},
	}
	return orders, accounts
}

func TestOrderRows(t *testing.T) {
	orders, accounts := sampleOrders()
	rows := OrderRows(orders, accounts)
	require.Len(t, rows, 3)
	assert.Equal(t, "Test Customer", rows[0].Customer)
	assert.Equal(t, 1000.0, rows[0].LineTotal)
	assert.Equal(t, 1045.0, rows[1].OrderTotal)
	assert.Empty(t, rows[2].Customer, "unknown account")
}

func TestWriteOrdersCSVRoundTrip(t *testing.T) {
	orders, accounts := sampleOrders()
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, orders, accounts))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "order_id,date,status,user_id,customer"), header)

	rows, err := ReadOrderRows(&buf)
	require.NoError(t, err)
	assert.Equal(t, OrderRows(orders, accounts), rows)
}

func TestWriteOrdersCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "order_id")
}

func TestSummarize(t *testing.T) {
	orders, accounts := sampleOrders()
	sum := Summarize(domain.Snapshot{Orders: orders, Accounts: accounts, Products: make([]domain.Product, 4)})
	assert.Equal(t, 2, sum.Orders)
	assert.Equal(t, 4, sum.Products)
	assert.Equal(t, 1045.0, sum.Revenue, "cancelled orders are excluded")
	assert.Equal(t, map[string]int{"Shipped": 1, "Cancelled": 1}, sum.ByStatus)

	fields := sum.Fields()
	assert.Equal(t, [2]string{"revenue", "1045"}, fields[4])
	assert.Equal(t, [2]string{"orders Shipped", "1"}, fields[5])
	assert.Equal(t, [2]string{"orders Cancelled", "1"}, fields[6])
}
