// Package export renders storefront records for operators.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"

	"storefront/pkg/domain"
)

// OrderLineRow is one CSV row: an order line with its order header repeated.
type OrderLineRow struct {
	OrderID    string  `csv:"order_id"`
	Date       string  `csv:"date"`
	Status     string  `csv:"status"`
	UserID     int64   `csv:"user_id"`
	Customer   string  `csv:"customer"`
	ProductID  int64   `csv:"product_id"`
	VariantID  int64   `csv:"variant_id"`
	Product    string  `csv:"product"`
	Variant    string  `csv:"variant"`
	Quantity   int     `csv:"quantity"`
	UnitPrice  float64 `csv:"unit_price"`
	LineTotal  float64 `csv:"line_total"`
	OrderTotal float64 `csv:"order_total"`
	City       string  `csv:"city"`
	PostalCode string  `csv:"postal_code"`
}

// OrderRows flattens orders into line rows. accounts resolves customer names;
// unknown ids leave the name blank.
func OrderRows(orders []domain.Order, accounts []domain.Account) []OrderLineRow {
	names := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	var rows []OrderLineRow
	for _, o := range orders {
		for _, item := range o.Items {
			rows = append(rows, OrderLineRow{
				OrderID:    o.ID,
				Date:       o.Date,
				Status:     string(o.Status),
				UserID:     o.UserID,
				Customer:   names[o.UserID],
				ProductID:  item.ProductID,
				VariantID:  item.VariantID,
				Product:    item.Name,
				Variant:    item.VariantDescription,
				Quantity:   item.Quantity,
				UnitPrice:  item.Price,
				LineTotal:  item.Subtotal(),
				OrderTotal: o.Total,
				City:       o.ShippingAddress.City,
				PostalCode: o.ShippingAddress.PostalCode,
			})
		}
	}
	return rows
}

// WriteOrdersCSV writes the flattened orders with a header row. No orders
// yields the header alone.
func WriteOrdersCSV(w io.Writer, orders []domain.Order, accounts []domain.Account) error {
	rows := OrderRows(orders, accounts)
	if rows == nil {
		rows = []OrderLineRow{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write orders csv: %w", err)
	}
	return nil
}

// ReadOrderRows parses a CSV produced by WriteOrdersCSV.
func ReadOrderRows(r io.Reader) ([]OrderLineRow, error) {
	var rows []OrderLineRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read orders csv: %w", err)
	}
	return rows, nil
}

// Summary is the store-wide count overview printed by the status command.
type Summary struct {
	Products int
	Accounts int
	Orders   int
	Slides   int
	Revenue  float64
	ByStatus map[string]int
}

// Summarize counts snapshot records and sums non-cancelled revenue.
func Summarize(s domain.Snapshot) Summary {
	sum := Summary{
		Products: len(s.Products),
		Accounts: len(s.Accounts),
		Orders:   len(s.Orders),
		Slides:   len(s.Carousel),
		ByStatus: make(map[string]int),
	}
	for _, o := range s.Orders {
		sum.ByStatus[string(o.Status)]++
		if o.Status != domain.OrderCancelled {
			sum.Revenue += o.Total
		}
	}
	return sum
}

// Fields renders the summary as ordered key/value pairs for display.
func (s Summary) Fields() [][2]string {
	out := [][2]string{
		{"products", cast.ToString(s.Products)},
		{"accounts", cast.ToString(s.Accounts)},
		{"orders", cast.ToString(s.Orders)},
		{"carousel slides", cast.ToString(s.Slides)},
		{"revenue", cast.ToString(s.Revenue)},
	}
	for _, st := range domain.OrderStatuses() {
		if n := s.ByStatus[string(st)]; n > 0 {
			out = append(out, [2]string{"orders " + string(st), cast.ToString(n)})
		}
	}
	return out
}
