package core

import (
	"context"
	"strconv"
	"time"

	"storefront/pkg/domain"
)

// OrderIDPrefix distinguishes order ids from other identifiers.
const OrderIDPrefix = "ORD-"

// Orders returns the order history, newest first.
func (s *Service) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.snapshot.Orders))
	for _, o := range s.snapshot.Orders {
		out = append(out, o.Clone())
	}
	return out
}

// OrdersForAccount returns the orders placed by one customer, newest first.
func (s *Service) OrdersForAccount(accountID int64) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.snapshot.Orders {
		if o.UserID == accountID {
			out = append(out, o.Clone())
		}
	}
	return out
}

// Order looks up an order by id.
func (s *Service) Order(id string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.snapshot.Orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return domain.Order{}, false
}

// PlaceOrder turns the cart into an order for the logged-in customer and
// returns the new order id. The cart is emptied on success.
func (s *Service) PlaceOrder(ctx context.Context, address domain.ShippingAddress) (string, error) {
	var id string
	err := s.run(ctx, "place_order", func() (effect, error) {
		if len(s.cart) == 0 {
			return 0, domain.ErrEmptyCart
		}
		acct := s.session.CurrentAccount
		if !s.session.IsLoggedIn || s.session.IsAdmin || acct == nil {
			return 0, domain.ErrNotLoggedIn
		}
		if missing := address.MissingFields(); len(missing) > 0 {
			return 0, domain.Invalid("shipping address is missing %v", missing)
		}
		order := domain.Order{
			ID:              OrderIDPrefix + strconv.FormatInt(s.ids.NextID(), 10),
			UserID:          acct.ID,
			Date:            s.clock.Now().UTC().Format(time.DateOnly),
			Items:           append([]domain.CartLineItem{}, s.cart...),
			Total:           cartTotal(s.cart),
			Status:          domain.OrderProcessing,
			ShippingAddress: address,
		}
		s.snapshot.Orders = append([]domain.Order{order}, s.snapshot.Orders...)
		s.cart = nil
		id = order.ID
		s.logger.Info("order placed", "order", order.ID, "account", acct.ID, "total", order.Total)
		return changedSnapshot | changedCart, nil
	})
	return id, err
}

// UpdateOrderStatus sets the status of one order. Any known status may follow
// any other.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return s.run(ctx, "update_order_status", func() (effect, error) {
		if !status.Valid() {
			return 0, domain.ErrInvalidOrderStatus
		}
		for i := range s.snapshot.Orders {
			if s.snapshot.Orders[i].ID == orderID {
				s.snapshot.Orders[i].Status = status
				return changedSnapshot, nil
			}
		}
		return 0, domain.NotFoundError{Entity: domain.EntityOrder, ID: orderID}
	})
}
