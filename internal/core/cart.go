package core

import (
	"context"

	"storefront/pkg/domain"
)

// Cart returns a copy of the current line items.
func (s *Service) Cart() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLineItem{}, s.cart...)
}

// CartTotal sums price times quantity over the current lines.
func (s *Service) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

func cartTotal(lines []domain.CartLineItem) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// AddToCart adds quantity of the variant. An existing line for the variant is
// incremented; otherwise a new line captures the variant price and the
// product display fields as they are now.
func (s *Service) AddToCart(ctx context.Context, product domain.Product, variant domain.ProductVariant, quantity int) error {
	return s.run(ctx, "add_to_cart", func() (effect, error) {
		if quantity <= 0 {
			return 0, domain.Invalid("quantity must be positive, got %d", quantity)
		}
		for i := range s.cart {
			if s.cart[i].VariantID == variant.ID {
				s.cart[i].Quantity += quantity
				return changedCart, nil
			}
		}
		s.cart = append(s.cart, domain.CartLineItem{
			ProductID:          product.ID,
			VariantID:          variant.ID,
			Name:               product.Name,
			ImageURL:           product.ImageURL,
			Quantity:           quantity,
			VariantDescription: variant.Description(),
			Price:              variant.Price,
		})
		return changedCart, nil
	})
}

// RemoveFromCart drops the line for the variant, if any.
func (s *Service) RemoveFromCart(ctx context.Context, variantID int64) error {
	return s.run(ctx, "remove_from_cart", func() (effect, error) {
		return s.removeLine(variantID), nil
	})
}

// UpdateQuantity sets the line quantity verbatim; zero or less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, variantID int64, quantity int) error {
	return s.run(ctx, "update_quantity", func() (effect, error) {
		if quantity <= 0 {
			return s.removeLine(variantID), nil
		}
		for i := range s.cart {
			if s.cart[i].VariantID == variantID {
				s.cart[i].Quantity = quantity
				return changedCart, nil
			}
		}
		return 0, nil
	})
}

func (s *Service) removeLine(variantID int64) effect {
	kept := make([]domain.CartLineItem, 0, len(s.cart))
	for _, l := range s.cart {
		if l.VariantID != variantID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(s.cart) {
		return 0
	}
	s.cart = kept
	return changedCart
}
