package core

import (
	"context"

	"storefront/pkg/domain"
)

// ResetPrompt is the question put to the confirmation gate.
const ResetPrompt = "Reset all products, accounts, orders and site settings to their defaults? This cannot be undone."

// Confirmer answers a yes/no question owned by the caller.
type Confirmer func(prompt string) bool

// ResetData replaces the durable state with the seed, clears the cart and
// logs out, but only once confirm agrees. The administrator list is kept.
func (s *Service) ResetData(ctx context.Context, confirm Confirmer) error {
	if confirm == nil || !confirm(ResetPrompt) {
		s.logger.Info("reset declined")
		return domain.ErrResetDeclined
	}
	return s.run(ctx, "reset_data", func() (effect, error) {
		s.snapshot = s.durable.Seed()
		s.origin = domain.OriginSeed
		s.cart = nil
		s.session = domain.Session{}
		s.logger.Warn("storefront data reset to seed")
		return changedSnapshot | changedSession | changedCart, nil
	})
}
