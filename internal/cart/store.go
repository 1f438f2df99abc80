// Package cart holds the per-session pending order. Each session owns at most
// one order: setting an item replaces the slot wholesale.
package cart

import (
	"context"

	"domainhost/internal/domain"
)

// OptionsPatch is a partial options update; nil fields are left unchanged.
type OptionsPatch struct {
	Period          *int  `json:"period,omitempty"`
	WHOISProtection *bool `json:"whoisProtection,omitempty"`
}

// Store is the session-keyed single-slot cart.
type Store interface {
	// Get returns the pending order or domain.ErrNoActiveCart.
	Get(ctx context.Context, sessionID string) (*domain.Order, error)
	// Put replaces the pending order wholesale.
	Put(ctx context.Context, sessionID string, order *domain.Order) error
	// UpdateOptions merges the patch into the pending order and invalidates
	// its pricing snapshot. Fails with domain.ErrNoActiveCart when the slot
	// is empty and domain.ErrInvalidOption on a non-positive period.
	UpdateOptions(ctx context.Context, sessionID string, patch OptionsPatch) (*domain.Order, error)
	// Clear empties the slot; clearing an empty slot is not an error.
	Clear(ctx context.Context, sessionID string) error
}

// mergeOptions applies a patch and marks the pricing snapshot stale. The
// voucher code survives so checkout can revalidate and reapply it.
func mergeOptions(order *domain.Order, patch OptionsPatch) error {
	if patch.Period != nil {
		if *patch.Period <= 0 {
			return domain.ErrInvalidOption
		}
		order.Options.Period = *patch.Period
	}
	if patch.WHOISProtection != nil {
		order.Options.WHOISProtection = *patch.WHOISProtection
	}
	order.Pricing = domain.Pricing{VoucherCode: order.Pricing.VoucherCode}
	return nil
}
