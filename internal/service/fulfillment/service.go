// Package fulfillment settles confirmed payments. Payment confirmation and
// provisioning are separate steps with real failure modes in between, so the
// coordinator claims the order id before touching the registrar and records
// the outcome either way.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"domainhost/internal/cart"
	"domainhost/internal/domain"
	"domainhost/internal/gateway/registrar"
)

// Service finalizes paid orders. Exactly-once provisioning rests on the
// claim: whichever call claims the order id does the registrar work, every
// later call for the same id replays the recorded outcome.
type Service struct {
	carts       cart.Store
	records     fulfillmentRepo
	registrar   registrar.Gateway
	nameservers []string
	logger      *log.Logger
}

type fulfillmentRepo interface {
	Claim(ctx context.Context, f domain.Fulfillment) (bool, *domain.Fulfillment, error)
	RecordOutcome(ctx context.Context, orderID string, status domain.FulfillmentStatus, detail string) error
	Get(ctx context.Context, orderID string) (*domain.Fulfillment, error)
	ListProvisionFailed(ctx context.Context) ([]domain.Fulfillment, error)
}

func New(carts cart.Store, records fulfillmentRepo, gw registrar.Gateway, nameservers []string, logger *log.Logger) *Service {
	return &Service{
		carts:       carts,
		records:     records,
		registrar:   gw,
		nameservers: nameservers,
		logger:      logger,
	}
}

// Result is what the confirmation page renders.
type Result struct {
	OrderID string                   `json:"orderId"`
	Status  domain.FulfillmentStatus `json:"status"`
	Item    string                   `json:"item"`
	Message string                   `json:"message"`
}

// Finalize settles a paid order. On the first call for an order id it claims
// the id, provisions the item and records the outcome. Replays return the
// recorded outcome without touching the registrar again.
//
// A registrar failure is not an error to the caller: the payment already
// happened, so the order is recorded as provision_failed, the cart is kept
// for reconciliation and the result tells the buyer to contact support.
func (s *Service) Finalize(ctx context.Context, sessionID string, user *domain.User, orderID, txnRef string) (*Result, error) {
	if user == nil {
		return nil, domain.ErrInvalidSession
	}
	if orderID == "" {
		return nil, domain.ErrInvalidOption
	}

	order, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNoActiveCart) {
			return nil, err
		}
		// A successful finalize clears the cart, so a replay arrives with an
		// empty slot. The record is the source of truth then.
		existing, gerr := s.records.Get(ctx, orderID)
		if gerr != nil {
			if errors.Is(gerr, domain.ErrNotFound) {
				return nil, domain.ErrNoActiveCart
			}
			return nil, gerr
		}
		if existing.UserID != user.ID {
			return nil, domain.ErrInvalidSession
		}
		return resultFor(existing), nil
	}

	claimed, existing, err := s.records.Claim(ctx, domain.Fulfillment{
		OrderID:   orderID,
		SessionID: sessionID,
		UserID:    user.ID,
		Kind:      order.Kind,
		Item:      order.ItemName(),
		Amount:    order.Pricing.FinalPrice,
		TxnRef:    txnRef,
		Status:    domain.FulfillmentAwaiting,
	})
	if err != nil {
		return nil, err
	}
	if !claimed {
		if existing.UserID != user.ID {
			return nil, domain.ErrInvalidSession
		}
		return resultFor(existing), nil
	}

	if order.Kind == domain.OrderKindDomain {
		_, rerr := s.registrar.Register(ctx, registrar.RegistrationRequest{
			Name:            order.Domain,
			Period:          order.Options.Period,
			CustomerID:      user.CustomerID,
			WHOISProtection: order.Options.WHOISProtection,
			Nameservers:     s.nameservers,
		})
		if rerr != nil {
			s.logger.Printf("fulfillment: order %s paid but registration of %s failed: %v", orderID, order.Domain, rerr)
			if uerr := s.records.RecordOutcome(ctx, orderID, domain.FulfillmentProvisionFailed, rerr.Error()); uerr != nil {
				s.logger.Printf("fulfillment: recording failure for order %s: %v", orderID, uerr)
			}
			return &Result{
				OrderID: orderID,
				Status:  domain.FulfillmentProvisionFailed,
				Item:    order.ItemName(),
				Message: "Payment received, but domain registration failed. Please contact support with this order id.",
			}, nil
		}
	}

	if err := s.records.RecordOutcome(ctx, orderID, domain.FulfillmentFulfilled, ""); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Printf("fulfillment: clearing cart for session %s: %v", sessionID, err)
	}
	return &Result{
		OrderID: orderID,
		Status:  domain.FulfillmentFulfilled,
		Item:    order.ItemName(),
		Message: fulfilledMessage(order),
	}, nil
}

// Status returns the recorded outcome for the signed-in user's order.
func (s *Service) Status(ctx context.Context, user *domain.User, orderID string) (*Result, error) {
	if user == nil {
		return nil, domain.ErrInvalidSession
	}
	f, err := s.records.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if f.UserID != user.ID && !user.IsAdmin() {
		return nil, domain.ErrNotFound
	}
	return resultFor(f), nil
}

// ListProvisionFailed feeds the admin reconciliation view.
func (s *Service) ListProvisionFailed(ctx context.Context) ([]domain.Fulfillment, error) {
	return s.records.ListProvisionFailed(ctx)
}

func resultFor(f *domain.Fulfillment) *Result {
	r := &Result{OrderID: f.OrderID, Status: f.Status, Item: f.Item}
	switch f.Status {
	case domain.FulfillmentFulfilled:
		r.Message = "Order completed."
	case domain.FulfillmentProvisionFailed:
		r.Message = "Payment received, but provisioning failed. Please contact support with this order id."
	default:
		r.Message = "Order is being processed."
	}
	return r
}

func fulfilledMessage(order *domain.Order) string {
	if order.Kind == domain.OrderKindDomain {
		return fmt.Sprintf("Domain %s registered successfully.", order.Domain)
	}
	return fmt.Sprintf("Order for %s confirmed. Your package will be activated shortly.", order.ItemName())
}
