package fulfillment

import (
	"context"

	"domainhost/internal/domain"
)

// Repository persists fulfillment records. The unique order id is the
// idempotency guard for provisioning: Claim either inserts a fresh awaiting
// row or reports the existing one.
type Repository interface {
	// Claim inserts f with status awaiting. When the order id is already
	// claimed it returns claimed=false and the existing record untouched.
	Claim(ctx context.Context, f domain.Fulfillment) (claimed bool, existing *domain.Fulfillment, err error)
	// RecordOutcome finalizes a claimed record.
	RecordOutcome(ctx context.Context, orderID string, status domain.FulfillmentStatus, detail string) error
	Get(ctx context.Context, orderID string) (*domain.Fulfillment, error)
	// ListProvisionFailed feeds the operator reconciliation view.
	ListProvisionFailed(ctx context.Context) ([]domain.Fulfillment, error)
}
