package domain

import "time"

// FulfillmentStatus tracks the settlement of a confirmed payment.
type FulfillmentStatus string

const (
	// FulfillmentAwaiting marks an order id claimed for provisioning but not
	// yet resolved. A crash between claim and outcome leaves this state for
	// operator review.
	FulfillmentAwaiting  FulfillmentStatus = "awaiting"
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
	// FulfillmentProvisionFailed means money moved but the registrar call
	// failed: terminal until an operator intervenes.
	FulfillmentProvisionFailed FulfillmentStatus = "provision_failed"
)

// Fulfillment correlates a confirmed payment with its provisioning outcome.
// The unique order id makes the table double as the idempotency guard.
type Fulfillment struct {
	OrderID   string            `json:"orderId"`
	SessionID string            `json:"sessionId"`
	UserID    string            `json:"userId"`
	Kind      OrderKind         `json:"kind"`
	Item      string            `json:"item"`
	Amount    int64             `json:"amount"`
	TxnRef    string            `json:"txnRef,omitempty"`
	Status    FulfillmentStatus `json:"status"`
	Detail    string            `json:"detail,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
