// Package payment wraps the snap-style payment gateway. The portal sends an
// itemized transaction and gets back a client-usable payment token; the
// actual payment happens out of band in the buyer's browser.
package payment

import (
	"context"
	"fmt"
)

type Gateway interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*Transaction, error)
}

type TransactionRequest struct {
	OrderID     string
	GrossAmount int64
	Items       []Item
	Customer    CustomerDetails
}

type Item struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

type Transaction struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Error is a typed gateway failure. The cart is left intact when one is
// returned, so the buyer can retry.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway: %s", e.Message)
}
