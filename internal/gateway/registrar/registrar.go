// Package registrar talks to the upstream domain registrar API. Every
// registry operation the portal offers (availability, registration, transfer,
// DNS, lock/suspend) is delegated here.
package registrar

import (
	"context"
	"fmt"
	"time"
)

// Gateway is the consumer-side contract. The portal never mutates registry
// state except through these calls.
type Gateway interface {
	CheckAvailability(ctx context.Context, name string) (*Availability, error)
	Register(ctx context.Context, req RegistrationRequest) (*Domain, error)
	Transfer(ctx context.Context, req TransferRequest) (*Domain, error)
	ListDomains(ctx context.Context, customerID int64) ([]Domain, error)
	ShowDomain(ctx context.Context, domainID string) (*Domain, error)
	ResendVerification(ctx context.Context, domainID string) error
	Lock(ctx context.Context, domainID string) error
	Unlock(ctx context.Context, domainID string) error
	Suspend(ctx context.Context, domainID, reason string) error
	Unsuspend(ctx context.Context, domainID string) error
	DNSRecords(ctx context.Context, domainID string) ([]DNSRecord, error)
	CreateDNSRecord(ctx context.Context, domainID string, rec DNSRecord) error
	DeleteDNSRecord(ctx context.Context, domainID string, rec DNSRecord) error

	CreateCustomer(ctx context.Context, cust Customer) (*Customer, error)
	ShowCustomer(ctx context.Context, customerID int64) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, cust Customer) error
}

type Availability struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Premium   bool   `json:"premium"`
	Price     int64  `json:"price,omitempty"`
}

type Domain struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	CustomerID int64     `json:"customer_id"`
	IsLocked   bool      `json:"is_locked"`
	ExpiresAt  time.Time `json:"expires_at,omitempty"`
}

type RegistrationRequest struct {
	Name            string   `json:"name"`
	Period          int      `json:"period"`
	CustomerID      int64    `json:"customer_id"`
	WHOISProtection bool     `json:"buy_whois_protection"`
	Nameservers     []string `json:"nameservers"`
}

type TransferRequest struct {
	Name       string `json:"name"`
	AuthCode   string `json:"auth_code"`
	Period     int    `json:"period"`
	CustomerID int64  `json:"customer_id"`
}

type DNSRecord struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl,omitempty"`
}

type Customer struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
	Street       string `json:"street_1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Voice        string `json:"voice,omitempty"`
}

// Error is a typed registrar failure: non-2xx responses and timeouts.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("registrar: %s (status %d)", e.Message, e.Code)
	}
	return fmt.Sprintf("registrar: %s", e.Message)
}
