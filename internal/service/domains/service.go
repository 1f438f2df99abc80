// Package domains backs the availability search and the signed-in customer's
// domain management pages. All registry state lives at the registrar; this
// service adds fan-out, ownership checks and input normalization on top.
package domains

import (
	"context"
	"errors"
	"strings"
	"sync"

	"domainhost/internal/domain"
	"domainhost/internal/gateway/registrar"
)

// DefaultTLDs is the sweep for bare-keyword availability searches.
var DefaultTLDs = []string{".com", ".id", ".co.id", ".net", ".org", ".xyz"}

const defaultDNSTTL = 3600

// Service wraps the registrar gateway for portal use.
type Service struct {
	registrar registrar.Gateway
	tlds      []string
}

func New(gw registrar.Gateway, tlds []string) *Service {
	if len(tlds) == 0 {
		tlds = DefaultTLDs
	}
	return &Service{registrar: gw, tlds: tlds}
}

// CheckResult is one row of an availability sweep. Err carries a per-TLD
// lookup failure without sinking the rest of the sweep.
type CheckResult struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Premium   bool   `json:"premium"`
	Price     int64  `json:"price,omitempty"`
	Err       string `json:"error,omitempty"`
}

// Check looks up availability for a keyword. A keyword containing a dot is a
// single exact lookup; a bare keyword fans out across the default TLDs
// concurrently. One failing TLD does not fail the sweep.
func (s *Service) Check(ctx context.Context, keyword string) ([]CheckResult, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, domain.ErrInvalidOption
	}

	if strings.Contains(keyword, ".") {
		av, err := s.registrar.CheckAvailability(ctx, keyword)
		if err != nil {
			return nil, err
		}
		return []CheckResult{{Name: av.Name, Available: av.Available, Premium: av.Premium, Price: av.Price}}, nil
	}

	results := make([]CheckResult, len(s.tlds))
	var wg sync.WaitGroup
	for i, tld := range s.tlds {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			av, err := s.registrar.CheckAvailability(ctx, name)
			if err != nil {
				results[i] = CheckResult{Name: name, Err: err.Error()}
				return
			}
			results[i] = CheckResult{Name: av.Name, Available: av.Available, Premium: av.Premium, Price: av.Price}
		}(i, keyword+tld)
	}
	wg.Wait()
	return results, nil
}

// List returns the user's domains.
func (s *Service) List(ctx context.Context, user *domain.User) ([]registrar.Domain, error) {
	if user == nil {
		return nil, domain.ErrInvalidSession
	}
	return s.registrar.ListDomains(ctx, user.CustomerID)
}

// Show returns one domain after verifying the user owns it. Admins bypass
// the ownership check.
func (s *Service) Show(ctx context.Context, user *domain.User, domainID string) (*registrar.Domain, error) {
	if user == nil {
		return nil, domain.ErrInvalidSession
	}
	d, err := s.registrar.ShowDomain(ctx, domainID)
	if err != nil {
		return nil, err
	}
	if d.CustomerID != user.CustomerID && !user.IsAdmin() {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// TransferInput is the transfer-in form.
type TransferInput struct {
	Name     string `json:"name"`
	AuthCode string `json:"authCode"`
}

// Transfer starts a transfer-in under the user's registrar customer.
func (s *Service) Transfer(ctx context.Context, user *domain.User, in TransferInput) (*registrar.Domain, error) {
	if user == nil {
		return nil, domain.ErrInvalidSession
	}
	name := strings.ToLower(strings.TrimSpace(in.Name))
	authCode := strings.TrimSpace(in.AuthCode)
	if name == "" || !strings.Contains(name, ".") || authCode == "" {
		return nil, domain.ErrInvalidOption
	}
	return s.registrar.Transfer(ctx, registrar.TransferRequest{
		Name:       name,
		AuthCode:   authCode,
		Period:     1,
		CustomerID: user.CustomerID,
	})
}

// ResendVerification re-sends the registrant email verification.
func (s *Service) ResendVerification(ctx context.Context, user *domain.User, domainID string) error {
	if _, err := s.Show(ctx, user, domainID); err != nil {
		return err
	}
	return s.registrar.ResendVerification(ctx, domainID)
}

// SetLock toggles the transfer lock on an owned domain.
func (s *Service) SetLock(ctx context.Context, user *domain.User, domainID string, locked bool) error {
	if _, err := s.Show(ctx, user, domainID); err != nil {
		return err
	}
	if locked {
		return s.registrar.Lock(ctx, domainID)
	}
	return s.registrar.Unlock(ctx, domainID)
}

// DNSRecords lists the records of an owned domain.
func (s *Service) DNSRecords(ctx context.Context, user *domain.User, domainID string) ([]registrar.DNSRecord, error) {
	if _, err := s.Show(ctx, user, domainID); err != nil {
		return nil, err
	}
	return s.registrar.DNSRecords(ctx, domainID)
}

// CreateDNSRecord normalizes and creates a record. SPF is stored as TXT at
// the registry; a missing TTL defaults to 3600.
func (s *Service) CreateDNSRecord(ctx context.Context, user *domain.User, domainID string, rec registrar.DNSRecord) error {
	if _, err := s.Show(ctx, user, domainID); err != nil {
		return err
	}
	rec.Type = strings.ToUpper(strings.TrimSpace(rec.Type))
	if rec.Type == "SPF" {
		rec.Type = "TXT"
	}
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Content = strings.TrimSpace(rec.Content)
	if rec.Type == "" || rec.Content == "" {
		return domain.ErrInvalidOption
	}
	if rec.TTL <= 0 {
		rec.TTL = defaultDNSTTL
	}
	return s.registrar.CreateDNSRecord(ctx, domainID, rec)
}

// DeleteDNSRecord removes a record from an owned domain.
func (s *Service) DeleteDNSRecord(ctx context.Context, user *domain.User, domainID string, rec registrar.DNSRecord) error {
	if _, err := s.Show(ctx, user, domainID); err != nil {
		return err
	}
	return s.registrar.DeleteDNSRecord(ctx, domainID, rec)
}

// Suspend is an admin action and requires a reason for the audit trail.
func (s *Service) Suspend(ctx context.Context, user *domain.User, domainID, reason string) error {
	if user == nil || !user.IsAdmin() {
		return domain.ErrInvalidSession
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errors.New("suspend reason required")
	}
	return s.registrar.Suspend(ctx, domainID, reason)
}

// Unsuspend lifts an admin suspension.
func (s *Service) Unsuspend(ctx context.Context, user *domain.User, domainID string) error {
	if user == nil || !user.IsAdmin() {
		return domain.ErrInvalidSession
	}
	return s.registrar.Unsuspend(ctx, domainID)
}
