package fulfillment

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"domainhost/internal/cart"
	"domainhost/internal/domain"
	"domainhost/internal/gateway/registrar"
)

type stubRecords struct {
	rows map[string]*domain.Fulfillment
}

func newStubRecords() *stubRecords {
	return &stubRecords{rows: make(map[string]*domain.Fulfillment)}
}

func (s *stubRecords) Claim(_ context.Context, f domain.Fulfillment) (bool, *domain.Fulfillment, error) {
	if existing, ok := s.rows[f.OrderID]; ok {
		return false, existing, nil
	}
	s.rows[f.OrderID] = &f
	return true, &f, nil
}

func (s *stubRecords) RecordOutcome(_ context.Context, orderID string, status domain.FulfillmentStatus, detail string) error {
	f, ok := s.rows[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	f.Status = status
	f.Detail = detail
	return nil
}

func (s *stubRecords) Get(_ context.Context, orderID string) (*domain.Fulfillment, error) {
	f, ok := s.rows[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (s *stubRecords) ListProvisionFailed(_ context.Context) ([]domain.Fulfillment, error) {
	var out []domain.Fulfillment
	for _, f := range s.rows {
		if f.Status == domain.FulfillmentProvisionFailed {
			out = append(out, *f)
		}
	}
	return out, nil
}

type stubRegistrar struct {
	registrar.Gateway

	registerCalls int
	registerErr   error
	lastRegister  registrar.RegistrationRequest
}

func (s *stubRegistrar) Register(_ context.Context, req registrar.RegistrationRequest) (*registrar.Domain, error) {
	s.registerCalls++
	s.lastRegister = req
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &registrar.Domain{ID: "d1", Name: req.Name, Status: "ok"}, nil
}

func domainOrder(name string) *domain.Order {
	return &domain.Order{
		Kind:    domain.OrderKindDomain,
		Domain:  name,
		Options: domain.OrderOptions{Period: 2, WHOISProtection: true},
		Pricing: domain.Pricing{BasePrice: 150000, Period: 2, Subtotal: 300000, FinalPrice: 300000, Priced: true},
	}
}

func testUser() *domain.User {
	return &domain.User{ID: "u1", CustomerID: 4521, Role: domain.RoleCustomer}
}

func newService(store cart.Store, records *stubRecords, gw *stubRegistrar) *Service {
	return New(store, records, gw, []string{"ns1.example.net", "ns2.example.net"}, log.New(io.Discard, "", 0))
}

func TestFinalizeRequiresUser(t *testing.T) {
	svc := newService(cart.NewMemoryStore(), newStubRecords(), &stubRegistrar{})
	_, err := svc.Finalize(context.Background(), "sid", nil, "DOM-1", "txn")
	if !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestFinalizeNoCartNoRecord(t *testing.T) {
	svc := newService(cart.NewMemoryStore(), newStubRecords(), &stubRegistrar{})
	_, err := svc.Finalize(context.Background(), "sid", testUser(), "DOM-1", "txn")
	if !errors.Is(err, domain.ErrNoActiveCart) {
		t.Fatalf("expected ErrNoActiveCart, got %v", err)
	}
}

func TestFinalizeRegistersAndClearsCart(t *testing.T) {
	store := cart.NewMemoryStore()
	records := newStubRecords()
	gw := &stubRegistrar{}
	svc := newService(store, records, gw)
	ctx := context.Background()
	if err := store.Put(ctx, "sid", domainOrder("example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.Finalize(ctx, "sid", testUser(), "DOM-1", "txn-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.FulfillmentFulfilled {
		t.Fatalf("expected fulfilled, got %s", res.Status)
	}
	if gw.registerCalls != 1 {
		t.Fatalf("expected one register call, got %d", gw.registerCalls)
	}
	req := gw.lastRegister
	if req.Name != "example.com" || req.Period != 2 || req.CustomerID != 4521 || !req.WHOISProtection {
		t.Fatalf("unexpected registration request: %+v", req)
	}
	if len(req.Nameservers) != 2 || req.Nameservers[0] != "ns1.example.net" {
		t.Fatalf("expected default nameservers, got %v", req.Nameservers)
	}
	if _, err := store.Get(ctx, "sid"); !errors.Is(err, domain.ErrNoActiveCart) {
		t.Fatalf("expected cart cleared, got %v", err)
	}
	rec, err := records.Get(ctx, "DOM-1")
	if err != nil || rec.Status != domain.FulfillmentFulfilled {
		t.Fatalf("expected fulfilled record, got %+v (%v)", rec, err)
	}
	if rec.TxnRef != "txn-9" || rec.Amount != 300000 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestFinalizeRegistrarFailureKeepsCart(t *testing.T) {
	store := cart.NewMemoryStore()
	records := newStubRecords()
	gw := &stubRegistrar{registerErr: &registrar.Error{Code: 500, Message: "registry unavailable"}}
	svc := newService(store, records, gw)
	ctx := context.Background()
	if err := store.Put(ctx, "sid", domainOrder("example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.Finalize(ctx, "sid", testUser(), "DOM-2", "txn")
	if err != nil {
		t.Fatalf("a provisioning failure must not surface as an error: %v", err)
	}
	if res.Status != domain.FulfillmentProvisionFailed {
		t.Fatalf("expected provision_failed, got %s", res.Status)
	}
	if _, err := store.Get(ctx, "sid"); err != nil {
		t.Fatalf("cart must be kept on provisioning failure: %v", err)
	}
	rec, _ := records.Get(ctx, "DOM-2")
	if rec.Status != domain.FulfillmentProvisionFailed || rec.Detail == "" {
		t.Fatalf("expected failure recorded with detail, got %+v", rec)
	}
	failed, _ := records.ListProvisionFailed(ctx)
	if len(failed) != 1 {
		t.Fatalf("expected one failed record, got %d", len(failed))
	}
}

func TestFinalizeReplayDoesNotReRegister(t *testing.T) {
	store := cart.NewMemoryStore()
	records := newStubRecords()
	gw := &stubRegistrar{}
	svc := newService(store, records, gw)
	ctx := context.Background()
	user := testUser()
	if err := store.Put(ctx, "sid", domainOrder("example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.Finalize(ctx, "sid", user, "DOM-3", "txn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Cart is gone after success, so the replay resolves via the record.
	second, err := svc.Finalize(ctx, "sid", user, "DOM-3", "txn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Status != first.Status || second.OrderID != first.OrderID {
		t.Fatalf("replay must return the recorded outcome: %+v vs %+v", first, second)
	}
	if gw.registerCalls != 1 {
		t.Fatalf("expected exactly one register call, got %d", gw.registerCalls)
	}
}

func TestFinalizeReplayWithCartStillPresent(t *testing.T) {
	store := cart.NewMemoryStore()
	records := newStubRecords()
	gw := &stubRegistrar{registerErr: &registrar.Error{Code: 500, Message: "down"}}
	svc := newService(store, records, gw)
	ctx := context.Background()
	user := testUser()
	if err := store.Put(ctx, "sid", domainOrder("example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Finalize(ctx, "sid", user, "DOM-4", "txn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Failure kept the cart, so the replay hits the claim and stops there.
	res, err := svc.Finalize(ctx, "sid", user, "DOM-4", "txn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.FulfillmentProvisionFailed {
		t.Fatalf("expected recorded provision_failed, got %s", res.Status)
	}
	if gw.registerCalls != 1 {
		t.Fatalf("claim must stop the second register call, got %d", gw.registerCalls)
	}
}

func TestFinalizeRejectsForeignOrder(t *testing.T) {
	store := cart.NewMemoryStore()
	records := newStubRecords()
	svc := newService(store, records, &stubRegistrar{})
	ctx := context.Background()
	if err := store.Put(ctx, "sid", domainOrder("example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Finalize(ctx, "sid", testUser(), "DOM-5", "txn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := &domain.User{ID: "u2", CustomerID: 99}
	if _, err := svc.Finalize(ctx, "other-sid", other, "DOM-5", "txn"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for foreign replay, got %v", err)
	}
}

func TestFinalizeProductOrderSkipsRegistrar(t *testing.T) {
	store := cart.NewMemoryStore()
	records := newStubRecords()
	gw := &stubRegistrar{}
	svc := newService(store, records, gw)
	ctx := context.Background()
	order := &domain.Order{
		Kind:    domain.OrderKindProduct,
		Product: &domain.OrderItem{ID: "p1", Name: "Paket Hosting Startup", Price: 25000},
		Options: domain.OrderOptions{Period: 1},
		Pricing: domain.Pricing{BasePrice: 25000, Period: 1, Subtotal: 25000, FinalPrice: 25000, Priced: true},
	}
	if err := store.Put(ctx, "sid", order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.Finalize(ctx, "sid", testUser(), "PRD-1", "txn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.FulfillmentFulfilled {
		t.Fatalf("expected fulfilled, got %s", res.Status)
	}
	if gw.registerCalls != 0 {
		t.Fatalf("product orders must not hit the registrar")
	}
	if _, err := store.Get(ctx, "sid"); !errors.Is(err, domain.ErrNoActiveCart) {
		t.Fatalf("expected cart cleared, got %v", err)
	}
}

func TestStatusOwnership(t *testing.T) {
	store := cart.NewMemoryStore()
	records := newStubRecords()
	svc := newService(store, records, &stubRegistrar{})
	ctx := context.Background()
	user := testUser()
	if err := store.Put(ctx, "sid", domainOrder("example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Finalize(ctx, "sid", user, "DOM-6", "txn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Status(ctx, user, "DOM-6"); err != nil {
		t.Fatalf("owner must see status: %v", err)
	}
	other := &domain.User{ID: "u2", Role: domain.RoleCustomer}
	if _, err := svc.Status(ctx, other, "DOM-6"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	if _, err := svc.Status(ctx, admin, "DOM-6"); err != nil {
		t.Fatalf("admin must see status: %v", err)
	}
}
