package catalog

import (
	"context"
	"strconv"
	"testing"

	"domainhost/internal/domain"
	productrepo "domainhost/internal/repository/product"
)

type stubProducts struct {
	rows   []domain.Product
	nextID int
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.nextID++
	p.ID = "p" + strconv.Itoa(s.nextID)
	s.rows = append(s.rows, p)
	return &p, nil
}

func (s *stubProducts) List(_ context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.rows {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !p.IsFeatured {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	for i := range s.rows {
		if s.rows[i].ID == p.ID {
			s.rows[i] = p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Delete(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubPromos struct {
	active *domain.Promo
}

func (s *stubPromos) Create(_ context.Context, p domain.Promo) (*domain.Promo, error) {
	p.ID = "pr1"
	s.active = &p
	return &p, nil
}

func (s *stubPromos) List(_ context.Context) ([]domain.Promo, error) {
	if s.active == nil {
		return nil, nil
	}
	return []domain.Promo{*s.active}, nil
}

func (s *stubPromos) LatestActive(_ context.Context) (*domain.Promo, error) {
	if s.active == nil {
		return nil, domain.ErrNotFound
	}
	return s.active, nil
}

func (s *stubPromos) Delete(_ context.Context, _ string) error {
	s.active = nil
	return nil
}

type stubSettings struct {
	values map[string]interface{}
}

func newStubSettings() *stubSettings {
	return &stubSettings{values: make(map[string]interface{})}
}

func (s *stubSettings) Int64(_ context.Context, key string, fallback int64) (int64, error) {
	if v, ok := s.values[key]; ok {
		return v.(int64), nil
	}
	return fallback, nil
}

func (s *stubSettings) Set(_ context.Context, key string, value interface{}) error {
	s.values[key] = value
	return nil
}

func (s *stubSettings) All(_ context.Context) (map[string]interface{}, error) {
	return s.values, nil
}

type stubVouchers struct {
	latest *domain.Voucher
}

func (s *stubVouchers) LatestActive(_ context.Context) (*domain.Voucher, error) {
	if s.latest == nil {
		return nil, domain.ErrNotFound
	}
	return s.latest, nil
}

func newService(products *stubProducts, promos *stubPromos, settings *stubSettings, vouchers *stubVouchers) *Service {
	if products == nil {
		products = &stubProducts{}
	}
	if promos == nil {
		promos = &stubPromos{}
	}
	if settings == nil {
		settings = newStubSettings()
	}
	if vouchers == nil {
		vouchers = &stubVouchers{}
	}
	return New(products, promos, settings, vouchers)
}

func TestLandingDefaultPlanPrices(t *testing.T) {
	svc := newService(nil, nil, nil, nil)
	landing, err := svc.Landing(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]int64{"personal": 12000, "startup": 25000, "bisnis": 39000, "enterprise": 59000}
	for plan, price := range want {
		if landing.PlanPrices[plan] != price {
			t.Fatalf("plan %s: expected %d, got %d", plan, price, landing.PlanPrices[plan])
		}
	}
	if landing.Promo != nil || landing.Voucher != nil {
		t.Fatalf("missing promo/voucher must render as absent, got %+v", landing)
	}
}

func TestLandingOverriddenPlanPrice(t *testing.T) {
	settings := newStubSettings()
	settings.values["plan_price_startup"] = int64(29000)
	svc := newService(nil, nil, settings, nil)
	landing, err := svc.Landing(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if landing.PlanPrices["startup"] != 29000 {
		t.Fatalf("expected override 29000, got %d", landing.PlanPrices["startup"])
	}
	if landing.PlanPrices["personal"] != 12000 {
		t.Fatalf("other plans must keep defaults, got %d", landing.PlanPrices["personal"])
	}
}

func TestLandingIncludesPromoVoucherFeatured(t *testing.T) {
	products := &stubProducts{}
	promos := &stubPromos{active: &domain.Promo{ID: "pr1", Title: "Promo Akhir Tahun", IsActive: true}}
	vouchers := &stubVouchers{latest: &domain.Voucher{ID: "v1", Code: "HEMAT10", DiscountPercent: 10, IsActive: true}}
	svc := newService(products, promos, newStubSettings(), vouchers)
	ctx := context.Background()
	if _, err := svc.CreateProduct(ctx, ProductInput{Category: "hosting", Name: "Paket Startup", Price: 25000, IsFeatured: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, ProductInput{Category: "hosting", Name: "Paket Personal", Price: 12000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	landing, err := svc.Landing(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if landing.Promo == nil || landing.Promo.Title != "Promo Akhir Tahun" {
		t.Fatalf("expected promo, got %+v", landing.Promo)
	}
	if landing.Voucher == nil || landing.Voucher.Code != "HEMAT10" {
		t.Fatalf("expected voucher, got %+v", landing.Voucher)
	}
	if len(landing.Featured) != 1 || landing.Featured[0].Name != "Paket Startup" {
		t.Fatalf("expected only featured products, got %+v", landing.Featured)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newService(nil, nil, nil, nil)
	ctx := context.Background()
	cases := []ProductInput{
		{Category: "Hosting", Name: "", Price: 1000},
		{Category: "Hosting", Name: "X", Price: 0},
		{Category: "Nope", Name: "X", Price: 1000},
	}
	for i, in := range cases {
		if _, err := svc.CreateProduct(ctx, in); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestCreateProductNormalizes(t *testing.T) {
	products := &stubProducts{}
	svc := newService(products, nil, nil, nil)
	p, err := svc.CreateProduct(context.Background(), ProductInput{
		Category: "hosting",
		Name:     "  Paket Bisnis ",
		Price:    39000,
		Features: []string{" 10 GB SSD ", "", "Unlimited Bandwidth"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Category != "Hosting" {
		t.Fatalf("expected canonical category, got %q", p.Category)
	}
	if p.Name != "Paket Bisnis" || p.PriceUnit != "bulan" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if len(p.Features) != 2 {
		t.Fatalf("expected blank features dropped, got %v", p.Features)
	}
}

func TestListProductsByCategory(t *testing.T) {
	products := &stubProducts{}
	svc := newService(products, nil, nil, nil)
	ctx := context.Background()
	if _, err := svc.CreateProduct(ctx, ProductInput{Category: "Hosting", Name: "A", Price: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, ProductInput{Category: "VPS", Name: "B", Price: 2000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.ListProducts(ctx, "VPS", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "B" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestSetPriceKeyGuard(t *testing.T) {
	settings := newStubSettings()
	svc := newService(nil, nil, settings, nil)
	ctx := context.Background()

	if err := svc.SetPrice(ctx, "domain_price_co_id", 350000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetPrice(ctx, "plan_price_startup", 29000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetPrice(ctx, "random_key", 1000); err == nil {
		t.Fatalf("expected unknown key rejected")
	}
	if err := svc.SetPrice(ctx, "domain_price_default", 0); err == nil {
		t.Fatalf("expected non-positive price rejected")
	}
	if settings.values["domain_price_co_id"].(int64) != 350000 {
		t.Fatalf("expected setting stored")
	}
}
