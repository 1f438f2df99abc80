// Package catalog assembles the storefront: product listings, the landing
// payload and the admin CRUD for products, promos and pricing settings.
package catalog

import (
	"context"
	"errors"
	"strings"

	"domainhost/internal/domain"
	productrepo "domainhost/internal/repository/product"
	promorepo "domainhost/internal/repository/promo"
	"domainhost/internal/repository/setting"
)

// Plans are the hosting plans the storefront sells, in display order.
var Plans = []string{"personal", "startup", "bisnis", "enterprise"}

// Fallback plan prices (IDR/month) when the settings store has no entry.
var defaultPlanPrices = map[string]int64{
	"personal":   12000,
	"startup":    25000,
	"bisnis":     39000,
	"enterprise": 59000,
}

type Service struct {
	products productrepo.Repository
	promos   promorepo.Repository
	settings setting.Repository
	vouchers latestVoucherRepo
}

type latestVoucherRepo interface {
	LatestActive(ctx context.Context) (*domain.Voucher, error)
}

func New(products productrepo.Repository, promos promorepo.Repository, settings setting.Repository, vouchers latestVoucherRepo) *Service {
	return &Service{products: products, promos: promos, settings: settings, vouchers: vouchers}
}

// Landing is the payload the storefront home page renders from.
type Landing struct {
	PlanPrices map[string]int64 `json:"planPrices"`
	Promo      *domain.Promo    `json:"promo,omitempty"`
	Voucher    *domain.Voucher  `json:"voucher,omitempty"`
	Featured   []domain.Product `json:"featured"`
}

// Landing builds the home page payload. A missing promo or voucher is not an
// error; the page just renders without the banner.
func (s *Service) Landing(ctx context.Context) (*Landing, error) {
	prices := make(map[string]int64, len(Plans))
	for _, plan := range Plans {
		price, err := s.settings.Int64(ctx, setting.PlanPricePrefix+plan, defaultPlanPrices[plan])
		if err != nil {
			return nil, err
		}
		prices[plan] = price
	}

	out := &Landing{PlanPrices: prices}

	promo, err := s.promos.LatestActive(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	out.Promo = promo

	voucher, err := s.vouchers.LatestActive(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	out.Voucher = voucher

	featured, err := s.products.List(ctx, productrepo.ListFilter{FeaturedOnly: true})
	if err != nil {
		return nil, err
	}
	out.Featured = featured
	return out, nil
}

// ListProducts returns catalog products, optionally narrowed to a category.
func (s *Service) ListProducts(ctx context.Context, category string, featuredOnly bool) ([]domain.Product, error) {
	return s.products.List(ctx, productrepo.ListFilter{
		Category:     strings.TrimSpace(category),
		FeaturedOnly: featuredOnly,
	})
}

// ProductInput is the admin create/update form.
type ProductInput struct {
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	PriceUnit   string   `json:"priceUnit"`
	Features    []string `json:"features"`
	IsFeatured  bool     `json:"isFeatured"`
}

func (in ProductInput) validate() (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, errors.New("name required")
	}
	if in.Price <= 0 {
		return domain.Product{}, errors.New("price must be positive")
	}
	category := strings.TrimSpace(in.Category)
	valid := false
	for _, c := range domain.ProductCategories {
		if strings.EqualFold(c, category) {
			category = c
			valid = true
			break
		}
	}
	if !valid {
		return domain.Product{}, errors.New("unknown category")
	}
	unit := strings.TrimSpace(in.PriceUnit)
	if unit == "" {
		unit = "bulan"
	}
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	return domain.Product{
		Category:    category,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		PriceUnit:   unit,
		Features:    features,
		IsFeatured:  in.IsFeatured,
	}, nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := in.validate()
	if err != nil {
		return nil, err
	}
	return s.products.Create(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := in.validate()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.products.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// PromoInput is the admin promo form.
type PromoInput struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

func (s *Service) CreatePromo(ctx context.Context, in PromoInput) (*domain.Promo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title required")
	}
	return s.promos.Create(ctx, domain.Promo{
		Title:    title,
		Message:  strings.TrimSpace(in.Message),
		Link:     strings.TrimSpace(in.Link),
		IsActive: true,
	})
}

func (s *Service) ListPromos(ctx context.Context) ([]domain.Promo, error) {
	return s.promos.List(ctx)
}

func (s *Service) DeletePromo(ctx context.Context, id string) error {
	return s.promos.Delete(ctx, id)
}

// SetPrice upserts one pricing setting. Only well-known key shapes are
// accepted so a typo cannot shadow a real price key.
func (s *Service) SetPrice(ctx context.Context, key string, value int64) error {
	key = strings.TrimSpace(key)
	switch {
	case key == setting.KeyDomainPriceDefault,
		key == setting.KeyWHOISPrice,
		strings.HasPrefix(key, setting.PlanPricePrefix),
		strings.HasPrefix(key, setting.DomainPricePrefix):
	default:
		return errors.New("unknown setting key")
	}
	if value <= 0 {
		return errors.New("price must be positive")
	}
	return s.settings.Set(ctx, key, value)
}

// Settings returns every stored setting for the admin screen.
func (s *Service) Settings(ctx context.Context) (map[string]interface{}, error) {
	return s.settings.All(ctx)
}
