package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"domainhost/internal/cart"
	"domainhost/internal/domain"
	"domainhost/internal/gateway/payment"
	"domainhost/internal/pricing"
	"domainhost/internal/repository/setting"
)

// Fallback prices used when the settings store has no entry.
const (
	DefaultDomainPrice = 150000
	DefaultWHOISPrice  = 25000
)

var domainNameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// Service drives the cart through pricing, voucher application and payment
// intent creation. It owns no state: the cart store holds the order, the
// settings/catalog stores hold prices.
type Service struct {
	carts    cart.Store
	vouchers voucherValidator
	settings settingsRepo
	products productRepo
	gateway  payment.Gateway
	now      func() time.Time
}

type voucherValidator interface {
	Validate(ctx context.Context, code, plan string, now time.Time) (*domain.Voucher, error)
}

type settingsRepo interface {
	Int64(ctx context.Context, key string, fallback int64) (int64, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(carts cart.Store, vouchers voucherValidator, settings settingsRepo, products productRepo, gateway payment.Gateway) *Service {
	return &Service{
		carts:    carts,
		vouchers: vouchers,
		settings: settings,
		products: products,
		gateway:  gateway,
		now:      time.Now,
	}
}

// SetDomainItem replaces the session's cart with a fresh domain order.
func (s *Service) SetDomainItem(ctx context.Context, sessionID, name string) (*domain.Order, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !domainNameRe.MatchString(name) {
		return nil, domain.ErrInvalidOption
	}
	order := &domain.Order{
		Kind:    domain.OrderKindDomain,
		Domain:  name,
		Options: domain.OrderOptions{Period: 1},
	}
	if err := s.carts.Put(ctx, sessionID, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetProductItem replaces the session's cart with a catalog product order.
func (s *Service) SetProductItem(ctx context.Context, sessionID, productID string) (*domain.Order, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	order := &domain.Order{
		Kind:    domain.OrderKindProduct,
		Product: &domain.OrderItem{ID: p.ID, Name: p.Name, Price: p.Price},
		Options: domain.OrderOptions{Period: 1},
	}
	if err := s.carts.Put(ctx, sessionID, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOptions merges an options patch into the pending order.
func (s *Service) UpdateOptions(ctx context.Context, sessionID string, patch cart.OptionsPatch) (*domain.Order, error) {
	return s.carts.UpdateOptions(ctx, sessionID, patch)
}

// Prepare recomputes the order's pricing from current catalog/settings data
// and persists the refreshed snapshot. A stored voucher code is revalidated:
// if it no longer holds, pricing falls back to the no-discount baseline and
// the code is dropped. Returns domain.ErrNoActiveCart when the slot is empty;
// the caller turns that into a redirect to the catalog, not a failure page.
func (s *Service) Prepare(ctx context.Context, sessionID string) (*domain.Order, error) {
	order, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.reprice(ctx, order); err != nil {
		return nil, err
	}
	if err := s.carts.Put(ctx, sessionID, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ApplyVoucher resets pricing to the no-discount baseline, then applies the
// code if it validates. On rejection the baseline sticks and the rejection is
// returned alongside the repriced order, so a failed attempt never leaves a
// stale discount behind.
func (s *Service) ApplyVoucher(ctx context.Context, sessionID, code string) (*domain.Order, error) {
	order, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order.Pricing.VoucherCode = ""
	base, addOn, err := s.resolvePrices(ctx, order)
	if err != nil {
		return nil, err
	}
	baseline, err := pricing.Compute(base, order.Options.Period, addOn, nil)
	if err != nil {
		return nil, err
	}
	order.Pricing = baseline

	voucher, verr := s.vouchers.Validate(ctx, code, order.Plan(), s.now())
	if verr == nil {
		priced, err := pricing.Compute(base, order.Options.Period, addOn, voucher)
		if err != nil {
			return nil, err
		}
		order.Pricing = priced
	} else {
		var rej *domain.VoucherRejection
		if !errors.As(verr, &rej) {
			return nil, verr
		}
	}

	if err := s.carts.Put(ctx, sessionID, order); err != nil {
		return nil, err
	}
	return order, verr
}

// PaymentIntent is what the client needs to open the gateway's payment UI.
type PaymentIntent struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Amount      int64  `json:"amount"`
}

// CreatePaymentIntent prices the order one final time and asks the gateway
// for a transaction token. Gateway failures leave the cart untouched so the
// buyer can retry.
func (s *Service) CreatePaymentIntent(ctx context.Context, sessionID string, user *domain.User) (*PaymentIntent, error) {
	if user == nil {
		return nil, domain.ErrInvalidSession
	}
	order, err := s.Prepare(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveCart) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	orderID := s.newOrderID(order.Kind, user.ID)
	txn, err := s.gateway.CreateTransaction(ctx, payment.TransactionRequest{
		OrderID:     orderID,
		GrossAmount: order.Pricing.FinalPrice,
		Items:       lineItems(order),
		Customer:    payment.CustomerDetails{FirstName: user.Name, Email: user.Email},
	})
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{
		OrderID:     orderID,
		Token:       txn.Token,
		RedirectURL: txn.RedirectURL,
		Amount:      order.Pricing.FinalPrice,
	}, nil
}

// newOrderID composes user suffix, timestamp and a random fragment so
// concurrent checkouts can never collide.
func (s *Service) newOrderID(kind domain.OrderKind, userID string) string {
	prefix := "PRD"
	if kind == domain.OrderKindDomain {
		prefix = "DOM"
	}
	suffix := userID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("%s-%s-%d-%s", prefix, suffix, s.now().UnixMilli(), uuid.NewString()[:8])
}

func lineItems(order *domain.Order) []payment.Item {
	p := order.Pricing
	var items []payment.Item
	if order.Kind == domain.OrderKindDomain {
		items = append(items, payment.Item{
			ID:       order.Domain,
			Price:    p.BasePrice * int64(p.Period),
			Quantity: 1,
			Name:     fmt.Sprintf("Registrasi Domain %s (%d Tahun)", order.Domain, p.Period),
		})
	} else {
		items = append(items, payment.Item{
			ID:       order.Product.ID,
			Price:    p.BasePrice * int64(p.Period),
			Quantity: 1,
			Name:     order.Product.Name,
		})
	}
	if p.AddOnCost > 0 {
		items = append(items, payment.Item{ID: "WHOIS", Price: p.AddOnCost, Quantity: 1, Name: "Proteksi WHOIS"})
	}
	if p.DiscountAmount > 0 {
		items = append(items, payment.Item{
			ID:       "DISCOUNT",
			Price:    -p.DiscountAmount,
			Quantity: 1,
			Name:     fmt.Sprintf("Voucher %s", p.VoucherCode),
		})
	}
	return items
}

// reprice refreshes the pricing snapshot in place, reapplying a stored
// voucher code when it still validates.
func (s *Service) reprice(ctx context.Context, order *domain.Order) error {
	base, addOn, err := s.resolvePrices(ctx, order)
	if err != nil {
		return err
	}

	var voucher *domain.Voucher
	if code := order.Pricing.VoucherCode; code != "" {
		v, verr := s.vouchers.Validate(ctx, code, order.Plan(), s.now())
		if verr == nil {
			voucher = v
		} else {
			var rej *domain.VoucherRejection
			if !errors.As(verr, &rej) {
				return verr
			}
		}
	}

	priced, err := pricing.Compute(base, order.Options.Period, addOn, voucher)
	if err != nil {
		return err
	}
	order.Pricing = priced
	return nil
}

// resolvePrices looks up the current base price and add-on cost for the
// order. Unknown TLDs fall back to the default domain price; deleted catalog
// products fall back to the price snapshot taken when the item was added.
func (s *Service) resolvePrices(ctx context.Context, order *domain.Order) (base, addOn int64, err error) {
	switch order.Kind {
	case domain.OrderKindDomain:
		fallback, err := s.settings.Int64(ctx, setting.KeyDomainPriceDefault, DefaultDomainPrice)
		if err != nil {
			return 0, 0, err
		}
		base, err = s.settings.Int64(ctx, tldPriceKey(order.Domain), fallback)
		if err != nil {
			return 0, 0, err
		}
		if order.Options.WHOISProtection {
			addOn, err = s.settings.Int64(ctx, setting.KeyWHOISPrice, DefaultWHOISPrice)
			if err != nil {
				return 0, 0, err
			}
		}
		return base, addOn, nil
	case domain.OrderKindProduct:
		if order.Product == nil {
			return 0, 0, domain.ErrInvalidOption
		}
		p, err := s.products.GetByID(ctx, order.Product.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return order.Product.Price, 0, nil
			}
			return 0, 0, err
		}
		order.Product.Name = p.Name
		order.Product.Price = p.Price
		return p.Price, 0, nil
	default:
		return 0, 0, domain.ErrInvalidOption
	}
}

func tldPriceKey(name string) string {
	idx := strings.Index(name, ".")
	if idx < 0 {
		return setting.KeyDomainPriceDefault
	}
	tld := strings.ReplaceAll(name[idx+1:], ".", "_")
	return setting.DomainPricePrefix + tld
}
