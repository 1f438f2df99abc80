package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Category    string
	Name        string
	Description string
	Price       int64
	PriceUnit   string
	Features    []string
	IsFeatured  bool
}

// Apply inserts baseline prices and sample catalog data for manual testing.
// It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	prices := map[string]int64{
		"plan_price_personal":    12000,
		"plan_price_startup":     25000,
		"plan_price_bisnis":      39000,
		"plan_price_enterprise":  59000,
		"domain_price_default":   150000,
		"domain_price_com":       165000,
		"domain_price_id":        250000,
		"domain_price_co_id":     350000,
		"whois_protection_price": 25000,
	}
	for key, value := range prices {
		if err := upsertSetting(ctx, pool, key, value); err != nil {
			return fmt.Errorf("upsert setting %s: %w", key, err)
		}
	}

	products := []productSeed{
		{
			Category:    "Hosting",
			Name:        "Paket Hosting Personal",
			Description: "Hosting untuk blog dan situs pribadi",
			Price:       12000,
			PriceUnit:   "bulan",
			Features:    []string{"1 GB SSD", "1 Domain", "Unlimited Bandwidth"},
		},
		{
			Category:    "Hosting",
			Name:        "Paket Hosting Startup",
			Description: "Hosting untuk bisnis yang baru mulai",
			Price:       25000,
			PriceUnit:   "bulan",
			Features:    []string{"5 GB SSD", "3 Domain", "Unlimited Bandwidth", "SSL Gratis"},
			IsFeatured:  true,
		},
		{
			Category:    "Hosting",
			Name:        "Paket Hosting Bisnis",
			Description: "Hosting untuk toko online dan perusahaan",
			Price:       39000,
			PriceUnit:   "bulan",
			Features:    []string{"10 GB SSD", "10 Domain", "Unlimited Bandwidth", "SSL Gratis", "Backup Harian"},
			IsFeatured:  true,
		},
		{
			Category:    "Hosting",
			Name:        "Paket Hosting Enterprise",
			Description: "Hosting dengan sumber daya dedicated",
			Price:       59000,
			PriceUnit:   "bulan",
			Features:    []string{"25 GB SSD", "Unlimited Domain", "Unlimited Bandwidth", "SSL Gratis", "Backup Harian", "Priority Support"},
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := upsertVoucher(ctx, pool, "HEMAT10", 10); err != nil {
		return fmt.Errorf("upsert voucher: %w", err)
	}
	return nil
}

func upsertSetting(ctx context.Context, pool *pgxpool.Pool, key string, value int64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO settings (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`
	_, err = pool.Exec(ctx, q, key, data)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (category, name, description, price, price_unit, features, is_featured)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (name) DO UPDATE SET
    category    = EXCLUDED.category,
    description = EXCLUDED.description,
    price       = EXCLUDED.price,
    price_unit  = EXCLUDED.price_unit,
    features    = EXCLUDED.features,
    is_featured = EXCLUDED.is_featured
`
	_, err := pool.Exec(ctx, q, p.Category, p.Name, p.Description, p.Price, p.PriceUnit, p.Features, p.IsFeatured)
	return err
}

func upsertVoucher(ctx context.Context, pool *pgxpool.Pool, code string, percent int) error {
	const q = `
INSERT INTO vouchers (code, discount_percent, expiry_date, is_active, applicable_plans)
VALUES ($1, $2, now() + interval '90 days', true, '{}')
ON CONFLICT (code) DO NOTHING
`
	_, err := pool.Exec(ctx, q, code, percent)
	return err
}
