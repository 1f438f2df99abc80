package setting

import "context"

// Well-known setting keys. TLD prices live under domain_price_<tld> (dots
// stripped, e.g. domain_price_co_id); missing keys fall back to
// KeyDomainPriceDefault.
const (
	KeyDomainPriceDefault = "domain_price_default"
	KeyWHOISPrice         = "whois_protection_price"
	PlanPricePrefix       = "plan_price_"
	DomainPricePrefix     = "domain_price_"
)

type Repository interface {
	// Int64 returns the numeric setting under key, or fallback when absent.
	Int64(ctx context.Context, key string, fallback int64) (int64, error)
	Set(ctx context.Context, key string, value interface{}) error
	All(ctx context.Context) (map[string]interface{}, error)
}
