package domain

import (
	"strings"
	"time"
)

// Voucher is a discount code with eligibility constraints. Codes are stored
// uppercase; an empty ApplicablePlans list means the voucher applies to all.
type Voucher struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	ExpiryDate      time.Time `json:"expiryDate"`
	IsActive        bool      `json:"isActive"`
	ApplicablePlans []string  `json:"applicablePlans"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AppliesTo reports whether the voucher covers the given plan identifier.
func (v *Voucher) AppliesTo(plan string) bool {
	if len(v.ApplicablePlans) == 0 {
		return true
	}
	for _, p := range v.ApplicablePlans {
		if strings.EqualFold(p, plan) {
			return true
		}
	}
	return false
}
