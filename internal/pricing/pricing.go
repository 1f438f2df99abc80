// Package pricing computes order totals. All functions are pure: amounts are
// whole-unit IDR held as int64 and no I/O happens here.
package pricing

import "domainhost/internal/domain"

// Compute builds the pricing breakdown for one order.
//
//	subtotal = baseUnitPrice*period + addOnCost
//	discount = round(subtotal * voucher.DiscountPercent / 100)
//	final    = max(0, subtotal - discount)
//
// A nil voucher means no discount. A non-positive period fails with
// domain.ErrInvalidOption.
func Compute(baseUnitPrice int64, period int, addOnCost int64, voucher *domain.Voucher) (domain.Pricing, error) {
	if period <= 0 {
		return domain.Pricing{}, domain.ErrInvalidOption
	}
	if baseUnitPrice < 0 || addOnCost < 0 {
		return domain.Pricing{}, domain.ErrInvalidOption
	}

	subtotal := baseUnitPrice*int64(period) + addOnCost

	p := domain.Pricing{
		BasePrice: baseUnitPrice,
		Period:    period,
		AddOnCost: addOnCost,
		Subtotal:  subtotal,
		Priced:    true,
	}

	if voucher != nil {
		p.VoucherCode = voucher.Code
		p.DiscountAmount = discount(subtotal, voucher.DiscountPercent)
		if p.DiscountAmount > subtotal {
			p.DiscountAmount = subtotal
		}
	}

	p.FinalPrice = subtotal - p.DiscountAmount
	if p.FinalPrice < 0 {
		p.FinalPrice = 0
	}
	return p, nil
}

// discount rounds half-up in integer arithmetic.
func discount(subtotal int64, percent int) int64 {
	if percent <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return (subtotal*int64(percent) + 50) / 100
}
