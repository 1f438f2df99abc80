package domain

// OrderKind discriminates what the single cart slot holds.
type OrderKind string

const (
	OrderKindDomain  OrderKind = "domain"
	OrderKindProduct OrderKind = "product"
)

// Order is the single pending purchase held in a user's session. Exactly one
// of Domain/Product is set, matching Kind.
type Order struct {
	Kind    OrderKind    `json:"kind"`
	Domain  string       `json:"domain,omitempty"`
	Product *OrderItem   `json:"product,omitempty"`
	Options OrderOptions `json:"options"`
	Pricing Pricing      `json:"pricing"`
}

// OrderItem is the catalog snapshot a product order carries.
type OrderItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type OrderOptions struct {
	Period          int  `json:"period"`
	WHOISProtection bool `json:"whoisProtection"`
}

// Pricing is the derived breakdown for an order. It is recomputed on demand;
// Priced marks whether the snapshot is current (option updates reset it).
type Pricing struct {
	BasePrice      int64  `json:"basePrice"`
	Period         int    `json:"period"`
	AddOnCost      int64  `json:"addOnCost"`
	Subtotal       int64  `json:"subtotal"`
	VoucherCode    string `json:"voucherCode,omitempty"`
	DiscountAmount int64  `json:"discountAmount"`
	FinalPrice     int64  `json:"finalPrice"`
	Priced         bool   `json:"priced"`
}

// Plan returns the identifier voucher applicability is matched against:
// the product name for product orders, the order kind otherwise.
func (o *Order) Plan() string {
	if o.Kind == OrderKindProduct && o.Product != nil {
		return o.Product.Name
	}
	return string(o.Kind)
}

// ItemName names the purchased resource for display and line items.
func (o *Order) ItemName() string {
	if o.Kind == OrderKindDomain {
		return o.Domain
	}
	if o.Product != nil {
		return o.Product.Name
	}
	return ""
}
