package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	PriceUnit   string    `json:"priceUnit"`
	Features    []string  `json:"features,omitempty"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductCategories are the catalog categories the admin screens accept.
var ProductCategories = []string{"Hosting", "VPS", "SSL", "SEO", "Lainnya"}
