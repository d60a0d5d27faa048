package models

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusError    ProductStatus = "error"
)

// Product is the wire shape returned by the scraper backend. The dashboard
// passes it through untouched; it never validates or transforms fields.
type Product struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Price        float64        `json:"price"`
	ImageURL     *string        `json:"image_url"`
	Status       ProductStatus  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Pricing      *Pricing       `json:"pricing,omitempty"`
	Category     string         `json:"category,omitempty"`
	Brand        string         `json:"brand,omitempty"`
	Availability string         `json:"availability,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

type Pricing struct {
	Currency      string   `json:"currency,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
}

// Pagination is the backend's paging snapshot. It is replaced wholesale on
// every successful fetch, and on load-more together with the appended items.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// ProductPage is one page of products as returned by the list endpoint.
type ProductPage struct {
	Items      []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
