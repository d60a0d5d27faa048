package models

// ListResponse is the envelope around the product listing payload.
type ListResponse struct {
	Success bool         `json:"success"`
	Data    *ProductPage `json:"data"`
	Message string       `json:"message,omitempty"`
}

// DetailResponse is the envelope around a single product.
type DetailResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message string   `json:"message,omitempty"`
}

// ScrapeResponse is the envelope returned by the scrape trigger endpoint.
// Errors carries per-field validation messages from the backend.
type ScrapeResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
