// File: internal/api/product_response.go
package api

import "time"

// swagger:model api.ProductResponse
type ProductResponse struct {
	ID            int       `json:"id" example:"1"`
	Name          string    `json:"name" example:"Cyber-Punk Watch v.1"`
	Description   *string   `json:"description" example:"The best watch for hackers"`
	Price         float64   `json:"price" example:"99.99"`
	StockQuantity int       `json:"stock_quantity" example:"1"`
	ImageURL      *string   `json:"image_url"`
	CreatedAt     time.Time `json:"created_at" example:"2025-05-01T15:04:05Z07:00"`
}
