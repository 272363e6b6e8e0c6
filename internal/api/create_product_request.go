// File: internal/api/create_product_request.go
package api

// CreateProductRequest 建立與全量更新商品共用的請求格式 (JSON)
// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required" example:"Cyber-Punk Watch v.1"`
	Description   *string `json:"description" example:"The best watch for hackers"`
	Price         float64 `json:"price" validate:"required,gt=0" example:"99.99"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0" example:"1"`
	ImageURL      *string `json:"image_url"`
}
