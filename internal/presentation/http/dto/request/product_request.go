package request

import "github.com/google/uuid"

// CreateProductRequest represents the create product request payload
type CreateProductRequest struct {
	Name       string     `json:"name" binding:"required"`
	SKU        string     `json:"sku" binding:"required"`
	CategoryID *uuid.UUID `json:"category_id"`
	Price      float64    `json:"price" binding:"required,gt=0"`
	Stock      int        `json:"stock" binding:"gte=0"`
	StockAlert *int       `json:"stock_alert"`
}

// UpdateProductRequest represents the update product request payload. Stock
// is not updatable here; it moves only through sales and returns.
type UpdateProductRequest struct {
	Name       *string    `json:"name"`
	SKU        *string    `json:"sku"`
	CategoryID *uuid.UUID `json:"category_id"`
	Price      *float64   `json:"price"`
	StockAlert *int       `json:"stock_alert"`
}

// CategoryRequest represents the create/update category request payload
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
