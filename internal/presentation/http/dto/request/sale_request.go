package request

import (
	"github.com/google/uuid"

	"github.com/DWRSH/point-of-sale/internal/domain/enum"
)

// SaleItemRequest is one cart line in a create sale request
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Price     float64   `json:"price" binding:"required,gt=0"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest represents the create sale request payload. PaymentStatus
// is a pointer so a missing field fails binding instead of defaulting to Paid.
type CreateSaleRequest struct {
	CustomerName   string              `json:"customer_name" binding:"required"`
	Phone          string              `json:"phone" binding:"required"`
	Address        string              `json:"address"`
	Items          []SaleItemRequest   `json:"items" binding:"dive"`
	DiscountAmount float64             `json:"discount_amount" binding:"gte=0"`
	AmountPaid     float64             `json:"amount_paid" binding:"gte=0"`
	PaymentMethod  enum.PaymentMethod  `json:"payment_method"`
	PaymentStatus  *enum.PaymentStatus `json:"payment_status" binding:"required"`
}
