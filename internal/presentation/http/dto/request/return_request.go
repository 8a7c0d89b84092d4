package request

import "github.com/google/uuid"

// ReturnItemRequest is one returned line in a create return request
type ReturnItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateReturnRequest represents the create return request payload
type CreateReturnRequest struct {
	CustomerID        uuid.UUID           `json:"customer_id" binding:"required"`
	SaleID            uuid.UUID           `json:"sale_id" binding:"required"`
	Items             []ReturnItemRequest `json:"items" binding:"dive"`
	TotalRefundAmount float64             `json:"total_refund_amount" binding:"required,gt=0"`
}
