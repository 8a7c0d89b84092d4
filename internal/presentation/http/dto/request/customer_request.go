package request

// DuePaymentRequest represents a standalone credit repayment payload
type DuePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
