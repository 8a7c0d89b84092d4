package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DWRSH/point-of-sale/internal/domain/enum"
	"github.com/DWRSH/point-of-sale/pkg/money"
)

// Return is an append-only record of items sent back against a prior sale.
// Invariant: CashReturned + DueAdjusted == TotalRefundAmount.
type Return struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	OriginalSaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"original_sale_id"`
	TotalRefundAmount int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	RefundType        enum.RefundType `gorm:"not null" json:"refund_type"`
	CashReturned      int64           `gorm:"default:0" json:"-"`
	DueAdjusted       int64           `gorm:"default:0" json:"-"`
	CreatedAt         time.Time       `json:"created_at"`

	// Relationships
	Customer      *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OriginalSale  *Sale        `gorm:"foreignKey:OriginalSaleID" json:"original_sale,omitempty"`
	ItemsReturned []ReturnItem `gorm:"foreignKey:ReturnID" json:"items_returned,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Return) MarshalJSON() ([]byte, error) {
	type Alias Return
	return json.Marshal(&struct {
		Alias
		TotalRefundAmount float64 `json:"total_refund_amount"`
		CashReturned      float64 `json:"cash_returned"`
		DueAdjusted       float64 `json:"due_adjusted"`
	}{
		Alias:             Alias(r),
		TotalRefundAmount: money.ToFloat(r.TotalRefundAmount),
		CashReturned:      money.ToFloat(r.CashReturned),
		DueAdjusted:       money.ToFloat(r.DueAdjusted),
	})
}

// BeforeCreate generates a UUID before creating a new return
func (r *Return) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Return model
func (Return) TableName() string {
	return "returns"
}

// ReturnItem is a line of a return, valued at the original sale price
type ReturnItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID  uuid.UUID `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Price     int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ri ReturnItem) MarshalJSON() ([]byte, error) {
	type Alias ReturnItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(ri),
		Price: money.ToFloat(ri.Price),
	})
}

// BeforeCreate generates a UUID before creating a new return item
func (ri *ReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnItem model
func (ReturnItem) TableName() string {
	return "return_items"
}
