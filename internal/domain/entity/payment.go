package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DWRSH/point-of-sale/internal/domain/enum"
	"github.com/DWRSH/point-of-sale/pkg/money"
)

// Payment is an append-only record of money received. Type Sale means the
// money came bundled with a bill (SaleID set); type Due is a standalone
// credit repayment. Rows are never updated after creation.
type Payment struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	SaleID      *uuid.UUID       `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	AmountPaid  int64            `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentType enum.PaymentType `gorm:"not null" json:"payment_type"`
	CreatedAt   time.Time        `json:"created_at"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Sale     *Sale     `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		AmountPaid float64 `json:"amount_paid"`
	}{
		Alias:      Alias(p),
		AmountPaid: money.ToFloat(p.AmountPaid),
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
