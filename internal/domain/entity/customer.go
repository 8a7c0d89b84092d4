package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DWRSH/point-of-sale/pkg/money"
)

// Customer is the long-lived credit account behind every bill. The phone
// number is the natural key: a sale for an unknown phone creates the
// customer, a known phone reuses it. OutstandingBalance is mutated only by
// the sale/return/due-payment orchestrations, never written directly.
type Customer struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	Phone              string         `gorm:"size:50;uniqueIndex;not null" json:"phone"`
	Address            string         `gorm:"type:text" json:"address"`
	OutstandingBalance int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// History relations, resolved by lookup rather than embedded to keep the
	// Customer/Sale/Payment/Return graph acyclic.
	Sales    []Sale    `gorm:"foreignKey:CustomerID" json:"purchase_history,omitempty"`
	Payments []Payment `gorm:"foreignKey:CustomerID" json:"payment_history,omitempty"`
	Returns  []Return  `gorm:"foreignKey:CustomerID" json:"return_history,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		OutstandingBalance float64 `json:"outstanding_balance"`
	}{
		Alias:              Alias(c),
		OutstandingBalance: money.ToFloat(c.OutstandingBalance),
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
