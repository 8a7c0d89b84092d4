package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DWRSH/point-of-sale/internal/domain/enum"
	"github.com/DWRSH/point-of-sale/pkg/money"
)

// Sale represents a finalized bill. Line items are snapshots taken at sale
// time and never change when the product is later edited. After creation the
// only mutable part is the returned-items tally, owned by the return
// orchestration.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	TotalAmount    int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount int64              `gorm:"default:0" json:"-"`
	FinalAmount    int64              `gorm:"not null" json:"-"`
	AmountPaid     int64              `gorm:"default:0" json:"-"`
	AmountDue      int64              `gorm:"default:0" json:"-"`
	PaymentMethod  enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	PaymentStatus  enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer      *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items         []SaleItem         `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	ReturnedItems []SaleReturnedItem `gorm:"foreignKey:SaleID" json:"returned_items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		TotalAmount    float64 `json:"total_amount"`
		DiscountAmount float64 `json:"discount_amount"`
		FinalAmount    float64 `json:"final_amount"`
		AmountPaid     float64 `json:"amount_paid"`
		AmountDue      float64 `json:"amount_due"`
	}{
		Alias:          Alias(s),
		TotalAmount:    money.ToFloat(s.TotalAmount),
		DiscountAmount: money.ToFloat(s.DiscountAmount),
		FinalAmount:    money.ToFloat(s.FinalAmount),
		AmountPaid:     money.ToFloat(s.AmountPaid),
		AmountDue:      money.ToFloat(s.AmountDue),
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ItemByProduct returns the captured line for a product, or nil if the
// product was not part of this bill.
func (s *Sale) ItemByProduct(productID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			return &s.Items[i]
		}
	}
	return nil
}

// ReturnedQuantity returns how many units of a product have already been
// returned against this bill.
func (s *Sale) ReturnedQuantity(productID uuid.UUID) int {
	for i := range s.ReturnedItems {
		if s.ReturnedItems[i].ProductID == productID {
			return s.ReturnedItems[i].QuantityReturned
		}
	}
	return 0
}

// SaleItem is a line item captured at sale time
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Price     int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(si),
		Price: money.ToFloat(si.Price),
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleReturnedItem tracks how many units of a sale line have been returned.
// One row per (sale, product); the unique index makes concurrent first
// returns for the same line collide instead of double-counting.
type SaleReturnedItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_product" json:"sale_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sale_product" json:"product_id"`
	QuantityReturned int       `gorm:"not null" json:"quantity_returned"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new returned-item tally
func (sr *SaleReturnedItem) BeforeCreate(tx *gorm.DB) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleReturnedItem model
func (SaleReturnedItem) TableName() string {
	return "sale_returned_items"
}
