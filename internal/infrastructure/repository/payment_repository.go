package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	domainRepo "github.com/DWRSH/point-of-sale/internal/domain/repository"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create appends a payment to the audit trail. There is intentionally no
// update or delete: payment rows are immutable once written.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFor(ctx, r.db).Create(payment).Error
}
