package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// AdjustBalance and DecrementBalance are the customer balance ledger
// primitives; orchestrators never write the balance field directly.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// GetWithHistory loads a customer with purchase, payment and return
	// history, newest first.
	GetWithHistory(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Count(ctx context.Context) (int64, error)

	// AdjustBalance changes the outstanding balance by delta cents
	// unconditionally (sales add the due amount, which may be zero).
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error

	// DecrementBalance subtracts amount cents only if the current balance
	// covers it. It reports false, without modifying anything, when the
	// guard fails; this is the compare-and-swap that keeps concurrent
	// repayments and returns from driving the balance negative.
	DecrementBalance(ctx context.Context, id uuid.UUID, amount int64) (bool, error)
}
