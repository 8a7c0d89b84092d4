package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists the sale together with its line-item snapshots.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetWithItems loads a sale with its items and returned-items tally.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// List returns sales newest first with the customer joined.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error)

	// AddReturnedQuantity grows the returned tally for one sale line by qty,
	// only if the cumulative tally stays within maxQty (the originally sold
	// quantity). It reports false, without modifying anything, when the cap
	// would be exceeded.
	AddReturnedQuantity(ctx context.Context, saleID, productID uuid.UUID, qty, maxQty int) (bool, error)

	// TotalsSince sums final amounts and counts sales created at or after
	// the given time (dashboard aggregation).
	TotalsSince(ctx context.Context, since time.Time) (int64, int64, error)
}

// PaymentRepository defines the interface for the append-only payment trail
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
}

// ReturnRepository defines the interface for the append-only return trail
type ReturnRepository interface {
	// Create persists the return together with its returned-item lines.
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	// List returns returns newest first with customer and original sale joined.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Return, int64, error)
}
