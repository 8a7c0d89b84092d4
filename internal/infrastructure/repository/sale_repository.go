package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	domainRepo "github.com/DWRSH/point-of-sale/internal/domain/repository"
	"github.com/DWRSH/point-of-sale/pkg/pagination"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create persists the sale; gorm cascades the Items association so the
// line-item snapshots land in the same insert batch.
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return dbFor(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := dbFor(ctx, r.db).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := dbFor(ctx, r.db).
		Preload("Items").
		Preload("ReturnedItems").
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.Sale{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Customer").
		Preload("Items").
		Preload("ReturnedItems").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

// AddReturnedQuantity grows the per-line returned tally by qty, keeping the
// cumulative total within maxQty. The conditional UPDATE enforces the cap at
// write time, so two concurrent returns cannot both squeeze under it; a
// brand new tally row is inserted only when qty alone fits, and the unique
// (sale_id, product_id) index makes racing first inserts collide.
func (r *saleRepository) AddReturnedQuantity(ctx context.Context, saleID, productID uuid.UUID, qty, maxQty int) (bool, error) {
	db := dbFor(ctx, r.db)

	result := db.Model(&entity.SaleReturnedItem{}).
		Where("sale_id = ? AND product_id = ? AND quantity_returned + ? <= ?", saleID, productID, qty, maxQty).
		Update("quantity_returned", gorm.Expr("quantity_returned + ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Either no tally row exists yet, or the cap would be exceeded.
	var count int64
	if err := db.Model(&entity.SaleReturnedItem{}).
		Where("sale_id = ? AND product_id = ?", saleID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 || qty > maxQty {
		return false, nil
	}

	tally := &entity.SaleReturnedItem{
		SaleID:           saleID,
		ProductID:        productID,
		QuantityReturned: qty,
	}
	return true, db.Create(tally).Error
}

func (r *saleRepository) TotalsSince(ctx context.Context, since time.Time) (int64, int64, error) {
	var sum int64
	var count int64

	db := dbFor(ctx, r.db)

	if err := db.Model(&entity.Sale{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&entity.Sale{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, 0, err
	}

	return sum, count, nil
}
