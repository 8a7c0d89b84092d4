package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	domainRepo "github.com/DWRSH/point-of-sale/internal/domain/repository"
	"github.com/DWRSH/point-of-sale/pkg/pagination"
)

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a new return repository
func NewReturnRepository(db *gorm.DB) domainRepo.ReturnRepository {
	return &returnRepository{db: db}
}

// Create appends a return (with its item lines) to the audit trail. Return
// rows are immutable once written.
func (r *returnRepository) Create(ctx context.Context, ret *entity.Return) error {
	return dbFor(ctx, r.db).Create(ret).Error
}

func (r *returnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := dbFor(ctx, r.db).
		Preload("ItemsReturned").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Return, int64, error) {
	var returns []entity.Return
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.Return{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Customer").
		Preload("OriginalSale").
		Preload("ItemsReturned").
		Order("created_at DESC").
		Find(&returns).Error

	return returns, total, err
}
