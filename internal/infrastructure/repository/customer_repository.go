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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFor(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFor(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFor(ctx, r.db).First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return dbFor(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := dbFor(ctx, r.db).Model(&entity.Customer{})

	if search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&customers).Error

	return customers, total, err
}

// GetWithHistory loads a customer with full purchase, payment and return
// history, newest first.
func (r *customerRepository) GetWithHistory(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFor(ctx, r.db).
		Preload("Sales", func(db *gorm.DB) *gorm.DB {
			return db.Order("sales.created_at DESC")
		}).
		Preload("Sales.Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.created_at DESC")
		}).
		Preload("Returns", func(db *gorm.DB) *gorm.DB {
			return db.Order("returns.created_at DESC")
		}).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := dbFor(ctx, r.db).Model(&entity.Customer{}).Count(&total).Error
	return total, err
}

// AdjustBalance changes the outstanding balance by delta cents. Sales call
// this with the bill's due amount (possibly zero).
func (r *customerRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	result := dbFor(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("outstanding_balance", gorm.Expr("outstanding_balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementBalance subtracts amount cents only if the balance covers it.
// Uses: UPDATE customers SET outstanding_balance = outstanding_balance - ?
//
//	WHERE id = ? AND outstanding_balance >= ?
//
// A zero rows-affected result means the guard failed and nothing changed.
func (r *customerRepository) DecrementBalance(ctx context.Context, id uuid.UUID, amount int64) (bool, error) {
	result := dbFor(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ? AND outstanding_balance >= ?", id, amount).
		Update("outstanding_balance", gorm.Expr("outstanding_balance - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
