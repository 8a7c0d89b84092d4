package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/internal/domain/repository"
	"github.com/DWRSH/point-of-sale/pkg/apperror"
	"github.com/DWRSH/point-of-sale/pkg/money"
	"github.com/DWRSH/point-of-sale/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name       string
	SKU        string
	CategoryID *uuid.UUID
	Price      float64
	Stock      int
	StockAlert *int
}

// UpdateProductInput represents the update product input. Nil fields are left
// unchanged. Stock is absent on purpose: it moves only through sales and
// returns.
type UpdateProductInput struct {
	Name       *string
	SKU        *string
	CategoryID *uuid.UUID
	Price      *float64
	StockAlert *int
}

// CreateProduct creates a new catalog entry
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" || input.SKU == "" {
		return nil, apperror.NewBadRequestError("Product name and SKU are required.")
	}
	priceCents := money.ToCents(input.Price)
	if priceCents <= 0 {
		return nil, apperror.NewBadRequestError("Price must be greater than zero.")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative.")
	}

	existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this SKU already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		Name:       input.Name,
		SKU:        input.SKU,
		CategoryID: input.CategoryID,
		Price:      priceCents,
		Stock:      input.Stock,
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates catalog fields of a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.SKU != nil && *input.SKU != product.SKU {
		existing, err := s.productRepo.GetBySKU(ctx, *input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A product with this SKU already exists")
		}
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Price != nil {
		priceCents := money.ToCents(*input.Price)
		if priceCents <= 0 {
			return nil, apperror.NewBadRequestError("Price must be greater than zero.")
		}
		product.Price = priceCents
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product. Past sale snapshots keep their copy
// of the name and price, so history stays intact.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with search and category filters
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, limit)
}
