package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/internal/domain/enum"
	"github.com/DWRSH/point-of-sale/internal/domain/repository"
	"github.com/DWRSH/point-of-sale/pkg/apperror"
	"github.com/DWRSH/point-of-sale/pkg/money"
	"github.com/DWRSH/point-of-sale/pkg/pagination"
)

// SaleService orchestrates sale creation across the inventory ledger, the
// customer balance ledger and the audit trail. Every mutation happens inside
// one transaction: a bill either lands completely or not at all.
type SaleService struct {
	txManager    repository.TxManager
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	txManager repository.TxManager,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		txManager:    txManager,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// CartItemInput is one line of the cart being billed
type CartItemInput struct {
	ProductID uuid.UUID
	Price     float64
	Quantity  int
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerName   string
	Phone          string
	Address        string
	Items          []CartItemInput
	DiscountAmount float64
	AmountPaid     float64
	PaymentMethod  enum.PaymentMethod
	PaymentStatus  enum.PaymentStatus
}

// CreateSale finalizes a bill. Validation happens before the transaction
// opens; once inside, the customer is resolved by phone, stock is decremented
// per line, the sale and its snapshots are written, the payment is recorded
// and the customer's outstanding balance grows by the unpaid remainder.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if input.CustomerName == "" || input.Phone == "" {
		return nil, apperror.NewBadRequestError("Customer name and phone number are required.")
	}

	discount := money.ToCents(input.DiscountAmount)
	paid := money.ToCents(input.AmountPaid)
	if discount < 0 {
		return nil, apperror.NewBadRequestError("Discount cannot be negative.")
	}
	if paid < 0 {
		return nil, apperror.NewBadRequestError("Amount paid cannot be negative.")
	}

	var total int64
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be greater than zero.")
		}
		price := money.ToCents(item.Price)
		if price <= 0 {
			return nil, apperror.NewBadRequestError("Item price must be greater than zero.")
		}
		total += price * int64(item.Quantity)
	}

	if discount > total {
		return nil, apperror.NewBadRequestError("Discount cannot be greater than total amount.")
	}

	final := total - discount
	due := final - paid

	// The declared status must agree with the arithmetic; an inconsistent
	// bill is rejected before anything is written.
	switch input.PaymentStatus {
	case enum.PaymentStatusPaid:
		if due != 0 {
			return nil, apperror.NewBadRequestError(`For "Paid" status, amount paid must equal final amount.`)
		}
	case enum.PaymentStatusUnpaid:
		if paid != 0 {
			return nil, apperror.NewBadRequestError(`For "Unpaid" status, amount paid must be 0.`)
		}
	case enum.PaymentStatusPartial:
		if paid <= 0 || paid >= final {
			return nil, apperror.NewBadRequestError(`For "Partial" status, amount paid must be greater than 0 and less than final amount.`)
		}
	}

	var saleID uuid.UUID
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		customer, err := s.resolveCustomer(ctx, input)
		if err != nil {
			return err
		}

		// Batch fetch all products in one query (prevents N+1)
		productIDs := make([]uuid.UUID, len(input.Items))
		for i, item := range input.Items {
			productIDs[i] = item.ProductID
		}
		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		productMap := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		saleItems := make([]entity.SaleItem, 0, len(input.Items))
		for _, item := range input.Items {
			product, exists := productMap[item.ProductID]
			if !exists {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}

			// The conditional decrement fails the whole transaction when the
			// shelf cannot cover the line, so two concurrent bills can never
			// oversell the same unit.
			ok, err := s.productRepo.AdjustStock(ctx, product.ID, -item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewBadRequestError(fmt.Sprintf("Not enough stock for %s.", product.Name))
			}

			saleItems = append(saleItems, entity.SaleItem{
				ProductID: item.ProductID,
				Name:      product.Name,
				Price:     money.ToCents(item.Price),
				Quantity:  item.Quantity,
			})
		}

		sale := &entity.Sale{
			CustomerID:     customer.ID,
			TotalAmount:    total,
			DiscountAmount: discount,
			FinalAmount:    final,
			AmountPaid:     paid,
			AmountDue:      due,
			PaymentMethod:  input.PaymentMethod,
			PaymentStatus:  input.PaymentStatus,
			Items:          saleItems,
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		saleID = sale.ID

		if paid > 0 {
			payment := &entity.Payment{
				CustomerID:  customer.ID,
				SaleID:      &sale.ID,
				AmountPaid:  paid,
				PaymentType: enum.PaymentTypeSale,
			}
			if err := s.paymentRepo.Create(ctx, payment); err != nil {
				return err
			}
		}

		if due > 0 {
			if err := s.customerRepo.AdjustBalance(ctx, customer.ID, due); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, saleID)
}

// resolveCustomer finds the customer by phone or creates one. A known phone
// gets its name and address refreshed from the bill.
func (s *SaleService) resolveCustomer(ctx context.Context, input *CreateSaleInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		customer.Name = input.CustomerName
		if input.Address != "" {
			customer.Address = input.Address
		}
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	customer = &entity.Customer{
		Name:    input.CustomerName,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetSale retrieves a sale with its items and returned-items tally
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales newest first
func (s *SaleService) ListSales(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
