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

// CustomerService handles customer accounts and standalone due repayments
type CustomerService struct {
	txManager    repository.TxManager
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	txManager repository.TxManager,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
) *CustomerService {
	return &CustomerService{
		txManager:    txManager,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
	}
}

// RecordDuePayment records a standalone credit repayment. The payment row and
// the balance decrement commit together; the conditional decrement rejects
// any amount the current balance does not cover, so the balance can never go
// negative even under concurrent repayments.
func (s *CustomerService) RecordDuePayment(ctx context.Context, customerID uuid.UUID, amount float64) (*entity.Customer, error) {
	cents := money.ToCents(amount)
	if cents <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be greater than zero.")
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		ok, err := s.customerRepo.DecrementBalance(ctx, customerID, cents)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewBadRequestError(fmt.Sprintf("Payment amount %s exceeds outstanding balance %s.",
				money.Format(cents), money.Format(customer.OutstandingBalance)))
		}

		payment := &entity.Payment{
			CustomerID:  customerID,
			AmountPaid:  cents,
			PaymentType: enum.PaymentTypeDue,
		}
		return s.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	return s.customerRepo.GetByID(ctx, customerID)
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerWithHistory retrieves a customer with purchase, payment and
// return history, newest first
func (s *CustomerService) GetCustomerWithHistory(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetWithHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with optional name or phone search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
