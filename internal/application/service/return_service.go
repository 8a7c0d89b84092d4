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

// ReturnService orchestrates returns against prior sales. Refunds are valued
// at the prices captured on the original bill, the due balance absorbs as
// much of the refund as it can, and only the remainder leaves the till as
// cash.
type ReturnService struct {
	txManager    repository.TxManager
	returnRepo   repository.ReturnRepository
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewReturnService creates a new return service
func NewReturnService(
	txManager repository.TxManager,
	returnRepo repository.ReturnRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *ReturnService {
	return &ReturnService{
		txManager:    txManager,
		returnRepo:   returnRepo,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// ReturnItemInput is one returned line, identified by the product on the
// original bill
type ReturnItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateReturnInput represents the create return input
type CreateReturnInput struct {
	CustomerID        uuid.UUID
	SaleID            uuid.UUID
	Items             []ReturnItemInput
	TotalRefundAmount float64
}

// CreateReturnResult carries the stored return plus a human-readable summary
// of how the refund was split.
type CreateReturnResult struct {
	Return  *entity.Return
	Message string
}

// CreateReturn processes a return against a sale. Each line is capped by the
// originally sold quantity minus everything already returned, the supplied
// refund must equal the snapshot value of the returned items, and the split
// between due adjustment and cash back is derived from the customer's
// outstanding balance at commit time.
func (s *ReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*CreateReturnResult, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("No items to return")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Return quantity must be greater than zero.")
		}
	}

	var stored *entity.Return
	var dueAdjusted, cashReturned int64

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetWithItems(ctx, input.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
		if customer.ID != sale.CustomerID {
			return apperror.NewBadRequestError("Customer does not match the original sale.")
		}

		// Value every line at the snapshot price and check it fits within
		// what is still returnable on this bill.
		var refund int64
		returnItems := make([]entity.ReturnItem, 0, len(input.Items))
		for _, item := range input.Items {
			line := sale.ItemByProduct(item.ProductID)
			if line == nil {
				return apperror.NewBadRequestError(fmt.Sprintf("Product %s was not part of this sale.", item.ProductID))
			}

			remaining := line.Quantity - sale.ReturnedQuantity(item.ProductID)
			if item.Quantity > remaining {
				return apperror.NewBadRequestError(fmt.Sprintf("Cannot return %d of %s. Only %d are left.", item.Quantity, line.Name, remaining))
			}

			refund += line.Price * int64(item.Quantity)
			returnItems = append(returnItems, entity.ReturnItem{
				ProductID: item.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Quantity:  item.Quantity,
			})
		}

		if money.ToCents(input.TotalRefundAmount) != refund {
			return apperror.NewBadRequestError("Refund amount does not match the value of the returned items.")
		}

		dueAdjusted = customer.OutstandingBalance
		if dueAdjusted > refund {
			dueAdjusted = refund
		}
		cashReturned = refund - dueAdjusted

		refundType := enum.RefundTypeMixed
		switch {
		case cashReturned == 0:
			refundType = enum.RefundTypeAdjustedToDue
		case dueAdjusted == 0:
			refundType = enum.RefundTypeCashBack
		}

		ret := &entity.Return{
			CustomerID:        customer.ID,
			OriginalSaleID:    sale.ID,
			TotalRefundAmount: refund,
			RefundType:        refundType,
			CashReturned:      cashReturned,
			DueAdjusted:       dueAdjusted,
			ItemsReturned:     returnItems,
		}
		if err := s.returnRepo.Create(ctx, ret); err != nil {
			return err
		}
		stored = ret

		for _, item := range input.Items {
			line := sale.ItemByProduct(item.ProductID)

			// Returned units go back on the shelf.
			if _, err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}

			// The tally write re-checks the cap, so a racing return against
			// the same line rolls this one back instead of double-counting.
			ok, err := s.saleRepo.AddReturnedQuantity(ctx, sale.ID, item.ProductID, item.Quantity, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				remaining := line.Quantity - sale.ReturnedQuantity(item.ProductID)
				return apperror.NewBadRequestError(fmt.Sprintf("Cannot return %d of %s. Only %d are left.", item.Quantity, line.Name, remaining))
			}
		}

		if dueAdjusted > 0 {
			ok, err := s.customerRepo.DecrementBalance(ctx, customer.ID, dueAdjusted)
			if err != nil {
				return err
			}
			if !ok {
				// The balance shrank between our read and this write.
				return apperror.NewConflictError("Customer balance changed, please retry the return.")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateReturnResult{
		Return: stored,
		Message: fmt.Sprintf("Return successful. Due adjusted: %s, cash back: %s",
			money.Format(dueAdjusted), money.Format(cashReturned)),
	}, nil
}

// GetReturn retrieves a return with its item lines
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	ret, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	return ret, nil
}

// ListReturns lists returns newest first
func (s *ReturnService) ListReturns(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Return], error) {
	returns, total, err := s.returnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}
