package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/internal/domain/enum"
	"github.com/DWRSH/point-of-sale/pkg/apperror"
)

// sellOnCredit bills two notebooks at 100.00 with a partial payment, leaving
// the customer with an 80.00 outstanding balance.
func sellOnCredit(t *testing.T, env *testEnv) (*entity.Product, *entity.Sale) {
	t.Helper()

	product := env.createProduct(t, "Notebook", "NB-001", 100.00, 10)
	sale, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:   "Asha",
		Phone:          "9000000001",
		Items:          []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 2}},
		DiscountAmount: 20.00,
		AmountPaid:     100.00,
		PaymentMethod:  enum.PaymentMethodCash,
		PaymentStatus:  enum.PaymentStatusPartial,
	})
	require.NoError(t, err)
	return product, sale
}

func TestCreateReturn_RefundAbsorbedByDue(t *testing.T) {
	// GIVEN a customer owing 80.00 on a two-unit bill
	env := newTestEnv(t)
	product, sale := sellOnCredit(t, env)

	// WHEN one unit comes back, valued at its 100.00 snapshot price
	result, err := env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 100.00,
	})

	// THEN the due absorbs 80.00 and only 20.00 leaves as cash
	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.Return.TotalRefundAmount)
	assert.Equal(t, int64(8000), result.Return.DueAdjusted)
	assert.Equal(t, int64(2000), result.Return.CashReturned)
	assert.Equal(t, enum.RefundTypeMixed, result.Return.RefundType)
	assert.Equal(t, "Return successful. Due adjusted: 80.00, cash back: 20.00", result.Message)

	// AND the balance is cleared and the unit is back on the shelf
	customer := env.customerByPhone(t, "9000000001")
	assert.Equal(t, int64(0), customer.OutstandingBalance)

	updated, err := env.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
}

func TestCreateReturn_FullyAdjustedToDue(t *testing.T) {
	// GIVEN a customer owing more than the refund value
	env := newTestEnv(t)
	product := env.createProduct(t, "Notebook", "NB-001", 50.00, 10)
	sale, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:  "Asha",
		Phone:         "9000000001",
		Items:         []CartItemInput{{ProductID: product.ID, Quantity: 4, Price: 50.00}},
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusUnpaid,
	})
	require.NoError(t, err)

	// WHEN one 50.00 unit comes back against a 200.00 debt
	result, err := env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 50.00,
	})

	// THEN the whole refund offsets the debt and no cash moves
	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.Return.DueAdjusted)
	assert.Equal(t, int64(0), result.Return.CashReturned)
	assert.Equal(t, enum.RefundTypeAdjustedToDue, result.Return.RefundType)

	customer := env.customerByPhone(t, "9000000001")
	assert.Equal(t, int64(15000), customer.OutstandingBalance)
}

func TestCreateReturn_CashBackWhenNoDue(t *testing.T) {
	// GIVEN a fully paid bill
	env := newTestEnv(t)
	product := env.createProduct(t, "Notebook", "NB-001", 100.00, 10)
	sale, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:  "Asha",
		Phone:         "9000000001",
		Items:         []CartItemInput{{ProductID: product.ID, Quantity: 1, Price: 100.00}},
		AmountPaid:    100.00,
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusPaid,
	})
	require.NoError(t, err)

	// WHEN the unit comes back
	result, err := env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 100.00,
	})

	// THEN the entire refund is cash
	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.Return.CashReturned)
	assert.Equal(t, int64(0), result.Return.DueAdjusted)
	assert.Equal(t, enum.RefundTypeCashBack, result.Return.RefundType)
}

func TestCreateReturn_CapsCumulativeQuantity(t *testing.T) {
	// GIVEN one unit of a two-unit line already returned
	env := newTestEnv(t)
	product, sale := sellOnCredit(t, env)

	_, err := env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 100.00,
	})
	require.NoError(t, err)

	// WHEN a second return asks for two more units
	_, err = env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 2}},
		TotalRefundAmount: 200.00,
	})

	// THEN it is rejected with the remaining quantity
	require.Error(t, err)
	assert.Equal(t, "Cannot return 2 of Notebook. Only 1 are left.", apperror.GetAppError(err).Message)

	// AND the failed return wrote nothing
	assert.Equal(t, int64(1), env.countRows(t, &entity.Return{}))

	updated, err := env.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
}

func TestCreateReturn_RejectsRefundMismatch(t *testing.T) {
	// GIVEN a credit sale
	env := newTestEnv(t)
	product, sale := sellOnCredit(t, env)

	// WHEN the claimed refund does not match the snapshot value of the items
	_, err := env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 150.00,
	})

	// THEN the return is rejected and nothing changed
	require.Error(t, err)
	assert.Equal(t, "Refund amount does not match the value of the returned items.", apperror.GetAppError(err).Message)
	assert.Equal(t, int64(0), env.countRows(t, &entity.Return{}))

	customer := env.customerByPhone(t, "9000000001")
	assert.Equal(t, int64(8000), customer.OutstandingBalance)
}

func TestCreateReturn_RejectsForeignProduct(t *testing.T) {
	// GIVEN a sale and a product that was never on it
	env := newTestEnv(t)
	_, sale := sellOnCredit(t, env)
	other := env.createProduct(t, "Stapler", "ST-001", 30.00, 5)

	// WHEN the return names the foreign product
	_, err := env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: other.ID, Quantity: 1}},
		TotalRefundAmount: 30.00,
	})

	// THEN it is rejected
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Contains(t, apperror.GetAppError(err).Message, "was not part of this sale")
}

func TestCreateReturn_RejectsForeignCustomer(t *testing.T) {
	// GIVEN a credit sale and an unrelated customer from another bill
	env := newTestEnv(t)
	product, sale := sellOnCredit(t, env)

	_, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:  "Ravi",
		Phone:         "9000000002",
		Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
		AmountPaid:    100.00,
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusPaid,
	})
	require.NoError(t, err)
	other := env.customerByPhone(t, "9000000002")

	// WHEN the return names the unrelated customer against the first sale
	_, err = env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        other.ID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 100.00,
	})

	// THEN it is rejected and nothing changed
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Equal(t, "Customer does not match the original sale.", apperror.GetAppError(err).Message)
	assert.Equal(t, int64(0), env.countRows(t, &entity.Return{}))
}

func TestCreateReturn_ValuesRefundAtSalePrice(t *testing.T) {
	// GIVEN a credit sale after which the catalog price doubled
	env := newTestEnv(t)
	product, sale := sellOnCredit(t, env)

	newPrice := 200.00
	_, err := env.productService.UpdateProduct(context.Background(), product.ID, &UpdateProductInput{
		Price: &newPrice,
	})
	require.NoError(t, err)

	// WHEN a unit comes back claimed at the new catalog price
	_, err = env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 200.00,
	})

	// THEN the claim is rejected; only the captured sale price counts
	require.Error(t, err)

	result, err := env.returnService.CreateReturn(context.Background(), &CreateReturnInput{
		CustomerID:        sale.CustomerID,
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalRefundAmount: 100.00,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.Return.TotalRefundAmount)
	require.Len(t, result.Return.ItemsReturned, 1)
	assert.Equal(t, int64(10000), result.Return.ItemsReturned[0].Price)
}
