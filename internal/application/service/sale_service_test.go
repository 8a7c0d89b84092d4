package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/internal/domain/enum"
	"github.com/DWRSH/point-of-sale/pkg/apperror"
)

func TestCreateSale_FullyPaid(t *testing.T) {
	// GIVEN a product with plenty of stock
	env := newTestEnv(t)
	product := env.createProduct(t, "Notebook", "NB-001", 100.00, 10)

	// WHEN a two-unit cart is billed with a discount and paid in full
	sale, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:   "Asha",
		Phone:          "9000000001",
		Items:          []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 2}},
		DiscountAmount: 20.00,
		AmountPaid:     180.00,
		PaymentMethod:  enum.PaymentMethodCash,
		PaymentStatus:  enum.PaymentStatusPaid,
	})

	// THEN the bill arithmetic and status reflect full payment
	require.NoError(t, err)
	assert.Equal(t, int64(20000), sale.TotalAmount)
	assert.Equal(t, int64(2000), sale.DiscountAmount)
	assert.Equal(t, int64(18000), sale.FinalAmount)
	assert.Equal(t, int64(18000), sale.AmountPaid)
	assert.Equal(t, int64(0), sale.AmountDue)
	assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Notebook", sale.Items[0].Name)

	// AND stock dropped, the balance did not move and the payment was logged
	updated, err := env.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Stock)

	customer := env.customerByPhone(t, "9000000001")
	assert.Equal(t, int64(0), customer.OutstandingBalance)

	assert.Equal(t, int64(1), env.countRows(t, &entity.Payment{}))
}

func TestCreateSale_PartialPaymentGrowsBalance(t *testing.T) {
	// GIVEN a product with plenty of stock
	env := newTestEnv(t)
	product := env.createProduct(t, "Notebook", "NB-001", 100.00, 10)

	// WHEN the customer pays only part of the final amount
	sale, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:   "Asha",
		Phone:          "9000000001",
		Items:          []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 2}},
		DiscountAmount: 20.00,
		AmountPaid:     100.00,
		PaymentMethod:  enum.PaymentMethodCash,
		PaymentStatus:  enum.PaymentStatusPartial,
	})

	// THEN the unpaid remainder lands on the customer's balance
	require.NoError(t, err)
	assert.Equal(t, int64(8000), sale.AmountDue)
	assert.Equal(t, enum.PaymentStatusPartial, sale.PaymentStatus)

	customer := env.customerByPhone(t, "9000000001")
	assert.Equal(t, int64(8000), customer.OutstandingBalance)
}

func TestCreateSale_UnpaidBillRecordsNoPayment(t *testing.T) {
	// GIVEN a product in stock
	env := newTestEnv(t)
	product := env.createProduct(t, "Notebook", "NB-001", 50.00, 5)

	// WHEN a bill is taken fully on credit
	sale, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:  "Ravi",
		Phone:         "9000000002",
		Items:         []CartItemInput{{ProductID: product.ID, Price: 50.00, Quantity: 1}},
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusUnpaid,
	})

	// THEN the sale is unpaid and no payment row exists
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusUnpaid, sale.PaymentStatus)
	assert.Equal(t, int64(5000), sale.AmountDue)
	assert.Equal(t, int64(0), env.countRows(t, &entity.Payment{}))

	customer := env.customerByPhone(t, "9000000002")
	assert.Equal(t, int64(5000), customer.OutstandingBalance)
}

func TestCreateSale_InsufficientStockRollsBackEverything(t *testing.T) {
	// GIVEN one product that can cover its line and one that cannot
	env := newTestEnv(t)
	ok := env.createProduct(t, "Notebook", "NB-001", 100.00, 10)
	scarce := env.createProduct(t, "Stapler", "ST-001", 30.00, 1)

	// WHEN the bill asks for more staplers than the shelf holds
	_, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName: "Asha",
		Phone:        "9000000001",
		Items: []CartItemInput{
			{ProductID: ok.ID, Price: 100.00, Quantity: 2},
			{ProductID: scarce.ID, Price: 30.00, Quantity: 3},
		},
		AmountPaid:    0,
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusUnpaid,
	})

	// THEN the sale fails naming the short product
	require.Error(t, err)
	assert.Equal(t, "Not enough stock for Stapler.", apperror.GetAppError(err).Message)

	// AND no partial state survives: both stocks, the sale, the payment and
	// the customer are untouched
	first, err := env.products.GetByID(context.Background(), ok.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, first.Stock)

	second, err := env.products.GetByID(context.Background(), scarce.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Stock)

	assert.Equal(t, int64(0), env.countRows(t, &entity.Sale{}))
	assert.Equal(t, int64(0), env.countRows(t, &entity.Payment{}))
	assert.Equal(t, int64(0), env.countRows(t, &entity.Customer{}))
}

func TestCreateSale_Validation(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Notebook", "NB-001", 100.00, 10)

	tests := []struct {
		name    string
		input   *CreateSaleInput
		message string
	}{
		{
			name: "empty cart",
			input: &CreateSaleInput{
				CustomerName: "Asha",
				Phone:        "9000000001",
			},
			message: "Cart is empty",
		},
		{
			name: "missing customer identity",
			input: &CreateSaleInput{
				Items: []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
			},
			message: "Customer name and phone number are required.",
		},
		{
			name: "discount above total",
			input: &CreateSaleInput{
				CustomerName:   "Asha",
				Phone:          "9000000001",
				Items:          []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
				DiscountAmount: 150.00,
			},
			message: "Discount cannot be greater than total amount.",
		},
		{
			name: "overpayment under paid status",
			input: &CreateSaleInput{
				CustomerName:  "Asha",
				Phone:         "9000000001",
				Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
				AmountPaid:    150.00,
				PaymentStatus: enum.PaymentStatusPaid,
			},
			message: `For "Paid" status, amount paid must equal final amount.`,
		},
		{
			name: "paid status with remainder",
			input: &CreateSaleInput{
				CustomerName:  "Asha",
				Phone:         "9000000001",
				Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 2}},
				AmountPaid:    100.00,
				PaymentStatus: enum.PaymentStatusPaid,
			},
			message: `For "Paid" status, amount paid must equal final amount.`,
		},
		{
			name: "unpaid status with payment",
			input: &CreateSaleInput{
				CustomerName:  "Asha",
				Phone:         "9000000001",
				Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 2}},
				AmountPaid:    100.00,
				PaymentStatus: enum.PaymentStatusUnpaid,
			},
			message: `For "Unpaid" status, amount paid must be 0.`,
		},
		{
			name: "partial status paid in full",
			input: &CreateSaleInput{
				CustomerName:  "Asha",
				Phone:         "9000000001",
				Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
				AmountPaid:    100.00,
				PaymentStatus: enum.PaymentStatusPartial,
			},
			message: `For "Partial" status, amount paid must be greater than 0 and less than final amount.`,
		},
		{
			name: "partial status with no payment",
			input: &CreateSaleInput{
				CustomerName:  "Asha",
				Phone:         "9000000001",
				Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
				PaymentStatus: enum.PaymentStatusPartial,
			},
			message: `For "Partial" status, amount paid must be greater than 0 and less than final amount.`,
		},
		{
			name: "non-positive quantity",
			input: &CreateSaleInput{
				CustomerName: "Asha",
				Phone:        "9000000001",
				Items:        []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 0}},
			},
			message: "Item quantity must be greater than zero.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.saleService.CreateSale(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.message, apperror.GetAppError(err).Message)
			assert.Equal(t, 400, apperror.GetAppError(err).Code)
		})
	}

	// Nothing was written by any rejected bill
	assert.Equal(t, int64(0), env.countRows(t, &entity.Sale{}))
	assert.Equal(t, int64(0), env.countRows(t, &entity.Customer{}))
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:  "Asha",
		Phone:         "9000000001",
		Items:         []CartItemInput{{ProductID: uuid.New(), Price: 10.00, Quantity: 1}},
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusUnpaid,
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateSale_ReusesCustomerByPhone(t *testing.T) {
	// GIVEN a customer created by an earlier credit sale
	env := newTestEnv(t)
	product := env.createProduct(t, "Notebook", "NB-001", 100.00, 10)

	_, err := env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:  "Asha",
		Phone:         "9000000001",
		Address:       "12 Market Road",
		Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusUnpaid,
	})
	require.NoError(t, err)

	// WHEN a second bill arrives with the same phone but a corrected name
	_, err = env.saleService.CreateSale(context.Background(), &CreateSaleInput{
		CustomerName:  "Asha Rao",
		Phone:         "9000000001",
		Items:         []CartItemInput{{ProductID: product.ID, Price: 100.00, Quantity: 1}},
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusUnpaid,
	})
	require.NoError(t, err)

	// THEN there is one account with the refreshed name, the kept address and
	// both dues accumulated
	assert.Equal(t, int64(1), env.countRows(t, &entity.Customer{}))

	customer := env.customerByPhone(t, "9000000001")
	assert.Equal(t, "Asha Rao", customer.Name)
	assert.Equal(t, "12 Market Road", customer.Address)
	assert.Equal(t, int64(20000), customer.OutstandingBalance)
}
