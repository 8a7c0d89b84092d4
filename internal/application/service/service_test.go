package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	"github.com/DWRSH/point-of-sale/internal/domain/repository"
	infraRepo "github.com/DWRSH/point-of-sale/internal/infrastructure/repository"
)

// testEnv wires the services against an in-memory database so every test
// exercises the real transaction and conditional-update paths.
type testEnv struct {
	db *gorm.DB

	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository

	saleService     *SaleService
	returnService   *ReturnService
	customerService *CustomerService
	productService  *ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SaleReturnedItem{},
		&entity.Payment{},
		&entity.Return{},
		&entity.ReturnItem{},
	))

	txManager := infraRepo.NewTxManager(db)
	productRepo := infraRepo.NewProductRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	returnRepo := infraRepo.NewReturnRepository(db)

	return &testEnv{
		db:              db,
		products:        productRepo,
		customers:       customerRepo,
		sales:           saleRepo,
		saleService:     NewSaleService(txManager, saleRepo, paymentRepo, productRepo, customerRepo),
		returnService:   NewReturnService(txManager, returnRepo, saleRepo, productRepo, customerRepo),
		customerService: NewCustomerService(txManager, customerRepo, paymentRepo),
		productService:  NewProductService(productRepo, categoryRepo),
	}
}

// createProduct seeds a catalog entry directly through the repository
func (e *testEnv) createProduct(t *testing.T, name, sku string, price float64, stock int) *entity.Product {
	t.Helper()

	product, err := e.productService.CreateProduct(context.Background(), &CreateProductInput{
		Name:  name,
		SKU:   sku,
		Price: price,
		Stock: stock,
	})
	require.NoError(t, err)
	return product
}

// customerByPhone fetches the customer a sale created for the given phone
func (e *testEnv) customerByPhone(t *testing.T, phone string) *entity.Customer {
	t.Helper()

	customer, err := e.customers.GetByPhone(context.Background(), phone)
	require.NoError(t, err)
	require.NotNil(t, customer)
	return customer
}

// countRows counts table rows for verifying that failed operations left no
// partial writes behind
func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}
