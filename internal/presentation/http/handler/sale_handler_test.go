package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DWRSH/point-of-sale/internal/application/service"
	"github.com/DWRSH/point-of-sale/internal/domain/entity"
	infraRepo "github.com/DWRSH/point-of-sale/internal/infrastructure/repository"
)

func newSaleRouter(t *testing.T) (*gin.Engine, *entity.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Category{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SaleReturnedItem{},
		&entity.Payment{},
	))

	product := &entity.Product{Name: "Notebook", SKU: "NB-001", Price: 10000, Stock: 10}
	require.NoError(t, db.Create(product).Error)

	txManager := infraRepo.NewTxManager(db)
	saleService := service.NewSaleService(
		txManager,
		infraRepo.NewSaleRepository(db),
		infraRepo.NewPaymentRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	)

	router := gin.New()
	h := NewSaleHandler(saleService)
	router.POST("/sales", h.Create)
	router.GET("/sales", h.List)

	return router, product
}

func TestSaleHandler_CreateReturnsEnvelope(t *testing.T) {
	router, product := newSaleRouter(t)

	body := fmt.Sprintf(`{
		"customer_name": "Asha",
		"phone": "9000000001",
		"items": [{"product_id": %q, "price": 100.0, "quantity": 2}],
		"discount_amount": 20.0,
		"amount_paid": 180.0,
		"payment_method": "Cash",
		"payment_status": "Paid"
	}`, product.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Sale completed successfully", resp["message"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 200.0, data["total_amount"])
	assert.Equal(t, 180.0, data["final_amount"])
	assert.Equal(t, 0.0, data["amount_due"])
	assert.Equal(t, "Paid", data["payment_status"])
}

func TestSaleHandler_CreateRejectsStatusMismatch(t *testing.T) {
	router, product := newSaleRouter(t)

	// A bill declared Unpaid while carrying a payment must not land.
	body := fmt.Sprintf(`{
		"customer_name": "Asha",
		"phone": "9000000001",
		"items": [{"product_id": %q, "price": 100.0, "quantity": 2}],
		"amount_paid": 100.0,
		"payment_method": "Cash",
		"payment_status": "Unpaid"
	}`, product.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, `For "Unpaid" status, amount paid must be 0.`, resp["message"])
}

func TestSaleHandler_CreateRejectsUnknownPaymentMethod(t *testing.T) {
	router, product := newSaleRouter(t)

	body := fmt.Sprintf(`{
		"customer_name": "Asha",
		"phone": "9000000001",
		"items": [{"product_id": %q, "price": 100.0, "quantity": 1}],
		"amount_paid": 100.0,
		"payment_method": "Cheque",
		"payment_status": "Paid"
	}`, product.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_CreateRejectsEmptyCart(t *testing.T) {
	router, _ := newSaleRouter(t)

	body := `{
		"customer_name": "Asha",
		"phone": "9000000001",
		"items": [],
		"payment_method": "Cash",
		"payment_status": "Unpaid"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Cart is empty", resp["message"])
}
