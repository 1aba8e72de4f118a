package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/panchito04/BackHogEle/internal/models"
)

// newTestDB opens a per-test in-memory database so tests can run in
// parallel without sharing state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.SetupModels(db))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()

	customer := &models.Customer{Name: "Ana", TikTokUser: "@ana", Phone: "600111222"}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedBox(t *testing.T, db *gorm.DB, code string) *models.Box {
	t.Helper()

	box := &models.Box{Code: code, Supplier: "ACME", Status: models.BoxInProgress}
	require.NoError(t, db.Create(box).Error)
	return box
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, quantity int, boxID *uint) *models.Product {
	t.Helper()

	product := &models.Product{Name: name, Price: price, Quantity: quantity, BoxID: boxID}
	require.NoError(t, db.Create(product).Error)
	return product
}

// seedOrder inserts an order with one line per product, bypassing the
// service layer, so tests can arrange sold state directly.
func seedOrder(t *testing.T, db *gorm.DB, customerID uint, status models.OrderStatus, productIDs ...uint) *models.Order {
	t.Helper()

	order := &models.Order{CustomerID: customerID, Status: status}
	require.NoError(t, db.Create(order).Error)
	for _, productID := range productIDs {
		line := &models.OrderLine{OrderID: order.ID, ProductID: productID, Quantity: 1, UnitPrice: 10}
		require.NoError(t, db.Create(line).Error)
	}
	return order
}

func testCtx() context.Context {
	return context.Background()
}
