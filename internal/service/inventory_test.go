package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

func TestCreateProductDefaultsToOneUnit(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	product, err := svc.CreateProduct(testCtx(), CreateProductInput{Name: "Vase", Price: 25})
	require.NoError(t, err)
	assert.Equal(t, 1, product.Quantity)
	assert.Equal(t, int64(1), product.Available)
	assert.False(t, product.Sold)
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	_, err := svc.CreateProduct(testCtx(), CreateProductInput{Price: 10})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateProduct(testCtx(), CreateProductInput{Name: "Vase", Price: 0})
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateProductUnknownBox(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	boxID := uint(99)
	_, err := svc.CreateProduct(testCtx(), CreateProductInput{Name: "Vase", Price: 25, BoxID: &boxID})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateProductRejectsDuplicateInSameBox(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	box := seedBox(t, db, "BX1")

	_, err := svc.CreateProduct(testCtx(), CreateProductInput{Name: "Vase", Price: 25, BoxID: &box.ID})
	require.NoError(t, err)

	// Same name, price and box is a duplicate
	_, err = svc.CreateProduct(testCtx(), CreateProductInput{Name: "Vase", Price: 25, BoxID: &box.ID})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// A different price makes it a distinct product
	_, err = svc.CreateProduct(testCtx(), CreateProductInput{Name: "Vase", Price: 30, BoxID: &box.ID})
	require.NoError(t, err)

	// Same name and price outside any box is also allowed
	_, err = svc.CreateProduct(testCtx(), CreateProductInput{Name: "Vase", Price: 25})
	require.NoError(t, err)
}

func TestAvailabilityCountsNonCancelledOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Lamp", 40, 3, nil)

	seedOrder(t, db, customer.ID, models.OrderPending, product.ID)
	seedOrder(t, db, customer.ID, models.OrderPaid, product.ID)
	seedOrder(t, db, customer.ID, models.OrderCancelled, product.ID)

	view, err := svc.GetProduct(testCtx(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.SoldCount)
	assert.Equal(t, int64(1), view.Available)
	assert.False(t, view.Sold)
}

func TestSingleUnitProductBecomesSold(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Mirror", 60, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderPending, product.ID)

	view, err := svc.GetProduct(testCtx(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Available)
	assert.True(t, view.Sold)
}

func TestUpdateProductRejectedOnceSold(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Clock", 15, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderPaid, product.ID)

	_, err := svc.UpdateProduct(testCtx(), product.ID, CreateProductInput{Name: "Clock", Price: 20})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "sold", conflictErr.CurrentState)
}

func TestUpdateProductAllowedWhenOnlyCancelled(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Clock", 15, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderCancelled, product.ID)

	updated, err := svc.UpdateProduct(testCtx(), product.ID, CreateProductInput{Name: "Wall clock", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, "Wall clock", updated.Name)
	assert.Equal(t, float64(20), updated.Price)
}

func TestDeleteProductRejectedOnceSold(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Rug", 80, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderPending, product.ID)

	err := svc.DeleteProduct(testCtx(), product.ID)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProductStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	customer := seedCustomer(t, db)
	box := seedBox(t, db, "BX1")

	category := &models.Category{Name: "Decor"}
	require.NoError(t, db.Create(category).Error)

	first := seedProduct(t, db, "Vase", 25, 1, &box.ID)
	first.CategoryID = &category.ID
	require.NoError(t, db.Save(first).Error)
	seedProduct(t, db, "Lamp", 40, 1, &box.ID)
	seedProduct(t, db, "Loose item", 5, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderPaid, first.ID)

	stats, err := svc.ProductStats(testCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Sold)
	assert.Equal(t, int64(2), stats.Available)
	assert.Equal(t, int64(1), stats.ByCategory["Decor"])
	assert.Equal(t, int64(2), stats.ByCategory["uncategorized"])
	assert.Equal(t, int64(2), stats.ByBox["BX1"])
	assert.Equal(t, int64(1), stats.ByBox["unboxed"])
}

// A partially sold multi-unit product contributes its remaining units
// to the available total instead of flipping the whole product to sold.
func TestProductStatsCountUnits(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	customer := seedCustomer(t, db)

	multi := seedProduct(t, db, "Candle", 5, 3, nil)
	seedProduct(t, db, "Vase", 25, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderPaid, multi.ID)

	stats, err := svc.ProductStats(testCtx())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Sold)
	assert.Equal(t, int64(3), stats.Available)
}
