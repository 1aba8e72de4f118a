package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

func TestCreateOrderSnapshotsUnitPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)

	order, err := svc.CreateOrder(testCtx(), CreateOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLineInput{{ProductID: product.ID, UnitPrice: 22}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, float64(22), order.Lines[0].UnitPrice)
	assert.Equal(t, 1, order.Lines[0].Quantity)

	// The catalog price is untouched by the sale
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, float64(25), stored.Price)
}

func TestCreateOrderDirectSaleIsPaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)

	order, err := svc.CreateOrder(testCtx(), CreateOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLineInput{{ProductID: product.ID, UnitPrice: 25}},
		DirectSale: true,
		Payment:    &PaymentInput{Amount: 25, Method: "cash"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, order.Status)
	require.Len(t, order.Payments, 1)
	assert.Equal(t, float64(25), order.Payments[0].Amount)
}

func TestCreateOrderRequiresLines(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)

	_, err := svc.CreateOrder(testCtx(), CreateOrderInput{CustomerID: customer.ID})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	product := seedProduct(t, db, "Vase", 25, 1, nil)

	_, err := svc.CreateOrder(testCtx(), CreateOrderInput{
		CustomerID: 99,
		Lines:      []OrderLineInput{{ProductID: product.ID, UnitPrice: 25}},
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateOrderRejectsSoldOutProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Mirror", 60, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderPending, product.ID)

	_, err := svc.CreateOrder(testCtx(), CreateOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLineInput{{ProductID: product.ID, UnitPrice: 60}},
	})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "unavailable", conflictErr.CurrentState)
}

func TestCreateOrderSellableAgainAfterCancel(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Mirror", 60, 1, nil)

	seedOrder(t, db, customer.ID, models.OrderCancelled, product.ID)

	_, err := svc.CreateOrder(testCtx(), CreateOrderInput{
		CustomerID: customer.ID,
		Lines:      []OrderLineInput{{ProductID: product.ID, UnitPrice: 60}},
	})
	require.NoError(t, err)
}

// A failed order leaves nothing behind: no order row, no lines. The
// second line exceeds availability, so the first line must roll back too.
func TestCreateOrderIsAtomic(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)

	_, err := svc.CreateOrder(testCtx(), CreateOrderInput{
		CustomerID: customer.ID,
		Lines: []OrderLineInput{
			{ProductID: product.ID, UnitPrice: 25},
			{ProductID: product.ID, UnitPrice: 25},
		},
	})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	var orders, lines int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderLine{}).Count(&lines).Error)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), lines)
}

func TestCreateOrderMultipleUnitsWithinQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Candle", 5, 2, nil)

	order, err := svc.CreateOrder(testCtx(), CreateOrderInput{
		CustomerID: customer.ID,
		Lines: []OrderLineInput{
			{ProductID: product.ID, UnitPrice: 5},
			{ProductID: product.ID, UnitPrice: 5},
		},
	})
	require.NoError(t, err)
	assert.Len(t, order.Lines, 2)
}

func TestUpdateOrderCannotBeMarkedPaidDirectly(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)
	order := seedOrder(t, db, customer.ID, models.OrderPending, product.ID)

	paid := models.OrderPaid
	_, err := svc.UpdateOrder(testCtx(), order.ID, UpdateOrderInput{Status: &paid})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateOrderStatusAndNotes(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)
	order := seedOrder(t, db, customer.ID, models.OrderPaid, product.ID)

	delivered := models.OrderDelivered
	notes := "left with the neighbour"
	updated, err := svc.UpdateOrder(testCtx(), order.ID, UpdateOrderInput{Status: &delivered, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)
	assert.Equal(t, notes, updated.Notes)
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)
	order := seedOrder(t, db, customer.ID, models.OrderPending, product.ID)

	bogus := models.OrderStatus("shipped")
	_, err := svc.UpdateOrder(testCtx(), order.ID, UpdateOrderInput{Status: &bogus})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDeleteOrderRemovesLines(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)
	order := seedOrder(t, db, customer.ID, models.OrderPending, product.ID)

	require.NoError(t, svc.DeleteOrder(testCtx(), order.ID))

	var lines int64
	require.NoError(t, db.Model(&models.OrderLine{}).Count(&lines).Error)
	assert.Equal(t, int64(0), lines)

	// The unit is sellable again
	inventory := NewInventoryService(db)
	available, err := inventory.Available(testCtx(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), available)
}

func TestDeleteOrderRejectedWhenPaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, nil)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "Vase", 25, 1, nil)
	order := seedOrder(t, db, customer.ID, models.OrderPaid, product.ID)

	err := svc.DeleteOrder(testCtx(), order.ID)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "paid", conflictErr.CurrentState)
}
