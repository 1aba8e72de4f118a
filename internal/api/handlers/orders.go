package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panchito04/BackHogEle/internal/service"
)

// OrdersHandler handles order-related HTTP requests
type OrdersHandler struct {
	orders   *service.OrderService
	payments *service.PaymentService
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(orders *service.OrderService, payments *service.PaymentService) *OrdersHandler {
	return &OrdersHandler{
		orders:   orders,
		payments: payments,
	}
}

// RegisterRoutes registers the handler's routes
func (h *OrdersHandler) RegisterRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.GET("/orders", h.List)
	rg.GET("/orders/:id", h.Get)
	rg.GET("/orders/:id/lines", h.Lines)
	rg.POST("/orders", write, h.Create)
	rg.PUT("/orders/:id", write, h.Update)
	rg.DELETE("/orders/:id", write, h.Delete)
	rg.POST("/orders/:id/payment", write, h.RecordPayment)
}

// List returns all orders with their lines and payments
func (h *OrdersHandler) List(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, orders)
}

// Get returns one order
func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

// Lines returns the lines of an order
func (h *OrdersHandler) Lines(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	lines, err := h.orders.GetOrderLines(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, lines)
}

// Create validates availability and stores the order with its lines,
// and the inline payment for direct sales.
func (h *OrdersHandler) Create(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, order, "order created")
}

// Update changes an order's status and/or notes
func (h *OrdersHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

// Delete removes a pending or cancelled order
func (h *OrdersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "order deleted, its products are available again")
}

// RecordPayment records a payment against a pending order
func (h *OrdersHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	payment, err := h.payments.RecordPayment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, payment, "payment recorded, order marked as paid")
}
