package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panchito04/BackHogEle/internal/service"
)

// PaymentsHandler handles payment-related HTTP requests
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler creates a new payments handler
func NewPaymentsHandler(payments *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

// RegisterRoutes registers the handler's routes
func (h *PaymentsHandler) RegisterRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.GET("/payments", h.List)
	rg.GET("/payments/by-order/:orderId", h.ListByOrder)
	rg.GET("/payments/:id", h.Get)
	rg.POST("/payments", write, h.Create)
	rg.PUT("/payments/:id", write, h.Update)
	rg.DELETE("/payments/:id", write, h.Delete)
}

// List returns all payments
func (h *PaymentsHandler) List(c *gin.Context) {
	payments, err := h.payments.ListPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payments)
}

// Get returns one payment
func (h *PaymentsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payment, err := h.payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payment)
}

// ListByOrder returns the payments recorded against an order
func (h *PaymentsHandler) ListByOrder(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	payments, err := h.payments.ListPaymentsByOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payments)
}

type createPaymentRequest struct {
	OrderID uint `json:"order_id"`
	service.PaymentInput
}

// Create records a payment against the order named in the body
func (h *PaymentsHandler) Create(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}
	if req.OrderID == 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "order_id is required"})
		return
	}

	payment, err := h.payments.RecordPayment(c.Request.Context(), req.OrderID, req.PaymentInput)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, payment, "payment recorded, order marked as paid")
}

// Update adjusts a payment's amount, method or receipt reference
func (h *PaymentsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	payment, err := h.payments.UpdatePayment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payment)
}

// Delete removes a payment and returns its order to pending
func (h *PaymentsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.payments.DeletePayment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "payment deleted, order returned to pending")
}
