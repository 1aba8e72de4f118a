package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/service"
)

// CustomersHandler handles customer-related HTTP requests
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler creates a new customers handler
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// RegisterRoutes registers the handler's routes
func (h *CustomersHandler) RegisterRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.GET("/customers", h.List)
	rg.GET("/customers/:id", h.Get)
	rg.POST("/customers", write, h.Create)
}

// List returns all customers
func (h *CustomersHandler) List(c *gin.Context) {
	customers, err := h.customers.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, customers)
}

// Get returns one customer
func (h *CustomersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, customer)
}

// Create stores a new customer
func (h *CustomersHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	if err := h.customers.CreateCustomer(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, customer, "customer created")
}
