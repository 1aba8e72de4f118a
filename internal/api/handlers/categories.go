package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/service"
)

// CategoriesHandler handles category-related HTTP requests
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// RegisterRoutes registers the handler's routes
func (h *CategoriesHandler) RegisterRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.GET("/categories", h.List)
	rg.GET("/categories/:id", h.Get)
	rg.POST("/categories", write, h.Create)
}

// List returns all categories
func (h *CategoriesHandler) List(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, categories)
}

// Get returns one category
func (h *CategoriesHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

// Create stores a new category
func (h *CategoriesHandler) Create(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	if err := h.categories.CreateCategory(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, category, "category created")
}
