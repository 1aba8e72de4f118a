package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/panchito04/BackHogEle/internal/media"
	"github.com/panchito04/BackHogEle/internal/service"
)

// ProductsHandler handles product-related HTTP requests. Create and
// update accept multipart forms with an optional image file, which is
// forwarded to the media service and replaced by its secure URL.
type ProductsHandler struct {
	inventory *service.InventoryService
	uploader  media.Uploader
}

// NewProductsHandler creates a new products handler
func NewProductsHandler(inventory *service.InventoryService, uploader media.Uploader) *ProductsHandler {
	return &ProductsHandler{
		inventory: inventory,
		uploader:  uploader,
	}
}

// RegisterRoutes registers the handler's routes
func (h *ProductsHandler) RegisterRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.GET("/products", h.List)
	rg.GET("/products/stats", h.Stats)
	rg.GET("/products/:id", h.Get)
	rg.POST("/products", write, h.Create)
	rg.PUT("/products/:id", write, h.Update)
	rg.DELETE("/products/:id", write, h.Delete)
}

// List returns all products with their availability
func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.inventory.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, products)
}

// Get returns one product with its availability
func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.inventory.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// Create stores a new product, uploading an optional image first
func (h *ProductsHandler) Create(c *gin.Context) {
	input, ok := h.bindProductForm(c)
	if !ok {
		return
	}

	product, err := h.inventory.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, product, "product created")
}

// Update replaces a product's fields, uploading an optional image first
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	input, ok := h.bindProductForm(c)
	if !ok {
		return
	}

	product, err := h.inventory.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// Delete removes a product that has not been sold
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.inventory.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "product deleted")
}

// Stats returns aggregated inventory counts
func (h *ProductsHandler) Stats(c *gin.Context) {
	stats, err := h.inventory.ProductStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}

// bindProductForm reads the multipart form and uploads the image file
// when present.
func (h *ProductsHandler) bindProductForm(c *gin.Context) (service.CreateProductInput, bool) {
	input := service.CreateProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		ImageURL:    c.PostForm("image_url"),
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Message: "price must be a number"})
			return input, false
		}
		input.Price = price
	}

	if raw := c.PostForm("quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Message: "quantity must be an integer"})
			return input, false
		}
		input.Quantity = quantity
	}

	var ok bool
	if input.BoxID, ok = optionalID(c, "box_id"); !ok {
		return input, false
	}
	if input.CategoryID, ok = optionalID(c, "category_id"); !ok {
		return input, false
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		reader, err := file.Open()
		if err != nil {
			respondError(c, err)
			return input, false
		}
		defer reader.Close()

		url, err := h.uploader.Upload(c.Request.Context(), reader, file.Filename)
		if err != nil {
			respondError(c, err)
			return input, false
		}
		input.ImageURL = url
	}

	return input, true
}

func optionalID(c *gin.Context, field string) (*uint, bool) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: field + " must be a positive integer"})
		return nil, false
	}
	value := uint(id)
	return &value, true
}
