package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panchito04/BackHogEle/internal/service"
)

// BoxesHandler handles box-related HTTP requests
type BoxesHandler struct {
	boxes *service.BoxService
}

// NewBoxesHandler creates a new boxes handler
func NewBoxesHandler(boxes *service.BoxService) *BoxesHandler {
	return &BoxesHandler{boxes: boxes}
}

// RegisterRoutes registers the handler's routes
func (h *BoxesHandler) RegisterRoutes(rg *gin.RouterGroup, write gin.HandlerFunc) {
	rg.GET("/boxes", h.List)
	rg.GET("/boxes/stats", h.Stats)
	rg.GET("/boxes/:id", h.Get)
	rg.POST("/boxes", write, h.Create)
	rg.PUT("/boxes/:id", write, h.Update)
	rg.DELETE("/boxes/:id", write, h.Delete)
}

// List returns all boxes with their product totals
func (h *BoxesHandler) List(c *gin.Context) {
	boxes, err := h.boxes.ListBoxes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, boxes)
}

// Get returns one box with its products
func (h *BoxesHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	box, err := h.boxes.GetBox(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, box)
}

// Create stores a new box
func (h *BoxesHandler) Create(c *gin.Context) {
	var input service.BoxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	box, err := h.boxes.CreateBox(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, box, "box created")
}

// Update replaces a box's fields
func (h *BoxesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.BoxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	box, err := h.boxes.UpdateBox(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, box)
}

// Delete removes an empty box
func (h *BoxesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.boxes.DeleteBox(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "box deleted")
}

// Stats returns aggregated box counts
func (h *BoxesHandler) Stats(c *gin.Context) {
	stats, err := h.boxes.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}
