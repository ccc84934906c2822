package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/pkg/response"
	"github.com/jortega/storefront/pkg/validation"
)

type InventoryHandler struct {
	Inventory *application.InventoryService
	Logger    *logrus.Logger
}

func NewInventoryHandler(inventory *application.InventoryService, logger *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{Inventory: inventory, Logger: logger}
}

type inventoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"gte=0"`
	Price    float64 `json:"price" binding:"gte=0"`
}

func (r *inventoryRequest) input() application.InventoryInput {
	return application.InventoryInput{Name: r.Name, Quantity: r.Quantity, Price: r.Price}
}

// List GET /api/inventory (protected)
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.Inventory.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "inventory")
}

// Get GET /api/inventory/:id (protected)
func (h *InventoryHandler) Get(c *gin.Context) {
	it, err := h.Inventory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, it, "inventory item")
}

// Create POST /api/inventory (protected)
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	it, err := h.Inventory.Create(c.Request.Context(), req.input())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, it, "inventory item created")
}

// Update PUT /api/inventory/:id (protected)
func (h *InventoryHandler) Update(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	it, err := h.Inventory.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, it, "inventory item updated")
}

// Delete DELETE /api/inventory/:id (protected)
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.Inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "inventory item deleted")
}
