package delivery

import (
	"errors"
	"net/http"

	"github.com/KumarShresth7/EmailAutomation/internal/inventory/domain"
	"github.com/KumarShresth7/EmailAutomation/internal/inventory/usecase"

	"github.com/gin-gonic/gin"
)

// InventoryHandler handles catalog HTTP requests
type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{inventoryUsecase: inventoryUsecase}
}

// GetInventory returns the whole catalog
// GET /api/inventory
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	items, err := h.inventoryUsecase.GetInventory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItemByID returns one catalog item
// GET /api/inventory/:id
func (h *InventoryHandler) GetItemByID(c *gin.Context) {
	item, err := h.inventoryUsecase.GetItemByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddItemRequest represents the request body for adding an item
type AddItemRequest struct {
	Name              string  `json:"name" binding:"required"`
	Category          string  `json:"category"`
	Price             float64 `json:"price" binding:"required"`
	Quantity          int     `json:"quantity" binding:"required"`
	WarehouseLocation string  `json:"warehouse_location"`
	StockAlertLevel   int     `json:"stock_alert_level"`
}

// AddItem adds a catalog item
// POST /api/inventory
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &domain.Item{
		Name:              req.Name,
		Category:          req.Category,
		Price:             req.Price,
		Quantity:          req.Quantity,
		WarehouseLocation: req.WarehouseLocation,
		StockAlertLevel:   req.StockAlertLevel,
	}
	if err := h.inventoryUsecase.AddItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem updates fields of a catalog item
// PUT /api/inventory/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var updates domain.Item
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.inventoryUsecase.UpdateItem(c.Param("id"), &updates)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a catalog item
// DELETE /api/inventory/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.inventoryUsecase.DeleteItem(c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
