package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/markethub/backend/internal/application/order"
)

// BasketHandler serves the authenticated user's basket
type BasketHandler struct {
	BaseHandler
	basketService *apporder.BasketService
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(basketService *apporder.BasketService) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
	}
}

// Get returns the basket with live prices and the aggregated total
func (h *BasketHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	basket, err := h.basketService.GetBasket(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// AddItems adds offers to the basket with per-item partial success
func (h *BasketHandler) AddItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apporder.AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.basketService.AddItems(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateItems changes quantities of existing basket lines
func (h *BasketHandler) UpdateItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apporder.UpdateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.basketService.UpdateQuantities(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItems deletes basket lines named by a comma-separated id list
func (h *BasketHandler) RemoveItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apporder.RemoveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.basketService.RemoveItems(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
