// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/gateway"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. Each authenticated user gets a
// process-wide cart store from the manager; every response carries the
// store's current state so clients always render the reconciled truth.
type CartHandler struct {
	manager *cart.Manager
	gateway *gateway.Gateway
}

// NewCartHandler creates a new cart handler
func NewCartHandler(manager *cart.Manager, gw *gateway.Gateway) *CartHandler {
	return &CartHandler{
		manager: manager,
		gateway: gw,
	}
}

// cartState is the response body shared by every cart endpoint
func cartState(s *cart.Store) gin.H {
	state := gin.H{
		"items":     s.Items(),
		"total":     s.Total(),
		"itemCount": s.ItemCount(),
		"loading":   s.Loading(),
	}
	if err := s.LastError(); err != nil {
		state["error"] = err.Error()
	}
	return state
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)

	if err := store.Fetch(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartState(store),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)

	var req struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.gateway.ProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	if err := store.AddItem(c.Request.Context(), *p, req.Quantity); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gateway.ErrLoginRequired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
			"data":  cartState(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartState(store),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)
	itemID := c.Param("id")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := store.UpdateQuantity(c.Request.Context(), itemID, req.Quantity); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gateway.ErrLoginRequired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
			"data":  cartState(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartState(store),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)
	itemID := c.Param("id")

	if err := store.RemoveItem(c.Request.Context(), itemID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gateway.ErrLoginRequired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
			"data":  cartState(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartState(store),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)

	if err := store.Clear(c.Request.Context()); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gateway.ErrLoginRequired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
			"data":  cartState(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    cartState(store),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": store.ItemCount(),
		},
	})
}
