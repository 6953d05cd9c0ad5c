// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"github.com/your-org/storefront-api/internal/gateway"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	manager *wishlist.Manager
	gateway *gateway.Gateway
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(manager *wishlist.Manager, gw *gateway.Gateway) *WishlistHandler {
	return &WishlistHandler{
		manager: manager,
		gateway: gw,
	}
}

func wishlistState(s *wishlist.Store) gin.H {
	state := gin.H{
		"items":     s.Items(),
		"itemCount": s.ItemCount(),
		"loading":   s.Loading(),
	}
	if err := s.LastError(); err != nil {
		state["error"] = err.Error()
	}
	return state
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)

	if err := store.Fetch(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    wishlistState(store),
	})
}

// AddToWishlist handles POST /wishlist/items
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)

	var req struct {
		ProductID string `json:"productId" binding:"required"`
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

	if err := store.Add(c.Request.Context(), *p); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gateway.ErrLoginRequired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
			"data":  wishlistState(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist successfully",
		"data":    wishlistState(store),
	})
}

// RemoveFromWishlist handles DELETE /wishlist/items/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	store := h.manager.For(userID)
	productID := c.Param("productId")

	if err := store.Remove(c.Request.Context(), productID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gateway.ErrLoginRequired) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
			"data":  wishlistState(store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist successfully",
		"data":    wishlistState(store),
	})
}
