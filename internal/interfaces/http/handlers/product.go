// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/gateway"
)

// ProductHandler handles catalog endpoints. The request query string is the
// source of truth for filtering: the filter state is parsed from it on every
// request and its canonical form is echoed back with the results.
type ProductHandler struct {
	gateway *gateway.Gateway
}

// NewProductHandler creates a new product handler
func NewProductHandler(gw *gateway.Gateway) *ProductHandler {
	return &ProductHandler{
		gateway: gw,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := product.ParseFilterState(c.Request.URL.Query())

	products, err := h.gateway.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	filtered := filter.Apply(products)

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products": filtered,
			"total":    len(filtered),
			"filters": gin.H{
				"query":       filter.Values().Encode(),
				"activeCount": filter.ActiveCount(),
			},
		},
	})
}

// GetProduct handles GET /products/:id, accepting either an id or a slug
func (h *ProductHandler) GetProduct(c *gin.Context) {
	key := c.Param("id")

	p, err := h.gateway.ProductByID(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return
	}
	if p == nil {
		p, err = h.gateway.ProductBySlug(c.Request.Context(), key)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve product",
			})
			return
		}
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    p,
	})
}

// SearchProducts handles GET /products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search query is required",
		})
		return
	}

	products, err := h.gateway.SearchProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed successfully",
		"data": gin.H{
			"products": products,
			"total":    len(products),
			"query":    query,
		},
	})
}
