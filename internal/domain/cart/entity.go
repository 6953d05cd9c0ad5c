// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/storefront-api/internal/domain/product"
)

// Item represents a cart line item. The product snapshot is denormalized onto
// the row at add time, so totals stay stable when the live catalog changes.
// At most one Item exists per (user, product) pair; adding the same product
// again increments the quantity instead of creating a second row.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   product.Product `json:"product"`
}

// LineTotal returns price x quantity using the snapshotted price
func (i *Item) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
