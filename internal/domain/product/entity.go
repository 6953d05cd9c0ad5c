// internal/domain/product/entity.go
package product

// Condition represents the physical condition of a catalog product
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionOpenBox Condition = "Open Box"
)

// Product represents a catalog product as it lives in memory.
// The catalog is maintained by an external process; this application only
// reads it. Persisted column names are mapped in the gateway package and
// never leak past it.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	CompareAtPrice *float64  `json:"compareAtPrice,omitempty"`
	Images         []string  `json:"images"`
	Category       string    `json:"category"`
	Brand          string    `json:"brand"`
	Color          string    `json:"color"`
	Memory         string    `json:"memory"`
	ScreenSize     string    `json:"screenSize"`
	Condition      Condition `json:"condition"`
	Inventory      int       `json:"inventory"`
	Rating         float64   `json:"rating"`
	IsActive       bool      `json:"isActive"`
}

// InStock reports whether the product has inventory available
func (p *Product) InStock() bool {
	return p.Inventory > 0
}

// HasDiscount reports whether a discount badge should be shown.
// A compare-at price at or below the current price is tolerated by simply
// not showing a discount.
func (p *Product) HasDiscount() bool {
	return p.CompareAtPrice != nil && *p.CompareAtPrice > p.Price
}

// DiscountPercent returns the discount as a whole percentage, 0 when none
func (p *Product) DiscountPercent() int {
	if !p.HasDiscount() {
		return 0
	}
	return int((*p.CompareAtPrice - p.Price) * 100 / *p.CompareAtPrice)
}

// PrimaryImage returns the first image URI or a placeholder
func (p *Product) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return "/placeholder.png"
}
