// internal/gateway/rows.go
package gateway

import (
	"encoding/json"
	"time"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
)

// Persisted row shapes. Columns are snake_case and stay private to this
// package; the mapping functions below produce the camelCase domain values
// everything else works with.

type productRow struct {
	ID             string    `gorm:"primaryKey;size:64"`
	Name           string    `gorm:"not null;size:255"`
	Slug           string    `gorm:"uniqueIndex;not null;size:255"`
	Description    string    `gorm:"type:text"`
	Price          float64   `gorm:"not null"`
	CompareAtPrice *float64  `gorm:"column:compare_at_price"`
	Images         string    `gorm:"type:text"` // JSON array of URIs
	Category       string    `gorm:"size:100;index"`
	Brand          string    `gorm:"size:100;index"`
	Color          string    `gorm:"size:50"`
	Memory         string    `gorm:"size:50"`
	ScreenSize     string    `gorm:"size:50"`
	Condition      string    `gorm:"size:20"`
	Inventory      int       `gorm:"default:0"`
	Rating         float64   `gorm:"default:0"`
	IsActive       bool      `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type cartRow struct {
	ID              string `gorm:"primaryKey;size:64"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID       string `gorm:"not null;size:64;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity        int    `gorm:"not null"`
	ProductSnapshot string `gorm:"type:text"` // JSON product copy frozen at add time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type wishlistRow struct {
	ID              string `gorm:"primaryKey;size:64"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_wishlist_user_product,priority:1"`
	ProductID       string `gorm:"not null;size:64;uniqueIndex:idx_wishlist_user_product,priority:2"`
	ProductSnapshot string `gorm:"type:text"`
	CreatedAt       time.Time
}

type orderRow struct {
	ID             string  `gorm:"primaryKey;size:64"`
	UserID         uint    `gorm:"not null;index"`
	OrderNumber    string  `gorm:"uniqueIndex;not null;size:64"`
	Total          float64 `gorm:"not null"`
	Status         string  `gorm:"not null;default:'pending';size:20"`
	ShippingMethod string  `gorm:"size:50"`
	PaymentMethod  string  `gorm:"size:50"`
	CustomerInfo   string  `gorm:"type:text"` // JSON contact snapshot
	CreatedAt      time.Time

	Items []orderItemRow `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type orderItemRow struct {
	ID          uint    `gorm:"primaryKey"`
	OrderID     string  `gorm:"not null;index;size:64"`
	ProductID   string  `gorm:"not null;size:64"`
	ProductName string  `gorm:"not null;size:255"`
	Quantity    int     `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Image       string  `gorm:"size:500"`
}

// TableName overrides
func (productRow) TableName() string   { return "products" }
func (cartRow) TableName() string      { return "cart_items" }
func (wishlistRow) TableName() string  { return "wishlist_items" }
func (orderRow) TableName() string     { return "orders" }
func (orderItemRow) TableName() string { return "order_items" }

// toProduct maps a persisted product row to the domain shape
func toProduct(row productRow) product.Product {
	var images []string
	if row.Images != "" {
		_ = json.Unmarshal([]byte(row.Images), &images)
	}
	if images == nil {
		images = []string{}
	}
	return product.Product{
		ID:             row.ID,
		Name:           row.Name,
		Slug:           row.Slug,
		Description:    row.Description,
		Price:          row.Price,
		CompareAtPrice: row.CompareAtPrice,
		Images:         images,
		Category:       row.Category,
		Brand:          row.Brand,
		Color:          row.Color,
		Memory:         row.Memory,
		ScreenSize:     row.ScreenSize,
		Condition:      product.Condition(row.Condition),
		Inventory:      row.Inventory,
		Rating:         row.Rating,
		IsActive:       row.IsActive,
	}
}

// fromProduct maps a domain product onto a persisted row
func fromProduct(p product.Product) productRow {
	images, _ := json.Marshal(p.Images)
	return productRow{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Images:         string(images),
		Category:       p.Category,
		Brand:          p.Brand,
		Color:          p.Color,
		Memory:         p.Memory,
		ScreenSize:     p.ScreenSize,
		Condition:      string(p.Condition),
		Inventory:      p.Inventory,
		Rating:         p.Rating,
		IsActive:       p.IsActive,
	}
}

// toCartItem maps a persisted cart row, restoring the product snapshot.
// A snapshot that no longer decodes degrades to a bare product reference.
func toCartItem(row cartRow) cart.Item {
	var snapshot product.Product
	if err := json.Unmarshal([]byte(row.ProductSnapshot), &snapshot); err != nil {
		snapshot = product.Product{ID: row.ProductID}
	}
	return cart.Item{
		ID:        row.ID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		Product:   snapshot,
	}
}

func toWishlistItem(row wishlistRow) wishlist.Item {
	var snapshot product.Product
	if err := json.Unmarshal([]byte(row.ProductSnapshot), &snapshot); err != nil {
		snapshot = product.Product{ID: row.ProductID}
	}
	return wishlist.Item{
		ID:        row.ID,
		ProductID: row.ProductID,
		Product:   snapshot,
	}
}

func toOrder(row orderRow) order.Order {
	o := order.Order{
		ID:             row.ID,
		OrderNumber:    row.OrderNumber,
		Total:          row.Total,
		Status:         order.Status(row.Status),
		ShippingMethod: row.ShippingMethod,
		PaymentMethod:  row.PaymentMethod,
		CreatedAt:      row.CreatedAt,
	}
	if row.CustomerInfo != "" {
		var info order.CustomerInfo
		if err := json.Unmarshal([]byte(row.CustomerInfo), &info); err == nil {
			o.Customer = &info
		}
	}
	for _, item := range row.Items {
		o.Items = append(o.Items, order.Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Image:       item.Image,
		})
	}
	return o
}
