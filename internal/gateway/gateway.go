// internal/gateway/gateway.go
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"github.com/your-org/storefront-api/internal/notify"
	"gorm.io/gorm"
)

var (
	// ErrLoginRequired is returned for user-scoped writes without a
	// resolved user identity. Callers map it to an actionable login prompt
	// rather than a generic failure.
	ErrLoginRequired = errors.New("login required")
)

const (
	catalogCacheKey = "catalog:products"
	catalogCacheTTL = 5 * time.Minute
)

// Gateway translates application calls into backend reads/writes and
// normalizes row shapes into domain objects. It holds no state of its own;
// every failure is surfaced as a notification with a resource-specific
// message and returned so calling stores can roll back.
type Gateway struct {
	db          *gorm.DB
	redisClient *redis.Client
	notifier    notify.Notifier
}

// New creates a gateway
func New(db *gorm.DB, redisClient *redis.Client, notifier notify.Notifier) *Gateway {
	return &Gateway{
		db:          db,
		redisClient: redisClient,
		notifier:    notifier,
	}
}

// fail notifies and wraps a gateway failure
func (g *Gateway) fail(resource, message string, err error) error {
	if g.notifier != nil {
		g.notifier.Notify(notify.LevelError, resource, message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

func (g *Gateway) loginRequired(resource string) error {
	if g.notifier != nil {
		g.notifier.Notify(notify.LevelError, resource, "Please login to continue")
	}
	return ErrLoginRequired
}

// Products returns the full catalog ordered by name, read through the
// Redis cache when possible
func (g *Gateway) Products(ctx context.Context) ([]product.Product, error) {
	if products, err := g.productsFromCache(ctx); err == nil {
		return products, nil
	}

	var rows []productRow
	if err := g.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, g.fail("products", "Failed to load products", err)
	}

	products := make([]product.Product, len(rows))
	for i, row := range rows {
		products[i] = toProduct(row)
	}

	// Repopulate the cache off the request path
	go g.cacheProducts(products)

	return products, nil
}

// ProductByID fetches a single product; a missing id resolves to nil, nil
func (g *Gateway) ProductByID(ctx context.Context, id string) (*product.Product, error) {
	var row productRow
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, g.fail("products", "Failed to load product", err)
	}
	p := toProduct(row)
	return &p, nil
}

// ProductBySlug fetches a single product by slug; missing resolves to nil, nil
func (g *Gateway) ProductBySlug(ctx context.Context, slug string) (*product.Product, error) {
	var row productRow
	err := g.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, g.fail("products", "Failed to load product", err)
	}
	p := toProduct(row)
	return &p, nil
}

// SearchProducts matches the query against name, description and category
func (g *Gateway) SearchProducts(ctx context.Context, query string) ([]product.Product, error) {
	pattern := "%" + query + "%"
	var rows []productRow
	err := g.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ?", pattern, pattern, pattern).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, g.fail("products", "Failed to search products", err)
	}

	products := make([]product.Product, len(rows))
	for i, row := range rows {
		products[i] = toProduct(row)
	}
	return products, nil
}

// CartItems returns the user's cart rows; anonymous callers get an empty
// collection rather than an error
func (g *Gateway) CartItems(ctx context.Context, userID uint) ([]cart.Item, error) {
	if userID == 0 {
		return []cart.Item{}, nil
	}

	var rows []cartRow
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, g.fail("cart", "Failed to load cart", err)
	}

	items := make([]cart.Item, len(rows))
	for i, row := range rows {
		items[i] = toCartItem(row)
	}
	return items, nil
}

// AddCartItem upserts a cart row: an existing row for the product has its
// quantity incremented, otherwise a new row is created with the product
// snapshot frozen in. The quantity is clamped to the product's inventory.
func (g *Gateway) AddCartItem(ctx context.Context, userID uint, p product.Product, quantity int) error {
	if userID == 0 {
		return g.loginRequired("cart")
	}
	if quantity <= 0 {
		quantity = 1
	}

	var existing cartRow
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, p.ID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		snapshot, _ := json.Marshal(p)
		row := cartRow{
			ID:              uuid.NewString(),
			UserID:          userID,
			ProductID:       p.ID,
			Quantity:        clampQuantity(quantity, p.Inventory),
			ProductSnapshot: string(snapshot),
		}
		if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
			return g.fail("cart", "Failed to add item to cart", err)
		}
		return nil
	} else if err != nil {
		return g.fail("cart", "Failed to add item to cart", err)
	}

	existing.Quantity = clampQuantity(existing.Quantity+quantity, p.Inventory)
	if err := g.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return g.fail("cart", "Failed to add item to cart", err)
	}
	return nil
}

// UpdateCartQuantity rewrites a row's quantity; zero or less deletes it
func (g *Gateway) UpdateCartQuantity(ctx context.Context, userID uint, itemID string, quantity int) error {
	if userID == 0 {
		return g.loginRequired("cart")
	}

	if quantity <= 0 {
		return g.RemoveCartItem(ctx, userID, itemID)
	}

	result := g.db.WithContext(ctx).Model(&cartRow{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return g.fail("cart", "Failed to update cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return g.fail("cart", "Failed to update cart item", gorm.ErrRecordNotFound)
	}
	return nil
}

// RemoveCartItem deletes one row from the user's cart
func (g *Gateway) RemoveCartItem(ctx context.Context, userID uint, itemID string) error {
	if userID == 0 {
		return g.loginRequired("cart")
	}

	err := g.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&cartRow{}).Error
	if err != nil {
		return g.fail("cart", "Failed to remove item from cart", err)
	}
	return nil
}

// ClearCart deletes every row in the user's cart
func (g *Gateway) ClearCart(ctx context.Context, userID uint) error {
	if userID == 0 {
		return g.loginRequired("cart")
	}

	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cartRow{}).Error
	if err != nil {
		return g.fail("cart", "Failed to clear cart", err)
	}
	return nil
}

// WishlistItems returns the user's wishlist rows; anonymous callers get an
// empty collection
func (g *Gateway) WishlistItems(ctx context.Context, userID uint) ([]wishlist.Item, error) {
	if userID == 0 {
		return []wishlist.Item{}, nil
	}

	var rows []wishlistRow
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, g.fail("wishlist", "Failed to load wishlist", err)
	}

	items := make([]wishlist.Item, len(rows))
	for i, row := range rows {
		items[i] = toWishlistItem(row)
	}
	return items, nil
}

// AddWishlistItem creates a wishlist row unless one already exists for the
// product; the duplicate case is a silent no-op
func (g *Gateway) AddWishlistItem(ctx context.Context, userID uint, p product.Product) error {
	if userID == 0 {
		return g.loginRequired("wishlist")
	}

	var existing wishlistRow
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, p.ID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return g.fail("wishlist", "Failed to add item to wishlist", err)
	}

	snapshot, _ := json.Marshal(p)
	row := wishlistRow{
		ID:              uuid.NewString(),
		UserID:          userID,
		ProductID:       p.ID,
		ProductSnapshot: string(snapshot),
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return g.fail("wishlist", "Failed to add item to wishlist", err)
	}
	return nil
}

// RemoveWishlistItem deletes the row for a product from the user's wishlist
func (g *Gateway) RemoveWishlistItem(ctx context.Context, userID uint, productID string) error {
	if userID == 0 {
		return g.loginRequired("wishlist")
	}

	err := g.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&wishlistRow{}).Error
	if err != nil {
		return g.fail("wishlist", "Failed to remove item from wishlist", err)
	}
	return nil
}

// CreateOrder persists an order snapshot and its items in one transaction
func (g *Gateway) CreateOrder(ctx context.Context, userID uint, o order.Order) (order.Order, error) {
	if userID == 0 {
		return order.Order{}, g.loginRequired("orders")
	}

	row := orderRow{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrderNumber:    o.OrderNumber,
		Total:          o.Total,
		Status:         string(o.Status),
		ShippingMethod: o.ShippingMethod,
		PaymentMethod:  o.PaymentMethod,
		CreatedAt:      o.CreatedAt,
	}
	if o.Customer != nil {
		info, _ := json.Marshal(o.Customer)
		row.CustomerInfo = string(info)
	}
	for _, item := range o.Items {
		row.Items = append(row.Items, orderItemRow{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Image:       item.Image,
		})
	}

	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return order.Order{}, g.fail("orders", "Failed to place order", err)
	}
	return toOrder(row), nil
}

// Orders returns the user's order history, newest first
func (g *Gateway) Orders(ctx context.Context, userID uint) ([]order.Order, error) {
	if userID == 0 {
		return []order.Order{}, nil
	}

	var rows []orderRow
	err := g.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, g.fail("orders", "Failed to load orders", err)
	}

	orders := make([]order.Order, len(rows))
	for i, row := range rows {
		orders[i] = toOrder(row)
	}
	return orders, nil
}

// OrderByID fetches one of the user's orders; missing resolves to nil, nil
func (g *Gateway) OrderByID(ctx context.Context, userID uint, id string) (*order.Order, error) {
	if userID == 0 {
		return nil, nil
	}

	var row orderRow
	err := g.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, g.fail("orders", "Failed to load order", err)
	}

	o := toOrder(row)
	return &o, nil
}

// SeedProducts inserts catalog rows when the table is empty; used by
// development seeding only
func (g *Gateway) SeedProducts(ctx context.Context, products []product.Product) error {
	var count int64
	if err := g.db.WithContext(ctx).Model(&productRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range products {
		row := fromProduct(p)
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	return nil
}

// AutoMigrate creates the gateway's tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&productRow{},
		&cartRow{},
		&wishlistRow{},
		&orderRow{},
		&orderItemRow{},
	)
}

func (g *Gateway) productsFromCache(ctx context.Context) ([]product.Product, error) {
	if g.redisClient == nil {
		return nil, redis.Nil
	}
	data, err := g.redisClient.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		return nil, err
	}
	var products []product.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (g *Gateway) cacheProducts(products []product.Product) {
	if g.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	g.redisClient.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
}

func clampQuantity(quantity, inventory int) int {
	if inventory > 0 && quantity > inventory {
		return inventory
	}
	return quantity
}
