// internal/gateway/rows_test.go
package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
)

func TestProductRowMapping(t *testing.T) {
	t.Run("round trips through the row shape", func(t *testing.T) {
		compareAt := 1099.0
		p := product.Product{
			ID:             "prod-1",
			Name:           "Aurora X5 Pro",
			Slug:           "aurora-x5-pro",
			Description:    "Flagship smartphone",
			Price:          999,
			CompareAtPrice: &compareAt,
			Images:         []string{"/img/aurora-1.jpg", "/img/aurora-2.jpg"},
			Category:       "Smartphones",
			Brand:          "Aurora",
			Color:          "Black",
			Memory:         "256GB",
			ScreenSize:     "6.7\"",
			Condition:      product.ConditionNew,
			Inventory:      12,
			Rating:         4.8,
			IsActive:       true,
		}

		assert.Equal(t, p, toProduct(fromProduct(p)))
	})

	t.Run("missing image column maps to an empty slice", func(t *testing.T) {
		p := toProduct(productRow{ID: "prod-2", Images: ""})
		require.NotNil(t, p.Images)
		assert.Empty(t, p.Images)
	})

	t.Run("broken image JSON maps to an empty slice", func(t *testing.T) {
		p := toProduct(productRow{ID: "prod-3", Images: "{nope"})
		require.NotNil(t, p.Images)
		assert.Empty(t, p.Images)
	})
}

func TestCartRowMapping(t *testing.T) {
	t.Run("restores the product snapshot", func(t *testing.T) {
		item := toCartItem(cartRow{
			ID:              "row-1",
			ProductID:       "prod-1",
			Quantity:        2,
			ProductSnapshot: `{"id":"prod-1","name":"Aurora X5 Pro","price":999}`,
		})

		assert.Equal(t, "row-1", item.ID)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, "Aurora X5 Pro", item.Product.Name)
		assert.Equal(t, 999.0, item.Product.Price)
	})

	t.Run("undecodable snapshot degrades to a bare reference", func(t *testing.T) {
		item := toCartItem(cartRow{ID: "row-2", ProductID: "prod-9", Quantity: 1, ProductSnapshot: "{broken"})

		assert.Equal(t, "prod-9", item.Product.ID)
		assert.Empty(t, item.Product.Name)
	})
}

func TestWishlistRowMapping(t *testing.T) {
	item := toWishlistItem(wishlistRow{
		ID:              "row-1",
		ProductID:       "prod-1",
		ProductSnapshot: `{"id":"prod-1","name":"Pulse Buds Pro"}`,
	})

	assert.Equal(t, "prod-1", item.ProductID)
	assert.Equal(t, "Pulse Buds Pro", item.Product.Name)
}

func TestOrderRowMapping(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	row := orderRow{
		ID:             "order-1",
		UserID:         1,
		OrderNumber:    "ORD-1748779200000-ABC123",
		Total:          54.59,
		Status:         "pending",
		ShippingMethod: "standard",
		PaymentMethod:  "credit-card",
		CustomerInfo:   `{"firstName":"Jamie","email":"jamie@example.com"}`,
		CreatedAt:      created,
		Items: []orderItemRow{
			{OrderID: "order-1", ProductID: "prod-a", ProductName: "Widget A", Quantity: 2, Price: 10},
		},
	}

	o := toOrder(row)
	assert.Equal(t, "ORD-1748779200000-ABC123", o.OrderNumber)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, created, o.CreatedAt)
	require.NotNil(t, o.Customer)
	assert.Equal(t, "Jamie", o.Customer.FirstName)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Widget A", o.Items[0].ProductName)

	t.Run("empty customer column leaves the pointer nil", func(t *testing.T) {
		bare := toOrder(orderRow{ID: "order-2", Status: "pending"})
		assert.Nil(t, bare.Customer)
	})
}
