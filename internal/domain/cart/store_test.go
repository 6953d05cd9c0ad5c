// internal/domain/cart/store_test.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// fakeGateway is an in-memory Gateway with switchable failure modes
type fakeGateway struct {
	rows    map[uint][]Item
	nextID  int
	failAdd bool
	failUpd bool
	failDel bool
	failClr bool
	failGet bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{rows: make(map[uint][]Item)}
}

var errGateway = errors.New("gateway unavailable")

func (g *fakeGateway) CartItems(_ context.Context, userID uint) ([]Item, error) {
	if g.failGet {
		return nil, errGateway
	}
	items := make([]Item, len(g.rows[userID]))
	copy(items, g.rows[userID])
	return items, nil
}

func (g *fakeGateway) AddCartItem(_ context.Context, userID uint, p product.Product, quantity int) error {
	if g.failAdd {
		return errGateway
	}
	for i := range g.rows[userID] {
		if g.rows[userID][i].ProductID == p.ID {
			g.rows[userID][i].Quantity += quantity
			return nil
		}
	}
	g.nextID++
	g.rows[userID] = append(g.rows[userID], Item{
		ID:        fmt.Sprintf("row-%d", g.nextID),
		ProductID: p.ID,
		Quantity:  quantity,
		Product:   p,
	})
	return nil
}

func (g *fakeGateway) UpdateCartQuantity(_ context.Context, userID uint, itemID string, quantity int) error {
	if g.failUpd {
		return errGateway
	}
	for i := range g.rows[userID] {
		if g.rows[userID][i].ID == itemID {
			g.rows[userID][i].Quantity = quantity
			return nil
		}
	}
	return errors.New("not found")
}

func (g *fakeGateway) RemoveCartItem(_ context.Context, userID uint, itemID string) error {
	if g.failDel {
		return errGateway
	}
	rows := g.rows[userID][:0:0]
	for _, item := range g.rows[userID] {
		if item.ID != itemID {
			rows = append(rows, item)
		}
	}
	g.rows[userID] = rows
	return nil
}

func (g *fakeGateway) ClearCart(_ context.Context, userID uint) error {
	if g.failClr {
		return errGateway
	}
	g.rows[userID] = nil
	return nil
}

func productA() product.Product {
	return product.Product{ID: "prod-a", Name: "Widget A", Price: 10}
}

func productB() product.Product {
	return product.Product{ID: "prod-b", Name: "Widget B", Price: 25}
}

func TestStoreAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a row and totals reflect it", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)

		require.NoError(t, s.AddItem(ctx, productA(), 2))
		require.NoError(t, s.AddItem(ctx, productB(), 1))

		assert.Equal(t, 45.0, s.Total())
		assert.Equal(t, 3, s.ItemCount())
		assert.Len(t, s.Items(), 2)
		assert.True(t, s.IsInCart("prod-a"))
		assert.False(t, s.Loading())
		assert.NoError(t, s.LastError())
	})

	t.Run("adding the same product twice keeps one row", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)

		require.NoError(t, s.AddItem(ctx, productA(), 1))
		require.NoError(t, s.AddItem(ctx, productA(), 1))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("quantity at or below zero defaults to one", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)

		require.NoError(t, s.AddItem(ctx, productA(), 0))
		assert.Equal(t, 1, s.ItemCount())
	})

	t.Run("rolls back on gateway failure", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 1))

		gw.failAdd = true
		err := s.AddItem(ctx, productB(), 1)
		require.Error(t, err)

		assert.Len(t, s.Items(), 1)
		assert.False(t, s.IsInCart("prod-b"))
		assert.ErrorIs(t, s.LastError(), errGateway)
		assert.False(t, s.Loading())
	})
}

func TestStoreUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites the quantity", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 1))
		itemID := s.Items()[0].ID

		require.NoError(t, s.UpdateQuantity(ctx, itemID, 5))
		assert.Equal(t, 5, s.ItemCount())
		assert.Equal(t, 50.0, s.Total())
	})

	t.Run("zero quantity removes the row", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 2))
		require.NoError(t, s.AddItem(ctx, productB(), 1))
		assert.Equal(t, 45.0, s.Total())

		var itemA string
		for _, item := range s.Items() {
			if item.ProductID == "prod-a" {
				itemA = item.ID
			}
		}
		require.NotEmpty(t, itemA)

		require.NoError(t, s.UpdateQuantity(ctx, itemA, 0))
		assert.Equal(t, 25.0, s.Total())
		assert.Equal(t, 1, s.ItemCount())
		assert.False(t, s.IsInCart("prod-a"))
	})

	t.Run("rolls back on gateway failure", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 2))
		itemID := s.Items()[0].ID

		gw.failUpd = true
		require.Error(t, s.UpdateQuantity(ctx, itemID, 9))
		assert.Equal(t, 2, s.ItemCount())
	})
}

func TestStoreRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 1))
		itemID := s.Items()[0].ID

		require.NoError(t, s.RemoveItem(ctx, itemID))
		assert.Empty(t, s.Items())
	})

	t.Run("failed removal restores the row and records the error", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 1))
		itemID := s.Items()[0].ID

		gw.failDel = true
		require.Error(t, s.RemoveItem(ctx, itemID))

		assert.True(t, s.IsInCart("prod-a"))
		assert.ErrorIs(t, s.LastError(), errGateway)
	})
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()

	t.Run("empties the cart", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 2))

		require.NoError(t, s.Clear(ctx))
		assert.Empty(t, s.Items())
		assert.Equal(t, 0.0, s.Total())
	})

	t.Run("restores items on gateway failure", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 2))

		gw.failClr = true
		require.Error(t, s.Clear(ctx))
		assert.Equal(t, 2, s.ItemCount())
	})
}

func TestStoreFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("failure leaves current state untouched", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 2))

		gw.failGet = true
		require.Error(t, s.Fetch(ctx))

		assert.Equal(t, 2, s.ItemCount())
		assert.ErrorIs(t, s.LastError(), errGateway)
	})

	t.Run("total follows the price snapshotted on each row", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.AddItem(ctx, productA(), 2))

		// The row carries its own price copy; totals come from it, not
		// from a live catalog lookup.
		for i := range gw.rows[1] {
			gw.rows[1][i].Product.Price = 12
		}
		require.NoError(t, s.Fetch(ctx))
		assert.Equal(t, 24.0, s.Total())
	})
}

func TestStoreSubscribe(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	s := NewStore(gw, 1)

	calls := 0
	s.Subscribe(func() { calls++ })

	require.NoError(t, s.AddItem(ctx, productA(), 1))
	assert.Greater(t, calls, 0)
}

func TestManagerFor(t *testing.T) {
	gw := newFakeGateway()
	m := NewManager(gw)

	a := m.For(1)
	b := m.For(2)
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.For(1))
}
