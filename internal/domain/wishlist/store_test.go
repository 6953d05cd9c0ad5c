// internal/domain/wishlist/store_test.go
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/notify"
)

type fakeGateway struct {
	rows    map[uint][]Item
	nextID  int
	addHits int
	failAdd bool
	failDel bool
	failGet bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{rows: make(map[uint][]Item)}
}

var errGateway = errors.New("gateway unavailable")

func (g *fakeGateway) WishlistItems(_ context.Context, userID uint) ([]Item, error) {
	if g.failGet {
		return nil, errGateway
	}
	items := make([]Item, len(g.rows[userID]))
	copy(items, g.rows[userID])
	return items, nil
}

func (g *fakeGateway) AddWishlistItem(_ context.Context, userID uint, p product.Product) error {
	g.addHits++
	if g.failAdd {
		return errGateway
	}
	for _, item := range g.rows[userID] {
		if item.ProductID == p.ID {
			return nil
		}
	}
	g.nextID++
	g.rows[userID] = append(g.rows[userID], Item{
		ID:        fmt.Sprintf("row-%d", g.nextID),
		ProductID: p.ID,
		Product:   p,
	})
	return nil
}

func (g *fakeGateway) RemoveWishlistItem(_ context.Context, userID uint, productID string) error {
	if g.failDel {
		return errGateway
	}
	rows := g.rows[userID][:0:0]
	for _, item := range g.rows[userID] {
		if item.ProductID != productID {
			rows = append(rows, item)
		}
	}
	g.rows[userID] = rows
	return nil
}

func sampleProduct() product.Product {
	return product.Product{ID: "prod-a", Name: "Widget A", Price: 10}
}

func TestStoreAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a row", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)

		require.NoError(t, s.Add(ctx, sampleProduct()))
		assert.True(t, s.IsInWishlist("prod-a"))
		assert.Equal(t, 1, s.ItemCount())
		assert.False(t, s.Loading())
	})

	t.Run("duplicate add is a no-op that fires the hook", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)

		var hooked []string
		s.OnDuplicate = func(p product.Product) { hooked = append(hooked, p.ID) }

		require.NoError(t, s.Add(ctx, sampleProduct()))
		require.NoError(t, s.Add(ctx, sampleProduct()))

		assert.Equal(t, []string{"prod-a"}, hooked)
		assert.Equal(t, 1, s.ItemCount())
		assert.Equal(t, 1, gw.addHits)
		assert.Len(t, gw.rows[1], 1)
	})

	t.Run("rolls back on gateway failure", func(t *testing.T) {
		gw := newFakeGateway()
		gw.failAdd = true
		s := NewStore(gw, 1)

		require.Error(t, s.Add(ctx, sampleProduct()))
		assert.False(t, s.IsInWishlist("prod-a"))
		assert.ErrorIs(t, s.LastError(), errGateway)
	})
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row by product id", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.Add(ctx, sampleProduct()))

		require.NoError(t, s.Remove(ctx, "prod-a"))
		assert.False(t, s.IsInWishlist("prod-a"))
		assert.Equal(t, 0, s.ItemCount())
	})

	t.Run("failed removal restores the row and records the error", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.Add(ctx, sampleProduct()))

		gw.failDel = true
		require.Error(t, s.Remove(ctx, "prod-a"))

		assert.True(t, s.IsInWishlist("prod-a"))
		assert.ErrorIs(t, s.LastError(), errGateway)
	})
}

func TestStoreFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("failure leaves current state untouched", func(t *testing.T) {
		gw := newFakeGateway()
		s := NewStore(gw, 1)
		require.NoError(t, s.Add(ctx, sampleProduct()))

		gw.failGet = true
		require.Error(t, s.Fetch(ctx))
		assert.Equal(t, 1, s.ItemCount())
	})

	t.Run("clean fetch clears the last error", func(t *testing.T) {
		gw := newFakeGateway()
		gw.failGet = true
		s := NewStore(gw, 1)
		require.Error(t, s.Fetch(ctx))
		require.Error(t, s.LastError())

		gw.failGet = false
		require.NoError(t, s.Fetch(ctx))
		assert.NoError(t, s.LastError())
	})
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(_ notify.Level, _ string, message string) {
	n.messages = append(n.messages, message)
}

func TestManagerFor(t *testing.T) {
	gw := newFakeGateway()
	m := NewManager(gw, nil)

	a := m.For(7)
	assert.Same(t, a, m.For(7))
	assert.NotSame(t, a, m.For(8))
}

func TestManagerDuplicateAddNotifies(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	notifier := &recordingNotifier{}
	s := NewManager(gw, notifier).For(1)

	require.NoError(t, s.Add(ctx, sampleProduct()))
	require.NoError(t, s.Add(ctx, sampleProduct()))

	assert.Equal(t, 1, s.ItemCount())
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "already in your wishlist")
}
