// internal/domain/cart/store.go
package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// Gateway is the remote persistence surface the store reconciles against
type Gateway interface {
	CartItems(ctx context.Context, userID uint) ([]Item, error)
	AddCartItem(ctx context.Context, userID uint, p product.Product, quantity int) error
	UpdateCartQuantity(ctx context.Context, userID uint, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID uint, itemID string) error
	ClearCart(ctx context.Context, userID uint) error
}

// Store holds one user's cart state in memory and keeps it reconciled with
// the gateway. Every mutation applies optimistically first, then persists and
// re-fetches the authoritative truth; on persistence failure the pre-mutation
// snapshot is restored. The mutex makes the container safe for interleaved
// requests; ordering under concurrent rapid edits follows last-refetch-wins.
type Store struct {
	mu      sync.Mutex
	gw      Gateway
	userID  uint
	items   []Item
	loading bool
	lastErr error
	subs    []func()
}

// NewStore creates a cart store for one user
func NewStore(gw Gateway, userID uint) *Store {
	return &Store{gw: gw, userID: userID}
}

// Subscribe registers a callback invoked after every state change
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Fetch replaces the item list with the gateway's current snapshot.
// On failure existing state is left untouched and the error recorded; an
// empty cart is an acceptable degraded state for anonymous visitors.
func (s *Store) Fetch(ctx context.Context) error {
	s.setLoading(true)
	items, err := s.gw.CartItems(ctx, s.userID)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
	} else {
		s.items = items
		s.lastErr = nil
	}
	s.mu.Unlock()
	s.publish()
	return err
}

// AddItem adds a product to the cart, incrementing quantity when a row for
// the product already exists. Rolls back the optimistic change when the
// gateway rejects it.
func (s *Store) AddItem(ctx context.Context, p product.Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		// Temporary id until the re-fetch brings the server-assigned one
		s.items = append(s.items, Item{
			ID:        "tmp-" + uuid.NewString(),
			ProductID: p.ID,
			Quantity:  quantity,
			Product:   p,
		})
	}
	s.loading = true
	s.mu.Unlock()
	s.publish()

	if err := s.gw.AddCartItem(ctx, s.userID, p, quantity); err != nil {
		s.rollback(snapshot, err)
		return err
	}
	return s.Fetch(ctx)
}

// UpdateQuantity rewrites a row's quantity; zero or less removes the row
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.loading = true
	s.mu.Unlock()
	s.publish()

	if err := s.gw.UpdateCartQuantity(ctx, s.userID, itemID, quantity); err != nil {
		s.rollback(snapshot, err)
		return err
	}
	return s.Fetch(ctx)
}

// RemoveItem deletes a row from the cart
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	filtered := s.items[:0:0]
	for _, item := range s.items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.loading = true
	s.mu.Unlock()
	s.publish()

	if err := s.gw.RemoveCartItem(ctx, s.userID, itemID); err != nil {
		s.rollback(snapshot, err)
		// Re-fetch the pre-removal truth; the restored snapshot stands if
		// the fetch fails too.
		if ferr := s.Fetch(ctx); ferr == nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
		return err
	}
	return s.Fetch(ctx)
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.items = nil
	s.loading = true
	s.mu.Unlock()
	s.publish()

	if err := s.gw.ClearCart(ctx, s.userID); err != nil {
		s.rollback(snapshot, err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.lastErr = nil
	s.mu.Unlock()
	s.publish()
	return nil
}

// Items returns a copy of the current item list
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Total returns the sum of price x quantity over all rows, using the price
// snapshotted on each row rather than a live catalog lookup
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for i := range s.items {
		total += s.items[i].LineTotal()
	}
	return total
}

// ItemCount returns the sum of quantities, for the badge count
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.items {
		count += s.items[i].Quantity
	}
	return count
}

// IsInCart reports whether any row references the product
func (s *Store) IsInCart(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Loading reports whether a gateway call is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent recorded error, nil after a clean fetch
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) snapshotLocked() []Item {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

func (s *Store) rollback(snapshot []Item, err error) {
	s.mu.Lock()
	s.items = snapshot
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
	s.publish()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.publish()
}

func (s *Store) publish() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
