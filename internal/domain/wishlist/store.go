// internal/domain/wishlist/store.go
package wishlist

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// Item represents a wishlist row: a user/product join with no quantity.
// Like the cart, at most one row exists per (user, product) pair.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   product.Product `json:"product"`
}

// Gateway is the remote persistence surface the store reconciles against
type Gateway interface {
	WishlistItems(ctx context.Context, userID uint) ([]Item, error)
	AddWishlistItem(ctx context.Context, userID uint, p product.Product) error
	RemoveWishlistItem(ctx context.Context, userID uint, productID string) error
}

// Store holds one user's wishlist in memory with the same optimistic
// update and rollback discipline as the cart store.
type Store struct {
	mu      sync.Mutex
	gw      Gateway
	userID  uint
	items   []Item
	loading bool
	lastErr error
	subs    []func()

	// Optional hook invoked when Add is a duplicate no-op
	OnDuplicate func(p product.Product)
}

// NewStore creates a wishlist store for one user
func NewStore(gw Gateway, userID uint) *Store {
	return &Store{gw: gw, userID: userID}
}

// Subscribe registers a callback invoked after every state change
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Fetch replaces the item list with the gateway's current snapshot
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.publish()

	items, err := s.gw.WishlistItems(ctx, s.userID)

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

// Add puts a product on the wishlist. Adding an already-present product is
// an idempotent no-op with a notification, not an error.
func (s *Store) Add(ctx context.Context, p product.Product) error {
	s.mu.Lock()
	if s.containsLocked(p.ID) {
		hook := s.OnDuplicate
		s.mu.Unlock()
		if hook != nil {
			hook(p)
		}
		return nil
	}
	snapshot := s.snapshotLocked()
	s.items = append(s.items, Item{
		ID:        "tmp-" + uuid.NewString(),
		ProductID: p.ID,
		Product:   p,
	})
	s.loading = true
	s.mu.Unlock()
	s.publish()

	if err := s.gw.AddWishlistItem(ctx, s.userID, p); err != nil {
		s.rollback(snapshot, err)
		return err
	}
	return s.Fetch(ctx)
}

// Remove deletes the row for a product
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	filtered := s.items[:0:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.loading = true
	s.mu.Unlock()
	s.publish()

	if err := s.gw.RemoveWishlistItem(ctx, s.userID, productID); err != nil {
		s.rollback(snapshot, err)
		if ferr := s.Fetch(ctx); ferr == nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
		return err
	}
	return s.Fetch(ctx)
}

// IsInWishlist reports whether the product is present
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(productID)
}

// ItemCount returns the number of rows
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the current item list
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
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

func (s *Store) containsLocked(productID string) bool {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return true
		}
	}
	return false
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

func (s *Store) publish() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
