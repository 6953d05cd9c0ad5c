// internal/domain/wishlist/manager.go
package wishlist

import (
	"fmt"
	"sync"

	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/notify"
)

// Manager hands out one process-wide Store per user
type Manager struct {
	mu       sync.Mutex
	gw       Gateway
	notifier notify.Notifier
	stores   map[uint]*Store
}

// NewManager creates a store manager backed by the given gateway.
// When a notifier is present, stores report duplicate adds through it.
func NewManager(gw Gateway, notifier notify.Notifier) *Manager {
	return &Manager{
		gw:       gw,
		notifier: notifier,
		stores:   make(map[uint]*Store),
	}
}

// For returns the store for a user, creating it if needed
func (m *Manager) For(userID uint) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := NewStore(m.gw, userID)
	if m.notifier != nil {
		s.OnDuplicate = func(p product.Product) {
			m.notifier.Notify(notify.LevelInfo, "wishlist", fmt.Sprintf("%s is already in your wishlist", p.Name))
		}
	}
	m.stores[userID] = s
	return s
}
