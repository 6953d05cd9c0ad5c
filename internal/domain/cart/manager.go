// internal/domain/cart/manager.go
package cart

import "sync"

// Manager hands out one process-wide Store per user. Stores are created
// lazily on first use and live for the life of the process.
type Manager struct {
	mu     sync.Mutex
	gw     Gateway
	stores map[uint]*Store
}

// NewManager creates a store manager backed by the given gateway
func NewManager(gw Gateway) *Manager {
	return &Manager{
		gw:     gw,
		stores: make(map[uint]*Store),
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
	m.stores[userID] = s
	return s
}
