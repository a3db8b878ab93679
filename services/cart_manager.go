package services

import (
	"sync"

	"github.com/google/uuid"
)

// CartManager hands out the single CartService instance for each ordering
// session. Only the session map is guarded here; cart mutations are
// synchronized by the cart service itself.
type CartManager struct {
	store CartStore
	carts map[string]*CartService
	mu    sync.Mutex
}

var cartManagerInstance *CartManager

// InitCartManager initializes the global cart manager with the given store
func InitCartManager(store CartStore) *CartManager {
	cartManagerInstance = NewCartManager(store)
	return cartManagerInstance
}

// GetCartManager returns the initialized cart manager instance
func GetCartManager() *CartManager {
	return cartManagerInstance
}

// SetCartManager sets the cart manager instance (primarily for testing)
func SetCartManager(m *CartManager) {
	cartManagerInstance = m
}

// NewCartManager creates a cart manager backed by the given store
func NewCartManager(store CartStore) *CartManager {
	return &CartManager{
		store: store,
		carts: make(map[string]*CartService),
	}
}

// NewSessionID mints a fresh session identifier
func (m *CartManager) NewSessionID() string {
	return uuid.NewString()
}

// Session returns the cart service for the session, creating it (and
// restoring any persisted snapshot) on first use
func (m *CartManager) Session(sessionID string) *CartService {
	m.mu.Lock()
	defer m.mu.Unlock()

	if svc, ok := m.carts[sessionID]; ok {
		return svc
	}
	svc := NewCartService(m.store, sessionID)
	m.carts[sessionID] = svc
	return svc
}

// Drop forgets the in-memory cart for the session. The persisted snapshot is
// untouched; a later Session call restores from it.
func (m *CartManager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}
