package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/climbsoft/climb-delivery-api/models"
)

// MockCartStore is an in-memory implementation of CartStore for testing. It
// stores encoded snapshots so tests exercise the same serialize/deserialize
// path as the Redis store.
type MockCartStore struct {
	snapshots map[string][]byte
	failSaves bool
	failLoads bool
	saveCount int
	mu        sync.RWMutex
}

// NewMockCartStore creates a new mock cart store
func NewMockCartStore() *MockCartStore {
	return &MockCartStore{
		snapshots: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global cart store instance for testing
func (m *MockCartStore) SetAsMockForTesting() {
	SetCartStore(m)
}

// FailSaves makes subsequent Save calls return an error, for testing the
// best-effort persistence contract
func (m *MockCartStore) FailSaves(fail bool) {
	m.mu.Lock()
	m.failSaves = fail
	m.mu.Unlock()
}

// FailLoads makes subsequent Load calls return an error
func (m *MockCartStore) FailLoads(fail bool) {
	m.mu.Lock()
	m.failLoads = fail
	m.mu.Unlock()
}

// Save encodes and stores the snapshot
func (m *MockCartStore) Save(ctx context.Context, sessionID string, cart models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSaves {
		return fmt.Errorf("mock cart store: save failure injected")
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	m.snapshots[sessionID] = payload
	m.saveCount++
	return nil
}

// Load decodes the stored snapshot, if any
func (m *MockCartStore) Load(ctx context.Context, sessionID string) (models.Cart, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failLoads {
		return models.NewCart(), false, fmt.Errorf("mock cart store: load failure injected")
	}

	payload, ok := m.snapshots[sessionID]
	if !ok {
		return models.NewCart(), false, nil
	}

	var cart models.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return models.NewCart(), false, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return cart, true, nil
}

// Delete removes the stored snapshot
func (m *MockCartStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, sessionID)
	return nil
}

// SaveCount returns the number of successful saves (for testing assertions)
func (m *MockCartStore) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveCount
}

// Corrupt replaces the session's stored snapshot with bytes that will not
// decode, to test the silent fallback on load
func (m *MockCartStore) Corrupt(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[sessionID] = []byte("{not json")
}

// HasSnapshot checks whether a snapshot exists for the session
func (m *MockCartStore) HasSnapshot(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.snapshots[sessionID]
	return ok
}
