package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists for the
// key. The store treats it as an empty cart.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Storage persists the full line-item collection per cart key, the way the
// web client keeps it under a single local-storage entry.
type Storage interface {
	Load(ctx context.Context, key string) ([]model.CartItem, error)
	Save(ctx context.Context, key string, items []model.CartItem) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage keeps snapshots in a map. Used in tests and as a fallback
// when neither a database nor Redis is configured.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]model.CartItem
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]model.CartItem)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]model.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.carts[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	copied := make([]model.CartItem, len(items))
	copy(copied, items)
	return copied, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, items []model.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]model.CartItem, len(items))
	copy(copied, items)
	m.carts[key] = copied
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, key)
	return nil
}
