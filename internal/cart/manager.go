package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Manager hands out exactly one Store per cart key, so each cart has a
// single owner for its state. Stores are hydrated on first access.
type Manager struct {
	mu       sync.Mutex
	storage  Storage
	stores   map[string]*Store
	onChange func(key string, snapshot Snapshot)
}

func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

// OnChange registers a callback fired after every cart mutation, keyed by
// cart. Must be set before the first Get.
func (m *Manager) OnChange(fn func(key string, snapshot Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// NewKey issues a fresh cart key for a new storefront session.
func (m *Manager) NewKey() string {
	return uuid.NewString()
}

// Get returns the store for the key, creating and hydrating it on first
// access within this process.
func (m *Manager) Get(ctx context.Context, key string) *Store {
	m.mu.Lock()
	store, ok := m.stores[key]
	if !ok {
		store = NewStore(key, m.storage)
		m.stores[key] = store
		if fn := m.onChange; fn != nil {
			k := key
			store.Subscribe(func(snapshot Snapshot) { fn(k, snapshot) })
		}
	}
	m.mu.Unlock()

	// Hydrate outside the manager lock; it is idempotent.
	store.Hydrate(ctx)
	return store
}

// Drop forgets the in-memory store and deletes its persisted snapshot.
func (m *Manager) Drop(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.stores, key)
	m.mu.Unlock()

	return m.storage.Delete(ctx, key)
}
