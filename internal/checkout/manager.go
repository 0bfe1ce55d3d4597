package checkout

import (
	"sync"

	"github.com/elbuensabor/storefront-backend/internal/cart"
)

// Manager keeps at most one active checkout per cart key.
type Manager struct {
	mu       sync.Mutex
	orders   orderSubmitter
	payments preferenceCreator
	pending  PendingStore
	active   map[string]*Orchestrator
}

func NewManager(orders orderSubmitter, payments preferenceCreator, pending PendingStore) *Manager {
	return &Manager{
		orders:   orders,
		payments: payments,
		pending:  pending,
		active:   make(map[string]*Orchestrator),
	}
}

// Get returns the checkout for the cart key, starting one at the
// information step if none is active.
func (m *Manager) Get(cartKey string, cartStore *cart.Store) *Orchestrator {
	m.mu.Lock()
	defer m.mu.Unlock()

	if o, ok := m.active[cartKey]; ok {
		return o
	}
	o := NewOrchestrator(cartKey, cartStore, m.orders, m.payments, m.pending)
	m.active[cartKey] = o
	return o
}

// Reset discards the active checkout for the key, e.g. after completion or
// when the user abandons the flow back to the cart.
func (m *Manager) Reset(cartKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, cartKey)
}

// Pending exposes the pending-order store for post-redirect reconciliation.
func (m *Manager) Pending() PendingStore {
	return m.pending
}
