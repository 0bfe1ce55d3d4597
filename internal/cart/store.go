package cart

import (
	"context"
	"sync"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

// Snapshot is an immutable view of the cart handed to readers and
// subscribers. Totals are derived, never stored.
type Snapshot struct {
	Items       []model.CartItem `json:"items"`
	TotalItems  int              `json:"total_items"`
	TotalAmount float64          `json:"total_amount"`
}

// Store owns one cart: an ordered list of line items keyed by article id.
// It is the single owner of that state; everything else goes through its
// methods. Mutations are serialized by the mutex, mirroring the
// one-dispatch-at-a-time reducer the storefront UI runs.
type Store struct {
	mu          sync.Mutex
	key         string
	items       []model.CartItem
	storage     Storage
	hydrated    bool
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// NewStore creates an empty store bound to a storage key. The store defers
// all persistence until Hydrate has run, so a fresh instance can never
// clobber an existing snapshot with an empty cart.
func NewStore(key string, storage Storage) *Store {
	return &Store{
		key:         key,
		storage:     storage,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Hydrate loads the persisted cart once. A missing, malformed or empty
// payload is treated as an empty cart and only logged; the user never sees
// a storage error.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true

	items, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if err != ErrSnapshotNotFound {
			logger.Warn("Failed to load cart snapshot, starting empty", map[string]interface{}{
				"cart_key": s.key,
				"error":    err.Error(),
			})
		}
		return
	}
	if len(items) == 0 {
		return
	}

	s.items = items
	logger.Debug("Cart hydrated from storage", map[string]interface{}{
		"cart_key": s.key,
		"count":    len(items),
	})
}

// AddToCart merges quantity into an existing line for the article or
// appends a new one. An article without an id is ignored with a warning.
func (s *Store) AddToCart(ctx context.Context, article model.Article, quantity int) {
	if article.ID == 0 {
		logger.Warn("Ignoring add to cart for article without id", map[string]interface{}{
			"denomination": article.Denomination,
		})
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ArticleID == article.ID {
			s.items[i].Quantity += quantity
			s.items[i].Subtotal = float64(s.items[i].Quantity) * article.SalePrice
			s.afterMutation(ctx)
			return
		}
	}
	s.items = append(s.items, model.CartItem{
		ArticleID: article.ID,
		Article:   article,
		Quantity:  quantity,
		Subtotal:  float64(quantity) * article.SalePrice,
	})
	s.afterMutation(ctx)
}

// RemoveFromCart deletes the line for the article id. No-op if absent.
func (s *Store) RemoveFromCart(ctx context.Context, articleID uint) {
	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ArticleID != articleID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.afterMutation(ctx)
}

// UpdateQuantity sets the line's quantity and recomputes its subtotal.
// A quantity of zero or less removes the line entirely; there is no upper
// bound.
func (s *Store) UpdateQuantity(ctx context.Context, articleID uint, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, articleID)
		return
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ArticleID == articleID {
			s.items[i].Quantity = quantity
			s.items[i].Subtotal = float64(quantity) * s.items[i].Article.SalePrice
			break
		}
	}
	s.afterMutation(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.afterMutation(ctx)
}

// IsInCart reports whether a line exists for the article id.
func (s *Store) IsInCart(articleID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ArticleID == articleID {
			return true
		}
	}
	return false
}

// ItemQuantity returns the line's quantity, zero when absent.
func (s *Store) ItemQuantity(articleID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ArticleID == articleID {
			return item.Quantity
		}
	}
	return 0
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.items)
}

// TotalAmount is the sum of all line subtotals.
func (s *Store) TotalAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalAmount(s.items)
}

// Snapshot returns the current items plus derived totals.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// afterMutation persists and notifies, then releases the lock the caller
// acquired. Callbacks run outside the lock so a subscriber can read the
// store without deadlocking.
func (s *Store) afterMutation(ctx context.Context) {
	snapshot := s.snapshotLocked()
	hydrated := s.hydrated
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if hydrated {
		if err := s.storage.Save(ctx, s.key, snapshot.Items); err != nil {
			// The in-memory mutation stands; persistence failure is not
			// surfaced to the user.
			logger.Warn("Failed to persist cart snapshot", map[string]interface{}{
				"cart_key": s.key,
				"error":    err.Error(),
			})
		}
	} else {
		logger.Debug("Cart not hydrated yet, skipping persistence", map[string]interface{}{
			"cart_key": s.key,
		})
	}

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:       s.copyItems(),
		TotalItems:  totalItems(s.items),
		TotalAmount: totalAmount(s.items),
	}
}

func (s *Store) copyItems() []model.CartItem {
	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func totalItems(items []model.CartItem) int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalAmount(items []model.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	return total
}
