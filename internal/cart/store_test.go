package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
)

func testArticle(id uint, denomination string, price float64) model.Article {
	return model.Article{
		ID:           id,
		Denomination: denomination,
		SalePrice:    price,
		CategoryID:   1,
		Kind:         model.ArticleKindManufactured,
		Manufactured: &model.ManufacturedInfo{Description: denomination},
	}
}

func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	store := NewStore("test-cart", storage)
	store.Hydrate(context.Background())
	return store, storage
}

func TestStore_AddToCart_MergesQuantities(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	pizza := testArticle(1, "Pizza Margherita", 10.0)

	store.AddToCart(ctx, pizza, 2)
	store.AddToCart(ctx, pizza, 3)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 50.0, items[0].Subtotal)
	assert.Equal(t, 5, store.TotalItems())
}

func TestStore_AddToCart_DefaultsQuantityToOne(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Empanada", 2.5), 0)
	store.AddToCart(ctx, testArticle(2, "Hamburguesa", 8.0), -3)

	assert.Equal(t, 1, store.ItemQuantity(1))
	assert.Equal(t, 1, store.ItemQuantity(2))
}

func TestStore_AddToCart_IgnoresArticleWithoutID(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddToCart(context.Background(), testArticle(0, "Fantasma", 5.0), 1)

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.TotalItems())
}

func TestStore_RemoveFromCart(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 1)
	store.AddToCart(ctx, testArticle(2, "Lomito", 12.0), 1)

	store.RemoveFromCart(ctx, 1)

	assert.False(t, store.IsInCart(1))
	assert.True(t, store.IsInCart(2))
	assert.Len(t, store.Items(), 1)
}

func TestStore_RemoveFromCart_AbsentIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	store.RemoveFromCart(ctx, 99)

	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 2, store.TotalItems())
}

func TestStore_UpdateQuantity(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 1)
	store.UpdateQuantity(ctx, 1, 4)

	assert.Equal(t, 4, store.ItemQuantity(1))
	assert.Equal(t, 40.0, store.TotalAmount())
}

func TestStore_UpdateQuantity_ZeroRemoves(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 3)
	store.UpdateQuantity(ctx, 1, 0)

	assert.False(t, store.IsInCart(1))
	assert.Empty(t, store.Items())
}

func TestStore_UpdateQuantity_NegativeRemoves(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 3)
	store.UpdateQuantity(ctx, 1, -2)

	assert.False(t, store.IsInCart(1))
}

func TestStore_Totals(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	store.AddToCart(ctx, testArticle(2, "Lomito", 12.5), 3)

	assert.Equal(t, 5, store.TotalItems())
	assert.Equal(t, 57.5, store.TotalAmount())

	snapshot := store.Snapshot()
	assert.Equal(t, 5, snapshot.TotalItems)
	assert.Equal(t, 57.5, snapshot.TotalAmount)
	assert.Len(t, snapshot.Items, 2)
}

func TestStore_Clear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	store.Clear(ctx)

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.TotalItems())
	assert.Equal(t, 0.0, store.TotalAmount())
}

// The scenario from the storefront UI: two adds of the same article, one
// more add, then the quantity dropped to zero.
func TestStore_AddAddThenRemoveScenario(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	pizza := testArticle(1, "Pizza", 10.0)

	store.AddToCart(ctx, pizza, 2)
	assert.Equal(t, 20.0, store.TotalAmount())

	store.AddToCart(ctx, pizza, 1)
	assert.Equal(t, 3, store.ItemQuantity(1))
	assert.Equal(t, 30.0, store.TotalAmount())

	store.UpdateQuantity(ctx, 1, 0)
	assert.Empty(t, store.Items())
	assert.Equal(t, 0.0, store.TotalAmount())
}

func TestStore_PersistsAfterMutation(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)

	saved, err := storage.Load(ctx, "test-cart")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 2, saved[0].Quantity)
}

func TestStore_RoundTripAcrossRestart(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	first := NewStore("session", storage)
	first.Hydrate(ctx)
	first.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	first.AddToCart(ctx, testArticle(2, "Lomito", 12.0), 1)

	// A new process picks the cart up from storage.
	second := NewStore("session", storage)
	second.Hydrate(ctx)

	assert.Equal(t, 3, second.TotalItems())
	assert.Equal(t, 32.0, second.TotalAmount())
	assert.Equal(t, 2, second.ItemQuantity(1))
}

func TestStore_SkipsPersistenceBeforeHydration(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, "session", []model.CartItem{
		{ArticleID: 1, Article: testArticle(1, "Pizza", 10.0), Quantity: 2, Subtotal: 20.0},
	}))

	// Mutating before Hydrate must not clobber the stored snapshot.
	store := NewStore("session", storage)
	store.AddToCart(ctx, testArticle(2, "Lomito", 12.0), 1)

	saved, err := storage.Load(ctx, "session")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, uint(1), saved[0].ArticleID)
}

func TestStore_HydrateIsIdempotent(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, "session", []model.CartItem{
		{ArticleID: 1, Article: testArticle(1, "Pizza", 10.0), Quantity: 2, Subtotal: 20.0},
	}))

	store := NewStore("session", storage)
	store.Hydrate(ctx)
	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 1)

	// A second hydration must not reset the in-memory state.
	store.Hydrate(ctx)
	assert.Equal(t, 3, store.ItemQuantity(1))
}

func TestStore_SubscribeNotifiesOnMutation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var snapshots []Snapshot
	unsubscribe := store.Subscribe(func(s Snapshot) {
		snapshots = append(snapshots, s)
	})

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 2, snapshots[0].TotalItems)

	unsubscribe()
	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 1)
	assert.Len(t, snapshots, 1)
}

func TestStore_SubscriberCanReadStore(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var observed int
	store.Subscribe(func(Snapshot) {
		// Reading back through the store must not deadlock.
		observed = store.TotalItems()
	})

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	assert.Equal(t, 2, observed)
}

func TestManager_SameKeySameStore(t *testing.T) {
	manager := NewManager(NewMemoryStorage())
	ctx := context.Background()

	a := manager.Get(ctx, "k1")
	b := manager.Get(ctx, "k1")
	c := manager.Get(ctx, "k2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestManager_OnChangeFires(t *testing.T) {
	manager := NewManager(NewMemoryStorage())
	ctx := context.Background()

	var gotKey string
	var gotTotal int
	manager.OnChange(func(key string, snapshot Snapshot) {
		gotKey = key
		gotTotal = snapshot.TotalItems
	})

	store := manager.Get(ctx, "k1")
	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)

	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, 2, gotTotal)
}

func TestManager_DropDeletesSnapshot(t *testing.T) {
	storage := NewMemoryStorage()
	manager := NewManager(storage)
	ctx := context.Background()

	store := manager.Get(ctx, "k1")
	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 1)

	require.NoError(t, manager.Drop(ctx, "k1"))

	_, err := storage.Load(ctx, "k1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
