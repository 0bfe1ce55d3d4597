package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/cart"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/payment/mercadopago"
)

type fakeOrderAPI struct {
	lastDraft *model.OrderDraft
	err       error
}

func (f *fakeOrderAPI) CreateOrder(ctx context.Context, draft *model.OrderDraft) (*remote.CreateOrderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastDraft = draft
	return &remote.CreateOrderResponse{ID: 42, Status: model.OrderStatusToConfirm}, nil
}

type fakeGateway struct {
	lastReq mercadopago.PreferenceRequest
	err     error
}

func (f *fakeGateway) CreatePreference(ctx context.Context, req mercadopago.PreferenceRequest) (*mercadopago.PreferenceResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastReq = req
	return &mercadopago.PreferenceResponse{
		ID:        "pref-123",
		InitPoint: "https://mercadopago.test/checkout/pref-123",
	}, nil
}

type memoryPendingStore struct {
	mu     sync.Mutex
	orders map[string]model.PendingOrder
}

func newMemoryPendingStore() *memoryPendingStore {
	return &memoryPendingStore{orders: make(map[string]model.PendingOrder)}
}

func (s *memoryPendingStore) Save(ctx context.Context, order model.PendingOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.CartKey] = order
	return nil
}

func (s *memoryPendingStore) Get(ctx context.Context, cartKey string) (*model.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[cartKey]
	if !ok {
		return nil, ErrPendingNotFound
	}
	return &order, nil
}

func (s *memoryPendingStore) Delete(ctx context.Context, cartKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, cartKey)
	return nil
}

func (s *memoryPendingStore) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

func testArticle(id uint, denomination string, price float64) model.Article {
	return model.Article{
		ID:           id,
		Denomination: denomination,
		SalePrice:    price,
		CategoryID:   1,
		Kind:         model.ArticleKindManufactured,
		Manufactured: &model.ManufacturedInfo{},
	}
}

func setupOrchestratorTest(t *testing.T) (*Orchestrator, *cart.Store, *fakeOrderAPI, *fakeGateway, *memoryPendingStore) {
	t.Helper()
	ctx := context.Background()

	store := cart.NewStore("cart-1", cart.NewMemoryStorage())
	store.Hydrate(ctx)

	orders := &fakeOrderAPI{}
	gateway := &fakeGateway{}
	pending := newMemoryPendingStore()
	orch := NewOrchestrator("cart-1", store, orders, gateway, pending)
	return orch, store, orders, gateway, pending
}

func advanceToConfirmation(t *testing.T, orch *Orchestrator) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, err := orch.Next()
		require.NoError(t, err)
	}
	require.Equal(t, StepConfirmation, orch.Step())
}

func TestOrchestrator_StepsAreLinear(t *testing.T) {
	orch, _, _, _, _ := setupOrchestratorTest(t)

	assert.Equal(t, StepInformation, orch.Step())

	step, err := orch.Next()
	require.NoError(t, err)
	assert.Equal(t, StepDelivery, step)

	step, err = orch.Next()
	require.NoError(t, err)
	assert.Equal(t, StepPayment, step)

	step, err = orch.Next()
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, step)

	_, err = orch.Next()
	assert.ErrorIs(t, err, ErrAtLastStep)

	step, err = orch.Back()
	require.NoError(t, err)
	assert.Equal(t, StepPayment, step)
}

func TestOrchestrator_BackFromFirstStep(t *testing.T) {
	orch, _, _, _, _ := setupOrchestratorTest(t)

	_, err := orch.Back()
	assert.ErrorIs(t, err, ErrAtFirstStep)
	assert.Equal(t, StepInformation, orch.Step())
}

func TestOrchestrator_SetDeliveryType(t *testing.T) {
	orch, _, _, _, _ := setupOrchestratorTest(t)

	assert.NoError(t, orch.SetDeliveryType(model.DeliveryPickup))
	assert.NoError(t, orch.SetDeliveryType(model.DeliveryHome))
	assert.ErrorIs(t, orch.SetDeliveryType("DRONE"), ErrInvalidDelivery)
}

func TestOrchestrator_SetPaymentMethod(t *testing.T) {
	orch, _, _, _, _ := setupOrchestratorTest(t)

	assert.NoError(t, orch.SetPaymentMethod(model.PaymentCash))
	assert.NoError(t, orch.SetPaymentMethod(model.PaymentMercadoPago))
	assert.ErrorIs(t, orch.SetPaymentMethod("CHEQUE"), ErrInvalidPayment)
}

func TestDeliveryFee_Policy(t *testing.T) {
	// In-store pickup is always free.
	assert.Equal(t, 0.0, DeliveryFee(5.0, model.DeliveryPickup))
	assert.Equal(t, 0.0, DeliveryFee(100.0, model.DeliveryPickup))

	// Home delivery is free from the threshold up.
	assert.Equal(t, 0.0, DeliveryFee(25.0, model.DeliveryHome))
	assert.Equal(t, 0.0, DeliveryFee(80.0, model.DeliveryHome))

	// Below the threshold the flat fee applies.
	assert.Equal(t, FlatDeliveryFee, DeliveryFee(24.99, model.DeliveryHome))
	assert.Equal(t, FlatDeliveryFee, DeliveryFee(0.01, model.DeliveryHome))
}

func TestOrchestrator_DeliveryFeeTracksCart(t *testing.T) {
	orch, store, _, _, _ := setupOrchestratorTest(t)
	ctx := context.Background()

	require.NoError(t, orch.SetDeliveryType(model.DeliveryHome))

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	assert.Equal(t, FlatDeliveryFee, orch.DeliveryFee())

	store.AddToCart(ctx, testArticle(2, "Lomito", 12.5), 1)
	assert.Equal(t, 0.0, orch.DeliveryFee()) // 32.5 >= 25

	require.NoError(t, orch.SetDeliveryType(model.DeliveryPickup))
	assert.Equal(t, 0.0, orch.DeliveryFee())
}

func TestOrchestrator_SubmitRequiresConfirmationStep(t *testing.T) {
	orch, store, _, _, _ := setupOrchestratorTest(t)
	store.AddToCart(context.Background(), testArticle(1, "Pizza", 10.0), 1)

	_, err := orch.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotAtConfirmation)
}

func TestOrchestrator_SubmitEmptyCart(t *testing.T) {
	orch, _, _, _, _ := setupOrchestratorTest(t)
	advanceToConfirmation(t, orch)

	_, err := orch.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrchestrator_SubmitCash(t *testing.T) {
	orch, store, orders, _, _ := setupOrchestratorTest(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	orch.SetCustomerInfo(model.CustomerInfo{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, orch.SetDeliveryType(model.DeliveryHome))
	require.NoError(t, orch.SetPaymentMethod(model.PaymentCash))
	advanceToConfirmation(t, orch)

	result, err := orch.Submit(ctx)
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.Equal(t, uint(42), result.OrderID)
	assert.Empty(t, result.RedirectURL)

	// Cash orders clear the cart and lock the checkout.
	assert.Empty(t, store.Items())
	assert.True(t, orch.Complete())

	require.NotNil(t, orders.lastDraft)
	assert.Equal(t, model.OrderStatusToConfirm, orders.lastDraft.Status)
	assert.Equal(t, model.PaymentCash, orders.lastDraft.PaymentMethod)
	assert.Equal(t, 20.0, orders.lastDraft.Total)
	assert.Equal(t, FlatDeliveryFee, orders.lastDraft.DeliveryFee)
	require.Len(t, orders.lastDraft.Lines, 1)
	assert.Equal(t, 2, orders.lastDraft.Lines[0].Quantity)
}

func TestOrchestrator_SubmitCash_RemoteFailureKeepsCart(t *testing.T) {
	orch, store, orders, _, _ := setupOrchestratorTest(t)
	ctx := context.Background()
	orders.err = remote.ErrRemoteUnavailable

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	require.NoError(t, orch.SetPaymentMethod(model.PaymentCash))
	advanceToConfirmation(t, orch)

	_, err := orch.Submit(ctx)
	require.Error(t, err)

	// The user can retry with the cart intact.
	assert.Len(t, store.Items(), 1)
	assert.False(t, orch.Complete())
	assert.Equal(t, StepConfirmation, orch.Step())
}

func TestOrchestrator_SubmitMercadoPago(t *testing.T) {
	orch, store, _, gateway, pending := setupOrchestratorTest(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	orch.SetCustomerInfo(model.CustomerInfo{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, orch.SetDeliveryType(model.DeliveryHome))
	require.NoError(t, orch.SetPaymentMethod(model.PaymentMercadoPago))
	advanceToConfirmation(t, orch)

	result, err := orch.Submit(ctx)
	require.NoError(t, err)

	assert.False(t, result.Completed)
	assert.Equal(t, "pref-123", result.PreferenceID)
	assert.Equal(t, "https://mercadopago.test/checkout/pref-123", result.RedirectURL)

	// The cart survives until the gateway confirms the payment.
	assert.Len(t, store.Items(), 1)
	assert.False(t, orch.Complete())

	// The draft was persisted for post-redirect reconciliation.
	record, err := pending.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, "pref-123", record.PreferenceID)
	assert.NotEmpty(t, record.Payload)

	// Preference items: one per cart line plus the delivery fee.
	require.Len(t, gateway.lastReq.Items, 2)
	assert.Equal(t, "Pizza", gateway.lastReq.Items[0].Title)
	assert.Equal(t, FlatDeliveryFee, gateway.lastReq.Items[1].UnitPrice)
	assert.Equal(t, "cart-1", gateway.lastReq.ExternalReference)
	require.NotNil(t, gateway.lastReq.Payer)
	assert.Equal(t, "ana@example.com", gateway.lastReq.Payer.Email)
}

func TestOrchestrator_SubmitMercadoPago_NoFeeLineAboveThreshold(t *testing.T) {
	orch, store, _, gateway, _ := setupOrchestratorTest(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Parrillada", 30.0), 1)
	require.NoError(t, orch.SetDeliveryType(model.DeliveryHome))
	require.NoError(t, orch.SetPaymentMethod(model.PaymentMercadoPago))
	advanceToConfirmation(t, orch)

	_, err := orch.Submit(ctx)
	require.NoError(t, err)

	assert.Len(t, gateway.lastReq.Items, 1)
}

func TestOrchestrator_SubmitMercadoPago_GatewayFailureKeepsCart(t *testing.T) {
	orch, store, _, gateway, pending := setupOrchestratorTest(t)
	ctx := context.Background()
	gateway.err = errors.New("gateway down")

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	require.NoError(t, orch.SetPaymentMethod(model.PaymentMercadoPago))
	advanceToConfirmation(t, orch)

	_, err := orch.Submit(ctx)
	assert.ErrorIs(t, err, ErrPreferenceRejected)

	assert.Len(t, store.Items(), 1)
	assert.False(t, orch.Complete())

	_, err = pending.Get(ctx, "cart-1")
	assert.ErrorIs(t, err, ErrPendingNotFound)
}

func TestOrchestrator_SubmitTwice(t *testing.T) {
	orch, store, _, _, _ := setupOrchestratorTest(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 1)
	require.NoError(t, orch.SetPaymentMethod(model.PaymentCash))
	advanceToConfirmation(t, orch)

	_, err := orch.Submit(ctx)
	require.NoError(t, err)

	_, err = orch.Submit(ctx)
	assert.ErrorIs(t, err, ErrAlreadyComplete)
}

func TestOrchestrator_State(t *testing.T) {
	orch, store, _, _, _ := setupOrchestratorTest(t)
	ctx := context.Background()

	store.AddToCart(ctx, testArticle(1, "Pizza", 10.0), 2)
	orch.SetCustomerInfo(model.CustomerInfo{Name: "Ana"})
	require.NoError(t, orch.SetDeliveryType(model.DeliveryHome))

	state := orch.State()
	assert.Equal(t, StepInformation, state.Step)
	assert.Equal(t, "Ana", state.Customer.Name)
	assert.Equal(t, model.DeliveryHome, state.DeliveryType)
	assert.Equal(t, 20.0, state.Total)
	assert.Equal(t, FlatDeliveryFee, state.DeliveryFee)
	assert.False(t, state.Complete)
}

func TestManager_GetReusesOrchestrator(t *testing.T) {
	store := cart.NewStore("cart-1", cart.NewMemoryStorage())
	manager := NewManager(&fakeOrderAPI{}, &fakeGateway{}, newMemoryPendingStore())

	a := manager.Get("cart-1", store)
	b := manager.Get("cart-1", store)
	assert.Same(t, a, b)

	manager.Reset("cart-1")
	c := manager.Get("cart-1", store)
	assert.NotSame(t, a, c)
}
