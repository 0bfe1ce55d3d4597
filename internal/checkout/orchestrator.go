// Package checkout walks a cart through the fixed purchase flow:
// information, delivery, payment, confirmation. It assembles the order
// payload and hands it either to the remote API (cash) or to the payment
// gateway (Mercado Pago preference + redirect).
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/cart"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
	"github.com/elbuensabor/storefront-backend/pkg/payment/mercadopago"
)

// Step is one station of the linear checkout flow.
type Step string

const (
	StepInformation  Step = "information"
	StepDelivery     Step = "delivery"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var stepOrder = []Step{StepInformation, StepDelivery, StepPayment, StepConfirmation}

// Delivery fee policy. Home delivery is free from the threshold up;
// in-store pickup is always free.
const (
	FreeShippingThreshold = 25.0
	FlatDeliveryFee       = 3.99
)

var (
	ErrAtFirstStep        = errors.New("already at the first checkout step")
	ErrAtLastStep         = errors.New("already at the confirmation step")
	ErrNotAtConfirmation  = errors.New("order can only be submitted from the confirmation step")
	ErrEmptyCart          = errors.New("cannot check out an empty cart")
	ErrAlreadyComplete    = errors.New("checkout already completed")
	ErrInvalidDelivery    = errors.New("invalid delivery type")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrPreferenceRejected = errors.New("payment preference could not be created")
)

// orderSubmitter is the remote API surface the orchestrator needs.
type orderSubmitter interface {
	CreateOrder(ctx context.Context, draft *model.OrderDraft) (*remote.CreateOrderResponse, error)
}

// preferenceCreator is the payment gateway surface the orchestrator needs.
type preferenceCreator interface {
	CreatePreference(ctx context.Context, req mercadopago.PreferenceRequest) (*mercadopago.PreferenceResponse, error)
}

// Orchestrator drives one cart through the checkout flow. Forward and
// backward moves are strictly one step at a time; there is no skipping.
type Orchestrator struct {
	mu sync.Mutex

	cartKey  string
	cart     *cart.Store
	orders   orderSubmitter
	payments preferenceCreator
	pending  PendingStore

	step          Step
	complete      bool
	customer      model.CustomerInfo
	deliveryType  model.DeliveryType
	paymentMethod model.PaymentMethod
}

func NewOrchestrator(
	cartKey string,
	cartStore *cart.Store,
	orders orderSubmitter,
	payments preferenceCreator,
	pending PendingStore,
) *Orchestrator {
	return &Orchestrator{
		cartKey:       cartKey,
		cart:          cartStore,
		orders:        orders,
		payments:      payments,
		pending:       pending,
		step:          StepInformation,
		deliveryType:  model.DeliveryHome,
		paymentMethod: model.PaymentMercadoPago,
	}
}

// Step returns the current checkout step.
func (o *Orchestrator) Step() Step {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.step
}

// Complete reports whether the order was submitted successfully.
func (o *Orchestrator) Complete() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.complete
}

// State is a read-only view of the checkout for the frontend.
type State struct {
	Step          Step                `json:"step"`
	Complete      bool                `json:"complete"`
	Customer      model.CustomerInfo  `json:"customer"`
	DeliveryType  model.DeliveryType  `json:"delivery_type"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	DeliveryFee   float64             `json:"delivery_fee"`
	Total         float64             `json:"total"`
}

// State snapshots the whole checkout, fee and cart total included.
func (o *Orchestrator) State() State {
	total := o.cart.TotalAmount()

	o.mu.Lock()
	defer o.mu.Unlock()
	return State{
		Step:          o.step,
		Complete:      o.complete,
		Customer:      o.customer,
		DeliveryType:  o.deliveryType,
		PaymentMethod: o.paymentMethod,
		DeliveryFee:   DeliveryFee(total, o.deliveryType),
		Total:         total,
	}
}

// Next advances one step. From confirmation there is nowhere to go.
func (o *Orchestrator) Next() (Step, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, step := range stepOrder {
		if step == o.step {
			if i == len(stepOrder)-1 {
				return o.step, ErrAtLastStep
			}
			o.step = stepOrder[i+1]
			return o.step, nil
		}
	}
	return o.step, fmt.Errorf("unknown checkout step %q", o.step)
}

// Back retreats one step. From information the caller leaves checkout and
// returns to the cart view; ErrAtFirstStep signals that.
func (o *Orchestrator) Back() (Step, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, step := range stepOrder {
		if step == o.step {
			if i == 0 {
				return o.step, ErrAtFirstStep
			}
			o.step = stepOrder[i-1]
			return o.step, nil
		}
	}
	return o.step, fmt.Errorf("unknown checkout step %q", o.step)
}

// SetCustomerInfo captures the information-step form fields.
func (o *Orchestrator) SetCustomerInfo(info model.CustomerInfo) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.customer = info
}

// SetDeliveryType captures the delivery-step choice.
func (o *Orchestrator) SetDeliveryType(t model.DeliveryType) error {
	if t != model.DeliveryHome && t != model.DeliveryPickup {
		return ErrInvalidDelivery
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deliveryType = t
	return nil
}

// SetPaymentMethod captures the payment-step choice.
func (o *Orchestrator) SetPaymentMethod(m model.PaymentMethod) error {
	if m != model.PaymentCash && m != model.PaymentMercadoPago {
		return ErrInvalidPayment
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paymentMethod = m
	return nil
}

// DeliveryFee computes the fee for the current cart total and delivery
// choice.
func (o *Orchestrator) DeliveryFee() float64 {
	o.mu.Lock()
	deliveryType := o.deliveryType
	o.mu.Unlock()
	return DeliveryFee(o.cart.TotalAmount(), deliveryType)
}

// DeliveryFee is the fee policy on its own: zero for pickup, zero for home
// delivery at or above the free-shipping threshold, flat fee otherwise.
func DeliveryFee(totalAmount float64, deliveryType model.DeliveryType) float64 {
	if deliveryType != model.DeliveryHome {
		return 0
	}
	if totalAmount >= FreeShippingThreshold {
		return 0
	}
	return FlatDeliveryFee
}

// SubmitResult tells the caller what happened: either the order is placed
// (cash) or the browser must be redirected to the gateway.
type SubmitResult struct {
	OrderID      uint   `json:"order_id,omitempty"`
	PreferenceID string `json:"preference_id,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	Completed    bool   `json:"completed"`
}

// Submit finalizes the checkout from the confirmation step. Any failure
// leaves the cart and the checkout state untouched so the user can retry.
func (o *Orchestrator) Submit(ctx context.Context) (*SubmitResult, error) {
	o.mu.Lock()
	if o.complete {
		o.mu.Unlock()
		return nil, ErrAlreadyComplete
	}
	if o.step != StepConfirmation {
		o.mu.Unlock()
		return nil, ErrNotAtConfirmation
	}
	customer := o.customer
	deliveryType := o.deliveryType
	paymentMethod := o.paymentMethod
	o.mu.Unlock()

	items := o.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	draft := buildDraft(items, customer, deliveryType, paymentMethod)

	switch paymentMethod {
	case model.PaymentMercadoPago:
		return o.submitWithGateway(ctx, draft, items)
	case model.PaymentCash:
		return o.submitDirect(ctx, draft)
	default:
		return nil, ErrInvalidPayment
	}
}

func (o *Orchestrator) submitWithGateway(ctx context.Context, draft *model.OrderDraft, items []model.CartItem) (*SubmitResult, error) {
	prefItems := make([]mercadopago.PreferenceItem, 0, len(items))
	for _, item := range items {
		prefItems = append(prefItems, mercadopago.PreferenceItem{
			ID:         fmt.Sprintf("%d", item.ArticleID),
			Title:      item.Article.Denomination,
			Quantity:   item.Quantity,
			CurrencyID: "ARS",
			UnitPrice:  item.Article.SalePrice,
		})
	}
	if draft.DeliveryFee > 0 {
		prefItems = append(prefItems, mercadopago.PreferenceItem{
			Title:      "Envio a domicilio",
			Quantity:   1,
			CurrencyID: "ARS",
			UnitPrice:  draft.DeliveryFee,
		})
	}

	req := mercadopago.PreferenceRequest{
		Items:             prefItems,
		ExternalReference: o.cartKey,
		AutoReturn:        "approved",
	}
	if draft.Customer.Email != "" {
		req.Payer = &mercadopago.Payer{
			Name:  draft.Customer.Name,
			Email: draft.Customer.Email,
		}
	}

	pref, err := o.payments.CreatePreference(ctx, req)
	if err != nil {
		logger.Error("Failed to create payment preference", err, map[string]interface{}{
			"cart_key": o.cartKey,
		})
		return nil, fmt.Errorf("%w: %v", ErrPreferenceRejected, err)
	}

	// Persist the draft before redirecting so the confirmation view can
	// reconcile the order after the gateway sends the browser back.
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize pending order: %w", err)
	}
	record := model.PendingOrder{
		CartKey:      o.cartKey,
		PreferenceID: pref.ID,
		Payload:      string(payload),
	}
	if err := o.pending.Save(ctx, record); err != nil {
		logger.Error("Failed to persist pending order", err, map[string]interface{}{
			"cart_key":      o.cartKey,
			"preference_id": pref.ID,
		})
		return nil, err
	}

	logger.Info("Payment preference created, redirecting to gateway", map[string]interface{}{
		"cart_key":      o.cartKey,
		"preference_id": pref.ID,
	})

	// The cart stays intact until the gateway confirms the payment.
	return &SubmitResult{
		PreferenceID: pref.ID,
		RedirectURL:  pref.InitPoint,
	}, nil
}

func (o *Orchestrator) submitDirect(ctx context.Context, draft *model.OrderDraft) (*SubmitResult, error) {
	resp, err := o.orders.CreateOrder(ctx, draft)
	if err != nil {
		logger.Error("Failed to submit order", err, map[string]interface{}{
			"cart_key": o.cartKey,
		})
		return nil, err
	}

	o.cart.Clear(ctx)

	o.mu.Lock()
	o.complete = true
	o.mu.Unlock()

	logger.Info("Order submitted successfully", map[string]interface{}{
		"cart_key": o.cartKey,
		"order_id": resp.ID,
	})

	return &SubmitResult{
		OrderID:   resp.ID,
		Completed: true,
	}, nil
}

func buildDraft(
	items []model.CartItem,
	customer model.CustomerInfo,
	deliveryType model.DeliveryType,
	paymentMethod model.PaymentMethod,
) *model.OrderDraft {
	lines := make([]model.OrderLine, 0, len(items))
	var total float64
	for _, item := range items {
		lines = append(lines, model.OrderLine{
			ArticleID: item.ArticleID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		})
		total += item.Subtotal
	}

	return &model.OrderDraft{
		OrderDate:     time.Now().Format("2006-01-02"),
		Status:        model.OrderStatusToConfirm,
		DeliveryType:  deliveryType,
		PaymentMethod: paymentMethod,
		Total:         total,
		DeliveryFee:   DeliveryFee(total, deliveryType),
		// Placeholder identifiers until the storefront has real accounts.
		CustomerID: 1,
		AddressID:  1,
		Customer:   customer,
		Lines:      lines,
	}
}
