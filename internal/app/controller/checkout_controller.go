package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/cart"
	"github.com/elbuensabor/storefront-backend/internal/checkout"
	apperrors "github.com/elbuensabor/storefront-backend/internal/errors"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
)

type CheckoutController struct {
	carts     *cart.Manager
	checkouts *checkout.Manager
}

func NewCheckoutController(carts *cart.Manager, checkouts *checkout.Manager) *CheckoutController {
	return &CheckoutController{
		carts:     carts,
		checkouts: checkouts,
	}
}

type SetDeliveryRequest struct {
	DeliveryType model.DeliveryType `json:"delivery_type" binding:"required"`
}

type SetPaymentRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method" binding:"required"`
}

// GetState returns the current checkout state
// GET /api/v1/checkout
func (ctrl *CheckoutController) GetState(c *gin.Context) {
	orch, ok := ctrl.resolveOrchestrator(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout": orch.State()})
}

// Next advances the checkout one step
// POST /api/v1/checkout/next
func (ctrl *CheckoutController) Next(c *gin.Context) {
	orch, ok := ctrl.resolveOrchestrator(c)
	if !ok {
		return
	}

	step, err := orch.Next()
	if err != nil {
		if errors.Is(err, checkout.ErrAtLastStep) {
			apperrors.BadRequest(c, apperrors.CheckoutInvalidStep, "Ya estás en el último paso")
			return
		}
		apperrors.Internal(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": step})
}

// Back retreats the checkout one step
// POST /api/v1/checkout/back
func (ctrl *CheckoutController) Back(c *gin.Context) {
	orch, ok := ctrl.resolveOrchestrator(c)
	if !ok {
		return
	}

	step, err := orch.Back()
	if err != nil {
		if errors.Is(err, checkout.ErrAtFirstStep) {
			// Leaving checkout altogether; the frontend returns to the cart.
			ctrl.checkouts.Reset(c.GetString("cart_key"))
			c.JSON(http.StatusOK, gin.H{"step": nil, "left_checkout": true})
			return
		}
		apperrors.Internal(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": step})
}

// SetCustomer captures the information-step form
// PUT /api/v1/checkout/cliente
func (ctrl *CheckoutController) SetCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var info model.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		log.Warn("Invalid customer info", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	orch, ok := ctrl.resolveOrchestrator(c)
	if !ok {
		return
	}
	orch.SetCustomerInfo(info)
	c.JSON(http.StatusOK, gin.H{"checkout": orch.State()})
}

// SetDelivery captures the delivery-step choice
// PUT /api/v1/checkout/envio
func (ctrl *CheckoutController) SetDelivery(c *gin.Context) {
	var req SetDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	orch, ok := ctrl.resolveOrchestrator(c)
	if !ok {
		return
	}
	if err := orch.SetDeliveryType(req.DeliveryType); err != nil {
		apperrors.BadRequest(c, apperrors.CheckoutInvalidDelivery, "El tipo de envío no es válido")
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout": orch.State()})
}

// SetPayment captures the payment-step choice
// PUT /api/v1/checkout/pago
func (ctrl *CheckoutController) SetPayment(c *gin.Context) {
	var req SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	orch, ok := ctrl.resolveOrchestrator(c)
	if !ok {
		return
	}
	if err := orch.SetPaymentMethod(req.PaymentMethod); err != nil {
		apperrors.BadRequest(c, apperrors.CheckoutInvalidPayment, "La forma de pago no es válida")
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout": orch.State()})
}

// Submit finalizes the checkout from the confirmation step
// POST /api/v1/checkout/submit
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orch, ok := ctrl.resolveOrchestrator(c)
	if !ok {
		return
	}

	result, err := orch.Submit(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotAtConfirmation):
			apperrors.BadRequest(c, apperrors.CheckoutNotConfirmation, "Tenés que llegar a la confirmación antes de enviar el pedido")
		case errors.Is(err, checkout.ErrAlreadyComplete):
			apperrors.BadRequest(c, apperrors.CheckoutAlreadyComplete, "El pedido ya fue enviado")
		case errors.Is(err, checkout.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CartEmpty, "El carrito está vacío")
		case errors.Is(err, checkout.ErrPreferenceRejected):
			log.Error("Payment preference rejected", err, nil)
			apperrors.BadGateway(c, apperrors.PaymentPreferenceFailed, "No pudimos iniciar el pago, intentá de nuevo")
		default:
			log.Error("Failed to submit order", err, nil)
			respondRemoteError(c, err)
		}
		return
	}

	if result.Completed {
		ctrl.checkouts.Reset(c.GetString("cart_key"))
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetPending returns the order draft persisted before a gateway redirect
// GET /api/v1/checkout/pendiente
func (ctrl *CheckoutController) GetPending(c *gin.Context) {
	key := c.GetHeader(CartKeyHeader)
	if key == "" {
		apperrors.NotFound(c, apperrors.PaymentPendingNotFound, "No hay un pedido pendiente")
		return
	}

	pending, err := ctrl.checkouts.Pending().Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, checkout.ErrPendingNotFound) {
			apperrors.NotFound(c, apperrors.PaymentPendingNotFound, "No hay un pedido pendiente")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to load pending order", err, map[string]interface{}{
			"cart_key": key,
		})
		apperrors.Internal(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// resolveOrchestrator ties the caller's cart to its checkout session. A
// missing cart key means there is nothing to check out.
func (ctrl *CheckoutController) resolveOrchestrator(c *gin.Context) (*checkout.Orchestrator, bool) {
	key := c.GetHeader(CartKeyHeader)
	if key == "" {
		apperrors.BadRequest(c, apperrors.CartEmpty, "Falta el identificador del carrito")
		return nil, false
	}
	c.Header(CartKeyHeader, key)
	c.Set("cart_key", key)

	store := ctrl.carts.Get(c.Request.Context(), key)
	return ctrl.checkouts.Get(key, store), true
}
