package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/internal/app/service"
	"github.com/elbuensabor/storefront-backend/internal/cart"
	apperrors "github.com/elbuensabor/storefront-backend/internal/errors"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
)

// CartKeyHeader carries the browser's cart identifier. The server mints one
// on the first request that arrives without it and echoes it back so the
// frontend can store it alongside its session.
const CartKeyHeader = "X-Cart-ID"

type CartController struct {
	carts          *cart.Manager
	catalogService service.CatalogService
}

func NewCartController(carts *cart.Manager, catalogService service.CatalogService) *CartController {
	return &CartController{
		carts:          carts,
		catalogService: catalogService,
	}
}

type AddToCartRequest struct {
	ArticleID uint `json:"article_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the current cart snapshot
// GET /api/v1/carrito
func (ctrl *CartController) GetCart(c *gin.Context) {
	store := ctrl.resolveStore(c)
	respondCart(c, store)
}

// AddItem adds an article to the cart, merging quantities
// POST /api/v1/carrito/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add-to-cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	article, err := ctrl.catalogService.GetProduct(c.Request.Context(), req.ArticleID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Article not sellable", map[string]interface{}{
				"article_id": req.ArticleID,
			})
			apperrors.NotFound(c, apperrors.CatalogArticleNotFound, "El producto no existe")
			return
		}
		log.Error("Failed to resolve article", err, map[string]interface{}{
			"article_id": req.ArticleID,
		})
		respondRemoteError(c, err)
		return
	}

	store := ctrl.resolveStore(c)
	store.AddToCart(c.Request.Context(), *article, req.Quantity)

	log.Info("Article added to cart", map[string]interface{}{
		"article_id": req.ArticleID,
		"quantity":   req.Quantity,
	})

	respondCart(c, store)
}

// UpdateItem sets the quantity of a cart line; zero or less removes it
// PUT /api/v1/carrito/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	store := ctrl.resolveStore(c)
	store.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	respondCart(c, store)
}

// RemoveItem removes a cart line
// DELETE /api/v1/carrito/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	store := ctrl.resolveStore(c)
	store.RemoveFromCart(c.Request.Context(), id)
	respondCart(c, store)
}

// ClearCart empties the cart
// DELETE /api/v1/carrito
func (ctrl *CartController) ClearCart(c *gin.Context) {
	store := ctrl.resolveStore(c)
	store.Clear(c.Request.Context())
	respondCart(c, store)
}

// resolveStore finds the caller's cart, minting a key when none came in.
// The key is always echoed back in the response header.
func (ctrl *CartController) resolveStore(c *gin.Context) *cart.Store {
	key := c.GetHeader(CartKeyHeader)
	if key == "" {
		key = ctrl.carts.NewKey()
		middleware.GetLoggerFromContext(c).Debug("Minted cart key", map[string]interface{}{
			"cart_key": key,
		})
	}
	c.Header(CartKeyHeader, key)
	c.Set("cart_key", key)
	return ctrl.carts.Get(c.Request.Context(), key)
}

func respondCart(c *gin.Context, store *cart.Store) {
	snapshot := store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"cart": snapshot,
	})
}
