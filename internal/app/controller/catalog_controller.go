package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/internal/app/service"
	apperrors "github.com/elbuensabor/storefront-backend/internal/errors"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
	"github.com/elbuensabor/storefront-backend/internal/remote"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListProducts returns the sellable manufactured articles
// GET /api/v1/productos
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch catalog", err, nil)
		respondRemoteError(c, err)
		return
	}

	log.Info("Catalog fetched successfully", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single sellable article
// GET /api/v1/productos/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.CatalogArticleNotFound, "El producto no existe")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// ListCategories returns the visible categories
// GET /api/v1/categorias
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListPromotions returns the promotions active right now
// GET /api/v1/promociones
func (ctrl *CatalogController) ListPromotions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	promotions, err := ctrl.catalogService.ListActivePromotions(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch promotions", err, nil)
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promotions": promotions,
		"count":      len(promotions),
	})
}

// parseIDParam reads the :id path parameter, answering 400 on bad input.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid ID format", map[string]interface{}{
			"id":   idStr,
			"path": c.Request.URL.Path,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "El identificador no es válido")
		return 0, false
	}
	return uint(id), true
}

// respondRemoteError maps remote client failures onto HTTP answers.
func respondRemoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, remote.ErrNotFound):
		apperrors.NotFound(c, apperrors.RemoteNotFound, "El recurso no existe")
	case errors.Is(err, remote.ErrRemoteRejected):
		apperrors.BadRequest(c, apperrors.RemoteRejected, "El servicio rechazó la operación")
	case errors.Is(err, remote.ErrRemoteUnavailable), errors.Is(err, remote.ErrRemoteFailed):
		apperrors.BadGateway(c, apperrors.RemoteUnavailable, "El servicio no está disponible, intentá más tarde")
	default:
		apperrors.Internal(c, "")
	}
}
