package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/app/service"
	apperrors "github.com/elbuensabor/storefront-backend/internal/errors"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
)

type ManufacturedController struct {
	manufacturedService service.ManufacturedService
}

func NewManufacturedController(manufacturedService service.ManufacturedService) *ManufacturedController {
	return &ManufacturedController{
		manufacturedService: manufacturedService,
	}
}

type RecipeLineRequest struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
}

type SaveManufacturedRequest struct {
	Denomination     string              `json:"denomination" binding:"required"`
	SalePrice        float64             `json:"sale_price" binding:"required,gt=0"`
	CategoryID       uint                `json:"category_id" binding:"required"`
	ImageID          *uint               `json:"image_id"`
	Description      string              `json:"description"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	Preparation      string              `json:"preparation"`
	Retired          bool                `json:"retired"`
	Recipe           []RecipeLineRequest `json:"recipe" binding:"required,min=1,dive"`
}

func (req *SaveManufacturedRequest) toArticle(id uint) *model.Article {
	recipe := make([]model.RecipeLine, 0, len(req.Recipe))
	for _, line := range req.Recipe {
		recipe = append(recipe, model.RecipeLine{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
		})
	}
	return &model.Article{
		ID:           id,
		Denomination: req.Denomination,
		SalePrice:    req.SalePrice,
		CategoryID:   req.CategoryID,
		ImageID:      req.ImageID,
		Retired:      req.Retired,
		Kind:         model.ArticleKindManufactured,
		Manufactured: &model.ManufacturedInfo{
			Description:      req.Description,
			EstimatedMinutes: req.EstimatedMinutes,
			Preparation:      req.Preparation,
			Recipe:           recipe,
		},
	}
}

// List returns all manufactured articles with their recipe cost
// GET /api/v1/admin/articulosManufacturados
func (ctrl *ManufacturedController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	articles, err := ctrl.manufacturedService.List(c.Request.Context())
	if err != nil {
		log.Error("Failed to list manufactured articles", err, nil)
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// Get returns one manufactured article
// GET /api/v1/admin/articulosManufacturados/:id
func (ctrl *ManufacturedController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	article, err := ctrl.manufacturedService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogArticleNotFound, "El artículo no existe")
			return
		}
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Create registers a new manufactured article
// POST /api/v1/admin/articulosManufacturados
func (ctrl *ManufacturedController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SaveManufacturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid manufactured article request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	created, err := ctrl.manufacturedService.Create(c.Request.Context(), req.toArticle(0))
	if err != nil {
		respondArticleValidation(c, err)
		return
	}

	log.Info("Manufactured article created", map[string]interface{}{
		"article_id": created.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"article": created})
}

// Update modifies an existing manufactured article
// PUT /api/v1/admin/articulosManufacturados/:id
func (ctrl *ManufacturedController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SaveManufacturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	updated, err := ctrl.manufacturedService.Update(c.Request.Context(), req.toArticle(id))
	if err != nil {
		respondArticleValidation(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": updated})
}

// Delete retires a manufactured article
// DELETE /api/v1/admin/articulosManufacturados/:id
func (ctrl *ManufacturedController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.manufacturedService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogArticleNotFound, "El artículo no existe")
			return
		}
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// respondArticleValidation maps article service failures onto HTTP answers.
func respondArticleValidation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogArticleNotFound, "El artículo no existe")
	case errors.Is(err, service.ErrDenominationRequired):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "La denominación es obligatoria")
	case errors.Is(err, service.ErrInvalidSalePrice):
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "El precio de venta debe ser mayor a cero")
	case errors.Is(err, service.ErrCategoryRequired):
		apperrors.BadRequest(c, apperrors.CatalogMissingCategory, "Tenés que elegir una categoría")
	case errors.Is(err, service.ErrEmptyRecipe):
		apperrors.BadRequest(c, apperrors.CatalogEmptyRecipe, "La receta necesita al menos un insumo")
	case errors.Is(err, service.ErrWrongArticleKind):
		apperrors.BadRequest(c, apperrors.CatalogInvalidArticle, "El artículo no es del tipo esperado")
	case errors.Is(err, service.ErrInvalidPurchasePrice):
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "El precio de compra debe ser mayor a cero")
	case errors.Is(err, service.ErrNegativeStock):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "El stock no puede ser negativo")
	case errors.Is(err, service.ErrUnitRequired):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Tenés que elegir una unidad de medida")
	default:
		middleware.GetLoggerFromContext(c).Error("Article operation failed", err, nil)
		respondRemoteError(c, err)
	}
}
