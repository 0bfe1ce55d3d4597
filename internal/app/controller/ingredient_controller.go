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

type IngredientController struct {
	ingredientService service.IngredientService
}

func NewIngredientController(ingredientService service.IngredientService) *IngredientController {
	return &IngredientController{
		ingredientService: ingredientService,
	}
}

type SaveIngredientRequest struct {
	Denomination  string  `json:"denomination" binding:"required"`
	SalePrice     float64 `json:"sale_price"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	ImageID       *uint   `json:"image_id"`
	PurchasePrice float64 `json:"purchase_price" binding:"required,gt=0"`
	CurrentStock  float64 `json:"current_stock"`
	MinimumStock  float64 `json:"minimum_stock"`
	ForProduction bool    `json:"for_production"`
	UnitID        uint    `json:"unit_id" binding:"required"`
	Retired       bool    `json:"retired"`
}

func (req *SaveIngredientRequest) toArticle(id uint) *model.Article {
	return &model.Article{
		ID:           id,
		Denomination: req.Denomination,
		SalePrice:    req.SalePrice,
		CategoryID:   req.CategoryID,
		ImageID:      req.ImageID,
		Retired:      req.Retired,
		Kind:         model.ArticleKindIngredient,
		Ingredient: &model.IngredientInfo{
			PurchasePrice: req.PurchasePrice,
			CurrentStock:  req.CurrentStock,
			MinimumStock:  req.MinimumStock,
			ForProduction: req.ForProduction,
			UnitID:        req.UnitID,
		},
	}
}

// List returns all insumos
// GET /api/v1/admin/articulosInsumos
func (ctrl *IngredientController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ingredients, err := ctrl.ingredientService.List(c.Request.Context())
	if err != nil {
		log.Error("Failed to list ingredients", err, nil)
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": ingredients,
		"count":       len(ingredients),
	})
}

// Get returns one insumo
// GET /api/v1/admin/articulosInsumos/:id
func (ctrl *IngredientController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ingredient, err := ctrl.ingredientService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogArticleNotFound, "El insumo no existe")
			return
		}
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredient": ingredient})
}

// Create registers a new insumo
// POST /api/v1/admin/articulosInsumos
func (ctrl *IngredientController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SaveIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid ingredient request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	created, err := ctrl.ingredientService.Create(c.Request.Context(), req.toArticle(0))
	if err != nil {
		respondArticleValidation(c, err)
		return
	}

	log.Info("Ingredient created", map[string]interface{}{
		"article_id": created.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"ingredient": created})
}

// Update modifies an existing insumo
// PUT /api/v1/admin/articulosInsumos/:id
func (ctrl *IngredientController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SaveIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	updated, err := ctrl.ingredientService.Update(c.Request.Context(), req.toArticle(id))
	if err != nil {
		respondArticleValidation(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredient": updated})
}

// Delete retires an insumo
// DELETE /api/v1/admin/articulosInsumos/:id
func (ctrl *IngredientController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.ingredientService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogArticleNotFound, "El insumo no existe")
			return
		}
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ListUnits returns the units of measure to fill the admin form selects
// GET /api/v1/admin/unidadesMedida
func (ctrl *IngredientController) ListUnits(c *gin.Context) {
	units, err := ctrl.ingredientService.ListUnits(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list units", err, nil)
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"units": units,
		"count": len(units),
	})
}
