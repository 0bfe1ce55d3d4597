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

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type SaveCategoryRequest struct {
	Denomination string `json:"denomination" binding:"required"`
	ParentID     *uint  `json:"parent_id"`
	Retired      bool   `json:"retired"`
}

// List returns all categories, retired ones included
// GET /api/v1/admin/categorias
func (ctrl *CategoryController) List(c *gin.Context) {
	categories, err := ctrl.categoryService.List(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list categories", err, nil)
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// Create registers a new category
// POST /api/v1/admin/categorias
func (ctrl *CategoryController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	created, err := ctrl.categoryService.Create(c.Request.Context(), &model.Category{
		Denomination: req.Denomination,
		ParentID:     req.ParentID,
		Retired:      req.Retired,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": created.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"category": created})
}

// Update modifies an existing category
// PUT /api/v1/admin/categorias/:id
func (ctrl *CategoryController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	updated, err := ctrl.categoryService.Update(c.Request.Context(), &model.Category{
		ID:           id,
		Denomination: req.Denomination,
		ParentID:     req.ParentID,
		Retired:      req.Retired,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": updated})
}

// Delete retires a category
// DELETE /api/v1/admin/categorias/:id
func (ctrl *CategoryController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.categoryService.Delete(c.Request.Context(), id); err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.RemoteNotFound, "La categoría no existe")
	case errors.Is(err, service.ErrDenominationRequired):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "La denominación es obligatoria")
	default:
		middleware.GetLoggerFromContext(c).Error("Category operation failed", err, nil)
		respondRemoteError(c, err)
	}
}
