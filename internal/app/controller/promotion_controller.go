package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/app/service"
	apperrors "github.com/elbuensabor/storefront-backend/internal/errors"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
)

type PromotionController struct {
	promotionService service.PromotionService
}

func NewPromotionController(promotionService service.PromotionService) *PromotionController {
	return &PromotionController{
		promotionService: promotionService,
	}
}

type PromotionLineRequest struct {
	ArticleID uint `json:"article_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type SavePromotionRequest struct {
	Denomination        string                 `json:"denomination" binding:"required"`
	DiscountDescription string                 `json:"discount_description"`
	DateFrom            string                 `json:"date_from" binding:"required"`
	DateUntil           string                 `json:"date_until" binding:"required"`
	HourFrom            string                 `json:"hour_from"`
	HourUntil           string                 `json:"hour_until"`
	PromotionalPrice    float64                `json:"promotional_price" binding:"required,gt=0"`
	Type                model.PromotionType    `json:"type"`
	DiscountPercent     *float64               `json:"discount_percent"`
	MinimumAmount       *float64               `json:"minimum_amount"`
	ImageID             *uint                  `json:"image_id"`
	Articles            []PromotionLineRequest `json:"articles" binding:"required,min=1,dive"`
	Retired             bool                   `json:"retired"`
}

const promotionDateLayout = "2006-01-02"

func (req *SavePromotionRequest) toPromotion(id uint) (*model.Promotion, error) {
	dateFrom, err := time.Parse(promotionDateLayout, req.DateFrom)
	if err != nil {
		return nil, err
	}
	dateUntil, err := time.Parse(promotionDateLayout, req.DateUntil)
	if err != nil {
		return nil, err
	}

	lines := make([]model.PromotionLine, 0, len(req.Articles))
	for _, line := range req.Articles {
		lines = append(lines, model.PromotionLine{
			ArticleID: line.ArticleID,
			Quantity:  line.Quantity,
		})
	}

	return &model.Promotion{
		ID:                  id,
		Denomination:        req.Denomination,
		DiscountDescription: req.DiscountDescription,
		DateFrom:            dateFrom,
		DateUntil:           dateUntil,
		HourFrom:            req.HourFrom,
		HourUntil:           req.HourUntil,
		PromotionalPrice:    req.PromotionalPrice,
		Type:                req.Type,
		DiscountPercent:     req.DiscountPercent,
		MinimumAmount:       req.MinimumAmount,
		ImageID:             req.ImageID,
		Articles:            lines,
		Retired:             req.Retired,
	}, nil
}

// List returns all promotions, inactive ones included
// GET /api/v1/admin/promociones
func (ctrl *PromotionController) List(c *gin.Context) {
	promotions, err := ctrl.promotionService.List(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list promotions", err, nil)
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promotions": promotions,
		"count":      len(promotions),
	})
}

// Create registers a new promotion
// POST /api/v1/admin/promociones
func (ctrl *PromotionController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SavePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid promotion request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	promotion, err := req.toPromotion(0)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Las fechas deben tener formato AAAA-MM-DD")
		return
	}

	created, err := ctrl.promotionService.Create(c.Request.Context(), promotion)
	if err != nil {
		respondPromotionError(c, err)
		return
	}

	log.Info("Promotion created", map[string]interface{}{
		"promotion_id": created.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"promotion": created})
}

// Update modifies an existing promotion
// PUT /api/v1/admin/promociones/:id
func (ctrl *PromotionController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SavePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	promotion, err := req.toPromotion(id)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Las fechas deben tener formato AAAA-MM-DD")
		return
	}

	updated, err := ctrl.promotionService.Update(c.Request.Context(), promotion)
	if err != nil {
		respondPromotionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotion": updated})
}

// Delete retires a promotion
// DELETE /api/v1/admin/promociones/:id
func (ctrl *PromotionController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.promotionService.Delete(c.Request.Context(), id); err != nil {
		respondPromotionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func respondPromotionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromotionNotFound):
		apperrors.NotFound(c, apperrors.RemoteNotFound, "La promoción no existe")
	case errors.Is(err, service.ErrDenominationRequired):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "La denominación es obligatoria")
	case errors.Is(err, service.ErrPromotionDatesInvalid):
		apperrors.BadRequest(c, apperrors.PromotionInvalidDates, "La fecha de inicio no puede ser posterior a la de fin")
	case errors.Is(err, service.ErrPromotionPriceInvalid):
		apperrors.BadRequest(c, apperrors.PromotionInvalidPrice, "El precio promocional debe ser mayor a cero")
	case errors.Is(err, service.ErrPromotionWithoutArticles):
		apperrors.BadRequest(c, apperrors.PromotionWithoutArticles, "La promoción necesita al menos un artículo")
	default:
		middleware.GetLoggerFromContext(c).Error("Promotion operation failed", err, nil)
		respondRemoteError(c, err)
	}
}
