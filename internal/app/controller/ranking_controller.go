package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/internal/app/service"
	apperrors "github.com/elbuensabor/storefront-backend/internal/errors"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RankingController struct {
	rankingService service.RankingService
}

func NewRankingController(rankingService service.RankingService) *RankingController {
	return &RankingController{
		rankingService: rankingService,
	}
}

// List returns the product sales ranking for a date range
// GET /api/v1/admin/ranking?desde=YYYY-MM-DD&hasta=YYYY-MM-DD
func (ctrl *RankingController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from := c.Query("desde")
	until := c.Query("hasta")

	rankings, err := ctrl.rankingService.List(c.Request.Context(), from, until)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "El rango de fechas no es válido")
			return
		}
		log.Error("Failed to fetch ranking", err, map[string]interface{}{
			"from":  from,
			"until": until,
		})
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rankings": rankings,
		"count":    len(rankings),
	})
}

// Export downloads the ranking as an xlsx workbook
// GET /api/v1/admin/ranking/export?desde=YYYY-MM-DD&hasta=YYYY-MM-DD
func (ctrl *RankingController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from := c.Query("desde")
	until := c.Query("hasta")

	workbook, err := ctrl.rankingService.Export(c.Request.Context(), from, until)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "El rango de fechas no es válido")
			return
		}
		log.Error("Failed to export ranking", err, map[string]interface{}{
			"from":  from,
			"until": until,
		})
		respondRemoteError(c, err)
		return
	}

	filename := fmt.Sprintf("ranking_%s_%s.xlsx", from, until)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
