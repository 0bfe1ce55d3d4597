package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

var ErrInvalidDateRange = errors.New("invalid date range")

const rankingDateLayout = "2006-01-02"

// RankingService exposes the product sales ranking and its spreadsheet export.
type RankingService interface {
	List(ctx context.Context, from, until string) ([]model.ProductRanking, error)
	Export(ctx context.Context, from, until string) ([]byte, error)
}

type rankingService struct {
	client *remote.Client
}

func NewRankingService(client *remote.Client) RankingService {
	return &rankingService{client: client}
}

func (s *rankingService) List(ctx context.Context, from, until string) ([]model.ProductRanking, error) {
	fromDate, untilDate, err := parseDateRange(from, until)
	if err != nil {
		return nil, err
	}

	rankings, err := s.client.ListRankings(ctx, fromDate, untilDate)
	if err != nil {
		logger.Error("Failed to fetch product ranking", err, map[string]interface{}{
			"from":  fromDate,
			"until": untilDate,
		})
		return nil, err
	}
	return rankings, nil
}

// Export renders the ranking as an xlsx workbook ready for download.
func (s *rankingService) Export(ctx context.Context, from, until string) ([]byte, error) {
	rankings, err := s.List(ctx, from, until)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Ranking"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")

	headers := []string{"Producto", "Tipo", "Cantidad vendida"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, ranking := range rankings {
		values := []interface{}{ranking.Denomination, ranking.Kind, ranking.QuantitySold}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	logger.Info("Ranking exported", map[string]interface{}{
		"from":  from,
		"until": until,
		"rows":  len(rankings),
	})
	return buf.Bytes(), nil
}

func parseDateRange(from, until string) (string, string, error) {
	fromDate, err := time.Parse(rankingDateLayout, from)
	if err != nil {
		return "", "", ErrInvalidDateRange
	}
	untilDate, err := time.Parse(rankingDateLayout, until)
	if err != nil {
		return "", "", ErrInvalidDateRange
	}
	if fromDate.After(untilDate) {
		return "", "", ErrInvalidDateRange
	}
	return fromDate.Format(rankingDateLayout), untilDate.Format(rankingDateLayout), nil
}
