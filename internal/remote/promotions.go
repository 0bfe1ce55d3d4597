package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
)

const promotionPath = "/promocion"

const promotionDateLayout = "2006-01-02"

type promotionWire struct {
	ID                  *uint    `json:"id"`
	Denomination        string   `json:"denominacion"`
	DiscountDescription string   `json:"descripcionDescuento"`
	DateFrom            string   `json:"fechaDesde"`
	DateUntil           string   `json:"fechaHasta"`
	HourFrom            string   `json:"horaDesde"`
	HourUntil           string   `json:"horaHasta"`
	PromotionalPrice    *float64 `json:"precioPromocional"`
	Type                string   `json:"tipoPromocion"`
	DiscountPercent     *float64 `json:"porcentajeDescuento"`
	MinimumAmount       *float64 `json:"montoMinimo"`
	ImageID             *uint    `json:"imagenId"`
	Retired             bool     `json:"baja"`
	Articles            []struct {
		ArticleID uint `json:"articuloId"`
		Quantity  int  `json:"cantidad"`
	} `json:"articulos"`
}

func parsePromotion(raw json.RawMessage) (*model.Promotion, error) {
	var wire promotionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("malformed promotion: %w", err)
	}
	if wire.ID == nil || *wire.ID == 0 {
		return nil, fmt.Errorf("promotion %q: missing id", wire.Denomination)
	}
	if wire.Denomination == "" {
		return nil, fmt.Errorf("promotion %d: missing denomination", *wire.ID)
	}
	if wire.PromotionalPrice == nil {
		return nil, fmt.Errorf("promotion %d: missing promotional price", *wire.ID)
	}

	dateFrom, err := time.Parse(promotionDateLayout, wire.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("promotion %d: invalid start date %q: %w", *wire.ID, wire.DateFrom, err)
	}
	dateUntil, err := time.Parse(promotionDateLayout, wire.DateUntil)
	if err != nil {
		return nil, fmt.Errorf("promotion %d: invalid end date %q: %w", *wire.ID, wire.DateUntil, err)
	}

	lines := make([]model.PromotionLine, 0, len(wire.Articles))
	for _, a := range wire.Articles {
		lines = append(lines, model.PromotionLine{ArticleID: a.ArticleID, Quantity: a.Quantity})
	}

	return &model.Promotion{
		ID:                  *wire.ID,
		Denomination:        wire.Denomination,
		DiscountDescription: wire.DiscountDescription,
		DateFrom:            dateFrom,
		DateUntil:           dateUntil,
		HourFrom:            wire.HourFrom,
		HourUntil:           wire.HourUntil,
		PromotionalPrice:    *wire.PromotionalPrice,
		Type:                model.PromotionType(wire.Type),
		DiscountPercent:     wire.DiscountPercent,
		MinimumAmount:       wire.MinimumAmount,
		ImageID:             wire.ImageID,
		Articles:            lines,
		Retired:             wire.Retired,
	}, nil
}

func encodePromotion(promotion *model.Promotion) map[string]interface{} {
	articles := make([]map[string]interface{}, 0, len(promotion.Articles))
	for _, line := range promotion.Articles {
		articles = append(articles, map[string]interface{}{
			"articuloId": line.ArticleID,
			"cantidad":   line.Quantity,
		})
	}

	payload := map[string]interface{}{
		"denominacion":         promotion.Denomination,
		"descripcionDescuento": promotion.DiscountDescription,
		"fechaDesde":           promotion.DateFrom.Format(promotionDateLayout),
		"fechaHasta":           promotion.DateUntil.Format(promotionDateLayout),
		"horaDesde":            promotion.HourFrom,
		"horaHasta":            promotion.HourUntil,
		"precioPromocional":    promotion.PromotionalPrice,
		"tipoPromocion":        string(promotion.Type),
		"articulos":            articles,
		"baja":                 promotion.Retired,
	}
	if promotion.ID != 0 {
		payload["id"] = promotion.ID
	}
	if promotion.DiscountPercent != nil {
		payload["porcentajeDescuento"] = *promotion.DiscountPercent
	}
	if promotion.MinimumAmount != nil {
		payload["montoMinimo"] = *promotion.MinimumAmount
	}
	if promotion.ImageID != nil {
		payload["imagenId"] = *promotion.ImageID
	}
	return payload
}

// ListPromotions fetches all promotions.
func (c *Client) ListPromotions(ctx context.Context) ([]model.Promotion, error) {
	body, err := c.get(ctx, promotionPath)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("malformed promotion list: %w", err)
	}

	promotions := make([]model.Promotion, 0, len(raws))
	for _, raw := range raws {
		promotion, err := parsePromotion(raw)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, *promotion)
	}
	return promotions, nil
}

// CreatePromotion submits a new promotion.
func (c *Client) CreatePromotion(ctx context.Context, promotion *model.Promotion) (*model.Promotion, error) {
	body, err := c.post(ctx, promotionPath, encodePromotion(promotion))
	if err != nil {
		return nil, err
	}
	return parsePromotion(body)
}

// UpdatePromotion updates an existing promotion.
func (c *Client) UpdatePromotion(ctx context.Context, promotion *model.Promotion) (*model.Promotion, error) {
	body, err := c.put(ctx, fmt.Sprintf("%s/%d", promotionPath, promotion.ID), encodePromotion(promotion))
	if err != nil {
		return nil, err
	}
	return parsePromotion(body)
}

// DeletePromotion soft-deletes a promotion.
func (c *Client) DeletePromotion(ctx context.Context, id uint) error {
	_, err := c.delete(ctx, fmt.Sprintf("%s/%d", promotionPath, id))
	return err
}
