package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
)

const categoryPath = "/categoria"

type categoryWire struct {
	ID           *uint  `json:"id"`
	Denomination string `json:"denominacion"`
	ParentID     *uint  `json:"categoriaPadreId"`
	BranchIDs    []uint `json:"sucursalIds"`
	Retired      bool   `json:"baja"`
}

func parseCategory(raw json.RawMessage) (*model.Category, error) {
	var wire categoryWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("malformed category: %w", err)
	}
	if wire.ID == nil || *wire.ID == 0 {
		return nil, fmt.Errorf("category %q: missing id", wire.Denomination)
	}
	if wire.Denomination == "" {
		return nil, fmt.Errorf("category %d: missing denomination", *wire.ID)
	}
	return &model.Category{
		ID:           *wire.ID,
		Denomination: wire.Denomination,
		ParentID:     wire.ParentID,
		BranchIDs:    wire.BranchIDs,
		Retired:      wire.Retired,
	}, nil
}

func encodeCategory(category *model.Category) map[string]interface{} {
	payload := map[string]interface{}{
		"denominacion": category.Denomination,
		"baja":         category.Retired,
	}
	if category.ID != 0 {
		payload["id"] = category.ID
	}
	if category.ParentID != nil {
		payload["categoriaPadreId"] = *category.ParentID
	}
	if len(category.BranchIDs) > 0 {
		payload["sucursalIds"] = category.BranchIDs
	}
	return payload
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	body, err := c.get(ctx, categoryPath)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("malformed category list: %w", err)
	}

	categories := make([]model.Category, 0, len(raws))
	for _, raw := range raws {
		category, err := parseCategory(raw)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, nil
}

// CreateCategory submits a new category.
func (c *Client) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	body, err := c.post(ctx, categoryPath, encodeCategory(category))
	if err != nil {
		return nil, err
	}
	return parseCategory(body)
}

// UpdateCategory updates an existing category.
func (c *Client) UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	body, err := c.put(ctx, fmt.Sprintf("%s/%d", categoryPath, category.ID), encodeCategory(category))
	if err != nil {
		return nil, err
	}
	return parseCategory(body)
}

// DeleteCategory soft-deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	_, err := c.delete(ctx, fmt.Sprintf("%s/%d", categoryPath, id))
	return err
}

// ListUnits fetches the units of measure.
func (c *Client) ListUnits(ctx context.Context) ([]model.UnitOfMeasure, error) {
	body, err := c.get(ctx, "/unidadMedida")
	if err != nil {
		return nil, err
	}

	var wires []struct {
		ID           uint   `json:"id"`
		Denomination string `json:"denominacion"`
	}
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, fmt.Errorf("malformed unit list: %w", err)
	}

	units := make([]model.UnitOfMeasure, 0, len(wires))
	for _, wire := range wires {
		units = append(units, model.UnitOfMeasure{
			ID:           wire.ID,
			Denomination: wire.Denomination,
		})
	}
	return units, nil
}
