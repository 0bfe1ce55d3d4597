package remote

import (
	"encoding/json"
	"fmt"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
)

// Wire shapes of the remote API. Field names follow the remote contract;
// they never leak past this package.

type articleWire struct {
	ID           *uint    `json:"id"`
	Denomination string   `json:"denominacion"`
	SalePrice    *float64 `json:"precioVenta"`
	ImageID      *uint    `json:"imagenId"`
	ImageURL     string   `json:"imagenUrl"`
	CategoryID   *uint    `json:"categoriaId"`
	Retired      bool     `json:"baja"`

	// manufactured-only
	Description      string           `json:"descripcion"`
	EstimatedMinutes int              `json:"tiempoEstimadoMinutos"`
	Preparation      string           `json:"preparacion"`
	UnitID           *uint            `json:"unidadMedidaId"`
	Recipe           []recipeLineWire `json:"detalles"`

	// ingredient-only
	PurchasePrice *float64 `json:"precioCompra"`
	CurrentStock  *float64 `json:"stockActual"`
	MinimumStock  *float64 `json:"stockMinimo"`
	ForProduction *bool    `json:"esParaElaborar"`
}

type recipeLineWire struct {
	ID           *uint           `json:"id"`
	Quantity     float64         `json:"cantidad"`
	IngredientID *uint           `json:"articuloInsumoId"`
	Ingredient   json.RawMessage `json:"articuloInsumo"`
}

// ParseManufactured validates a raw manufactured-article payload and maps
// it into the tagged model. It rejects payloads missing the fields the
// storefront depends on instead of defaulting them.
func ParseManufactured(raw json.RawMessage) (*model.Article, error) {
	var wire articleWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("malformed manufactured article: %w", err)
	}

	article, err := parseCommon(&wire)
	if err != nil {
		return nil, err
	}

	recipe := make([]model.RecipeLine, 0, len(wire.Recipe))
	for i, lineWire := range wire.Recipe {
		if lineWire.IngredientID == nil {
			return nil, fmt.Errorf("article %d: recipe line %d has no ingredient id", article.ID, i)
		}
		line := model.RecipeLine{
			Quantity:     lineWire.Quantity,
			IngredientID: *lineWire.IngredientID,
		}
		if lineWire.ID != nil {
			line.ID = *lineWire.ID
		}
		if len(lineWire.Ingredient) > 0 {
			nested, err := ParseIngredient(lineWire.Ingredient)
			if err != nil {
				return nil, fmt.Errorf("article %d: recipe line %d: %w", article.ID, i, err)
			}
			line.Ingredient = nested
		}
		recipe = append(recipe, line)
	}

	article.Kind = model.ArticleKindManufactured
	article.Manufactured = &model.ManufacturedInfo{
		Description:      wire.Description,
		EstimatedMinutes: wire.EstimatedMinutes,
		Preparation:      wire.Preparation,
		UnitID:           wire.UnitID,
		Recipe:           recipe,
	}
	return article, nil
}

// ParseIngredient validates a raw insumo payload and maps it into the
// tagged model.
func ParseIngredient(raw json.RawMessage) (*model.Article, error) {
	var wire articleWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("malformed ingredient article: %w", err)
	}

	article, err := parseCommon(&wire)
	if err != nil {
		return nil, err
	}

	if wire.PurchasePrice == nil {
		return nil, fmt.Errorf("ingredient %d: missing purchase price", article.ID)
	}
	if wire.UnitID == nil {
		return nil, fmt.Errorf("ingredient %d: missing unit of measure", article.ID)
	}

	info := &model.IngredientInfo{
		PurchasePrice: *wire.PurchasePrice,
		UnitID:        *wire.UnitID,
	}
	if wire.CurrentStock != nil {
		info.CurrentStock = *wire.CurrentStock
	}
	if wire.MinimumStock != nil {
		info.MinimumStock = *wire.MinimumStock
	}
	if wire.ForProduction != nil {
		info.ForProduction = *wire.ForProduction
	}

	article.Kind = model.ArticleKindIngredient
	article.Ingredient = info
	return article, nil
}

func parseCommon(wire *articleWire) (*model.Article, error) {
	if wire.ID == nil || *wire.ID == 0 {
		return nil, fmt.Errorf("article %q: missing id", wire.Denomination)
	}
	if wire.Denomination == "" {
		return nil, fmt.Errorf("article %d: missing denomination", *wire.ID)
	}
	if wire.SalePrice == nil {
		return nil, fmt.Errorf("article %d: missing sale price", *wire.ID)
	}
	if wire.CategoryID == nil {
		return nil, fmt.Errorf("article %d: missing category", *wire.ID)
	}

	article := &model.Article{
		ID:           *wire.ID,
		Denomination: wire.Denomination,
		SalePrice:    *wire.SalePrice,
		ImageID:      wire.ImageID,
		CategoryID:   *wire.CategoryID,
		Retired:      wire.Retired,
	}
	if wire.ImageID != nil || wire.ImageURL != "" {
		img := &model.Image{URL: wire.ImageURL}
		if wire.ImageID != nil {
			img.ID = *wire.ImageID
		}
		article.Image = img
	}
	return article, nil
}
