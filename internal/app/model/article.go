package model

import "fmt"

// ArticleKind discriminates the two product variants the remote catalog
// serves. Every consumer must switch on it exhaustively; there is no
// implicit "has recipe, must be manufactured" detection.
type ArticleKind string

const (
	ArticleKindManufactured ArticleKind = "manufactured" // prepared dish with a recipe
	ArticleKindIngredient   ArticleKind = "ingredient"   // raw stocked insumo
)

// Article is the catalog product as presented to the storefront. Exactly one
// of Manufactured or Ingredient is set, matching Kind.
type Article struct {
	ID           uint        `json:"id"`
	Denomination string      `json:"denomination"`
	SalePrice    float64     `json:"sale_price"`
	ImageID      *uint       `json:"image_id,omitempty"`
	Image        *Image      `json:"image,omitempty"`
	CategoryID   uint        `json:"category_id"`
	Category     *Category   `json:"category,omitempty"`
	Retired      bool        `json:"retired"`
	Kind         ArticleKind `json:"kind"`

	Manufactured *ManufacturedInfo `json:"manufactured,omitempty"`
	Ingredient   *IngredientInfo   `json:"ingredient,omitempty"`
}

// ManufacturedInfo carries the fields only prepared articles have.
type ManufacturedInfo struct {
	Description      string       `json:"description"`
	EstimatedMinutes int          `json:"estimated_minutes"`
	Preparation      string       `json:"preparation,omitempty"`
	UnitID           *uint        `json:"unit_id,omitempty"`
	Recipe           []RecipeLine `json:"recipe"`
}

// RecipeLine is one ingredient entry of a manufactured article's recipe.
// Used only for admin-side cost display.
type RecipeLine struct {
	ID           uint     `json:"id,omitempty"`
	Quantity     float64  `json:"quantity"`
	IngredientID uint     `json:"ingredient_id"`
	Ingredient   *Article `json:"ingredient,omitempty"`
}

// IngredientInfo carries the fields only raw insumos have.
type IngredientInfo struct {
	PurchasePrice float64        `json:"purchase_price"`
	CurrentStock  float64        `json:"current_stock"`
	MinimumStock  float64        `json:"minimum_stock"`
	ForProduction bool           `json:"for_production"`
	UnitID        uint           `json:"unit_id"`
	Unit          *UnitOfMeasure `json:"unit,omitempty"`
}

// Validate checks the variant invariant: Kind matches the populated branch.
func (a *Article) Validate() error {
	switch a.Kind {
	case ArticleKindManufactured:
		if a.Manufactured == nil {
			return fmt.Errorf("article %d: kind is manufactured but detail is missing", a.ID)
		}
		if a.Ingredient != nil {
			return fmt.Errorf("article %d: manufactured article carries ingredient detail", a.ID)
		}
	case ArticleKindIngredient:
		if a.Ingredient == nil {
			return fmt.Errorf("article %d: kind is ingredient but detail is missing", a.ID)
		}
		if a.Manufactured != nil {
			return fmt.Errorf("article %d: ingredient carries manufactured detail", a.ID)
		}
	default:
		return fmt.Errorf("article %d: unknown kind %q", a.ID, a.Kind)
	}
	return nil
}

// RecipeCost sums ingredient purchase price times quantity over the recipe.
// Lines whose ingredient snapshot is missing or not an insumo contribute zero.
func (a *Article) RecipeCost() float64 {
	if a.Kind != ArticleKindManufactured || a.Manufactured == nil {
		return 0
	}
	var cost float64
	for _, line := range a.Manufactured.Recipe {
		if line.Ingredient == nil || line.Ingredient.Ingredient == nil {
			continue
		}
		cost += line.Ingredient.Ingredient.PurchasePrice * line.Quantity
	}
	return cost
}
