package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

const (
	manufacturedPath = "/articuloManufacturado"
	ingredientPath   = "/articuloInsumo"
)

// ListManufactured fetches all manufactured articles. Rows that fail
// validation are skipped and logged rather than failing the whole list.
func (c *Client) ListManufactured(ctx context.Context) ([]model.Article, error) {
	body, err := c.get(ctx, manufacturedPath)
	if err != nil {
		return nil, err
	}
	return parseArticleList(body, model.ArticleKindManufactured)
}

// GetManufactured fetches one manufactured article by id.
func (c *Client) GetManufactured(ctx context.Context, id uint) (*model.Article, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d", manufacturedPath, id))
	if err != nil {
		return nil, err
	}
	return ParseManufactured(body)
}

// CreateManufactured submits a new manufactured article.
func (c *Client) CreateManufactured(ctx context.Context, article *model.Article) (*model.Article, error) {
	body, err := c.post(ctx, manufacturedPath, encodeManufactured(article))
	if err != nil {
		return nil, err
	}
	return ParseManufactured(body)
}

// UpdateManufactured updates an existing manufactured article.
func (c *Client) UpdateManufactured(ctx context.Context, article *model.Article) (*model.Article, error) {
	body, err := c.put(ctx, fmt.Sprintf("%s/%d", manufacturedPath, article.ID), encodeManufactured(article))
	if err != nil {
		return nil, err
	}
	return ParseManufactured(body)
}

// DeleteManufactured soft-deletes a manufactured article.
func (c *Client) DeleteManufactured(ctx context.Context, id uint) error {
	_, err := c.delete(ctx, fmt.Sprintf("%s/%d", manufacturedPath, id))
	return err
}

// ListIngredients fetches all insumos.
func (c *Client) ListIngredients(ctx context.Context) ([]model.Article, error) {
	body, err := c.get(ctx, ingredientPath)
	if err != nil {
		return nil, err
	}
	return parseArticleList(body, model.ArticleKindIngredient)
}

// GetIngredient fetches one insumo by id.
func (c *Client) GetIngredient(ctx context.Context, id uint) (*model.Article, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d", ingredientPath, id))
	if err != nil {
		return nil, err
	}
	return ParseIngredient(body)
}

// CreateIngredient submits a new insumo.
func (c *Client) CreateIngredient(ctx context.Context, article *model.Article) (*model.Article, error) {
	body, err := c.post(ctx, ingredientPath, encodeIngredient(article))
	if err != nil {
		return nil, err
	}
	return ParseIngredient(body)
}

// UpdateIngredient updates an existing insumo.
func (c *Client) UpdateIngredient(ctx context.Context, article *model.Article) (*model.Article, error) {
	body, err := c.put(ctx, fmt.Sprintf("%s/%d", ingredientPath, article.ID), encodeIngredient(article))
	if err != nil {
		return nil, err
	}
	return ParseIngredient(body)
}

// DeleteIngredient soft-deletes an insumo.
func (c *Client) DeleteIngredient(ctx context.Context, id uint) error {
	_, err := c.delete(ctx, fmt.Sprintf("%s/%d", ingredientPath, id))
	return err
}

func parseArticleList(body []byte, kind model.ArticleKind) ([]model.Article, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("malformed article list: %w", err)
	}

	articles := make([]model.Article, 0, len(raws))
	for _, raw := range raws {
		var article *model.Article
		var err error
		switch kind {
		case model.ArticleKindManufactured:
			article, err = ParseManufactured(raw)
		case model.ArticleKindIngredient:
			article, err = ParseIngredient(raw)
		default:
			return nil, fmt.Errorf("unknown article kind %q", kind)
		}
		if err != nil {
			logger.Warn("Skipping invalid article from remote list", map[string]interface{}{
				"kind":  string(kind),
				"error": err.Error(),
			})
			continue
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

func encodeManufactured(article *model.Article) map[string]interface{} {
	payload := encodeCommon(article)
	if article.Manufactured == nil {
		return payload
	}
	payload["descripcion"] = article.Manufactured.Description
	payload["tiempoEstimadoMinutos"] = article.Manufactured.EstimatedMinutes
	payload["preparacion"] = article.Manufactured.Preparation
	if article.Manufactured.UnitID != nil {
		payload["unidadMedidaId"] = *article.Manufactured.UnitID
	}

	lines := make([]map[string]interface{}, 0, len(article.Manufactured.Recipe))
	for _, line := range article.Manufactured.Recipe {
		lines = append(lines, map[string]interface{}{
			"cantidad":         line.Quantity,
			"articuloInsumoId": line.IngredientID,
		})
	}
	payload["detalles"] = lines
	return payload
}

func encodeIngredient(article *model.Article) map[string]interface{} {
	payload := encodeCommon(article)
	if article.Ingredient == nil {
		return payload
	}
	payload["precioCompra"] = article.Ingredient.PurchasePrice
	payload["stockActual"] = article.Ingredient.CurrentStock
	payload["stockMinimo"] = article.Ingredient.MinimumStock
	payload["esParaElaborar"] = article.Ingredient.ForProduction
	payload["unidadMedidaId"] = article.Ingredient.UnitID
	return payload
}

func encodeCommon(article *model.Article) map[string]interface{} {
	payload := map[string]interface{}{
		"denominacion": article.Denomination,
		"precioVenta":  article.SalePrice,
		"categoriaId":  article.CategoryID,
		"baja":         article.Retired,
	}
	if article.ID != 0 {
		payload["id"] = article.ID
	}
	if article.ImageID != nil {
		payload["imagenId"] = *article.ImageID
	}
	return payload
}
