package remote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
)

func TestParseManufactured_Full(t *testing.T) {
	raw := json.RawMessage(`{
		"id": 7,
		"denominacion": "Pizza Napolitana",
		"precioVenta": 14.5,
		"imagenId": 3,
		"imagenUrl": "https://cdn.example.com/pizza.jpg",
		"categoriaId": 2,
		"baja": false,
		"descripcion": "Con tomate y albahaca",
		"tiempoEstimadoMinutos": 20,
		"detalles": [
			{
				"id": 100,
				"cantidad": 0.3,
				"articuloInsumoId": 11,
				"articuloInsumo": {
					"id": 11,
					"denominacion": "Harina",
					"precioVenta": 0,
					"categoriaId": 9,
					"precioCompra": 1.2,
					"stockActual": 50,
					"stockMinimo": 10,
					"esParaElaborar": true,
					"unidadMedidaId": 1
				}
			}
		]
	}`)

	article, err := ParseManufactured(raw)
	require.NoError(t, err)
	require.NoError(t, article.Validate())

	assert.Equal(t, uint(7), article.ID)
	assert.Equal(t, "Pizza Napolitana", article.Denomination)
	assert.Equal(t, 14.5, article.SalePrice)
	assert.Equal(t, model.ArticleKindManufactured, article.Kind)
	assert.False(t, article.Retired)
	require.NotNil(t, article.Image)
	assert.Equal(t, "https://cdn.example.com/pizza.jpg", article.Image.URL)

	require.NotNil(t, article.Manufactured)
	assert.Equal(t, "Con tomate y albahaca", article.Manufactured.Description)
	assert.Equal(t, 20, article.Manufactured.EstimatedMinutes)
	require.Len(t, article.Manufactured.Recipe, 1)

	line := article.Manufactured.Recipe[0]
	assert.Equal(t, uint(11), line.IngredientID)
	assert.Equal(t, 0.3, line.Quantity)
	require.NotNil(t, line.Ingredient)
	assert.Equal(t, model.ArticleKindIngredient, line.Ingredient.Kind)
	assert.Equal(t, 1.2, line.Ingredient.Ingredient.PurchasePrice)
}

func TestParseManufactured_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no id", `{"denominacion": "Pizza", "precioVenta": 10, "categoriaId": 1}`},
		{"zero id", `{"id": 0, "denominacion": "Pizza", "precioVenta": 10, "categoriaId": 1}`},
		{"no denomination", `{"id": 1, "precioVenta": 10, "categoriaId": 1}`},
		{"no price", `{"id": 1, "denominacion": "Pizza", "categoriaId": 1}`},
		{"no category", `{"id": 1, "denominacion": "Pizza", "precioVenta": 10}`},
		{"recipe line without ingredient id", `{
			"id": 1, "denominacion": "Pizza", "precioVenta": 10, "categoriaId": 1,
			"detalles": [{"cantidad": 1}]
		}`},
		{"not json", `"pizza"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManufactured(json.RawMessage(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseIngredient_Full(t *testing.T) {
	raw := json.RawMessage(`{
		"id": 11,
		"denominacion": "Harina",
		"precioVenta": 0,
		"categoriaId": 9,
		"baja": false,
		"precioCompra": 1.2,
		"stockActual": 50,
		"stockMinimo": 10,
		"esParaElaborar": true,
		"unidadMedidaId": 1
	}`)

	article, err := ParseIngredient(raw)
	require.NoError(t, err)
	require.NoError(t, article.Validate())

	assert.Equal(t, model.ArticleKindIngredient, article.Kind)
	require.NotNil(t, article.Ingredient)
	assert.Equal(t, 1.2, article.Ingredient.PurchasePrice)
	assert.Equal(t, 50.0, article.Ingredient.CurrentStock)
	assert.Equal(t, 10.0, article.Ingredient.MinimumStock)
	assert.True(t, article.Ingredient.ForProduction)
	assert.Equal(t, uint(1), article.Ingredient.UnitID)
	assert.Nil(t, article.Manufactured)
}

func TestParseIngredient_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no purchase price", `{"id": 11, "denominacion": "Harina", "precioVenta": 0, "categoriaId": 9, "unidadMedidaId": 1}`},
		{"no unit", `{"id": 11, "denominacion": "Harina", "precioVenta": 0, "categoriaId": 9, "precioCompra": 1.2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIngredient(json.RawMessage(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseManufactured_VariantInvariant(t *testing.T) {
	raw := json.RawMessage(`{"id": 1, "denominacion": "Pizza", "precioVenta": 10, "categoriaId": 1, "detalles": []}`)

	article, err := ParseManufactured(raw)
	require.NoError(t, err)

	// Exactly one variant branch is populated.
	assert.NotNil(t, article.Manufactured)
	assert.Nil(t, article.Ingredient)
	assert.NoError(t, article.Validate())
}
