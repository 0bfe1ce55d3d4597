package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/internal/remote"
)

func newCatalogService(t *testing.T, handler http.HandlerFunc) CatalogService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := remote.NewClient(config.RemoteAPIConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	return NewCatalogService(client, nil, 0)
}

func TestCatalogService_ListProducts_FiltersRetired(t *testing.T) {
	service := newCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/articuloManufacturado", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "denominacion": "Pizza", "precioVenta": 12.99, "categoriaId": 3, "baja": false},
			{"id": 2, "denominacion": "Empanada", "precioVenta": 2.5, "categoriaId": 3, "baja": true}
		]`))
	})

	articles, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Pizza", articles[0].Denomination)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	service := newCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := service.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_GetProduct_RetiredIsHidden(t *testing.T) {
	service := newCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "denominacion": "Pizza", "precioVenta": 12.99, "categoriaId": 3, "baja": true}`))
	})

	_, err := service.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListCategories_FiltersRetired(t *testing.T) {
	service := newCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categoria", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "denominacion": "Pizzas", "baja": false},
			{"id": 2, "denominacion": "Vieja", "baja": true}
		]`))
	})

	categories, err := service.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Pizzas", categories[0].Denomination)
}

func TestCatalogService_ListActivePromotions_FiltersByWindow(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	lastWeek := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	service := newCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/promocion", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `[
			{"id": 1, "denominacion": "Vigente", "precioPromocional": 9.99, "fechaDesde": %q, "fechaHasta": %q, "articulos": []},
			{"id": 2, "denominacion": "Vencida", "precioPromocional": 5.0, "fechaDesde": %q, "fechaHasta": %q, "articulos": []},
			{"id": 3, "denominacion": "De baja", "precioPromocional": 7.0, "fechaDesde": %q, "fechaHasta": %q, "baja": true, "articulos": []}
		]`, today, nextWeek, lastWeek, yesterday, today, nextWeek)
	})

	promotions, err := service.ListActivePromotions(context.Background())
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, "Vigente", promotions[0].Denomination)
}

func TestCatalogService_ListProducts_RemoteFailure(t *testing.T) {
	service := newCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := service.ListProducts(context.Background())
	assert.ErrorIs(t, err, remote.ErrRemoteFailed)
}
