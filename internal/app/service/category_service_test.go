package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
)

func TestCategoryService_Create_Valid(t *testing.T) {
	client := newRemoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/categoria", r.URL.Path)
		w.Write([]byte(`{"id": 3, "denominacion": "Pizzas"}`))
	})
	svc := NewCategoryService(client)

	created, err := svc.Create(context.Background(), &model.Category{Denomination: "Pizzas"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), created.ID)
}

func TestCategoryService_Create_RequiresDenomination(t *testing.T) {
	// No server call should happen; validation fails first.
	svc := NewCategoryService(remote.NewClient(config.RemoteAPIConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}))

	_, err := svc.Create(context.Background(), &model.Category{})
	assert.ErrorIs(t, err, ErrDenominationRequired)
}

func TestCategoryService_Update_Validation(t *testing.T) {
	svc := NewCategoryService(remote.NewClient(config.RemoteAPIConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}))
	ctx := context.Background()

	_, err := svc.Update(ctx, &model.Category{Denomination: "Pizzas"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = svc.Update(ctx, &model.Category{ID: 3})
	assert.ErrorIs(t, err, ErrDenominationRequired)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	client := newRemoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	svc := NewCategoryService(client)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
