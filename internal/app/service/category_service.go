package service

import (
	"context"
	"errors"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService is the admin CRUD over categories.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	client *remote.Client
}

func NewCategoryService(client *remote.Client) CategoryService {
	return &categoryService{client: client}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Denomination == "" {
		return nil, ErrDenominationRequired
	}

	created, err := s.client.CreateCategory(ctx, category)
	if err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"denomination": category.Denomination,
		})
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id":  created.ID,
		"denomination": created.Denomination,
	})
	return created, nil
}

func (s *categoryService) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.ID == 0 {
		return nil, ErrCategoryNotFound
	}
	if category.Denomination == "" {
		return nil, ErrDenominationRequired
	}

	updated, err := s.client.UpdateCategory(ctx, category)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return nil, err
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return ErrCategoryNotFound
		}
		logger.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}
