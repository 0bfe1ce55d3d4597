package service

import (
	"context"
	"errors"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

var (
	ErrInvalidPurchasePrice = errors.New("purchase price must be greater than zero")
	ErrNegativeStock        = errors.New("stock levels cannot be negative")
	ErrUnitRequired         = errors.New("a unit of measure must be selected")
)

// IngredientService is the admin CRUD over insumos.
type IngredientService interface {
	List(ctx context.Context) ([]model.Article, error)
	Get(ctx context.Context, id uint) (*model.Article, error)
	Create(ctx context.Context, article *model.Article) (*model.Article, error)
	Update(ctx context.Context, article *model.Article) (*model.Article, error)
	Delete(ctx context.Context, id uint) error
	ListUnits(ctx context.Context) ([]model.UnitOfMeasure, error)
}

type ingredientService struct {
	client *remote.Client
}

func NewIngredientService(client *remote.Client) IngredientService {
	return &ingredientService{client: client}
}

func (s *ingredientService) List(ctx context.Context) ([]model.Article, error) {
	articles, err := s.client.ListIngredients(ctx)
	if err != nil {
		logger.Error("Failed to list ingredients", err, nil)
		return nil, err
	}
	return articles, nil
}

func (s *ingredientService) Get(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.client.GetIngredient(ctx, id)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *ingredientService) Create(ctx context.Context, article *model.Article) (*model.Article, error) {
	if err := validateIngredient(article); err != nil {
		logger.Warn("Rejected ingredient", map[string]interface{}{
			"denomination": article.Denomination,
			"error":        err.Error(),
		})
		return nil, err
	}

	created, err := s.client.CreateIngredient(ctx, article)
	if err != nil {
		logger.Error("Failed to create ingredient", err, map[string]interface{}{
			"denomination": article.Denomination,
		})
		return nil, err
	}

	logger.Info("Ingredient created", map[string]interface{}{
		"article_id":   created.ID,
		"denomination": created.Denomination,
	})
	return created, nil
}

func (s *ingredientService) Update(ctx context.Context, article *model.Article) (*model.Article, error) {
	if article.ID == 0 {
		return nil, ErrProductNotFound
	}
	if err := validateIngredient(article); err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateIngredient(ctx, article)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to update ingredient", err, map[string]interface{}{
			"article_id": article.ID,
		})
		return nil, err
	}

	logger.Info("Ingredient updated", map[string]interface{}{
		"article_id": updated.ID,
	})
	return updated, nil
}

func (s *ingredientService) Delete(ctx context.Context, id uint) error {
	if err := s.client.DeleteIngredient(ctx, id); err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to delete ingredient", err, map[string]interface{}{
			"article_id": id,
		})
		return err
	}

	logger.Info("Ingredient deleted", map[string]interface{}{
		"article_id": id,
	})
	return nil
}

func (s *ingredientService) ListUnits(ctx context.Context) ([]model.UnitOfMeasure, error) {
	return s.client.ListUnits(ctx)
}

func validateIngredient(article *model.Article) error {
	if article.Kind != model.ArticleKindIngredient || article.Ingredient == nil {
		return ErrWrongArticleKind
	}
	if article.Denomination == "" {
		return ErrDenominationRequired
	}
	if article.SalePrice <= 0 {
		return ErrInvalidSalePrice
	}
	if article.CategoryID == 0 {
		return ErrCategoryRequired
	}
	if article.Ingredient.PurchasePrice <= 0 {
		return ErrInvalidPurchasePrice
	}
	if article.Ingredient.CurrentStock < 0 || article.Ingredient.MinimumStock < 0 {
		return ErrNegativeStock
	}
	if article.Ingredient.UnitID == 0 {
		return ErrUnitRequired
	}
	return nil
}
