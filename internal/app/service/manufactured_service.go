package service

import (
	"context"
	"errors"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

var (
	ErrDenominationRequired = errors.New("denomination is required")
	ErrInvalidSalePrice     = errors.New("sale price must be greater than zero")
	ErrCategoryRequired     = errors.New("a category must be selected")
	ErrEmptyRecipe          = errors.New("a manufactured article needs at least one recipe line")
	ErrWrongArticleKind     = errors.New("article has the wrong kind for this operation")
)

// ManufacturedCost pairs an article with its admin-side recipe cost.
type ManufacturedCost struct {
	Article model.Article `json:"article"`
	Cost    float64       `json:"cost"`
}

// ManufacturedService is the admin CRUD over prepared articles. Field
// validation happens here, before any remote call; a failed remote call
// changes nothing.
type ManufacturedService interface {
	List(ctx context.Context) ([]ManufacturedCost, error)
	Get(ctx context.Context, id uint) (*model.Article, error)
	Create(ctx context.Context, article *model.Article) (*model.Article, error)
	Update(ctx context.Context, article *model.Article) (*model.Article, error)
	Delete(ctx context.Context, id uint) error
}

type manufacturedService struct {
	client *remote.Client
}

func NewManufacturedService(client *remote.Client) ManufacturedService {
	return &manufacturedService{client: client}
}

func (s *manufacturedService) List(ctx context.Context) ([]ManufacturedCost, error) {
	articles, err := s.client.ListManufactured(ctx)
	if err != nil {
		logger.Error("Failed to list manufactured articles", err, nil)
		return nil, err
	}

	rows := make([]ManufacturedCost, 0, len(articles))
	for _, article := range articles {
		rows = append(rows, ManufacturedCost{
			Article: article,
			Cost:    article.RecipeCost(),
		})
	}
	return rows, nil
}

func (s *manufacturedService) Get(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.client.GetManufactured(ctx, id)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *manufacturedService) Create(ctx context.Context, article *model.Article) (*model.Article, error) {
	if err := validateManufactured(article); err != nil {
		logger.Warn("Rejected manufactured article", map[string]interface{}{
			"denomination": article.Denomination,
			"error":        err.Error(),
		})
		return nil, err
	}

	created, err := s.client.CreateManufactured(ctx, article)
	if err != nil {
		logger.Error("Failed to create manufactured article", err, map[string]interface{}{
			"denomination": article.Denomination,
		})
		return nil, err
	}

	logger.Info("Manufactured article created", map[string]interface{}{
		"article_id":   created.ID,
		"denomination": created.Denomination,
	})
	return created, nil
}

func (s *manufacturedService) Update(ctx context.Context, article *model.Article) (*model.Article, error) {
	if article.ID == 0 {
		return nil, ErrProductNotFound
	}
	if err := validateManufactured(article); err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateManufactured(ctx, article)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to update manufactured article", err, map[string]interface{}{
			"article_id": article.ID,
		})
		return nil, err
	}

	logger.Info("Manufactured article updated", map[string]interface{}{
		"article_id": updated.ID,
	})
	return updated, nil
}

func (s *manufacturedService) Delete(ctx context.Context, id uint) error {
	if err := s.client.DeleteManufactured(ctx, id); err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to delete manufactured article", err, map[string]interface{}{
			"article_id": id,
		})
		return err
	}

	logger.Info("Manufactured article deleted", map[string]interface{}{
		"article_id": id,
	})
	return nil
}

func validateManufactured(article *model.Article) error {
	if article.Kind != model.ArticleKindManufactured || article.Manufactured == nil {
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
	if len(article.Manufactured.Recipe) == 0 {
		return ErrEmptyRecipe
	}
	for _, line := range article.Manufactured.Recipe {
		if line.IngredientID == 0 || line.Quantity <= 0 {
			return ErrEmptyRecipe
		}
	}
	return nil
}
