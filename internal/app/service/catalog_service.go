package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var ErrProductNotFound = errors.New("product not found")

const catalogCacheKey = "catalog:manufactured"

// CatalogService serves the storefront read side: the active product list,
// categories and currently running promotions. All of it comes from the
// remote API; Redis only caches the product list.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Article, error)
	GetProduct(ctx context.Context, id uint) (*model.Article, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListActivePromotions(ctx context.Context) ([]model.Promotion, error)
	InvalidateCache(ctx context.Context)
}

type catalogService struct {
	client *remote.Client
	cache  *redis.Client // nil disables caching
	ttl    time.Duration
}

func NewCatalogService(client *remote.Client, cache *redis.Client, ttl time.Duration) CatalogService {
	return &catalogService{
		client: client,
		cache:  cache,
		ttl:    ttl,
	}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Article, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	articles, err := s.client.ListManufactured(ctx)
	if err != nil {
		logger.Error("Failed to fetch product list", err, nil)
		return nil, err
	}

	// The storefront only shows articles that are not retired.
	active := make([]model.Article, 0, len(articles))
	for _, article := range articles {
		if !article.Retired {
			active = append(active, article)
		}
	}

	s.toCache(ctx, active)

	logger.Info("Product list fetched", map[string]interface{}{
		"count": len(active),
	})
	return active, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.client.GetManufactured(ctx, id)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"article_id": id,
		})
		return nil, err
	}
	if article.Retired {
		return nil, ErrProductNotFound
	}
	return article, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		logger.Error("Failed to fetch categories", err, nil)
		return nil, err
	}

	active := make([]model.Category, 0, len(categories))
	for _, category := range categories {
		if !category.Retired {
			active = append(active, category)
		}
	}
	return active, nil
}

func (s *catalogService) ListActivePromotions(ctx context.Context) ([]model.Promotion, error) {
	promotions, err := s.client.ListPromotions(ctx)
	if err != nil {
		logger.Error("Failed to fetch promotions", err, nil)
		return nil, err
	}

	now := time.Now()
	active := make([]model.Promotion, 0, len(promotions))
	for _, promotion := range promotions {
		if promotion.ActiveAt(now) {
			active = append(active, promotion)
		}
	}
	return active, nil
}

func (s *catalogService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.Warn("Failed to invalidate catalog cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *catalogService) fromCache(ctx context.Context) []model.Article {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Catalog cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil
	}

	var articles []model.Article
	if err := json.Unmarshal([]byte(payload), &articles); err != nil {
		logger.Warn("Malformed catalog cache entry, ignoring", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return articles
}

func (s *catalogService) toCache(ctx context.Context, articles []model.Article) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(articles)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey, payload, s.ttl).Err(); err != nil {
		logger.Warn("Catalog cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
