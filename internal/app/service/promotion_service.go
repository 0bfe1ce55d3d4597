package service

import (
	"context"
	"errors"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

var (
	ErrPromotionNotFound        = errors.New("promotion not found")
	ErrPromotionDatesInvalid    = errors.New("promotion start date must not be after its end date")
	ErrPromotionPriceInvalid    = errors.New("promotional price must be greater than zero")
	ErrPromotionWithoutArticles = errors.New("a promotion needs at least one article")
)

// PromotionService is the admin CRUD over promotions.
type PromotionService interface {
	List(ctx context.Context) ([]model.Promotion, error)
	Create(ctx context.Context, promotion *model.Promotion) (*model.Promotion, error)
	Update(ctx context.Context, promotion *model.Promotion) (*model.Promotion, error)
	Delete(ctx context.Context, id uint) error
}

type promotionService struct {
	client *remote.Client
}

func NewPromotionService(client *remote.Client) PromotionService {
	return &promotionService{client: client}
}

func (s *promotionService) List(ctx context.Context) ([]model.Promotion, error) {
	promotions, err := s.client.ListPromotions(ctx)
	if err != nil {
		logger.Error("Failed to list promotions", err, nil)
		return nil, err
	}
	return promotions, nil
}

func (s *promotionService) Create(ctx context.Context, promotion *model.Promotion) (*model.Promotion, error) {
	if err := validatePromotion(promotion); err != nil {
		logger.Warn("Rejected promotion", map[string]interface{}{
			"denomination": promotion.Denomination,
			"error":        err.Error(),
		})
		return nil, err
	}

	created, err := s.client.CreatePromotion(ctx, promotion)
	if err != nil {
		logger.Error("Failed to create promotion", err, map[string]interface{}{
			"denomination": promotion.Denomination,
		})
		return nil, err
	}

	logger.Info("Promotion created", map[string]interface{}{
		"promotion_id": created.ID,
		"denomination": created.Denomination,
	})
	return created, nil
}

func (s *promotionService) Update(ctx context.Context, promotion *model.Promotion) (*model.Promotion, error) {
	if promotion.ID == 0 {
		return nil, ErrPromotionNotFound
	}
	if err := validatePromotion(promotion); err != nil {
		return nil, err
	}

	updated, err := s.client.UpdatePromotion(ctx, promotion)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return nil, ErrPromotionNotFound
		}
		logger.Error("Failed to update promotion", err, map[string]interface{}{
			"promotion_id": promotion.ID,
		})
		return nil, err
	}
	return updated, nil
}

func (s *promotionService) Delete(ctx context.Context, id uint) error {
	if err := s.client.DeletePromotion(ctx, id); err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return ErrPromotionNotFound
		}
		logger.Error("Failed to delete promotion", err, map[string]interface{}{
			"promotion_id": id,
		})
		return err
	}
	return nil
}

func validatePromotion(promotion *model.Promotion) error {
	if promotion.Denomination == "" {
		return ErrDenominationRequired
	}
	if promotion.DateFrom.After(promotion.DateUntil) {
		return ErrPromotionDatesInvalid
	}
	if promotion.PromotionalPrice <= 0 {
		return ErrPromotionPriceInvalid
	}
	if len(promotion.Articles) == 0 {
		return ErrPromotionWithoutArticles
	}
	for _, line := range promotion.Articles {
		if line.ArticleID == 0 || line.Quantity <= 0 {
			return ErrPromotionWithoutArticles
		}
	}
	return nil
}
