package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/internal/remote"
)

func validPromotion() *model.Promotion {
	return &model.Promotion{
		Denomination:     "Happy Hour",
		DateFrom:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DateUntil:        time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		PromotionalPrice: 15.0,
		Type:             model.PromotionHappyHour,
		Articles: []model.PromotionLine{
			{ArticleID: 1, Quantity: 2},
		},
	}
}

func TestPromotionService_Create_Validation(t *testing.T) {
	svc := NewPromotionService(remote.NewClient(config.RemoteAPIConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}))
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*model.Promotion)
		wantErr error
	}{
		{"empty denomination", func(p *model.Promotion) { p.Denomination = "" }, ErrDenominationRequired},
		{"inverted dates", func(p *model.Promotion) {
			p.DateFrom, p.DateUntil = p.DateUntil, p.DateFrom
		}, ErrPromotionDatesInvalid},
		{"zero price", func(p *model.Promotion) { p.PromotionalPrice = 0 }, ErrPromotionPriceInvalid},
		{"no articles", func(p *model.Promotion) { p.Articles = nil }, ErrPromotionWithoutArticles},
		{"line without article id", func(p *model.Promotion) {
			p.Articles = []model.PromotionLine{{Quantity: 1}}
		}, ErrPromotionWithoutArticles},
		{"line with zero quantity", func(p *model.Promotion) {
			p.Articles = []model.PromotionLine{{ArticleID: 1}}
		}, ErrPromotionWithoutArticles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promotion := validPromotion()
			tt.mutate(promotion)
			_, err := svc.Create(ctx, promotion)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPromotionService_SameDayWindowIsValid(t *testing.T) {
	// A one-day promotion has equal start and end dates.
	promotion := validPromotion()
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	promotion.DateFrom = day
	promotion.DateUntil = day

	assert.NoError(t, validatePromotion(promotion))
}

func TestPromotionService_Update_RequiresID(t *testing.T) {
	svc := NewPromotionService(remote.NewClient(config.RemoteAPIConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}))

	_, err := svc.Update(context.Background(), validPromotion())
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestPromotion_ActiveAt(t *testing.T) {
	promotion := validPromotion()

	assert.True(t, promotion.ActiveAt(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, promotion.ActiveAt(promotion.DateFrom))
	assert.True(t, promotion.ActiveAt(promotion.DateUntil))
	assert.False(t, promotion.ActiveAt(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, promotion.ActiveAt(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))

	promotion.Retired = true
	assert.False(t, promotion.ActiveAt(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPromotion_ActiveAt_HourWindow(t *testing.T) {
	promotion := validPromotion()
	promotion.HourFrom = "18:00:00"
	promotion.HourUntil = "20:00:00"

	at := func(hour, minute int) time.Time {
		return time.Date(2026, 6, 1, hour, minute, 0, 0, time.UTC)
	}

	assert.True(t, promotion.ActiveAt(at(19, 0)))
	assert.True(t, promotion.ActiveAt(at(18, 0)), "window start is inclusive")
	assert.True(t, promotion.ActiveAt(at(20, 0)), "window end is inclusive")
	assert.False(t, promotion.ActiveAt(at(17, 59)))
	assert.False(t, promotion.ActiveAt(at(20, 1)))

	// A window crossing midnight covers late evening and early morning.
	promotion.HourFrom = "22:00:00"
	promotion.HourUntil = "02:00:00"
	assert.True(t, promotion.ActiveAt(at(23, 30)))
	assert.True(t, promotion.ActiveAt(at(1, 30)))
	assert.False(t, promotion.ActiveAt(at(12, 0)))

	// Malformed or missing hour bounds leave the date window in charge.
	promotion.HourFrom = "no es una hora"
	assert.True(t, promotion.ActiveAt(at(12, 0)))
	promotion.HourFrom = ""
	promotion.HourUntil = ""
	assert.True(t, promotion.ActiveAt(at(12, 0)))
}
