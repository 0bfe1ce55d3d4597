package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPendingNotFound is returned when no pending order exists for the key.
var ErrPendingNotFound = errors.New("pending order not found")

// PendingStore keeps the order draft written right before a gateway
// redirect, keyed by cart key.
type PendingStore interface {
	Save(ctx context.Context, order model.PendingOrder) error
	Get(ctx context.Context, cartKey string) (*model.PendingOrder, error)
	Delete(ctx context.Context, cartKey string) error
	DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type gormPendingStore struct {
	db *gorm.DB
}

func NewGormPendingStore(db *gorm.DB) PendingStore {
	return &gormPendingStore{db: db}
}

func (s *gormPendingStore) Save(ctx context.Context, order model.PendingOrder) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"preference_id", "payload", "updated_at"}),
		}).
		Create(&order).Error
}

func (s *gormPendingStore) Get(ctx context.Context, cartKey string) (*model.PendingOrder, error) {
	var order model.PendingOrder
	err := s.db.WithContext(ctx).First(&order, "cart_key = ?", cartKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingNotFound
		}
		return nil, fmt.Errorf("failed to load pending order: %w", err)
	}
	return &order, nil
}

func (s *gormPendingStore) Delete(ctx context.Context, cartKey string) error {
	return s.db.WithContext(ctx).Delete(&model.PendingOrder{}, "cart_key = ?", cartKey).Error
}

func (s *gormPendingStore) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := s.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&model.PendingOrder{})
	return result.RowsAffected, result.Error
}
