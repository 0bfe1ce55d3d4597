package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elbuensabor/storefront-backend/internal/app/model"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage persists cart snapshots as one JSON row per cart key.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (g *GormStorage) Load(ctx context.Context, key string) ([]model.CartItem, error) {
	var snapshot model.CartSnapshot
	err := g.db.WithContext(ctx).First(&snapshot, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(snapshot.Payload), &items); err != nil {
		return nil, fmt.Errorf("malformed cart snapshot for key %s: %w", key, err)
	}
	return items, nil
}

func (g *GormStorage) Save(ctx context.Context, key string, items []model.CartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	logger.Debug("Saving cart snapshot", map[string]interface{}{
		"cart_key": key,
		"count":    len(items),
	})

	snapshot := model.CartSnapshot{Key: key, Payload: string(payload)}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snapshot).Error
}

func (g *GormStorage) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&model.CartSnapshot{}, "key = ?", key).Error
}
