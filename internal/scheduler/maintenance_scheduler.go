package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/elbuensabor/storefront-backend/internal/app/service"
	"github.com/elbuensabor/storefront-backend/internal/checkout"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

// Pending orders older than this never came back from the payment gateway.
const stalePendingAge = 24 * time.Hour

// MaintenanceScheduler runs the periodic housekeeping jobs: purging pending
// orders the gateway never confirmed and refreshing the catalog cache.
type MaintenanceScheduler struct {
	cron           *cron.Cron
	pending        checkout.PendingStore
	catalogService service.CatalogService
}

func NewMaintenanceScheduler(pending checkout.PendingStore, catalogService service.CatalogService) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		cron:           cron.New(),
		pending:        pending,
		catalogService: catalogService,
	}
}

// Start registers the jobs and launches the cron loop.
func (s *MaintenanceScheduler) Start() error {
	// Every hour, drop pending orders that never got confirmed.
	_, err := s.cron.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		purged, err := s.pending.DeleteStale(ctx, stalePendingAge)
		if err != nil {
			logger.Error("Failed to purge stale pending orders", err, nil)
			return
		}
		if purged > 0 {
			logger.Info("Purged stale pending orders", map[string]interface{}{
				"count": purged,
			})
		}
	})
	if err != nil {
		logger.Error("Failed to add pending-order purge job", err, nil)
		return err
	}

	// Every 15 minutes, refresh the catalog cache so price changes made in
	// the admin console show up without waiting for the TTL.
	_, err = s.cron.AddFunc("*/15 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.catalogService.InvalidateCache(ctx)
		logger.Debug("Catalog cache invalidated by scheduler", nil)
	})
	if err != nil {
		logger.Error("Failed to add catalog refresh job", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Maintenance scheduler started", nil)
	return nil
}

// Stop halts the cron loop.
func (s *MaintenanceScheduler) Stop() {
	logger.Info("Stopping maintenance scheduler...", nil)
	s.cron.Stop()
	logger.Info("Maintenance scheduler stopped", nil)
}
