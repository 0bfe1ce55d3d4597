package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/internal/app/controller"
	"github.com/elbuensabor/storefront-backend/internal/app/service"
	"github.com/elbuensabor/storefront-backend/internal/cart"
	"github.com/elbuensabor/storefront-backend/internal/checkout"
	"github.com/elbuensabor/storefront-backend/internal/db"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
	"github.com/elbuensabor/storefront-backend/internal/notify"
	"github.com/elbuensabor/storefront-backend/internal/remote"
	"github.com/elbuensabor/storefront-backend/internal/router"
	"github.com/elbuensabor/storefront-backend/internal/scheduler"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
	"github.com/elbuensabor/storefront-backend/pkg/payment/mercadopago"
	"github.com/elbuensabor/storefront-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting El Buen Sabor storefront backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Optional Redis: cart snapshots and the catalog cache use it when
	// enabled, otherwise both fall back to the relational database.
	var cartStorage cart.Storage = cart.NewGormStorage(db.GetDB())
	var catalogCache = redis.GetClient() // nil until Init
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, falling back to database storage", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
			cartStorage = cart.NewRedisStorage(redis.GetClient(), cfg.Cart.StoragePrefix)
			catalogCache = redis.GetClient()
		}
	}

	// Remote catalog and order API
	remoteClient := remote.NewClient(cfg.RemoteAPI)

	// Payment gateway
	mpClient, err := mercadopago.NewClient(mercadopago.Config{
		AccessToken: cfg.Payment.MercadoPago.AccessToken,
		BaseURL:     cfg.Payment.MercadoPago.BaseURL,
		SuccessURL:  cfg.Payment.MercadoPago.SuccessURL,
		FailureURL:  cfg.Payment.MercadoPago.FailureURL,
		PendingURL:  cfg.Payment.MercadoPago.PendingURL,
	})
	if err != nil {
		logger.Fatal("Failed to configure Mercado Pago client", err)
	}

	// Cart and checkout state
	carts := cart.NewManager(cartStorage)
	pendingStore := checkout.NewGormPendingStore(db.GetDB())
	checkouts := checkout.NewManager(remoteClient, mpClient, pendingStore)

	// Cart change notifications
	hub := notify.NewHub()
	go hub.Run()
	carts.OnChange(func(key string, snapshot cart.Snapshot) {
		hub.BroadcastCart(key, snapshot)
	})

	// Initialize services
	catalogService := service.NewCatalogService(remoteClient, catalogCache, cfg.Cart.CatalogCacheTTL)
	manufacturedService := service.NewManufacturedService(remoteClient)
	ingredientService := service.NewIngredientService(remoteClient)
	categoryService := service.NewCategoryService(remoteClient)
	promotionService := service.NewPromotionService(remoteClient)
	rankingService := service.NewRankingService(remoteClient)
	authService := service.NewAuthService(cfg.Admin, cfg.JWT)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(carts, catalogService)
	checkoutController := controller.NewCheckoutController(carts, checkouts)
	manufacturedController := controller.NewManufacturedController(manufacturedService)
	ingredientController := controller.NewIngredientController(ingredientService)
	categoryController := controller.NewCategoryController(categoryService)
	promotionController := controller.NewPromotionController(promotionService)
	rankingController := controller.NewRankingController(rankingService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Housekeeping jobs
	maintenance := scheduler.NewMaintenanceScheduler(pendingStore, catalogService)
	if err := maintenance.Start(); err != nil {
		logger.Fatal("Failed to start maintenance scheduler", err)
	}
	defer maintenance.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		cartController,
		checkoutController,
		manufacturedController,
		ingredientController,
		categoryController,
		promotionController,
		rankingController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
