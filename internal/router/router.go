package router

import (
	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/internal/app/controller"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
	"github.com/elbuensabor/storefront-backend/internal/notify"
)

type Router struct {
	authController         *controller.AuthController
	catalogController      *controller.CatalogController
	cartController         *controller.CartController
	checkoutController     *controller.CheckoutController
	manufacturedController *controller.ManufacturedController
	ingredientController   *controller.IngredientController
	categoryController     *controller.CategoryController
	promotionController    *controller.PromotionController
	rankingController      *controller.RankingController
	authMiddleware         *middleware.AuthMiddleware
	hub                    *notify.Hub
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	manufacturedController *controller.ManufacturedController,
	ingredientController *controller.IngredientController,
	categoryController *controller.CategoryController,
	promotionController *controller.PromotionController,
	rankingController *controller.RankingController,
	authMiddleware *middleware.AuthMiddleware,
	hub *notify.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		catalogController:      catalogController,
		cartController:         cartController,
		checkoutController:     checkoutController,
		manufacturedController: manufacturedController,
		ingredientController:   ingredientController,
		categoryController:     categoryController,
		promotionController:    promotionController,
		rankingController:      rankingController,
		authMiddleware:         authMiddleware,
		hub:                    hub,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "El Buen Sabor storefront API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
		}

		v1.GET("/productos", r.catalogController.ListProducts)
		v1.GET("/productos/:id", r.catalogController.GetProduct)
		v1.GET("/categorias", r.catalogController.ListCategories)
		v1.GET("/promociones", r.catalogController.ListPromotions)

		carrito := v1.Group("/carrito")
		{
			carrito.GET("", r.cartController.GetCart)
			carrito.POST("/items", r.cartController.AddItem)
			carrito.PUT("/items/:id", r.cartController.UpdateItem)
			carrito.DELETE("/items/:id", r.cartController.RemoveItem)
			carrito.DELETE("", r.cartController.ClearCart)
			carrito.GET("/ws", notify.ServeWS(r.hub))
		}

		co := v1.Group("/checkout")
		{
			co.GET("", r.checkoutController.GetState)
			co.POST("/next", r.checkoutController.Next)
			co.POST("/back", r.checkoutController.Back)
			co.PUT("/cliente", r.checkoutController.SetCustomer)
			co.PUT("/envio", r.checkoutController.SetDelivery)
			co.PUT("/pago", r.checkoutController.SetPayment)
			co.POST("/submit", r.checkoutController.Submit)
			co.GET("/pendiente", r.checkoutController.GetPending)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/articulosManufacturados", r.manufacturedController.List)
			admin.GET("/articulosManufacturados/:id", r.manufacturedController.Get)
			admin.POST("/articulosManufacturados", r.manufacturedController.Create)
			admin.PUT("/articulosManufacturados/:id", r.manufacturedController.Update)
			admin.DELETE("/articulosManufacturados/:id", r.manufacturedController.Delete)

			admin.GET("/articulosInsumos", r.ingredientController.List)
			admin.GET("/articulosInsumos/:id", r.ingredientController.Get)
			admin.POST("/articulosInsumos", r.ingredientController.Create)
			admin.PUT("/articulosInsumos/:id", r.ingredientController.Update)
			admin.DELETE("/articulosInsumos/:id", r.ingredientController.Delete)
			admin.GET("/unidadesMedida", r.ingredientController.ListUnits)

			admin.GET("/categorias", r.categoryController.List)
			admin.POST("/categorias", r.categoryController.Create)
			admin.PUT("/categorias/:id", r.categoryController.Update)
			admin.DELETE("/categorias/:id", r.categoryController.Delete)

			admin.GET("/promociones", r.promotionController.List)
			admin.POST("/promociones", r.promotionController.Create)
			admin.PUT("/promociones/:id", r.promotionController.Update)
			admin.DELETE("/promociones/:id", r.promotionController.Delete)

			admin.GET("/ranking", r.rankingController.List)
			admin.GET("/ranking/export", r.rankingController.Export)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Cart-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Cart-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
