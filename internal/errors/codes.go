package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront frontend maps these codes to user-facing messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login requerido
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // email/contraseña inválidos
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token vencido
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // token inválido

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // entrada inválida
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // id inválido
	ValidationRequired      = "VALIDATION_REQUIRED"       // campo obligatorio
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // fuera de rango
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // formato inválido

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // línea inexistente
	CartEmpty        = "CART_EMPTY"          // carrito vacío

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutInvalidStep     = "CHECKOUT_INVALID_STEP"     // transición inválida
	CheckoutNotConfirmation = "CHECKOUT_NOT_CONFIRMATION" // falta llegar a confirmación
	CheckoutAlreadyComplete = "CHECKOUT_ALREADY_COMPLETE" // pedido ya enviado
	CheckoutInvalidDelivery = "CHECKOUT_INVALID_DELIVERY" // tipo de envío inválido
	CheckoutInvalidPayment  = "CHECKOUT_INVALID_PAYMENT"  // forma de pago inválida

	// ==================== Payment (PAYMENT_) ====================
	PaymentPreferenceFailed = "PAYMENT_PREFERENCE_FAILED" // no se pudo crear la preferencia
	PaymentPendingNotFound  = "PAYMENT_PENDING_NOT_FOUND" // sin pedido pendiente

	// ==================== Catalog / Admin (CATALOG_) ====================
	CatalogArticleNotFound = "CATALOG_ARTICLE_NOT_FOUND" // artículo inexistente
	CatalogInvalidArticle  = "CATALOG_INVALID_ARTICLE"   // artículo inválido
	CatalogEmptyRecipe     = "CATALOG_EMPTY_RECIPE"      // receta sin insumos
	CatalogInvalidPrice    = "CATALOG_INVALID_PRICE"     // precio inválido
	CatalogMissingCategory = "CATALOG_MISSING_CATEGORY"  // sin categoría

	// ==================== Promotion (PROMOTION_) ====================
	PromotionInvalidDates    = "PROMOTION_INVALID_DATES"    // ventana de fechas inválida
	PromotionInvalidPrice    = "PROMOTION_INVALID_PRICE"    // precio promocional inválido
	PromotionWithoutArticles = "PROMOTION_WITHOUT_ARTICLES" // sin artículos

	// ==================== Remote API (REMOTE_) ====================
	RemoteUnavailable = "REMOTE_UNAVAILABLE" // API remota caída
	RemoteRejected    = "REMOTE_REJECTED"    // API remota rechazó el pedido
	RemoteNotFound    = "REMOTE_NOT_FOUND"   // recurso remoto inexistente

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // error del servidor
	InternalConfigError = "INTERNAL_CONFIG_ERROR" // error de configuración
)
