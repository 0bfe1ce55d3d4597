package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	RemoteAPI RemoteAPIConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Payment   PaymentConfig
	Admin     AdminConfig
	Cart      CartConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// RemoteAPIConfig points at the El Buen Sabor REST API that owns all
// business logic. This service only presents its state.
type RemoteAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file path when Driver == "sqlite"
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type PaymentConfig struct {
	MercadoPago MercadoPagoConfig
}

type MercadoPagoConfig struct {
	AccessToken string
	PublicKey   string
	BaseURL     string
	SuccessURL  string
	FailureURL  string
	PendingURL  string
}

// AdminConfig holds the single configured admin console account.
// The password is stored as a bcrypt hash, never plain text.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

type CartConfig struct {
	StoragePrefix   string
	CatalogCacheTTL time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		RemoteAPI: RemoteAPIConfig{
			BaseURL: getEnv("REMOTE_API_URL", "http://localhost:9000/api"),
			Timeout: parseDuration(getEnv("REMOTE_API_TIMEOUT", "30s"), 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "buensabor_storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_SQLITE_PATH", "storefront.db"),
		},
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Payment: PaymentConfig{
			MercadoPago: MercadoPagoConfig{
				AccessToken: getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
				PublicKey:   getEnv("MERCADOPAGO_PUBLIC_KEY", ""),
				BaseURL:     getEnv("MERCADOPAGO_BASE_URL", "https://api.mercadopago.com/checkout"),
				SuccessURL:  getEnv("MERCADOPAGO_SUCCESS_URL", "http://localhost:5173/order-confirmation"),
				FailureURL:  getEnv("MERCADOPAGO_FAILURE_URL", "http://localhost:5173/order-failed"),
				PendingURL:  getEnv("MERCADOPAGO_PENDING_URL", "http://localhost:5173/order-confirmation"),
			},
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", "admin@elbuensabor.com"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Cart: CartConfig{
			StoragePrefix:   getEnv("CART_STORAGE_PREFIX", "ebs-cart"),
			CatalogCacheTTL: parseDuration(getEnv("CATALOG_CACHE_TTL", "5m"), 5*time.Minute),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
