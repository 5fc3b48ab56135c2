package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Stripe     StripeConfig
	RateLimit  RateLimitConfig
	Scheduler  SchedulerConfig
	Storefront StorefrontConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// LogLevel is the gorm log mode: silent, error, warn or info
	LogLevel string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	Currency      string
	// BaseURL overrides the Stripe API endpoint (stripe-mock, tests)
	BaseURL string
}

// RateLimitConfig bounds the public form endpoints (contact, subscribe)
type RateLimitConfig struct {
	RequestsPerMinute float64
	Burst             int
}

type SchedulerConfig struct {
	CartJanitorSpec string
	CartRetention   time.Duration
}

// StorefrontConfig drives the client side (cmd/storefront)
type StorefrontConfig struct {
	APIBaseURL      string
	IdentityBackend string // file, redis
	StateDir        string
	Profile         string
	OriginURL       string
	CatalogTimeout  time.Duration
	PollInterval    time.Duration
	PollRetries     int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	pollRetries, err := strconv.Atoi(getEnv("STOREFRONT_POLL_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid STOREFRONT_POLL_RETRIES: %w", err)
	}
	maxIdle, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}
	maxOpen, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}
	rpm, err := strconv.ParseFloat(getEnv("RATE_LIMIT_PER_MINUTE", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8001"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "mallow"),
			Password: getEnv("DB_PASSWORD", "mallow"),
			DBName:   getEnv("DB_NAME", "mallow"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			MaxIdleConns:    maxIdle,
			MaxOpenConns:    maxOpen,
			ConnMaxLifetime: parseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"), 30*time.Minute),
			LogLevel:        getEnv("DB_LOG_LEVEL", "silent"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("CORS_ORIGINS", "*")),
		},
		Stripe: StripeConfig{
			APIKey:        getEnv("STRIPE_API_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Currency:      getEnv("STRIPE_CURRENCY", "eur"),
			BaseURL:       getEnv("STRIPE_BASE_URL", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: rpm,
			Burst:             burst,
		},
		Scheduler: SchedulerConfig{
			CartJanitorSpec: getEnv("CART_JANITOR_SPEC", "0 3 * * *"),
			CartRetention:   parseDuration(getEnv("CART_RETENTION", "720h"), 720*time.Hour),
		},
		Storefront: StorefrontConfig{
			APIBaseURL:      strings.TrimRight(getEnv("REACT_APP_BACKEND_URL", "http://localhost:8001"), "/") + "/api",
			IdentityBackend: getEnv("STOREFRONT_IDENTITY_BACKEND", "file"),
			StateDir:        getEnv("STOREFRONT_STATE_DIR", defaultStateDir()),
			Profile:         getEnv("STOREFRONT_PROFILE", "default"),
			OriginURL:       getEnv("STOREFRONT_ORIGIN_URL", "http://localhost:3000"),
			CatalogTimeout:  parseDuration(getEnv("STOREFRONT_CATALOG_TIMEOUT", "8s"), 8*time.Second),
			PollInterval:    parseDuration(getEnv("STOREFRONT_POLL_INTERVAL", "2s"), 2*time.Second),
			PollRetries:     pollRetries,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "console"),
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

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LogLevel falls back to debug in development and info elsewhere
func (c *Config) LogLevel() string {
	if c.Log.Level != "" {
		return c.Log.Level
	}
	if c.Server.Environment == "development" {
		return "debug"
	}
	return "info"
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "mallow"
	}
	return ".mallow"
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

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
