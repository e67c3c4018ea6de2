package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Single-operator admin credential. Either the bcrypt hash or the
	// plain password must be set; the hash wins when both are present.
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	// External payment processor (Razorpay-compatible orders API).
	// Empty key id selects the dev gateway.
	PaymentAPIBase   string
	PaymentKeyID     string
	PaymentKeySecret string
	PaymentTimeout   time.Duration

	// Exchange-rate source. Empty key selects the static fallback table.
	ExchangeAPIBase string
	ExchangeAPIKey  string
	ExchangeTimeout time.Duration

	// Default window for the external expiry sweep endpoint.
	BookingExpiryWindow time.Duration

	// Rate limiting of public booking endpoints. Disabled when
	// RedisAddr is empty.
	RedisAddr         string
	RateLimitCapacity int
	RateLimitWindow   time.Duration

	// Outbound mail. Dev (log-only) mailer when SMTPHost is empty.
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	MailFrom   string
	AdminEmail string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error

	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	cfg.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	cfg.PaymentAPIBase = getEnv("PAYMENT_API_BASE", "https://api.razorpay.com/v1")
	cfg.PaymentKeyID = getEnv("PAYMENT_KEY_ID", "")
	cfg.PaymentKeySecret = getEnv("PAYMENT_KEY_SECRET", "")
	cfg.PaymentTimeout, err = getEnvAsDuration("PAYMENT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.ExchangeAPIBase = getEnv("EXCHANGE_API_BASE", "https://v6.exchangerate-api.com/v6")
	cfg.ExchangeAPIKey = getEnv("EXCHANGE_API_KEY", "")
	cfg.ExchangeTimeout, err = getEnvAsDuration("EXCHANGE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.BookingExpiryWindow, err = getEnvAsDuration("BOOKING_EXPIRY_WINDOW", 48*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RateLimitCapacity, err = getEnvAsInt("RATE_LIMIT_CAPACITY", 20)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow, err = getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort, err = getEnvAsInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPass = getEnv("SMTP_PASS", "")
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.SMTPUser)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// (e.g. "15m", "48h"). It returns the default value if unset.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
