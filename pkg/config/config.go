package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP
	HTTPAddr string `conf:"default::8080,env:HTTP_ADDR"`

	// Price API — upstream source resolving a product name to a unit price
	PriceAPIBaseURL string        `conf:"default:https://equalexperts.github.io/backend-take-home-test-data,env:PRICE_API_BASE_URL"`
	PriceAPITimeout time.Duration `conf:"default:5s,env:PRICE_API_TIMEOUT"`

	// Tax — flat sales-tax rate applied to the cart subtotal, in percent
	TaxRatePercent string `conf:"default:12.5,env:TAX_RATE_PERCENT"`

	// Redis — read-through cache for price lookups
	RedisURL      string        `conf:"default:redis://localhost:6379,env:REDIS_URL"`
	PriceCacheTTL time.Duration `conf:"default:5m,env:PRICE_CACHE_TTL"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// CORS — comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:cartengine,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateTaxRate(cfg.TaxRatePercent); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TaxRate returns the configured tax rate as a decimal.
// Load has already validated the value, so parse failures cannot occur here.
func (c *Config) TaxRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.TaxRatePercent)
	return rate
}

func validateTaxRate(s string) error {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("TAX_RATE_PERCENT %q is not a valid decimal: %w", s, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("TAX_RATE_PERCENT must be non-negative, got %s", rate)
	}
	return nil
}

// ValidateForProduction enforces deployment requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.PriceAPIBaseURL == "" {
		errs = append(errs, "PRICE_API_BASE_URL must be set")
	}

	if cfg.CORSAllowedOrigins == "*" {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must not be '*' in production")
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
