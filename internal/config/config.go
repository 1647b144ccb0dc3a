package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NewRelic   NewRelicConfig
	MarketData MarketDataConfig
	Pricing    PricingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// MarketDataConfig holds configuration for the freight-rate feed.
type MarketDataConfig struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration // per-call budget; on expiry the engine proceeds without market data
	HistoryDays int           // historical window requested for confidence intervals
	SpotTTL     time.Duration // cache TTL for spot rates
	HistoryTTL  time.Duration // cache TTL for historical series
}

// PricingConfig holds the static cost model and margin configuration.
// All rates are EUR.
type PricingConfig struct {
	FuelRatePerKm      float64
	TollRatePerKm      float64
	DriverRatePerKm    float64
	DriverRatePerHour  float64
	AvgSpeedKmh        float64
	LoadingHours       float64
	InsuranceBase      float64
	InsuranceRatePerKg float64
	ADRSurchargePct    float64 // percentage of fuel cost
	TempSurchargePct   float64 // percentage of fuel cost
	ExpressFee         float64
	DedicatedFee       float64
	MinBaseCost        float64
	DefaultMarginPct   float64
	MinMarginEUR       float64
	VATPct             float64
	ValidityHours      int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "freight_pricing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "freight-pricing-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		MarketData: MarketDataConfig{
			BaseURL:     getEnv("MARKET_DATA_BASE_URL", "https://rates.example.com"),
			APIKey:      getEnv("MARKET_DATA_API_KEY", ""),
			Timeout:     getDurationEnv("MARKET_DATA_TIMEOUT", 5*time.Second),
			HistoryDays: getIntEnv("MARKET_DATA_HISTORY_DAYS", 30),
			SpotTTL:     getDurationEnv("MARKET_DATA_SPOT_TTL", 5*time.Minute),
			HistoryTTL:  getDurationEnv("MARKET_DATA_HISTORY_TTL", time.Hour),
		},
		Pricing: LoadPricing(),
	}
}

// LoadPricing loads the cost model configuration from environment
// variables. Defaults reflect a typical European FTL cost structure.
func LoadPricing() PricingConfig {
	return PricingConfig{
		FuelRatePerKm:      getFloatEnv("PRICING_FUEL_RATE_PER_KM", 0.35),
		TollRatePerKm:      getFloatEnv("PRICING_TOLL_RATE_PER_KM", 0.18),
		DriverRatePerKm:    getFloatEnv("PRICING_DRIVER_RATE_PER_KM", 0.55),
		DriverRatePerHour:  getFloatEnv("PRICING_DRIVER_RATE_PER_HOUR", 25.0),
		AvgSpeedKmh:        getFloatEnv("PRICING_AVG_SPEED_KMH", 65.0),
		LoadingHours:       getFloatEnv("PRICING_LOADING_HOURS", 2.0),
		InsuranceBase:      getFloatEnv("PRICING_INSURANCE_BASE", 25.0),
		InsuranceRatePerKg: getFloatEnv("PRICING_INSURANCE_RATE_PER_KG", 0.002),
		ADRSurchargePct:    getFloatEnv("PRICING_ADR_SURCHARGE_PCT", 15.0),
		TempSurchargePct:   getFloatEnv("PRICING_TEMP_SURCHARGE_PCT", 12.0),
		ExpressFee:         getFloatEnv("PRICING_EXPRESS_FEE", 75.0),
		DedicatedFee:       getFloatEnv("PRICING_DEDICATED_FEE", 120.0),
		MinBaseCost:        getFloatEnv("PRICING_MIN_BASE_COST", 150.0),
		DefaultMarginPct:   getFloatEnv("PRICING_DEFAULT_MARGIN_PCT", 15.0),
		MinMarginEUR:       getFloatEnv("PRICING_MIN_MARGIN_EUR", 50.0),
		VATPct:             getFloatEnv("PRICING_VAT_PCT", 22.0),
		ValidityHours:      getIntEnv("PRICING_VALIDITY_HOURS", 24),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
