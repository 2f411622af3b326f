package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
	}

	Providers struct {
		NASAPowerURL   string
		OpenMeteoURL   string
		NominatimURL   string
		UserAgent      string
		WeatherSource  string
		WeatherDays    int
		VegetationDays int
		RequestTimeout time.Duration
		FetchTimeout   time.Duration
	}

	Estimator struct {
		FactorTablePath string
		CostPolicy      string
	}

	Scheduler struct {
		Spec          string
		DefaultPlaces []string
	}

	Cache struct {
		Duration time.Duration
		MaxSize  int
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "30s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Providers.NASAPowerURL = getEnv("NASA_POWER_URL", "https://power.larc.nasa.gov/api")
	cfg.Providers.OpenMeteoURL = getEnv("OPENMETEO_ARCHIVE_URL", "https://archive-api.open-meteo.com/v1")
	cfg.Providers.NominatimURL = getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Providers.UserAgent = getEnv("GEOCODER_USER_AGENT", "ai-agri-optimizer")
	cfg.Providers.WeatherSource = getEnv("WEATHER_SOURCE", "nasapower")
	cfg.Providers.WeatherDays = parseInt(getEnv("WEATHER_DAYS", "14"))
	cfg.Providers.VegetationDays = parseInt(getEnv("NDVI_DAYS", "30"))
	cfg.Providers.RequestTimeout = parseDuration(getEnv("PROVIDER_TIMEOUT", "15s"))
	cfg.Providers.FetchTimeout = parseDuration(getEnv("FETCH_TIMEOUT", "90s"))

	cfg.Estimator.FactorTablePath = getEnv("FACTOR_TABLE_PATH", "")
	cfg.Estimator.CostPolicy = getEnv("COST_POLICY", "ndvi")

	cfg.Scheduler.Spec = getEnv("PREWARM_SCHEDULE", "@every 30m")
	cfg.Scheduler.DefaultPlaces = splitList(getEnv("DEFAULT_PLACES", "Madurai, Tamil Nadu;Ludhiana, Punjab;Nagpur, Maharashtra"))

	cfg.Cache.Duration = parseDuration(getEnv("CACHE_DURATION", "1h"))
	cfg.Cache.MaxSize = parseInt(getEnv("MAX_CACHE_SIZE", "1000"))

	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "3"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Providers.WeatherSource {
	case "nasapower", "openmeteo":
	default:
		return fmt.Errorf("unsupported WEATHER_SOURCE %q", c.Providers.WeatherSource)
	}
	if c.Providers.WeatherDays < 1 {
		return fmt.Errorf("WEATHER_DAYS must be at least 1")
	}
	if c.Providers.VegetationDays < 1 {
		return fmt.Errorf("NDVI_DAYS must be at least 1")
	}
	if c.Providers.RequestTimeout <= 0 || c.Providers.FetchTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT and FETCH_TIMEOUT must be positive")
	}
	if c.Cache.Duration <= 0 || c.Cache.MaxSize <= 0 {
		return fmt.Errorf("cache duration and size must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Places contain commas ("Madurai, Tamil Nadu"), so lists split on ';'.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
