package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "nasapower", cfg.Providers.WeatherSource)
	assert.Equal(t, 14, cfg.Providers.WeatherDays)
	assert.Equal(t, "ndvi", cfg.Estimator.CostPolicy)
	assert.Equal(t, time.Hour, cfg.Cache.Duration)
	assert.Equal(t, []string{"Madurai, Tamil Nadu", "Ludhiana, Punjab", "Nagpur, Maharashtra"}, cfg.Scheduler.DefaultPlaces)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
	assert.Equal(t, 90*time.Second, cfg.Providers.FetchTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FIBER_PORT", "9090")
	t.Setenv("WEATHER_SOURCE", "openmeteo")
	t.Setenv("COST_POLICY", "soil")
	t.Setenv("DEFAULT_PLACES", " Kochi ; ;Jaipur, Rajasthan")
	t.Setenv("CACHE_DURATION", "5m")
	t.Setenv("FETCH_TIMEOUT", "2m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "openmeteo", cfg.Providers.WeatherSource)
	assert.Equal(t, "soil", cfg.Estimator.CostPolicy)
	assert.Equal(t, []string{"Kochi", "Jaipur, Rajasthan"}, cfg.Scheduler.DefaultPlaces)
	assert.Equal(t, 5*time.Minute, cfg.Cache.Duration)
	assert.Equal(t, 2*time.Minute, cfg.Providers.FetchTimeout)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"WEATHER_SOURCE", "openweather"},
		{"WEATHER_DAYS", "0"},
		{"NDVI_DAYS", "x"},
		{"CACHE_DURATION", "soon"},
		{"MAX_CACHE_SIZE", "-1"},
		{"FETCH_TIMEOUT", "later"},
		{"PROVIDER_TIMEOUT", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
