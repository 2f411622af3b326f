package services

import (
	"testing"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T, ttl time.Duration, size int) (*ObservationCache, *time.Time) {
	t.Helper()
	c := NewObservationCache(ttl, size, zap.NewNop())
	t.Cleanup(c.Stop)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestObservationCacheLocation(t *testing.T) {
	c, now := newTestCache(t, time.Minute, 10)

	c.SetLocation("Madurai,  Tamil Nadu", &models.Location{State: "Tamil Nadu"})

	loc, ok := c.GetLocation("madurai, tamil nadu")
	require.True(t, ok)
	assert.Equal(t, "Tamil Nadu", loc.State)

	*now = now.Add(2 * time.Minute)
	_, ok = c.GetLocation("madurai, tamil nadu")
	assert.False(t, ok)
}

func TestObservationCacheEvictsOldest(t *testing.T) {
	c, now := newTestCache(t, time.Hour, 2)

	c.SetObservations("a", &models.Observations{})
	*now = now.Add(time.Second)
	c.SetObservations("b", &models.Observations{})
	*now = now.Add(time.Second)
	c.SetObservations("c", &models.Observations{})

	_, ok := c.GetObservations("a")
	assert.False(t, ok)
	_, ok = c.GetObservations("b")
	assert.True(t, ok)
	_, ok = c.GetObservations("c")
	assert.True(t, ok)

	stats := c.GetStats()
	assert.Equal(t, 2, stats["observation_items"])
	assert.Equal(t, 2, stats["hits"])
	assert.Equal(t, 1, stats["misses"])
}

func TestObservationCacheRefreshKeepsOtherEntries(t *testing.T) {
	c, now := newTestCache(t, time.Hour, 2)

	c.SetObservations("a", &models.Observations{})
	*now = now.Add(time.Second)
	c.SetObservations("b", &models.Observations{})
	*now = now.Add(time.Second)
	c.SetObservations("b", &models.Observations{WeatherSource: "refreshed"})

	_, ok := c.GetObservations("a")
	assert.True(t, ok)
	obs, ok := c.GetObservations("b")
	require.True(t, ok)
	assert.Equal(t, "refreshed", obs.WeatherSource)

	c.SetLocation("Madurai", &models.Location{State: "Tamil Nadu"})
	c.SetLocation("Ludhiana", &models.Location{State: "Punjab"})
	c.SetLocation("madurai", &models.Location{State: "Tamil Nadu"})
	_, ok = c.GetLocation("Ludhiana")
	assert.True(t, ok)
}

func TestObservationCacheCleanup(t *testing.T) {
	c, now := newTestCache(t, time.Minute, 10)

	c.SetObservations("k", &models.Observations{})
	c.SetLocation("p", &models.Location{})
	*now = now.Add(time.Hour)
	c.cleanup()

	stats := c.GetStats()
	assert.Equal(t, 0, stats["observation_items"])
	assert.Equal(t, 0, stats["location_items"])
}

func TestObservationKeyRoundsCoordinates(t *testing.T) {
	assert.Equal(t, ObservationKey("nasa-power", 9.9252, 78.1198, 14, 30), ObservationKey("nasa-power", 9.9261, 78.1201, 14, 30))
	assert.NotEqual(t, ObservationKey("nasa-power", 9.92, 78.11, 14, 30), ObservationKey("open-meteo", 9.92, 78.11, 14, 30))
}

func TestObservationCacheStopIsIdempotent(t *testing.T) {
	c := NewObservationCache(time.Minute, 1, zap.NewNop())
	c.Stop()
	assert.NotPanics(t, c.Stop)
}
