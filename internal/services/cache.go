package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"go.uber.org/zap"
)

type CacheItem[T any] struct {
	Data      T
	ExpiresAt time.Time
}

// ObservationCache keeps geocoding answers and fetched observation series.
// Estimation results are never cached.
type ObservationCache struct {
	mu              sync.RWMutex
	locations       map[string]CacheItem[*models.Location]     // normalized place -> location
	observations    map[string]CacheItem[*models.Observations] // coordinate key -> series
	logger          *zap.Logger
	defaultDuration time.Duration
	maxSize         int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
	hits, misses    int
}

func NewObservationCache(defaultDuration time.Duration, maxSize int, logger *zap.Logger) *ObservationCache {
	cache := &ObservationCache{
		locations:       make(map[string]CacheItem[*models.Location]),
		observations:    make(map[string]CacheItem[*models.Observations]),
		logger:          logger,
		defaultDuration: defaultDuration,
		maxSize:         maxSize,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go cache.startCleanup()

	return cache
}

func placeKey(place string) string {
	return strings.Join(strings.Fields(strings.ToLower(place)), " ")
}

// ObservationKey rounds coordinates to about a kilometre so nearby lookups
// share upstream fetches.
func ObservationKey(source string, lat, lon float64, weatherDays, ndviDays int) string {
	return fmt.Sprintf("%s|%.2f|%.2f|%d|%d", source, lat, lon, weatherDays, ndviDays)
}

func (c *ObservationCache) SetLocation(place string, loc *models.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := put(c, c.locations, placeKey(place), loc)

	c.logger.Debug("Location cached",
		zap.String("place", place),
		zap.Time("expires_at", expiresAt))
}

func (c *ObservationCache) GetLocation(place string) (*models.Location, bool) {
	return get(c, c.locations, placeKey(place))
}

func (c *ObservationCache) SetObservations(key string, obs *models.Observations) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := put(c, c.observations, key, obs)

	c.logger.Debug("Observations cached",
		zap.String("key", key),
		zap.Int("weather_samples", len(obs.Weather)),
		zap.Int("ndvi_samples", len(obs.Vegetation)),
		zap.Time("expires_at", expiresAt))
}

func (c *ObservationCache) GetObservations(key string) (*models.Observations, bool) {
	return get(c, c.observations, key)
}

// put stores data under key with the default TTL. Refreshing an existing key
// never evicts another entry. Callers hold c.mu.
func put[T any](c *ObservationCache, m map[string]CacheItem[T], key string, data T) time.Time {
	if _, exists := m[key]; !exists && len(m) >= c.maxSize {
		evictOldest(m)
	}

	expiresAt := c.now().Add(c.defaultDuration)
	m[key] = CacheItem[T]{Data: data, ExpiresAt: expiresAt}
	return expiresAt
}

func get[T any](c *ObservationCache, m map[string]CacheItem[T], key string) (T, bool) {
	c.mu.RLock()
	item, exists := m[key]
	c.mu.RUnlock()

	var zero T
	if !exists {
		c.count(false)
		return zero, false
	}

	if c.now().After(item.ExpiresAt) {
		c.mu.Lock()
		delete(m, key)
		c.mu.Unlock()
		c.count(false)
		return zero, false
	}

	c.count(true)
	return item.Data, true
}

func (c *ObservationCache) count(hit bool) {
	c.mu.Lock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
}

func evictOldest[T any](m map[string]CacheItem[T]) {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range m {
		if oldestKey == "" || item.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(m, oldestKey)
	}
}

func (c *ObservationCache) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *ObservationCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expiredCount := removeExpired(c.locations, now) + removeExpired(c.observations, now)

	if expiredCount > 0 {
		c.logger.Debug("Cleaned expired cache items",
			zap.Int("count", expiredCount))
	}
}

func removeExpired[T any](m map[string]CacheItem[T], now time.Time) int {
	n := 0
	for key, item := range m {
		if now.After(item.ExpiresAt) {
			delete(m, key)
			n++
		}
	}
	return n
}

func (c *ObservationCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCleanup) })
}

func (c *ObservationCache) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"location_items":    len(c.locations),
		"observation_items": len(c.observations),
		"hits":              c.hits,
		"misses":            c.misses,
		"max_size":          c.maxSize,
		"default_duration":  c.defaultDuration.String(),
	}
}
