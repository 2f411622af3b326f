package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/config"
	"github.com/bobby-s-dev/agri-optimizer/internal/estimator"
	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/bobby-s-dev/agri-optimizer/pkg/client"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Geocoder interface {
	Geocode(ctx context.Context, place string) (*models.Location, error)
}

type WeatherProvider interface {
	Name() string
	GetWeather(ctx context.Context, lat, lon float64, days int) ([]models.WeatherSample, error)
}

type VegetationProvider interface {
	Name() string
	GetVegetation(ctx context.Context, lat, lon float64, days int) ([]models.VegetationSample, error)
}

// Analysis is everything one request produced, including the raw series
// the estimate was computed from.
type Analysis struct {
	ID           string                   `json:"id"`
	Request      models.FarmRequest       `json:"request"`
	Location     models.Location          `json:"location"`
	Soil         models.SoilType          `json:"soil"`
	Observations *models.Observations     `json:"observations"`
	Result       *models.EstimationResult `json:"result"`
	Schemes      []string                 `json:"schemes"`
	CreatedAt    time.Time                `json:"created_at"`
}

type AnalyzerConfig struct {
	WeatherDays    int
	VegetationDays int
	FetchTimeout   time.Duration
}

// Analyzer owns all upstream I/O around the pure estimator: geocoding,
// weather and NDVI fetches, and the observation cache.
type Analyzer struct {
	estimator  *estimator.Estimator
	geocoder   Geocoder
	weather    WeatherProvider
	vegetation VegetationProvider
	cache      *ObservationCache
	cfg        AnalyzerConfig
	logger     *zap.Logger

	mu            sync.RWMutex
	lastFetchTime time.Time
	successCount  int
	failureCount  int
	analyses      int
	ndviMissing   int
}

func NewAnalyzer(est *estimator.Estimator, geocoder Geocoder, weather WeatherProvider,
	vegetation VegetationProvider, cache *ObservationCache, cfg AnalyzerConfig, logger *zap.Logger) *Analyzer {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	return &Analyzer{
		estimator:  est,
		geocoder:   geocoder,
		weather:    weather,
		vegetation: vegetation,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// NewAnalyzerFromConfig wires the configured providers, factor table and
// cost policy.
func NewAnalyzerFromConfig(cfg *config.Config, logger *zap.Logger) (*Analyzer, error) {
	est, err := NewEstimatorFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	clientConfig := client.ClientConfig{
		Timeout:        cfg.Providers.RequestTimeout,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
		UserAgent:      cfg.Providers.UserAgent,
	}

	geocoder := client.NewNominatimClient(cfg.Providers.NominatimURL, clientConfig, logger)
	nasa := client.NewNASAPowerClient(cfg.Providers.NASAPowerURL, clientConfig, logger)

	var weather WeatherProvider = nasa
	if cfg.Providers.WeatherSource == "openmeteo" {
		weather = client.NewOpenMeteoClient(cfg.Providers.OpenMeteoURL, clientConfig, logger)
	}
	logger.Info("Providers initialized",
		zap.String("weather", weather.Name()),
		zap.String("vegetation", nasa.Name()),
		zap.String("geocoder", geocoder.Name()))

	cache := NewObservationCache(cfg.Cache.Duration, cfg.Cache.MaxSize, logger)

	return NewAnalyzer(est, geocoder, weather, nasa, cache, AnalyzerConfig{
		WeatherDays:    cfg.Providers.WeatherDays,
		VegetationDays: cfg.Providers.VegetationDays,
		FetchTimeout:   cfg.Providers.FetchTimeout,
	}, logger), nil
}

func NewEstimatorFromConfig(cfg *config.Config) (*estimator.Estimator, error) {
	table := estimator.DefaultFactorTable()
	if cfg.Estimator.FactorTablePath != "" {
		loaded, err := estimator.LoadFactorTable(cfg.Estimator.FactorTablePath)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	policy, err := estimator.ParseCostPolicy(cfg.Estimator.CostPolicy)
	if err != nil {
		return nil, err
	}

	return estimator.New(table, policy)
}

func (a *Analyzer) Estimator() *estimator.Estimator { return a.estimator }

// Analyze validates the request, resolves the place, fetches observations
// and runs the estimator.
func (a *Analyzer) Analyze(ctx context.Context, req models.FarmRequest) (*Analysis, error) {
	req.Place = strings.TrimSpace(req.Place)
	if req.Place == "" {
		return nil, &estimator.InvalidInputError{Field: "place", Value: req.Place, Reason: "is required"}
	}
	if err := a.estimator.Validate(req); err != nil {
		return nil, err
	}

	loc, err := a.Locate(ctx, req.Place)
	if err != nil {
		return nil, err
	}
	soil := SoilForRegion(loc.State)

	obs, err := a.FetchObservations(ctx, loc)
	if err != nil {
		return nil, err
	}

	result, err := a.estimator.Estimate(req, soil, obs.Weather, obs.Vegetation)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.analyses++
	if obs.Vegetation == nil {
		a.ndviMissing++
	}
	a.mu.Unlock()

	a.logger.Info("Analysis completed",
		zap.String("place", req.Place),
		zap.String("state", loc.State),
		zap.String("soil", string(soil)),
		zap.String("crop", string(req.Crop)),
		zap.Float64("yield_kg", result.YieldKg),
		zap.String("advisory", string(result.Advisory)))

	return &Analysis{
		ID:           uuid.NewString(),
		Request:      req,
		Location:     *loc,
		Soil:         soil,
		Observations: obs,
		Result:       result,
		Schemes:      SchemesFor(loc.DisplayName + " " + req.Place),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (a *Analyzer) Locate(ctx context.Context, place string) (*models.Location, error) {
	if loc, ok := a.cache.GetLocation(place); ok {
		a.logger.Debug("Cache hit for location", zap.String("place", place))
		return loc, nil
	}

	loc, err := a.geocoder.Geocode(ctx, place)
	if err != nil {
		return nil, err
	}
	a.cache.SetLocation(place, loc)
	return loc, nil
}

// FetchObservations gets weather and NDVI in parallel. Weather failure is an
// error; NDVI failure degrades to absence so the estimate can still run.
// Nearby places share cached series, but the returned Location is always loc.
func (a *Analyzer) FetchObservations(ctx context.Context, loc *models.Location) (*models.Observations, error) {
	key := ObservationKey(a.weather.Name(), loc.Latitude, loc.Longitude, a.cfg.WeatherDays, a.cfg.VegetationDays)
	if cached, ok := a.cache.GetObservations(key); ok {
		a.logger.Debug("Cache hit for observations", zap.String("key", key))
		obs := *cached
		obs.Location = *loc
		return &obs, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	a.mu.Lock()
	a.lastFetchTime = time.Now()
	a.mu.Unlock()

	obs := &models.Observations{
		Location:      *loc,
		WeatherSource: a.weather.Name(),
	}

	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		weather, err := a.weather.GetWeather(gctx, loc.Latitude, loc.Longitude, a.cfg.WeatherDays)
		if err != nil {
			return fmt.Errorf("weather for %s: %w", loc.Place, err)
		}
		obs.Weather = weather
		return nil
	})
	if a.vegetation != nil {
		g.Go(func() error {
			veg, err := a.vegetation.GetVegetation(gctx, loc.Latitude, loc.Longitude, a.cfg.VegetationDays)
			if err != nil {
				a.logger.Warn("Vegetation index unavailable",
					zap.String("place", loc.Place),
					zap.String("source", a.vegetation.Name()),
					zap.Error(err))
				return nil
			}
			if len(veg) > 0 {
				obs.Vegetation = veg
				obs.VegetationSource = a.vegetation.Name()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.recordFetch(false)
		return nil, err
	}
	a.recordFetch(true)

	obs.FetchedAt = time.Now().UTC()
	if len(obs.Weather) > 0 {
		a.cache.SetObservations(key, obs)
	}
	return obs, nil
}

func (a *Analyzer) recordFetch(ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ok {
		a.successCount++
	} else {
		a.failureCount++
	}
}

// Prewarm resolves and fetches observations for each place concurrently.
func (a *Analyzer) Prewarm(ctx context.Context, places []string) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(places))

	startTime := time.Now()

	for _, place := range places {
		wg.Add(1)
		go func(place string) {
			defer wg.Done()

			loc, err := a.Locate(ctx, place)
			if err == nil {
				_, err = a.FetchObservations(ctx, loc)
			}
			if err != nil {
				a.logger.Error("Failed to prewarm place",
					zap.String("place", place),
					zap.Error(err))
				errs <- err
			}
		}(place)
	}

	wg.Wait()
	close(errs)

	failed := len(errs)
	a.logger.Info("Prewarm completed",
		zap.Int("places", len(places)),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(startTime)))

	if failed > 0 {
		return fmt.Errorf("%d of %d places failed to prewarm", failed, len(places))
	}
	return nil
}

func (a *Analyzer) GetLastFetchTime() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastFetchTime
}

func (a *Analyzer) GetStats() map[string]interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]interface{}{
		"last_fetch_time":  a.lastFetchTime,
		"fetch_success":    a.successCount,
		"fetch_failure":    a.failureCount,
		"analyses":         a.analyses,
		"ndvi_unavailable": a.ndviMissing,
		"weather_source":   a.weather.Name(),
		"factor_version":   a.estimator.Table().Version,
		"cost_policy":      a.estimator.Policy(),
		"cache_stats":      a.cache.GetStats(),
	}
}

func (a *Analyzer) Close() {
	a.cache.Stop()
}
