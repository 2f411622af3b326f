package api

import (
	"strings"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/bobby-s-dev/agri-optimizer/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PrewarmScheduler is the part of the prewarm scheduler exposed over HTTP.
type PrewarmScheduler interface {
	ForceRun()
	UpdatePlaces(places []string)
	GetStatus() map[string]interface{}
}

type Handler struct {
	analyzer  *services.Analyzer
	scheduler PrewarmScheduler
	logger    *zap.Logger
	startTime time.Time
}

// NewHandler builds the API handler. scheduler may be nil, in which case
// prewarm requests are refused.
func NewHandler(analyzer *services.Analyzer, scheduler PrewarmScheduler, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer:  analyzer,
		scheduler: scheduler,
		logger:    logger,
		startTime: time.Now(),
	}
}

type PrewarmRequest struct {
	Places []string `json:"places"`
}

// EstimateRequest carries the observation series directly, skipping
// geocoding and provider fetches. Soil is always derived from Region.
type EstimateRequest struct {
	models.FarmRequest
	Region     string                    `json:"region"`
	Weather    []models.WeatherSample    `json:"weather"`
	Vegetation []models.VegetationSample `json:"vegetation"`
}

// Analyze handles POST /api/v1/analyze
func (h *Handler) Analyze(c *fiber.Ctx) error {
	var req models.FarmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	h.logger.Info("Analyzing farm",
		zap.String("place", req.Place),
		zap.String("crop", string(req.Crop)),
		zap.String("season", string(req.Season)),
		zap.Float64("area", req.AreaAcres))

	analysis, err := h.analyzer.Analyze(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// Estimate handles POST /api/v1/estimate
func (h *Handler) Estimate(c *fiber.Ctx) error {
	var req EstimateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	soil := services.SoilForRegion(req.Region)
	result, err := h.analyzer.Estimator().Estimate(req.FarmRequest, soil, req.Weather, req.Vegetation)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// GetCrops handles GET /api/v1/crops
func (h *Handler) GetCrops(c *fiber.Ctx) error {
	est := h.analyzer.Estimator()

	return c.JSON(fiber.Map{
		"crops":          est.Table().CropNames(),
		"seasons":        est.Table().SeasonNames(),
		"factor_version": est.Table().Version,
		"cost_policy":    est.Policy(),
	})
}

// GetSchemes handles GET /api/v1/schemes
func (h *Handler) GetSchemes(c *fiber.Ctx) error {
	place := strings.TrimSpace(c.Query("place"))
	if place == "" {
		return fiber.NewError(fiber.StatusBadRequest, "place parameter is required")
	}

	return c.JSON(fiber.Map{
		"place":   place,
		"schemes": services.SchemesFor(place),
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"timestamp":  time.Now(),
		"last_fetch": h.analyzer.GetLastFetchTime(),
		"uptime":     time.Since(h.startTime).String(),
	})
}

// GetMetrics handles GET /api/v1/metrics
func (h *Handler) GetMetrics(c *fiber.Ctx) error {
	resp := fiber.Map{
		"metrics":   h.analyzer.GetStats(),
		"timestamp": time.Now(),
	}
	if h.scheduler != nil {
		resp["scheduler"] = h.scheduler.GetStatus()
	}
	return c.JSON(resp)
}

// Prewarm handles POST /api/v1/prewarm. A non-empty places list replaces the
// scheduled places before the run starts.
func (h *Handler) Prewarm(c *fiber.Ctx) error {
	if h.scheduler == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "prewarm scheduler is not configured")
	}

	var req PrewarmRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	var places []string
	for _, place := range req.Places {
		if place = strings.TrimSpace(place); place != "" {
			places = append(places, place)
		}
	}
	if len(places) > 0 {
		h.scheduler.UpdatePlaces(places)
	}

	h.scheduler.ForceRun()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":    "accepted",
		"scheduler": h.scheduler.GetStatus(),
	})
}
