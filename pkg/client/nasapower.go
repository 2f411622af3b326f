package client

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"go.uber.org/zap"
)

const (
	nasaDateLayout = "20060102"
	// nasaFillValue marks a missing daily value in POWER responses.
	nasaFillValue = -999.0
)

// NASAPowerClient reads daily point data from the NASA POWER API. It serves
// both the weather and the vegetation-index series.
type NASAPowerClient struct {
	*BaseClient
	baseURL string
}

type NASAPowerResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
	Messages []string `json:"messages"`
}

func NewNASAPowerClient(baseURL string, config ClientConfig, logger *zap.Logger) *NASAPowerClient {
	return &NASAPowerClient{
		BaseClient: NewBaseClient("nasa-power", config, logger),
		baseURL:    baseURL,
	}
}

func (c *NASAPowerClient) pointURL(lat, lon float64, days int, parameters string) string {
	start, end := c.window(days)
	q := url.Values{}
	q.Set("parameters", parameters)
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("start", start.Format(nasaDateLayout))
	q.Set("end", end.Format(nasaDateLayout))
	q.Set("community", "AG")
	q.Set("format", "JSON")
	return c.baseURL + "/temporal/daily/point?" + q.Encode()
}

// GetWeather returns daily mean temperature and corrected precipitation,
// oldest first. Days where the temperature is a fill value are dropped;
// missing rainfall counts as zero.
func (c *NASAPowerClient) GetWeather(ctx context.Context, lat, lon float64, days int) ([]models.WeatherSample, error) {
	var response NASAPowerResponse
	if err := c.GetJSON(ctx, c.pointURL(lat, lon, days, "T2M,PRECTOTCORR"), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}

	temp := response.Properties.Parameter["T2M"]
	rain := response.Properties.Parameter["PRECTOTCORR"]

	samples := make([]models.WeatherSample, 0, len(temp))
	for _, key := range sortedKeys(temp) {
		t := temp[key]
		if t == nasaFillValue {
			continue
		}
		date, err := time.Parse(nasaDateLayout, key)
		if err != nil {
			c.logger.Warn("Skipping malformed date", zap.String("date", key))
			continue
		}
		r := rain[key]
		if r == nasaFillValue {
			r = 0
		}
		samples = append(samples, models.WeatherSample{Date: date, TemperatureC: t, RainfallMm: r})
	}

	return samples, nil
}

// GetVegetation returns the NDVI series, or nil when the point has no
// coverage in the window.
func (c *NASAPowerClient) GetVegetation(ctx context.Context, lat, lon float64, days int) ([]models.VegetationSample, error) {
	var response NASAPowerResponse
	if err := c.GetJSON(ctx, c.pointURL(lat, lon, days, "NDVI"), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch ndvi: %w", err)
	}

	ndvi := response.Properties.Parameter["NDVI"]
	var samples []models.VegetationSample
	for _, key := range sortedKeys(ndvi) {
		v := ndvi[key]
		if v == nasaFillValue {
			continue
		}
		date, err := time.Parse(nasaDateLayout, key)
		if err != nil {
			continue
		}
		samples = append(samples, models.VegetationSample{Date: date, NDVI: v})
	}

	return samples, nil
}

// POWER date keys are YYYYMMDD, so lexical order is chronological.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
