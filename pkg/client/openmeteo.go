package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"go.uber.org/zap"
)

type OpenMeteoClient struct {
	*BaseClient
	baseURL string
}

type OpenMeteoArchiveResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Daily     struct {
		Time              []string   `json:"time"`
		Temperature2MMean []*float64 `json:"temperature_2m_mean"`
		PrecipitationSum  []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
	DailyUnits struct {
		Temperature2MMean string `json:"temperature_2m_mean"`
		PrecipitationSum  string `json:"precipitation_sum"`
	} `json:"daily_units"`
}

func NewOpenMeteoClient(baseURL string, config ClientConfig, logger *zap.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		BaseClient: NewBaseClient("open-meteo", config, logger),
		baseURL:    baseURL,
	}
}

// GetWeather reads daily means from the Open-Meteo archive. The archive
// lags a few days behind, so recent days may come back null and are
// skipped.
func (c *OpenMeteoClient) GetWeather(ctx context.Context, lat, lon float64, days int) ([]models.WeatherSample, error) {
	start, end := c.window(days)
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("start_date", start.Format(time.DateOnly))
	q.Set("end_date", end.Format(time.DateOnly))
	q.Set("daily", "temperature_2m_mean,precipitation_sum")
	q.Set("timezone", "UTC")

	var response OpenMeteoArchiveResponse
	if err := c.GetJSON(ctx, c.baseURL+"/archive?"+q.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}

	d := response.Daily
	if len(d.Temperature2MMean) != len(d.Time) || len(d.PrecipitationSum) != len(d.Time) {
		return nil, fmt.Errorf("open-meteo: daily arrays have mismatched lengths")
	}

	samples := make([]models.WeatherSample, 0, len(d.Time))
	for i := range d.Time {
		if d.Temperature2MMean[i] == nil {
			continue
		}
		date, err := time.Parse(time.DateOnly, d.Time[i])
		if err != nil {
			c.logger.Warn("Skipping malformed date", zap.String("date", d.Time[i]))
			continue
		}
		rain := 0.0
		if d.PrecipitationSum[i] != nil {
			rain = *d.PrecipitationSum[i]
		}
		samples = append(samples, models.WeatherSample{
			Date:         date,
			TemperatureC: *d.Temperature2MMean[i],
			RainfallMm:   rain,
		})
	}

	return samples, nil
}
