package models

import (
	"time"
)

// WeatherSample is one day of observed weather. Series are ordered
// chronologically, oldest first.
type WeatherSample struct {
	Date         time.Time `json:"date"`
	TemperatureC float64   `json:"temperature_c"`
	RainfallMm   float64   `json:"rainfall_mm"`
}

// VegetationSample is one satellite NDVI reading. Values are typically in
// [0, 1] but are not clamped at the source.
type VegetationSample struct {
	Date time.Time `json:"date"`
	NDVI float64   `json:"ndvi"`
}

type Location struct {
	Place       string  `json:"place"`
	DisplayName string  `json:"display_name"`
	State       string  `json:"state"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Observations is what the provider layer hands to the estimator. A nil
// Vegetation slice means no satellite coverage.
type Observations struct {
	Location         Location           `json:"location"`
	Weather          []WeatherSample    `json:"weather"`
	Vegetation       []VegetationSample `json:"vegetation,omitempty"`
	WeatherSource    string             `json:"weather_source"`
	VegetationSource string             `json:"vegetation_source,omitempty"`
	FetchedAt        time.Time          `json:"fetched_at"`
}
