package estimator

import (
	"math"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/shopspring/decimal"
)

// Yield factor bounds. The NDVI clamp keeps a zero or wildly high index
// from collapsing or inflating the estimate.
const (
	MinOptimalTempC   = 20.0
	MaxOptimalTempC   = 35.0
	TempStressFactor  = 0.9
	MinRainfallMm     = 20.0
	DroughtFactor     = 0.85
	ReferenceNDVI     = 0.5
	MinNDVIFactor     = 0.7
	MaxNDVIFactor     = 1.2
	NeutralNDVIFactor = 1.0
)

func TemperatureFactor(avgTempC float64) float64 {
	if avgTempC >= MinOptimalTempC && avgTempC <= MaxOptimalTempC {
		return 1.0
	}
	return TempStressFactor
}

func RainfallFactor(totalRainfallMm float64) float64 {
	if totalRainfallMm >= MinRainfallMm {
		return 1.0
	}
	return DroughtFactor
}

func WeatherFactor(avgTempC, totalRainfallMm float64) float64 {
	return TemperatureFactor(avgTempC) * RainfallFactor(totalRainfallMm)
}

// NDVIFactor is exactly 1.0 when the index is unknown.
func NDVIFactor(avgNDVI *float64) float64 {
	if avgNDVI == nil {
		return NeutralNDVIFactor
	}
	return clamp(*avgNDVI/ReferenceNDVI, MinNDVIFactor, MaxNDVIFactor)
}

// EstimateYield returns total yield in kg for the given area, rounded to
// two decimals.
func (e *Estimator) EstimateYield(crop models.Crop, soil models.SoilType, season models.Season,
	areaAcres, avgTempC, totalRainfallMm float64, avgNDVI *float64) (float64, error) {
	if err := validateArea(areaAcres); err != nil {
		return 0, err
	}
	base, err := e.table.BaseYield(crop)
	if err != nil {
		return 0, err
	}
	seasonFactor, err := e.table.SeasonFactor(season)
	if err != nil {
		return 0, err
	}

	yieldKg := base *
		e.table.SoilFactor(soil) *
		seasonFactor *
		WeatherFactor(avgTempC, totalRainfallMm) *
		NDVIFactor(avgNDVI) *
		areaAcres

	return Round2(yieldKg), nil
}

// Round2 rounds half away from zero at two decimals. Only output boundaries
// round; intermediate values stay unrounded.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func validateArea(areaAcres float64) error {
	if !(areaAcres > 0) || math.IsInf(areaAcres, 1) {
		return &InvalidInputError{Field: "area", Value: areaAcres, Reason: "must be a positive number of acres"}
	}
	return nil
}
