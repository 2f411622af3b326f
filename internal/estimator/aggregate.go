package estimator

import (
	"math"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// AnomalyWindow is the number of most recent samples compared against
	// the series mean when classifying rainfall. A shorter series is
	// compared against itself and so always classifies as normal.
	AnomalyWindow = 7
	// AnomalyBandMm is the tolerated deviation before rainfall counts as a
	// deficit or an excess.
	AnomalyBandMm = 10.0

	healthyNDVI  = 0.6
	moderateNDVI = 0.3

	// StressAlertNDVI is the mean NDVI below which a crop stress alert is raised.
	StressAlertNDVI = 0.4
)

// Aggregate reduces a weather series and an optional vegetation series to
// the scalars the estimators consume. A nil or empty vegetation series is
// reported as unknown, never as zero.
func Aggregate(weather []models.WeatherSample, vegetation []models.VegetationSample) (models.WeatherSummary, error) {
	if len(weather) == 0 {
		return models.WeatherSummary{}, &NoDataError{What: "weather"}
	}

	temps := make([]float64, len(weather))
	rain := make([]float64, len(weather))
	for i, s := range weather {
		temps[i] = s.TemperatureC
		rain[i] = s.RainfallMm
	}

	summary := models.WeatherSummary{
		AvgTempC:         stat.Mean(temps, nil),
		TotalRainfallMm:  floats.Sum(rain),
		NdviTrend:        models.TrendUnknown,
		RainfallAnomaly:  RainfallAnomaly(rain),
		VegetationHealth: models.VegetationUnknown,
		SampleCount:      len(weather),
		Alert:            models.AlertSatelliteUnavailable,
	}

	if len(vegetation) > 0 {
		ndvi := make([]float64, len(vegetation))
		for i, s := range vegetation {
			ndvi[i] = s.NDVI
		}
		avg := stat.Mean(ndvi, nil)
		summary.AvgNDVI = &avg
		summary.NdviTrend = Trend(ndvi[0], ndvi[len(ndvi)-1])
		summary.VegetationHealth = Health(avg)
		summary.Alert = Alert(&avg)
	}

	return summary, nil
}

func Trend(first, last float64) models.NdviTrend {
	switch {
	case last > first:
		return models.TrendImproving
	case last < first:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// RainfallAnomaly compares the most recent AnomalyWindow samples (or all of
// them, for a shorter series) with the series mean scaled to the same window.
func RainfallAnomaly(rain []float64) models.RainfallAnomaly {
	if len(rain) == 0 {
		return models.RainfallNormal
	}
	window := int(math.Min(AnomalyWindow, float64(len(rain))))
	recent := floats.Sum(rain[len(rain)-window:])
	expected := stat.Mean(rain, nil) * float64(window)

	switch diff := recent - expected; {
	case diff < -AnomalyBandMm:
		return models.RainfallDeficit
	case diff > AnomalyBandMm:
		return models.RainfallExcess
	default:
		return models.RainfallNormal
	}
}

func Health(avgNDVI float64) models.VegetationHealth {
	switch {
	case avgNDVI >= healthyNDVI:
		return models.VegetationHealthy
	case avgNDVI >= moderateNDVI:
		return models.VegetationModerate
	default:
		return models.VegetationStressed
	}
}

// Alert is the field alert for a mean NDVI, or the unavailable alert when
// the index is unknown.
func Alert(avgNDVI *float64) models.NDVIAlert {
	switch {
	case avgNDVI == nil:
		return models.AlertSatelliteUnavailable
	case *avgNDVI < StressAlertNDVI:
		return models.AlertCropStress
	default:
		return models.AlertStable
	}
}
