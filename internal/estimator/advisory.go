package estimator

import "github.com/bobby-s-dev/agri-optimizer/internal/models"

const (
	SevereStressNDVI = 0.3
	OptimalYieldKg   = 2000.0
)

// Classify picks one advisory; the first matching rule wins. Vegetation
// rules come before financial ones.
func Classify(avgNDVI *float64, profit, yieldKg float64) models.Advisory {
	switch {
	case avgNDVI == nil:
		return models.AdvisorySatelliteUnavailable
	case *avgNDVI < SevereStressNDVI:
		return models.AdvisorySevereStress
	case profit < 0:
		return models.AdvisoryLoss
	case yieldKg < OptimalYieldKg:
		return models.AdvisoryLowYield
	default:
		return models.AdvisoryGood
	}
}
