package estimator

import (
	"fmt"
	"math"
	"strings"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
)

// CostPolicy selects which input-sensitive adjustment a deployment applies.
// The policies are alternatives and are never combined.
type CostPolicy string

const (
	// PolicyNDVI raises pesticide spend on stressed vegetation.
	PolicyNDVI CostPolicy = "ndvi"
	// PolicySoil scales fertilizer by soil fertility.
	PolicySoil CostPolicy = "soil"
)

const (
	OptimizationDiscount    = 0.85
	PesticideStressNDVI     = 0.45
	PesticideStressFactor   = 1.39
	FertileSoilFactor       = 0.9
	SandySoilFactor         = 1.1
	DeficitIrrigationFactor = 1.2
	ExcessIrrigationFactor  = 0.8
)

func ParseCostPolicy(s string) (CostPolicy, error) {
	switch p := CostPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyNDVI, PolicySoil:
		return p, nil
	case "":
		return PolicyNDVI, nil
	default:
		return "", fmt.Errorf("unknown cost policy %q", s)
	}
}

// IrrigationAdjustment maps a rainfall anomaly to an irrigation multiplier.
func IrrigationAdjustment(anomaly models.RainfallAnomaly) float64 {
	switch anomaly {
	case models.RainfallDeficit:
		return DeficitIrrigationFactor
	case models.RainfallExcess:
		return ExcessIrrigationFactor
	default:
		return 1.0
	}
}

// PesticideFactor applies under PolicyNDVI only.
func PesticideFactor(avgNDVI *float64) float64 {
	if avgNDVI != nil && *avgNDVI < PesticideStressNDVI {
		return PesticideStressFactor
	}
	return 1.0
}

// FertilizerFactor applies under PolicySoil only.
func FertilizerFactor(soil models.SoilType) float64 {
	s := string(soil)
	switch {
	case strings.Contains(s, "Black"), strings.Contains(s, "Alluvial"):
		return FertileSoilFactor
	case strings.Contains(s, "Sandy"):
		return SandySoilFactor
	default:
		return 1.0
	}
}

// EstimateCost itemizes production cost for the area. The optimized total is
// a flat discount on the normal total, not a re-itemization.
func (e *Estimator) EstimateCost(crop models.Crop, areaAcres float64, soil models.SoilType,
	avgNDVI *float64, irrigationAdjustment float64) (models.CostBreakdown, error) {
	if err := validateArea(areaAcres); err != nil {
		return models.CostBreakdown{}, err
	}
	if !(irrigationAdjustment > 0) || math.IsInf(irrigationAdjustment, 1) {
		return models.CostBreakdown{}, &InvalidInputError{
			Field: "irrigation adjustment", Value: irrigationAdjustment, Reason: "must be positive",
		}
	}
	rates, err := e.table.CostRates(crop)
	if err != nil {
		return models.CostBreakdown{}, err
	}

	pesticide, fertilizer := 1.0, 1.0
	switch e.policy {
	case PolicyNDVI:
		pesticide = PesticideFactor(avgNDVI)
	case PolicySoil:
		fertilizer = FertilizerFactor(soil)
	}

	c := models.CostBreakdown{
		Seed:       rates.Seed * areaAcres,
		Fertilizer: rates.Fertilizer * fertilizer * areaAcres,
		Pesticide:  rates.Pesticide * pesticide * areaAcres,
		Labour:     rates.Labour * areaAcres,
		Irrigation: rates.Irrigation * irrigationAdjustment * areaAcres,
		Machinery:  rates.Machinery * areaAcres,
	}
	c.NormalTotal = c.Seed + c.Fertilizer + c.Pesticide + c.Labour + c.Irrigation + c.Machinery
	c.OptimizedTotal = c.NormalTotal * OptimizationDiscount
	return c, nil
}
