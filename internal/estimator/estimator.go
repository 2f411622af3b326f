package estimator

import (
	"fmt"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
)

// Estimator runs the agronomic pipeline against one factor table and one
// cost policy. It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	table  *FactorTable
	policy CostPolicy
}

func New(table *FactorTable, policy CostPolicy) (*Estimator, error) {
	if table == nil {
		table = DefaultFactorTable()
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseCostPolicy(string(policy)); err != nil {
		return nil, err
	}
	if policy == "" {
		policy = PolicyNDVI
	}
	return &Estimator{table: table, policy: policy}, nil
}

func (e *Estimator) Table() *FactorTable { return e.table }

func (e *Estimator) Policy() CostPolicy { return e.policy }

// Validate rejects a request before any computation.
func (e *Estimator) Validate(req models.FarmRequest) error {
	if err := validateArea(req.AreaAcres); err != nil {
		return err
	}
	if _, err := e.table.BaseYield(req.Crop); err != nil {
		return err
	}
	if _, err := e.table.SeasonFactor(req.Season); err != nil {
		return err
	}
	return nil
}

// Estimate runs aggregation, yield, cost, summary and advisory in order.
// vegetation may be nil.
func (e *Estimator) Estimate(req models.FarmRequest, soil models.SoilType,
	weather []models.WeatherSample, vegetation []models.VegetationSample) (*models.EstimationResult, error) {
	if err := e.Validate(req); err != nil {
		return nil, err
	}

	summary, err := Aggregate(weather, vegetation)
	if err != nil {
		return nil, err
	}

	yieldKg, err := e.EstimateYield(req.Crop, soil, req.Season, req.AreaAcres,
		summary.AvgTempC, summary.TotalRainfallMm, summary.AvgNDVI)
	if err != nil {
		return nil, fmt.Errorf("estimating yield: %w", err)
	}

	costs, err := e.EstimateCost(req.Crop, req.AreaAcres, soil, summary.AvgNDVI,
		IrrigationAdjustment(summary.RainfallAnomaly))
	if err != nil {
		return nil, fmt.Errorf("estimating cost: %w", err)
	}

	price, err := e.table.BasePrice(req.Crop)
	if err != nil {
		return nil, err
	}

	fin := Summarize(yieldKg, price, costs.NormalTotal, costs.OptimizedTotal)
	advisory := Classify(summary.AvgNDVI, fin.ProfitNormal, yieldKg)

	return &models.EstimationResult{
		Crop:            req.Crop,
		Season:          req.Season,
		Soil:            soil,
		AreaAcres:       req.AreaAcres,
		YieldKg:         yieldKg,
		PricePerKg:      price,
		Revenue:         fin.Revenue,
		NormalCost:      costs.NormalTotal,
		OptimizedCost:   costs.OptimizedTotal,
		ProfitNormal:    fin.ProfitNormal,
		ProfitOptimized: fin.ProfitOptimized,
		Savings:         fin.Savings,
		Costs:           costs,
		Weather:         summary,
		Advisory:        advisory,
		AdvisoryMessage: advisory.Message(),
		FactorVersion:   e.table.Version,
		CostPolicy:      string(e.policy),
	}, nil
}
