package models

type NdviTrend string

const (
	TrendImproving NdviTrend = "Improving"
	TrendDeclining NdviTrend = "Declining"
	TrendStable    NdviTrend = "Stable"
	TrendUnknown   NdviTrend = "Unknown"
)

type RainfallAnomaly string

const (
	RainfallDeficit RainfallAnomaly = "Deficit"
	RainfallExcess  RainfallAnomaly = "Excess"
	RainfallNormal  RainfallAnomaly = "Normal"
)

type VegetationHealth string

const (
	VegetationHealthy  VegetationHealth = "Healthy"
	VegetationModerate VegetationHealth = "Moderate"
	VegetationStressed VegetationHealth = "Stressed"
	VegetationUnknown  VegetationHealth = "Unknown"
)

// NDVIAlert is the field alert shown next to the vegetation index.
type NDVIAlert string

const (
	AlertSatelliteUnavailable NDVIAlert = "Satellite data unavailable"
	AlertCropStress           NDVIAlert = "Crop stress risk detected"
	AlertStable               NDVIAlert = "Crop health is stable"
)

// WeatherSummary is the scalar reduction of a weather and vegetation series.
// AvgNDVI is nil when no vegetation data was available.
type WeatherSummary struct {
	AvgTempC         float64          `json:"avg_temp_c"`
	TotalRainfallMm  float64          `json:"total_rainfall_mm"`
	AvgNDVI          *float64         `json:"avg_ndvi"`
	NdviTrend        NdviTrend        `json:"ndvi_trend"`
	RainfallAnomaly  RainfallAnomaly  `json:"rainfall_anomaly"`
	VegetationHealth VegetationHealth `json:"vegetation_health"`
	SampleCount      int              `json:"sample_count"`
	Alert            NDVIAlert        `json:"alert"`
}

type CostBreakdown struct {
	Seed           float64 `json:"seed"`
	Fertilizer     float64 `json:"fertilizer"`
	Pesticide      float64 `json:"pesticide"`
	Labour         float64 `json:"labour"`
	Irrigation     float64 `json:"irrigation"`
	Machinery      float64 `json:"machinery"`
	NormalTotal    float64 `json:"normal_total"`
	OptimizedTotal float64 `json:"optimized_total"`
}

type Financials struct {
	Revenue         float64 `json:"revenue"`
	ProfitNormal    float64 `json:"profit_normal"`
	ProfitOptimized float64 `json:"profit_optimized"`
	Savings         float64 `json:"savings"`
}

type Advisory string

const (
	AdvisorySatelliteUnavailable Advisory = "satellite_unavailable"
	AdvisorySevereStress         Advisory = "severe_crop_stress"
	AdvisoryLoss                 Advisory = "loss_detected"
	AdvisoryLowYield             Advisory = "yield_below_optimal"
	AdvisoryGood                 Advisory = "outlook_good"
)

var advisoryMessages = map[Advisory]string{
	AdvisorySatelliteUnavailable: "satellite data unavailable, follow standard agronomy practice",
	AdvisorySevereStress:         "severe crop stress",
	AdvisoryLoss:                 "loss detected, reduce costs or reconsider crop/season",
	AdvisoryLowYield:             "yield below optimal, review irrigation/nutrients",
	AdvisoryGood:                 "outlook good, maintain practices",
}

func (a Advisory) Message() string {
	return advisoryMessages[a]
}

// EstimationResult is produced fresh for every estimate and never mutated.
type EstimationResult struct {
	Crop            Crop           `json:"crop"`
	Season          Season         `json:"season"`
	Soil            SoilType       `json:"soil"`
	AreaAcres       float64        `json:"area"`
	YieldKg         float64        `json:"yield_kg"`
	PricePerKg      float64        `json:"price_per_kg"`
	Revenue         float64        `json:"revenue"`
	NormalCost      float64        `json:"normal_cost"`
	OptimizedCost   float64        `json:"optimized_cost"`
	ProfitNormal    float64        `json:"profit_normal"`
	ProfitOptimized float64        `json:"profit_optimized"`
	Savings         float64        `json:"savings"`
	Costs           CostBreakdown  `json:"costs"`
	Weather         WeatherSummary `json:"weather"`
	Advisory        Advisory       `json:"advisory"`
	AdvisoryMessage string         `json:"advisory_message"`
	FactorVersion   string         `json:"factor_version"`
	CostPolicy      string         `json:"cost_policy"`
}
