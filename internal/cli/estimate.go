package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/bobby-s-dev/agri-optimizer/internal/config"
	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/bobby-s-dev/agri-optimizer/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// EstimateParams holds the flags of the estimate command.
type EstimateParams struct {
	Place  string
	Crop   string
	Season string
	Area   float64
	Output string

	// Offline mode
	Offline bool
	Region  string
	Temp    float64
	Rain    float64
	NDVI    float64
	HasNDVI bool
}

func NewEstimateCmd(newLogger func() *zap.Logger) *cobra.Command {
	var params EstimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate yield, costs and profit for one crop",
		Long: `Estimate yield, costs and profit for one crop and season.

Online mode geocodes --place and fetches recent weather and NDVI from the
configured providers. Offline mode skips all network access and estimates
from a single observation given by --temp, --rain and optionally --ndvi.

Examples:
  agri-cli estimate --place "Madurai, Tamil Nadu" --crop Rice --season Kharif --area 2
  agri-cli estimate --offline --region Punjab --crop Wheat --season Rabi --area 5 \
    --temp 22 --rain 40 --ndvi 0.55`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.HasNDVI = cmd.Flags().Changed("ndvi")
			if params.Offline {
				return runOffline(cmd.OutOrStdout(), params)
			}
			return runOnline(cmd, params, newLogger())
		},
	}

	cmd.Flags().StringVar(&params.Place, "place", "", "Village, district or city to analyze")
	cmd.Flags().StringVar(&params.Crop, "crop", "", "Crop (Rice, Wheat, Maize)")
	cmd.Flags().StringVar(&params.Season, "season", "", "Season (Kharif, Rabi, Zaid)")
	cmd.Flags().Float64Var(&params.Area, "area", 0, "Farm area in acres")
	cmd.Flags().StringVarP(&params.Output, "output", "o", "table", "Output format (table, json)")

	cmd.Flags().BoolVar(&params.Offline, "offline", false, "Estimate from flag values without network access")
	cmd.Flags().StringVar(&params.Region, "region", "", "State used to derive soil in offline mode")
	cmd.Flags().Float64Var(&params.Temp, "temp", 0, "Average temperature in °C (offline)")
	cmd.Flags().Float64Var(&params.Rain, "rain", 0, "Total rainfall in mm (offline)")
	cmd.Flags().Float64Var(&params.NDVI, "ndvi", 0, "Average NDVI (offline, omit when unknown)")

	_ = cmd.MarkFlagRequired("crop")
	_ = cmd.MarkFlagRequired("season")
	_ = cmd.MarkFlagRequired("area")

	return cmd
}

func (p EstimateParams) request() models.FarmRequest {
	return models.FarmRequest{
		Place:     p.Place,
		Crop:      models.Crop(p.Crop),
		Season:    models.Season(p.Season),
		AreaAcres: p.Area,
	}
}

func runOffline(w io.Writer, params EstimateParams) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	est, err := services.NewEstimatorFromConfig(cfg)
	if err != nil {
		return err
	}

	soil := services.SoilForRegion(params.Region)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	weather := []models.WeatherSample{{Date: today, TemperatureC: params.Temp, RainfallMm: params.Rain}}
	var vegetation []models.VegetationSample
	if params.HasNDVI {
		vegetation = []models.VegetationSample{{Date: today, NDVI: params.NDVI}}
	}

	result, err := est.Estimate(params.request(), soil, weather, vegetation)
	if err != nil {
		return err
	}
	return render(w, params.Output, "", result)
}

func runOnline(cmd *cobra.Command, params EstimateParams, logger *zap.Logger) error {
	defer func() { _ = logger.Sync() }()

	if params.Place == "" {
		return fmt.Errorf("--place is required unless --offline is set")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	analyzer, err := services.NewAnalyzerFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	analysis, err := analyzer.Analyze(cmd.Context(), params.request())
	if err != nil {
		return err
	}

	if params.Output == "json" {
		return writeJSON(cmd.OutOrStdout(), analysis)
	}
	return render(cmd.OutOrStdout(), params.Output, analysis.Location.DisplayName, analysis.Result)
}

func render(w io.Writer, format, location string, result *models.EstimationResult) error {
	switch format {
	case "json":
		return writeJSON(w, result)
	case "table", "":
		return writeTable(w, location, result)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, location string, r *models.EstimationResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if location != "" {
		fmt.Fprintf(tw, "Location\t%s\n", location)
	}
	fmt.Fprintf(tw, "Crop\t%s (%s)\n", r.Crop, r.Season)
	fmt.Fprintf(tw, "Soil\t%s\n", r.Soil)
	fmt.Fprintf(tw, "Area\t%.2f acres\n", r.AreaAcres)
	fmt.Fprintf(tw, "Avg temperature\t%.1f °C\n", r.Weather.AvgTempC)
	fmt.Fprintf(tw, "Total rainfall\t%.1f mm (%s)\n", r.Weather.TotalRainfallMm, r.Weather.RainfallAnomaly)
	if r.Weather.AvgNDVI != nil {
		fmt.Fprintf(tw, "NDVI\t%.3f (%s, %s)\n", *r.Weather.AvgNDVI, r.Weather.VegetationHealth, r.Weather.NdviTrend)
	} else {
		fmt.Fprintf(tw, "NDVI\tunavailable\n")
	}
	fmt.Fprintf(tw, "Alert\t%s\n", r.Weather.Alert)
	fmt.Fprintf(tw, "Yield\t%.2f kg\n", r.YieldKg)
	fmt.Fprintf(tw, "Revenue\t₹%.2f\n", r.Revenue)
	fmt.Fprintf(tw, "Cost (normal / optimized)\t₹%.2f / ₹%.2f\n", r.NormalCost, r.OptimizedCost)
	fmt.Fprintf(tw, "Profit (normal / optimized)\t₹%.2f / ₹%.2f\n", r.ProfitNormal, r.ProfitOptimized)
	fmt.Fprintf(tw, "Savings\t₹%.2f\n", r.Savings)
	fmt.Fprintf(tw, "Advisory\t%s\n", r.AdvisoryMessage)
	fmt.Fprintf(tw, "Factors\t%s, %s cost policy\n", r.FactorVersion, r.CostPolicy)

	return tw.Flush()
}
