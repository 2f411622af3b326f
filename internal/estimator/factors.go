package estimator

import (
	"fmt"
	"os"
	"sort"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"gopkg.in/yaml.v3"
)

// NeutralSoilFactor applies to any soil type the table does not list.
const NeutralSoilFactor = 0.95

// CostRates are per-acre input costs for one crop.
type CostRates struct {
	Seed       float64 `yaml:"seed" json:"seed"`
	Fertilizer float64 `yaml:"fertilizer" json:"fertilizer"`
	Pesticide  float64 `yaml:"pesticide" json:"pesticide"`
	Labour     float64 `yaml:"labour" json:"labour"`
	Irrigation float64 `yaml:"irrigation" json:"irrigation"`
	Machinery  float64 `yaml:"machinery" json:"machinery"`
}

func (r CostRates) Total() float64 {
	return r.Seed + r.Fertilizer + r.Pesticide + r.Labour + r.Irrigation + r.Machinery
}

type CropFactors struct {
	BaseYieldKgPerAcre float64   `yaml:"base_yield_kg_per_acre" json:"base_yield_kg_per_acre"`
	PricePerKg         float64   `yaml:"price_per_kg" json:"price_per_kg"`
	CostPerAcre        CostRates `yaml:"cost_per_acre" json:"cost_per_acre"`
}

// FactorTable holds every categorical lookup the pipeline uses. A table is
// read-only once built; swap tables rather than editing one in place.
type FactorTable struct {
	Version           string                      `yaml:"version" json:"version"`
	DefaultSoilFactor float64                     `yaml:"default_soil_factor" json:"default_soil_factor"`
	Crops             map[models.Crop]CropFactors `yaml:"crops" json:"crops"`
	Soils             map[models.SoilType]float64 `yaml:"soils" json:"soils"`
	Seasons           map[models.Season]float64   `yaml:"seasons" json:"seasons"`
}

func DefaultFactorTable() *FactorTable {
	return &FactorTable{
		Version:           "2024.1",
		DefaultSoilFactor: NeutralSoilFactor,
		Crops: map[models.Crop]CropFactors{
			models.CropRice: {
				BaseYieldKgPerAcre: 2400,
				PricePerKg:         25,
				CostPerAcre: CostRates{
					Seed: 2000, Fertilizer: 4500, Pesticide: 1800,
					Labour: 6000, Irrigation: 2200, Machinery: 1500,
				},
			},
			models.CropWheat: {
				BaseYieldKgPerAcre: 2200,
				PricePerKg:         22,
				CostPerAcre: CostRates{
					Seed: 1800, Fertilizer: 3800, Pesticide: 1200,
					Labour: 5000, Irrigation: 1800, Machinery: 1400,
				},
			},
			models.CropMaize: {
				BaseYieldKgPerAcre: 2600,
				PricePerKg:         20,
				CostPerAcre: CostRates{
					Seed: 2200, Fertilizer: 4000, Pesticide: 1500,
					Labour: 5200, Irrigation: 1600, Machinery: 1500,
				},
			},
		},
		Soils: map[models.SoilType]float64{
			models.SoilRedLoamy:    1.0,
			models.SoilBlackCotton: 1.05,
			models.SoilAlluvial:    1.05,
			models.SoilLaterite:    0.9,
			models.SoilMixed:       0.95,
			models.SoilUnknown:     0.95,
		},
		Seasons: map[models.Season]float64{
			models.SeasonKharif: 1.0,
			models.SeasonRabi:   0.9,
			models.SeasonZaid:   0.8,
		},
	}
}

// LoadFactorTable reads a YAML factor table from disk.
func LoadFactorTable(path string) (*FactorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor table: %w", err)
	}
	return ParseFactorTable(data)
}

func ParseFactorTable(data []byte) (*FactorTable, error) {
	var table FactorTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing factor table: %w", err)
	}
	if table.DefaultSoilFactor == 0 {
		table.DefaultSoilFactor = NeutralSoilFactor
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

func (t *FactorTable) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("factor table: version is required")
	}
	if len(t.Crops) == 0 {
		return fmt.Errorf("factor table %s: no crops", t.Version)
	}
	if len(t.Seasons) == 0 {
		return fmt.Errorf("factor table %s: no seasons", t.Version)
	}
	if t.DefaultSoilFactor <= 0 {
		return fmt.Errorf("factor table %s: default soil factor must be positive", t.Version)
	}
	for crop, f := range t.Crops {
		if f.BaseYieldKgPerAcre <= 0 || f.PricePerKg <= 0 {
			return fmt.Errorf("factor table %s: crop %s needs positive yield and price", t.Version, crop)
		}
		r := f.CostPerAcre
		for _, rate := range []float64{r.Seed, r.Fertilizer, r.Pesticide, r.Labour, r.Irrigation, r.Machinery} {
			if rate < 0 {
				return fmt.Errorf("factor table %s: crop %s has a negative cost rate", t.Version, crop)
			}
		}
	}
	for soil, f := range t.Soils {
		if f <= 0 {
			return fmt.Errorf("factor table %s: soil %q factor must be positive", t.Version, soil)
		}
	}
	for season, f := range t.Seasons {
		if f <= 0 {
			return fmt.Errorf("factor table %s: season %s factor must be positive", t.Version, season)
		}
	}
	return nil
}

func (t *FactorTable) crop(crop models.Crop) (CropFactors, error) {
	f, ok := t.Crops[crop]
	if !ok {
		return CropFactors{}, &InvalidInputError{Field: "crop", Value: crop, Reason: "not in catalogue"}
	}
	return f, nil
}

func (t *FactorTable) BaseYield(crop models.Crop) (float64, error) {
	f, err := t.crop(crop)
	return f.BaseYieldKgPerAcre, err
}

func (t *FactorTable) BasePrice(crop models.Crop) (float64, error) {
	f, err := t.crop(crop)
	return f.PricePerKg, err
}

func (t *FactorTable) CostRates(crop models.Crop) (CostRates, error) {
	f, err := t.crop(crop)
	return f.CostPerAcre, err
}

// SoilFactor never fails: unlisted soils get the table's neutral factor.
func (t *FactorTable) SoilFactor(soil models.SoilType) float64 {
	if f, ok := t.Soils[soil]; ok {
		return f
	}
	return t.DefaultSoilFactor
}

func (t *FactorTable) SeasonFactor(season models.Season) (float64, error) {
	f, ok := t.Seasons[season]
	if !ok {
		return 0, &InvalidInputError{Field: "season", Value: season, Reason: "not in catalogue"}
	}
	return f, nil
}

func (t *FactorTable) CropNames() []models.Crop {
	crops := make([]models.Crop, 0, len(t.Crops))
	for c := range t.Crops {
		crops = append(crops, c)
	}
	sort.Slice(crops, func(i, j int) bool { return crops[i] < crops[j] })
	return crops
}

func (t *FactorTable) SeasonNames() []models.Season {
	seasons := make([]models.Season, 0, len(t.Seasons))
	for s := range t.Seasons {
		seasons = append(seasons, s)
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i] < seasons[j] })
	return seasons
}
