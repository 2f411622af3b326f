package estimator

import (
	"errors"
	"testing"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFactorTable(t *testing.T) {
	table := DefaultFactorTable()
	require.NoError(t, table.Validate())

	tests := []struct {
		crop      models.Crop
		yield     float64
		price     float64
		costTotal float64
	}{
		{models.CropRice, 2400, 25, 18000},
		{models.CropWheat, 2200, 22, 15000},
		{models.CropMaize, 2600, 20, 16000},
	}
	for _, tt := range tests {
		t.Run(string(tt.crop), func(t *testing.T) {
			y, err := table.BaseYield(tt.crop)
			require.NoError(t, err)
			assert.Equal(t, tt.yield, y)

			p, err := table.BasePrice(tt.crop)
			require.NoError(t, err)
			assert.Equal(t, tt.price, p)

			rates, err := table.CostRates(tt.crop)
			require.NoError(t, err)
			assert.Equal(t, tt.costTotal, rates.Total())
		})
	}
}

func TestSoilFactorFallsBackToNeutral(t *testing.T) {
	table := DefaultFactorTable()

	assert.Equal(t, 1.0, table.SoilFactor(models.SoilRedLoamy))
	assert.Equal(t, 1.05, table.SoilFactor(models.SoilAlluvial))
	assert.Equal(t, 0.9, table.SoilFactor(models.SoilLaterite))
	assert.Equal(t, NeutralSoilFactor, table.SoilFactor("Volcanic Soil"))
	assert.Equal(t, NeutralSoilFactor, table.SoilFactor(""))
}

func TestSeasonFactor(t *testing.T) {
	table := DefaultFactorTable()

	for season, want := range map[models.Season]float64{
		models.SeasonKharif: 1.0,
		models.SeasonRabi:   0.9,
		models.SeasonZaid:   0.8,
	} {
		got, err := table.SeasonFactor(season)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(season))
	}

	_, err := table.SeasonFactor("Monsoon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUnknownCropIsInvalidInput(t *testing.T) {
	table := DefaultFactorTable()

	_, err := table.BaseYield("Sugarcane")
	require.Error(t, err)

	var inputErr *InvalidInputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "crop", inputErr.Field)
}

func TestLoadFactorTable(t *testing.T) {
	table, err := LoadFactorTable("testdata/factors.yaml")
	require.NoError(t, err)

	assert.Equal(t, "test-1", table.Version)
	assert.Equal(t, []models.Crop{"Cotton", models.CropRice}, table.CropNames())
	assert.Equal(t, []models.Season{models.SeasonKharif, models.SeasonRabi}, table.SeasonNames())

	price, err := table.BasePrice("Cotton")
	require.NoError(t, err)
	assert.Equal(t, 60.0, price)
	assert.Equal(t, 1.05, table.SoilFactor(models.SoilBlackCotton))
	assert.Equal(t, 0.95, table.SoilFactor(models.SoilLaterite))

	_, err = LoadFactorTable("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseFactorTableValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing version",
			doc:  "crops:\n  Rice: {base_yield_kg_per_acre: 1, price_per_kg: 1}\nseasons:\n  Kharif: 1\n",
		},
		{
			name: "no crops",
			doc:  "version: v\nseasons:\n  Kharif: 1\n",
		},
		{
			name: "no seasons",
			doc:  "version: v\ncrops:\n  Rice: {base_yield_kg_per_acre: 1, price_per_kg: 1}\n",
		},
		{
			name: "zero yield",
			doc:  "version: v\ncrops:\n  Rice: {base_yield_kg_per_acre: 0, price_per_kg: 1}\nseasons:\n  Kharif: 1\n",
		},
		{
			name: "negative cost rate",
			doc: "version: v\ncrops:\n  Rice:\n    base_yield_kg_per_acre: 1\n    price_per_kg: 1\n" +
				"    cost_per_acre: {seed: -1}\nseasons:\n  Kharif: 1\n",
		},
		{
			name: "negative soil factor",
			doc: "version: v\ncrops:\n  Rice: {base_yield_kg_per_acre: 1, price_per_kg: 1}\n" +
				"soils:\n  Sandy: -0.5\nseasons:\n  Kharif: 1\n",
		},
		{
			name: "malformed yaml",
			doc:  "version: [",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFactorTable([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
