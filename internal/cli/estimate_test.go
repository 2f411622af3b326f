package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bobby-s-dev/agri-optimizer/internal/estimator"
	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEstimateOfflineJSON(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantYield float64
		wantSoil  models.SoilType
		wantAdv   models.Advisory
	}{
		{
			name:      "no ndvi",
			args:      []string{"--region", "Tamil Nadu", "--temp", "28", "--rain", "25"},
			wantYield: 2400,
			wantSoil:  models.SoilRedLoamy,
			wantAdv:   models.AdvisorySatelliteUnavailable,
		},
		{
			name:      "region soil with stressed ndvi",
			args:      []string{"--region", "Punjab", "--temp", "28", "--rain", "25", "--ndvi", "0.2"},
			wantYield: 1764,
			wantSoil:  models.SoilAlluvial,
			wantAdv:   models.AdvisorySevereStress,
		},
		{
			name:      "heat and drought",
			args:      []string{"--region", "Tamil Nadu", "--temp", "38", "--rain", "5"},
			wantYield: 1836,
			wantSoil:  models.SoilRedLoamy,
			wantAdv:   models.AdvisorySatelliteUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"estimate", "--offline", "--crop", "Rice", "--season", "Kharif", "--area", "1", "-o", "json"}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)

			var result models.EstimationResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, tt.wantYield, result.YieldKg)
			assert.Equal(t, tt.wantSoil, result.Soil)
			assert.Equal(t, tt.wantAdv, result.Advisory)
		})
	}
}

func TestEstimateOfflineTable(t *testing.T) {
	out, err := execute(t, "estimate", "--offline", "--crop", "Wheat", "--season", "Rabi", "--area", "2",
		"--region", "Punjab", "--temp", "22", "--rain", "30", "--ndvi", "0.6")
	require.NoError(t, err)

	assert.Contains(t, out, "Wheat (Rabi)")
	assert.Contains(t, out, "Alluvial Soil")
	assert.Contains(t, out, "0.600 (Healthy")
	assert.Contains(t, out, "Crop health is stable")
	assert.Contains(t, out, "ndvi cost policy")
}

func TestEstimateErrors(t *testing.T) {
	t.Run("invalid area", func(t *testing.T) {
		_, err := execute(t, "estimate", "--offline", "--crop", "Rice", "--season", "Kharif", "--area=-1")
		assert.ErrorIs(t, err, estimator.ErrInvalidInput)
	})

	t.Run("missing required flag", func(t *testing.T) {
		_, err := execute(t, "estimate", "--offline", "--crop", "Rice", "--area", "1")
		assert.Error(t, err)
	})

	t.Run("online needs place", func(t *testing.T) {
		_, err := execute(t, "estimate", "--crop", "Rice", "--season", "Kharif", "--area", "1")
		assert.ErrorContains(t, err, "--place")
	})

	t.Run("soil is not a flag", func(t *testing.T) {
		_, err := execute(t, "estimate", "--offline", "--crop", "Rice", "--season", "Kharif", "--area", "1",
			"--region", "Tamil Nadu", "--soil", "Alluvial Soil", "--temp", "28", "--rain", "25")
		assert.ErrorContains(t, err, "unknown flag: --soil")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "estimate", "--offline", "--crop", "Rice", "--season", "Kharif", "--area", "1",
			"--temp", "28", "--rain", "25", "-o", "yaml")
		assert.ErrorContains(t, err, "unsupported output format")
	})
}
