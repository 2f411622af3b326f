package services

import (
	"testing"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSoilForRegion(t *testing.T) {
	tests := []struct {
		region string
		want   models.SoilType
	}{
		{"Tamil Nadu", models.SoilRedLoamy},
		{"  punjab ", models.SoilAlluvial},
		{"Rajasthan", models.SoilDesertSandy},
		{"Maharashtra", models.SoilBlackCotton},
		{"Odisha", models.SoilRedLaterite},
		{"Goa", models.SoilMixed},
		{"", models.SoilUnknown},
		{"   ", models.SoilUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			assert.Equal(t, tt.want, SoilForRegion(tt.region))
		})
	}
}

func TestSchemesFor(t *testing.T) {
	tn := SchemesFor("Madurai, Tamil Nadu, India")
	assert.Contains(t, tn, "Free electricity for agriculture pumpsets")
	assert.Contains(t, tn, pmKisan)

	assert.Contains(t, SchemesFor("warangal TELANGANA"), "Rythu Bima - Farmer life insurance")

	fallback := SchemesFor("Shimla")
	assert.Equal(t, []string{pmKisan, pmfby, soilHealth, kisanCredit}, fallback)

	// callers get their own copy
	fallback[0] = "changed"
	assert.Equal(t, pmKisan, SchemesFor("Shimla")[0])
}
