package services

import (
	"strings"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
)

// stateSoils maps an Indian state to its dominant soil type.
var stateSoils = map[string]models.SoilType{
	"tamil nadu":     models.SoilRedLoamy,
	"andhra pradesh": models.SoilBlackCotton,
	"telangana":      models.SoilBlack,
	"karnataka":      models.SoilRed,
	"kerala":         models.SoilLaterite,
	"maharashtra":    models.SoilBlackCotton,
	"punjab":         models.SoilAlluvial,
	"haryana":        models.SoilAlluvial,
	"uttar pradesh":  models.SoilAlluvial,
	"rajasthan":      models.SoilDesertSandy,
	"madhya pradesh": models.SoilBlack,
	"bihar":          models.SoilAlluvial,
	"west bengal":    models.SoilAlluvial,
	"odisha":         models.SoilRedLaterite,
}

// SoilForRegion derives soil from the administrative region. It is a pure
// lookup so the same region always yields the same soil.
func SoilForRegion(region string) models.SoilType {
	key := strings.ToLower(strings.TrimSpace(region))
	if key == "" {
		return models.SoilUnknown
	}
	if soil, ok := stateSoils[key]; ok {
		return soil
	}
	return models.SoilMixed
}
