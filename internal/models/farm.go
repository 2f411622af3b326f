package models

type Crop string

const (
	CropRice  Crop = "Rice"
	CropWheat Crop = "Wheat"
	CropMaize Crop = "Maize"
)

type Season string

const (
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
	SeasonZaid   Season = "Zaid"
)

type SoilType string

const (
	SoilRedLoamy    SoilType = "Red Loamy Soil"
	SoilRed         SoilType = "Red Soil"
	SoilBlackCotton SoilType = "Black Cotton Soil"
	SoilBlack       SoilType = "Black Soil"
	SoilAlluvial    SoilType = "Alluvial Soil"
	SoilLaterite    SoilType = "Laterite Soil"
	SoilRedLaterite SoilType = "Red & Laterite Soil"
	SoilDesertSandy SoilType = "Desert Sandy Soil"
	SoilMixed       SoilType = "Mixed / Regional Soil"
	SoilUnknown     SoilType = "Unknown Soil"
)

// FarmRequest is the user-supplied part of an analysis. Soil is derived from
// the resolved region and is never part of the request.
type FarmRequest struct {
	Place     string  `json:"place"`
	Crop      Crop    `json:"crop"`
	Season    Season  `json:"season"`
	AreaAcres float64 `json:"area"`
}
