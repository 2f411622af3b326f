package services

import "strings"

const (
	pmKisan     = "PM-KISAN - ₹6000/year income support"
	pmfby       = "Pradhan Mantri Fasal Bima Yojana (PMFBY)"
	soilHealth  = "Soil Health Card Scheme"
	kisanCredit = "Kisan Credit Card (KCC)"
)

type stateSchemes struct {
	state   string
	schemes []string
}

// Ordered so matching a free-text place is deterministic.
var schemesByState = []stateSchemes{
	{"andhra pradesh", []string{
		"YSR Rythu Bharosa - ₹13,500/year financial support",
		"Andhra Pradesh Crop Insurance Scheme",
		"Free borewell scheme for small farmers",
		soilHealth, pmKisan,
	}},
	{"karnataka", []string{
		"Raitha Siri - Direct income support",
		pmfby,
		"Karnataka Krushi Yantra Dhare - Machinery subsidy",
		soilHealth, pmKisan,
	}},
	{"maharashtra", []string{
		"MahaDBT Farmer Schemes",
		pmfby,
		"Farm pond subsidy scheme",
		soilHealth, pmKisan,
	}},
	{"tamil nadu", []string{
		"Kuruvai Special Package - Subsidy for short-term crops",
		"Tamil Nadu Farmers Crop Insurance Scheme (TNFCIS)",
		"Free electricity for agriculture pumpsets",
		soilHealth, pmKisan,
	}},
	{"telangana", []string{
		"Rythu Bandhu - Investment support per acre",
		"Rythu Bima - Farmer life insurance",
		"Mission Kakatiya - Irrigation tanks restoration",
		soilHealth, pmKisan,
	}},
}

var nationalSchemes = []string{pmKisan, pmfby, soilHealth, kisanCredit}

// SchemesFor returns subsidy programmes for the state named anywhere in the
// place text, falling back to India-wide schemes.
func SchemesFor(place string) []string {
	text := strings.ToLower(place)
	for _, s := range schemesByState {
		if strings.Contains(text, s.state) {
			return append([]string(nil), s.schemes...)
		}
	}
	return append([]string(nil), nationalSchemes...)
}
