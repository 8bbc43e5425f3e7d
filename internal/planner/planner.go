// Package planner implements the Planner: emergency routing,
// specialist rotation planning, equipment distribution, new-facility
// placement, and capacity planning.
package planner

import (
	domain "medbridge/internal/facility/domain"
	"medbridge/internal/spatial"
)

// AccraLat and AccraLng are the country hub coordinates used as the
// rotation-planning origin.
const (
	AccraLat = 5.6037
	AccraLng = -0.1870
)

// advancedImagingLexemes drive the capability-score imaging bonus.
var advancedImagingLexemes = []string{"mri", "ct scanner", "ct scan", "pet scan"}

// icuLexemes drive the capability-score ICU/theatre bonus.
var icuLexemes = []string{"icu", "operating theatre", "theatre"}

// Planner is the Planner agent.
type Planner struct {
	table *domain.FacilityTable
	// bounds is the country bounding box (minLat, maxLat, minLng, maxLng)
	// scanned by maximin placement. A zero value falls back to the bounding
	// box of the existing facilities.
	bounds [4]float64
}

// New builds a Planner over table.
func New(table *domain.FacilityTable, bounds [4]float64) *Planner {
	return &Planner{table: table, bounds: bounds}
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	return spatial.HaversineKM(lat1, lng1, lat2, lng2)
}
