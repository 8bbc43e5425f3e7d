package planner

import (
	"context"
	"sort"
	"time"

	domain "medbridge/internal/facility/domain"
)

const placementGridStep = 0.25 // degrees, ~25km at equator

// PlacementCandidate is a single maximin grid point.
type PlacementCandidate struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	NearestExistingKM float64 `json:"nearest_existing_km"`
	Severity         string  `json:"severity"`
}

// PlacementResult is the new-facility-placement handler's payload.
type PlacementResult struct {
	Action      string                `json:"action"`
	Candidates  []PlacementCandidate  `json:"candidates"`
	Utterance   string                `json:"utterance"`
	DurationMS  int64                 `json:"duration_ms"`
}

// NewFacilityPlacement runs a maximin search: for each grid point over the
// country bounding box (falling back to the extent of existing facilities
// when no bounds were configured), compute the distance to the nearest
// existing facility of the optionally specialty-filtered subset, and return
// the top 10 points by largest nearest-distance. The grid loop observes ctx
// between cells.
func (p *Planner) NewFacilityPlacement(ctx context.Context, specialty string) PlacementResult {
	start := time.Now()

	var subset []domain.Facility
	for _, f := range p.table.WithCoords() {
		if specialty == "" || f.HasSpecialty(specialty) {
			subset = append(subset, f)
		}
	}

	result := PlacementResult{Action: "new_facility_placement"}
	if len(subset) == 0 {
		result.DurationMS = time.Since(start).Milliseconds()
		return result
	}

	minLat, maxLat, minLng, maxLng := p.bounds[0], p.bounds[1], p.bounds[2], p.bounds[3]
	if minLat == 0 && maxLat == 0 && minLng == 0 && maxLng == 0 {
		minLat, maxLat, minLng, maxLng = boundingBox(subset)
	}

	var candidates []PlacementCandidate
grid:
	for lat := minLat; lat <= maxLat; lat += placementGridStep {
		for lng := minLng; lng <= maxLng; lng += placementGridStep {
			if ctx.Err() != nil {
				break grid
			}
			nearest := nearestDistanceKM(lat, lng, subset)
			candidates = append(candidates, PlacementCandidate{
				Lat:               lat,
				Lng:               lng,
				NearestExistingKM: nearest,
				Severity:          placementSeverity(nearest),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].NearestExistingKM > candidates[j].NearestExistingKM
	})
	if len(candidates) > 10 {
		candidates = candidates[:10]
	}

	result.Candidates = candidates
	result.DurationMS = time.Since(start).Milliseconds()
	return result
}

func boundingBox(facilities []domain.Facility) (minLat, maxLat, minLng, maxLng float64) {
	minLat, maxLat = facilities[0].Lat, facilities[0].Lat
	minLng, maxLng = facilities[0].Lng, facilities[0].Lng
	for _, f := range facilities[1:] {
		if f.Lat < minLat {
			minLat = f.Lat
		}
		if f.Lat > maxLat {
			maxLat = f.Lat
		}
		if f.Lng < minLng {
			minLng = f.Lng
		}
		if f.Lng > maxLng {
			maxLng = f.Lng
		}
	}
	return
}

func nearestDistanceKM(lat, lng float64, facilities []domain.Facility) float64 {
	best := -1.0
	for _, f := range facilities {
		d := haversine(lat, lng, f.Lat, f.Lng)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func placementSeverity(km float64) string {
	switch {
	case km > 100:
		return "critical"
	case km > 50:
		return "high"
	default:
		return "medium"
	}
}
