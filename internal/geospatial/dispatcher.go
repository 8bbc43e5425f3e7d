package geospatial

import (
	"context"
	"strings"
)

var (
	nearCues    = []string{"within", "near", "close to", "around"}
	nearestCues = []string{"nearest", "closest"}
	desertCues  = []string{"desert", "underserved area"}
	gapCues     = []string{"coverage gap", "coverage grid", "coverage"}
	equityCues  = []string{"equity", "distribution of resources", "fairness"}
	distanceCues = []string{"distance between", "how far"}
)

// DispatchInput bundles the inputs the dispatcher needs to pick a handler.
type DispatchInput struct {
	Utterance   string
	CenterLat   float64
	CenterLng   float64
	HasCenter   bool
	Specialty   string
	K           int
	CityA       string
	CityB       string
	BoundingBox [4]float64 // minLat, maxLat, minLng, maxLng
}

// Dispatch picks exactly one handler by phrase cues, defaulting to
// coverage_gap. ctx is observed by the grid handlers' long loops.
func (a *Analyst) Dispatch(ctx context.Context, in DispatchInput) Result {
	lower := strings.ToLower(in.Utterance)

	var r Result
	switch {
	case containsAny(lower, distanceCues) && in.CityA != "" && in.CityB != "":
		r = a.DistanceBetweenCities(in.CityA, in.CityB)
	case containsAny(lower, equityCues):
		r = a.RegionalEquity()
	case containsAny(lower, desertCues):
		r = a.MedicalDeserts(in.Specialty, 75, a.centroids)
	case containsAny(lower, nearestCues) && in.HasCenter:
		k := in.K
		if k <= 0 {
			k = 5
		}
		r = a.Nearest(in.CenterLat, in.CenterLng, k, in.Specialty)
	case containsAny(lower, nearCues) && in.HasCenter:
		radius, ok := ParseRadiusKM(lower)
		if !ok {
			radius = 25
		}
		r = a.WithinRadius(in.CenterLat, in.CenterLng, radius, in.Specialty)
	case containsAny(lower, gapCues):
		bb := in.BoundingBox
		r = a.CoverageGrid(ctx, bb[0], bb[1], bb[2], bb[3], 0.5, 50, in.Specialty)
	default:
		bb := in.BoundingBox
		r = a.CoverageGrid(ctx, bb[0], bb[1], bb[2], bb[3], 0.5, 50, in.Specialty)
	}

	r.Utterance = in.Utterance
	return r
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
