// Package geospatial implements the Geospatial Analyst: spatial-index
// backed radius/k-NN/coverage-grid/medical-desert/equity/distance
// handlers over the facility table.
package geospatial

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	domain "medbridge/internal/facility/domain"
	"medbridge/internal/spatial"
)

// FacilityDistance pairs a facility with its computed distance in km.
type FacilityDistance struct {
	Facility   domain.Facility `json:"facility"`
	DistanceKM float64         `json:"distance_km"`
}

// Result is the uniform envelope every handler returns. Gaps carries the
// uncovered cells for grid handlers and stays an empty list (never null) so
// a no-match specialty filter reads as {deserts_found: 0, gaps: []} with an
// explanation rather than an error.
type Result struct {
	Action       string             `json:"action"`
	Facilities   []FacilityDistance `json:"facilities,omitempty"`
	CoveragePct  *float64           `json:"coverage_pct,omitempty"`
	WorstCells   []GridCell         `json:"worst_cold_spots,omitempty"`
	Gaps         []GridCell         `json:"gaps"`
	Deserts      []Desert           `json:"deserts,omitempty"`
	DesertsFound *int               `json:"deserts_found,omitempty"`
	Equity       []RegionEquity     `json:"equity,omitempty"`
	DistanceKM   *float64           `json:"distance_km,omitempty"`
	Explanation  string             `json:"explanation,omitempty"`
	Utterance    string             `json:"utterance"`
	DurationMS   int64              `json:"duration_ms"`
}

// GeocodeLookup resolves a known city name to coordinates, an external
// collaborator.
type GeocodeLookup interface {
	CityCoords(city string) (lat, lng float64, ok bool)
}

// Analyst is the Geospatial Analyst agent.
type Analyst struct {
	table     *domain.FacilityTable
	geo       GeocodeLookup
	centroids RegionCentroidLookup
}

// New builds an Analyst over table. geo and centroids may be nil; desert
// detection then falls back to mean facility coordinates per region.
func New(table *domain.FacilityTable, geo GeocodeLookup, centroids RegionCentroidLookup) *Analyst {
	return &Analyst{table: table, geo: geo, centroids: centroids}
}

func subsetBySpecialty(table *domain.FacilityTable, specialty string) []domain.Facility {
	base := table.WithCoords()
	if specialty == "" {
		return base
	}
	var out []domain.Facility
	for _, f := range base {
		if f.HasSpecialty(specialty) {
			out = append(out, f)
		}
	}
	return out
}

func buildIndex(facilities []domain.Facility) (*spatial.Index, []domain.Facility) {
	points := make([]spatial.Point, len(facilities))
	for i, f := range facilities {
		points[i] = spatial.Point{Index: i, Lat: f.Lat, Lng: f.Lng}
	}
	return spatial.Build(points), facilities
}

// WithinRadius filters to the specialty-matching, coordinate-valid subset and
// returns every facility within radiusKM of center, sorted ascending and
// capped at 30.
func (a *Analyst) WithinRadius(centerLat, centerLng, radiusKM float64, specialty string) Result {
	start := time.Now()
	subset := subsetBySpecialty(a.table, specialty)
	idx, facilities := buildIndex(subset)

	neighbors := idx.WithinRadius(centerLat, centerLng, radiusKM)
	if len(neighbors) > 30 {
		neighbors = neighbors[:30]
	}

	out := make([]FacilityDistance, len(neighbors))
	for i, n := range neighbors {
		out[i] = FacilityDistance{Facility: facilities[n.Point.Index], DistanceKM: n.DistanceKM}
	}

	return Result{Action: "within_radius", Facilities: out, Gaps: []GridCell{}, DurationMS: time.Since(start).Milliseconds()}
}

// Nearest returns the k closest facilities to center.
func (a *Analyst) Nearest(centerLat, centerLng float64, k int, specialty string) Result {
	start := time.Now()
	subset := subsetBySpecialty(a.table, specialty)
	idx, facilities := buildIndex(subset)

	if k > len(facilities) {
		k = len(facilities)
	}
	neighbors := idx.KNearest(centerLat, centerLng, k)

	out := make([]FacilityDistance, len(neighbors))
	for i, n := range neighbors {
		out[i] = FacilityDistance{Facility: facilities[n.Point.Index], DistanceKM: n.DistanceKM}
	}

	return Result{Action: "nearest", Facilities: out, Gaps: []GridCell{}, DurationMS: time.Since(start).Milliseconds()}
}

// GridCell is a single coverage-grid evaluation point.
type GridCell struct {
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	NearestKM      float64 `json:"nearest_km"`
	Uncovered      bool    `json:"uncovered"`
}

// CoverageGrid builds a regular grid over the bounding box, runs k=1
// nearest per cell, and reports coverage percentage plus the worst 15 cells
// by distance descending. The grid loop observes ctx between cells and
// returns what it has so far.
func (a *Analyst) CoverageGrid(ctx context.Context, minLat, maxLat, minLng, maxLng, gridDeg, maxKM float64, specialty string) Result {
	start := time.Now()
	subset := subsetBySpecialty(a.table, specialty)
	idx, facilities := buildIndex(subset)

	if len(facilities) == 0 {
		zero := 0
		return Result{
			Action:       "coverage_gap",
			Gaps:         []GridCell{},
			DesertsFound: &zero,
			Explanation:  emptySubsetExplanation(specialty),
			DurationMS:   time.Since(start).Milliseconds(),
		}
	}

	var cells []GridCell
grid:
	for lat := minLat; lat <= maxLat; lat += gridDeg {
		for lng := minLng; lng <= maxLng; lng += gridDeg {
			if ctx.Err() != nil {
				break grid
			}
			neighbors := idx.KNearest(lat, lng, 1)
			if len(neighbors) == 0 {
				continue
			}
			d := neighbors[0].DistanceKM
			cells = append(cells, GridCell{Lat: lat, Lng: lng, NearestKM: d, Uncovered: d > maxKM})
		}
	}

	covered := 0
	for _, c := range cells {
		if !c.Uncovered {
			covered++
		}
	}
	var pct float64
	if len(cells) > 0 {
		pct = 100 * float64(covered) / float64(len(cells))
	}

	sorted := make([]GridCell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].NearestKM > sorted[j].NearestKM })
	if len(sorted) > 15 {
		sorted = sorted[:15]
	}

	gaps := []GridCell{}
	for _, c := range sorted {
		if c.Uncovered {
			gaps = append(gaps, c)
		}
	}

	return Result{
		Action:      "coverage_gap",
		CoveragePct: &pct,
		WorstCells:  sorted,
		Gaps:        gaps,
		DurationMS:  time.Since(start).Milliseconds(),
	}
}

func emptySubsetExplanation(specialty string) string {
	if specialty == "" {
		return "no facilities with valid coordinates are available for coverage analysis"
	}
	return fmt.Sprintf("no facilities offering %s have valid coordinates; nothing to analyze", specialty)
}

// Desert is a region whose nearest matching facility exceeds the
// medical-desert threshold.
type Desert struct {
	Region     string  `json:"region"`
	DistanceKM float64 `json:"nearest_distance_km"`
	Severity   string  `json:"severity"`
}

// RegionCentroidLookup resolves an authoritative region centroid,
// overriding the mean-of-facility-coordinates fallback.
type RegionCentroidLookup interface {
	RegionCentroid(region string) (lat, lng float64, ok bool)
}

// MedicalDeserts computes region centers (mean facility coordinate,
// overridden by an authoritative centroid table when available), then flags
// regions whose nearest matching facility exceeds thresholdKM.
func (a *Analyst) MedicalDeserts(specialty string, thresholdKM float64, centroids RegionCentroidLookup) Result {
	start := time.Now()
	subset := subsetBySpecialty(a.table, specialty)
	idx, facilities := buildIndex(subset)

	if len(facilities) == 0 {
		zero := 0
		return Result{
			Action:       "medical_desert_detection",
			Gaps:         []GridCell{},
			DesertsFound: &zero,
			Explanation:  emptySubsetExplanation(specialty),
			DurationMS:   time.Since(start).Milliseconds(),
		}
	}

	regionCenters := computeRegionCenters(a.table.WithCoords(), centroids)

	var deserts []Desert
	for region, center := range regionCenters {
		neighbors := idx.KNearest(center[0], center[1], 1)
		if len(neighbors) == 0 {
			continue
		}
		d := neighbors[0].DistanceKM
		if d > thresholdKM {
			deserts = append(deserts, Desert{Region: region, DistanceKM: d, Severity: desertSeverity(d)})
		}
	}
	sort.Slice(deserts, func(i, j int) bool {
		if deserts[i].DistanceKM != deserts[j].DistanceKM {
			return deserts[i].DistanceKM > deserts[j].DistanceKM
		}
		return deserts[i].Region < deserts[j].Region
	})

	found := len(deserts)
	return Result{
		Action:       "medical_desert_detection",
		Deserts:      deserts,
		DesertsFound: &found,
		Gaps:         []GridCell{},
		DurationMS:   time.Since(start).Milliseconds(),
	}
}

func desertSeverity(distanceKM float64) string {
	switch {
	case distanceKM > 150:
		return "critical"
	case distanceKM > 100:
		return "high"
	default:
		return "medium"
	}
}

func computeRegionCenters(facilities []domain.Facility, centroids RegionCentroidLookup) map[string][2]float64 {
	sums := map[string][2]float64{}
	counts := map[string]int{}
	for _, f := range facilities {
		if f.Region == "" {
			continue
		}
		s := sums[f.Region]
		s[0] += f.Lat
		s[1] += f.Lng
		sums[f.Region] = s
		counts[f.Region]++
	}

	centers := map[string][2]float64{}
	for region, sum := range sums {
		n := float64(counts[region])
		centers[region] = [2]float64{sum[0] / n, sum[1] / n}
	}
	if centroids != nil {
		for region := range centers {
			if lat, lng, ok := centroids.RegionCentroid(region); ok {
				centers[region] = [2]float64{lat, lng}
			}
		}
	}
	return centers
}

// RegionEquity summarizes facility, bed, and doctor distribution within a
// region.
type RegionEquity struct {
	Region          string   `json:"region"`
	Facilities      int      `json:"facilities"`
	TotalBeds       int      `json:"total_beds"`
	TotalDoctors    int      `json:"total_doctors"`
	UniqueSpecialty int      `json:"unique_specialty_count"`
	TopSpecialties  []string `json:"top_specialties"`
	BedsPerFacility float64  `json:"beds_per_facility"`
}

// RegionalEquity aggregates per-region facility counts, capacity, and
// specialty coverage.
func (a *Analyst) RegionalEquity() Result {
	start := time.Now()
	type acc struct {
		count       int
		beds        int
		doctors     int
		specialties map[string]int
	}
	accs := map[string]*acc{}
	for _, f := range a.table.All() {
		if f.Region == "" {
			continue
		}
		entry, ok := accs[f.Region]
		if !ok {
			entry = &acc{specialties: map[string]int{}}
			accs[f.Region] = entry
		}
		entry.count++
		if f.Beds != nil {
			entry.beds += *f.Beds
		}
		if f.Doctors != nil {
			entry.doctors += *f.Doctors
		}
		for _, s := range f.Specialties {
			entry.specialties[s]++
		}
	}

	regions := make([]string, 0, len(accs))
	for r := range accs {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	out := make([]RegionEquity, 0, len(regions))
	for _, region := range regions {
		entry := accs[region]
		specs := make([]string, 0, len(entry.specialties))
		for s := range entry.specialties {
			specs = append(specs, s)
		}
		sort.Slice(specs, func(i, j int) bool {
			if entry.specialties[specs[i]] != entry.specialties[specs[j]] {
				return entry.specialties[specs[i]] > entry.specialties[specs[j]]
			}
			return specs[i] < specs[j]
		})
		if len(specs) > 10 {
			specs = specs[:10]
		}

		bedsPerFacility := 0.0
		if entry.count > 0 {
			bedsPerFacility = float64(entry.beds) / float64(entry.count)
		}

		out = append(out, RegionEquity{
			Region:          region,
			Facilities:      entry.count,
			TotalBeds:       entry.beds,
			TotalDoctors:    entry.doctors,
			UniqueSpecialty: len(entry.specialties),
			TopSpecialties:  specs,
			BedsPerFacility: bedsPerFacility,
		})
	}

	return Result{Action: "regional_equity", Equity: out, Gaps: []GridCell{}, DurationMS: time.Since(start).Milliseconds()}
}

// DistanceBetweenCities uses the mean facility coordinate for each city,
// falling back to the external geocode when a city has no facilities.
func (a *Analyst) DistanceBetweenCities(cityA, cityB string) Result {
	start := time.Now()
	latA, lngA, okA := a.cityCenter(cityA)
	latB, lngB, okB := a.cityCenter(cityB)

	var distance *float64
	if okA && okB {
		d := spatial.HaversineKM(latA, lngA, latB, lngB)
		distance = &d
	}

	return Result{Action: "distance_between_cities", DistanceKM: distance, Gaps: []GridCell{}, DurationMS: time.Since(start).Milliseconds()}
}

func (a *Analyst) cityCenter(city string) (lat, lng float64, ok bool) {
	var sumLat, sumLng float64
	var n int
	for _, f := range a.table.WithCoords() {
		if strings.EqualFold(f.City, city) {
			sumLat += f.Lat
			sumLng += f.Lng
			n++
		}
	}
	if n > 0 {
		return sumLat / float64(n), sumLng / float64(n), true
	}
	if a.geo != nil {
		return a.geo.CityCoords(city)
	}
	return 0, 0, false
}

var radiusPattern = regexp.MustCompile(`(\d+)\s*km`)

// ParseRadiusKM extracts a "<number> km" style radius from an utterance.
func ParseRadiusKM(s string) (float64, bool) {
	m := radiusPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
