package validator

import (
	"sort"

	domain "medbridge/internal/facility/domain"
)

// CoverageGapReport lists regions with <=1 matching facility for a given
// specialty.
type CoverageGapReport struct {
	Specialty string        `json:"specialty"`
	Gaps      []RegionGap   `json:"gaps"`
}

// RegionGap names an under-covered region and, when available, its
// external centroid.
type RegionGap struct {
	Region string   `json:"region"`
	Count  int      `json:"count"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// RegionCentroidLookup resolves a region name to a centroid, an external
// collaborator seam.
type RegionCentroidLookup interface {
	RegionCentroid(region string) (lat, lng float64, ok bool)
}

// CoverageGap reports regions with at most one facility offering
// specialty.
func CoverageGap(table *domain.FacilityTable, specialty string, centroids RegionCentroidLookup) CoverageGapReport {
	counts := map[string]int{}
	for _, f := range table.All() {
		if f.Region == "" {
			continue
		}
		if _, ok := counts[f.Region]; !ok {
			counts[f.Region] = 0
		}
	}
	matchCounts := map[string]int{}
	for _, f := range table.All() {
		if f.Region == "" || !f.HasSpecialty(specialty) {
			continue
		}
		matchCounts[f.Region]++
	}

	var gaps []RegionGap
	for region := range counts {
		count := matchCounts[region]
		if count <= 1 {
			gap := RegionGap{Region: region, Count: count}
			if centroids != nil {
				if lat, lng, ok := centroids.RegionCentroid(region); ok {
					gap.Lat = &lat
					gap.Lng = &lng
				}
			}
			gaps = append(gaps, gap)
		}
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].Region < gaps[j].Region })

	return CoverageGapReport{Specialty: specialty, Gaps: gaps}
}

// SPOFSeverity classifies a single-point-of-failure specialty by how many
// facilities offer it.
func SPOFSeverity(count int) string {
	switch count {
	case 1:
		return "critical"
	case 2:
		return "high"
	case 3:
		return "medium"
	default:
		return ""
	}
}

// SPOFEntry is a single single-point-of-failure specialty rollup entry.
type SPOFEntry struct {
	Specialty string   `json:"specialty"`
	Count     int      `json:"count"`
	Severity  string   `json:"severity"`
	Regions   []string `json:"regions"`
}

// SinglePointOfFailure rolls up specialties held by at most three
// facilities, aggregated with the regions that cover them.
func SinglePointOfFailure(table *domain.FacilityTable) []SPOFEntry {
	counts := map[string]int{}
	regionsBySpecialty := map[string]map[string]bool{}
	for _, f := range table.All() {
		for _, s := range f.Specialties {
			counts[s]++
			if regionsBySpecialty[s] == nil {
				regionsBySpecialty[s] = map[string]bool{}
			}
			if f.Region != "" {
				regionsBySpecialty[s][f.Region] = true
			}
		}
	}

	var entries []SPOFEntry
	for s, c := range counts {
		if c > 3 {
			continue
		}
		var regions []string
		for r := range regionsBySpecialty[s] {
			regions = append(regions, r)
		}
		sort.Strings(regions)
		entries = append(entries, SPOFEntry{
			Specialty: s,
			Count:     c,
			Severity:  SPOFSeverity(c),
			Regions:   regions,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count < entries[j].Count
		}
		return entries[i].Specialty < entries[j].Specialty
	})
	return entries
}
