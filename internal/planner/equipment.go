package planner

import (
	"sort"
	"time"

	domain "medbridge/internal/facility/domain"
)

// EquipmentRecommendation names the top-capacity facility recommended for
// a region lacking kind equipment.
type EquipmentRecommendation struct {
	Region      string          `json:"region"`
	MissingCount int            `json:"missing_count"`
	Facility    domain.Facility `json:"facility"`
}

// EquipmentDistributionResult is the equipment-distribution handler's
// payload.
type EquipmentDistributionResult struct {
	Action          string                    `json:"action"`
	Recommendations []EquipmentRecommendation `json:"recommendations"`
	Utterance       string                    `json:"utterance"`
	DurationMS      int64                     `json:"duration_ms"`
}

// EquipmentDistribution splits facilities by presence of kind in equipment,
// ranks regions by absence count descending, and recommends the highest-
// capacity facility in each top region.
func (p *Planner) EquipmentDistribution(kind string) EquipmentDistributionResult {
	start := time.Now()

	missingByRegion := map[string][]domain.Facility{}
	for _, f := range p.table.All() {
		if f.Region == "" || f.HasEquipment(kind) {
			continue
		}
		missingByRegion[f.Region] = append(missingByRegion[f.Region], f)
	}

	regions := make([]string, 0, len(missingByRegion))
	for r := range missingByRegion {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool {
		if len(missingByRegion[regions[i]]) != len(missingByRegion[regions[j]]) {
			return len(missingByRegion[regions[i]]) > len(missingByRegion[regions[j]])
		}
		return regions[i] < regions[j]
	})

	recs := make([]EquipmentRecommendation, 0, len(regions))
	for _, region := range regions {
		facilities := missingByRegion[region]
		best := highestCapacity(facilities)
		recs = append(recs, EquipmentRecommendation{
			Region:       region,
			MissingCount: len(facilities),
			Facility:     best,
		})
	}

	return EquipmentDistributionResult{
		Action:          "equipment_distribution",
		Recommendations: recs,
		DurationMS:      time.Since(start).Milliseconds(),
	}
}

func highestCapacity(facilities []domain.Facility) domain.Facility {
	best := facilities[0]
	bestBeds := bedsOrZero(best)
	for _, f := range facilities[1:] {
		if b := bedsOrZero(f); b > bestBeds {
			best = f
			bestBeds = b
		}
	}
	return best
}

func bedsOrZero(f domain.Facility) int {
	if f.Beds == nil {
		return 0
	}
	return *f.Beds
}
