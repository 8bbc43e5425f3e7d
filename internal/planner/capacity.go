package planner

import (
	"sort"
	"time"
)

// RegionCapacity is a single region's capacity-planning row.
type RegionCapacity struct {
	Region           string  `json:"region"`
	Facilities       int     `json:"facilities"`
	TotalBeds        int     `json:"total_beds"`
	TotalDoctors     int     `json:"total_doctors"`
	BedsPerFacility  float64 `json:"beds_per_facility"`
	DoctorsPerFacility float64 `json:"doctors_per_facility"`
	Status           string  `json:"status"`
}

// CapacityPlanningResult is the capacity-planning handler's payload.
type CapacityPlanningResult struct {
	Action     string           `json:"action"`
	Regions    []RegionCapacity `json:"regions"`
	Utterance  string           `json:"utterance"`
	DurationMS int64            `json:"duration_ms"`
}

// CapacityPlanning aggregates beds/doctors per region, classifies each
// region's status, and sorts ascending by beds/facility.
func (p *Planner) CapacityPlanning() CapacityPlanningResult {
	start := time.Now()

	type accum struct {
		facilities int
		beds       int
		doctors    int
	}
	byRegion := map[string]*accum{}
	for _, f := range p.table.All() {
		if f.Region == "" {
			continue
		}
		a, ok := byRegion[f.Region]
		if !ok {
			a = &accum{}
			byRegion[f.Region] = a
		}
		a.facilities++
		if f.Beds != nil {
			a.beds += *f.Beds
		}
		if f.Doctors != nil {
			a.doctors += *f.Doctors
		}
	}

	regions := make([]RegionCapacity, 0, len(byRegion))
	for region, a := range byRegion {
		bedsPerFacility := 0.0
		doctorsPerFacility := 0.0
		if a.facilities > 0 {
			bedsPerFacility = float64(a.beds) / float64(a.facilities)
			doctorsPerFacility = float64(a.doctors) / float64(a.facilities)
		}
		regions = append(regions, RegionCapacity{
			Region:             region,
			Facilities:         a.facilities,
			TotalBeds:          a.beds,
			TotalDoctors:       a.doctors,
			BedsPerFacility:    bedsPerFacility,
			DoctorsPerFacility: doctorsPerFacility,
			Status:             capacityStatus(bedsPerFacility, a.facilities),
		})
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].BedsPerFacility != regions[j].BedsPerFacility {
			return regions[i].BedsPerFacility < regions[j].BedsPerFacility
		}
		return regions[i].Region < regions[j].Region
	})

	return CapacityPlanningResult{
		Action:     "capacity_planning",
		Regions:    regions,
		DurationMS: time.Since(start).Milliseconds(),
	}
}

func capacityStatus(bedsPerFacility float64, facilities int) string {
	switch {
	case bedsPerFacility < 5 && facilities > 3:
		return "critical"
	case bedsPerFacility < 15:
		return "warning"
	default:
		return "adequate"
	}
}
