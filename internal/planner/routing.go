package planner

import (
	"sort"
	"time"

	domain "medbridge/internal/facility/domain"
)

// Candidate is a single emergency-routing option.
type Candidate struct {
	Facility        domain.Facility `json:"facility"`
	DistanceKM      float64         `json:"distance_km"`
	CapabilityScore int             `json:"capability_score"`
}

// RoutingResult is the emergency-routing handler's payload.
type RoutingResult struct {
	Action      string      `json:"action"`
	Primary     *Candidate  `json:"primary_facility,omitempty"`
	Backup      *Candidate  `json:"backup_facility,omitempty"`
	Alternates  []Candidate `json:"alternates,omitempty"`
	Utterance   string      `json:"utterance"`
	DurationMS  int64       `json:"duration_ms"`
}

// EmergencyRouting subsets by specialty, ranks candidates by distance from
// origin, and returns the top, backup, and up to three alternates, each
// scored by CapabilityScore.
func (p *Planner) EmergencyRouting(specialty string, originLat, originLng float64) RoutingResult {
	start := time.Now()
	var candidates []Candidate
	for _, f := range p.table.WithCoords() {
		if specialty != "" && !f.HasSpecialty(specialty) {
			continue
		}
		fCopy := f
		candidates = append(candidates, Candidate{
			Facility:        fCopy,
			DistanceKM:      haversine(originLat, originLng, f.Lat, f.Lng),
			CapabilityScore: CapabilityScore(&fCopy, specialty),
		})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].DistanceKM < candidates[j].DistanceKM })

	result := RoutingResult{Action: "emergency_routing"}
	if len(candidates) > 0 {
		result.Primary = &candidates[0]
	}
	if len(candidates) > 1 {
		result.Backup = &candidates[1]
	}
	if len(candidates) > 2 {
		end := len(candidates)
		if end > 5 {
			end = 5
		}
		result.Alternates = candidates[2:end]
	}

	result.DurationMS = time.Since(start).Milliseconds()
	return result
}
