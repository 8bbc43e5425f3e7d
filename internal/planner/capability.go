package planner

import domain "medbridge/internal/facility/domain"

// CapabilityScore computes the 0-100 suitability score for routing a
// specialty-need case to a candidate facility: the specialty bonus
// dominates the other components by design.
func CapabilityScore(f *domain.Facility, neededSpecialty string) int {
	score := 20
	if neededSpecialty != "" && f.HasSpecialty(neededSpecialty) {
		score += 35
	}
	if hasAny(f, icuLexemes) {
		score += 20
	}
	if f.Beds != nil && *f.Beds > 20 {
		score += 10
	}
	if f.Doctors != nil && *f.Doctors > 0 {
		score += 10
	}
	if hasAnyInEquipment(f, advancedImagingLexemes) {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

func hasAny(f *domain.Facility, lexemes []string) bool {
	for _, l := range lexemes {
		if f.HasCapability(l) {
			return true
		}
	}
	return false
}

func hasAnyInEquipment(f *domain.Facility, lexemes []string) bool {
	for _, l := range lexemes {
		if f.HasEquipment(l) {
			return true
		}
	}
	return false
}
