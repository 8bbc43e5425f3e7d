package domain

import "strings"

// RawFacility is a single un-deduplicated source row, already parsed into
// typed fields by the infrastructure loader. Tolerant list/numeric parsing
// happens there; this file only implements the merge rules.
type RawFacility struct {
	Facility
}

// richness counts non-empty scalar/text attributes; the richest row wins
// scalar-field merges during deduplication.
func (r *RawFacility) richness() int {
	n := 0
	nonEmpty := func(s string) bool { return strings.TrimSpace(s) != "" }
	if nonEmpty(r.Name) {
		n++
	}
	if nonEmpty(r.UniqueID) {
		n++
	}
	if nonEmpty(string(r.OrgType)) {
		n++
	}
	if nonEmpty(r.FacilityType) {
		n++
	}
	if nonEmpty(r.City) {
		n++
	}
	if nonEmpty(r.Region) {
		n++
	}
	if r.HasCoords {
		n++
	}
	if r.Beds != nil {
		n++
	}
	if r.Doctors != nil {
		n++
	}
	if r.YearEstablished != nil {
		n++
	}
	if r.Area != nil {
		n++
	}
	n += len(r.Specialties) + len(r.Procedures) + len(r.Equipment) + len(r.Capabilities)
	return n
}

// Deduplicate merges raw rows sharing a pk_unique_id: list fields are
// unioned in first-seen order across the group (sorted richest-first so
// "first seen" favors the richest row), and scalar fields take the first
// non-empty value from the richest row onward. The result order follows
// first appearance of each pk_unique_id in the input.
func Deduplicate(rows []RawFacility) []Facility {
	order := make([]string, 0)
	groups := make(map[string][]RawFacility)
	for _, row := range rows {
		if _, seen := groups[row.PKUniqueID]; !seen {
			order = append(order, row.PKUniqueID)
		}
		groups[row.PKUniqueID] = append(groups[row.PKUniqueID], row)
	}

	result := make([]Facility, 0, len(order))
	for _, pk := range order {
		group := groups[pk]
		result = append(result, mergeGroup(group))
	}
	return result
}

func mergeGroup(group []RawFacility) Facility {
	sorted := make([]RawFacility, len(group))
	copy(sorted, group)
	// stable richest-first ordering
	for i := 1; i < len(sorted); i++ {
		j := i
		for j > 0 && sorted[j-1].richness() < sorted[j].richness() {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
			j--
		}
	}

	base := sorted[0].Facility

	base.Specialties = unionInOrder(sorted, func(r *RawFacility) []string { return r.Specialties })
	base.Procedures = unionInOrder(sorted, func(r *RawFacility) []string { return r.Procedures })
	base.Equipment = unionInOrder(sorted, func(r *RawFacility) []string { return r.Equipment })
	base.Capabilities = unionInOrder(sorted, func(r *RawFacility) []string { return r.Capabilities })

	if strings.TrimSpace(base.Name) == "" {
		for _, r := range sorted[1:] {
			if strings.TrimSpace(r.Name) != "" {
				base.Name = r.Name
				break
			}
		}
	}
	if strings.TrimSpace(base.UniqueID) == "" {
		for _, r := range sorted[1:] {
			if strings.TrimSpace(r.UniqueID) != "" {
				base.UniqueID = r.UniqueID
				break
			}
		}
	}
	if strings.TrimSpace(base.City) == "" {
		for _, r := range sorted[1:] {
			if strings.TrimSpace(r.City) != "" {
				base.City = r.City
				break
			}
		}
	}
	if strings.TrimSpace(base.Region) == "" {
		for _, r := range sorted[1:] {
			if strings.TrimSpace(r.Region) != "" {
				base.Region = r.Region
				break
			}
		}
	}
	if strings.TrimSpace(base.FacilityType) == "" {
		for _, r := range sorted[1:] {
			if strings.TrimSpace(r.FacilityType) != "" {
				base.FacilityType = r.FacilityType
				break
			}
		}
	}
	if !base.HasCoords {
		for _, r := range sorted[1:] {
			if r.HasCoords {
				base.Lat, base.Lng, base.HasCoords = r.Lat, r.Lng, true
				break
			}
		}
	}
	if base.Beds == nil {
		for _, r := range sorted[1:] {
			if r.Beds != nil {
				base.Beds = r.Beds
				break
			}
		}
	}
	if base.Doctors == nil {
		for _, r := range sorted[1:] {
			if r.Doctors != nil {
				base.Doctors = r.Doctors
				break
			}
		}
	}
	if base.YearEstablished == nil {
		for _, r := range sorted[1:] {
			if r.YearEstablished != nil {
				base.YearEstablished = r.YearEstablished
				break
			}
		}
	}
	if base.Area == nil {
		for _, r := range sorted[1:] {
			if r.Area != nil {
				base.Area = r.Area
				break
			}
		}
	}

	return base
}

// unionInOrder merges a list field across the group, richest row first,
// deduplicating while preserving first-seen insertion order.
func unionInOrder(sorted []RawFacility, field func(*RawFacility) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range sorted {
		for _, item := range field(&sorted[i]) {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}
