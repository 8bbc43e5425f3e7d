package infrastructure

import (
	"fmt"
	"strings"

	domain "medbridge/internal/facility/domain"
)

// BuildDocument composes the stable document text used for semantic
// search and the validator's text scans.
func BuildDocument(f *domain.Facility) string {
	var parts []string

	name := f.Name
	if name == "" {
		name = "Unknown Facility"
	}
	parts = append(parts, fmt.Sprintf("Name: %s", name))

	typeLine := fmt.Sprintf("Type: %s", f.OrgType)
	if f.FacilityType != "" {
		typeLine += fmt.Sprintf(" (%s)", f.FacilityType)
	}
	parts = append(parts, typeLine)

	var loc []string
	if f.City != "" {
		loc = append(loc, f.City)
	}
	if f.Region != "" {
		loc = append(loc, f.Region)
	}
	if len(loc) > 0 {
		parts = append(parts, fmt.Sprintf("Location: %s", strings.Join(loc, ", ")))
	}

	if len(f.Specialties) > 0 {
		readable := make([]string, len(f.Specialties))
		for i, s := range f.Specialties {
			readable[i] = CamelToReadable(s)
		}
		parts = append(parts, fmt.Sprintf("Medical Specialties: %s", strings.Join(readable, ", ")))
	}
	if len(f.Procedures) > 0 {
		parts = append(parts, fmt.Sprintf("Procedures: %s", strings.Join(f.Procedures, "; ")))
	}
	if len(f.Equipment) > 0 {
		parts = append(parts, fmt.Sprintf("Equipment: %s", strings.Join(f.Equipment, "; ")))
	}
	if len(f.Capabilities) > 0 {
		parts = append(parts, fmt.Sprintf("Capabilities: %s", strings.Join(f.Capabilities, "; ")))
	}
	if f.Doctors != nil {
		parts = append(parts, fmt.Sprintf("Number of Doctors: %d", *f.Doctors))
	}
	if f.Beds != nil {
		parts = append(parts, fmt.Sprintf("Bed Capacity: %d", *f.Beds))
	}
	if f.YearEstablished != nil {
		parts = append(parts, fmt.Sprintf("Year Established: %d", *f.YearEstablished))
	}

	return strings.Join(parts, "\n")
}
