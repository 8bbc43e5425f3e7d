// Package domain holds the Facility record type and the FacilityTable,
// an explicit, typed alternative to dataframe-style storage: list columns
// are parsed once at build time and membership tests are cheap.
package domain

import (
	"fmt"
	"strings"
)

// OrganizationType classifies a catalog entry.
type OrganizationType string

const (
	OrganizationTypeFacility OrganizationType = "facility"
	OrganizationTypeNGO      OrganizationType = "ngo"
)

// Facility is an immutable-once-built record for a medical facility or NGO.
type Facility struct {
	PKUniqueID   string
	UniqueID     string
	Name         string
	OrgType      OrganizationType
	FacilityType string
	City         string
	Region       string

	// HasCoords is false when neither the source data nor geocoding could
	// resolve coordinates; Lat/Lng are meaningless in that case.
	HasCoords bool
	Lat       float64
	Lng       float64

	// Capacity fields are pointers so "unknown" is distinguishable from 0.
	Beds            *int
	Doctors         *int
	YearEstablished *int
	Area            *float64

	Specialties  []string
	Procedures   []string
	Equipment    []string
	Capabilities []string

	Document string
}

// FacilityValidationError reports a malformed facility record.
type FacilityValidationError struct {
	Field   string
	Message string
}

func (e FacilityValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Validate enforces the record invariants: a stable non-empty ID, and
// non-negative bed and doctor counts when they are present.
func (f *Facility) Validate() error {
	if strings.TrimSpace(f.PKUniqueID) == "" {
		return FacilityValidationError{Field: "pk_unique_id", Message: "cannot be empty"}
	}
	if f.Beds != nil && *f.Beds < 0 {
		return FacilityValidationError{Field: "beds", Message: "cannot be negative"}
	}
	if f.Doctors != nil && *f.Doctors < 0 {
		return FacilityValidationError{Field: "doctors", Message: "cannot be negative"}
	}
	return nil
}

// HasSpecialty reports case-insensitive membership.
func (f *Facility) HasSpecialty(name string) bool {
	return containsFold(f.Specialties, name)
}

// HasProcedure reports case-insensitive membership.
func (f *Facility) HasProcedure(name string) bool {
	return containsFold(f.Procedures, name)
}

// HasEquipment reports case-insensitive membership.
func (f *Facility) HasEquipment(name string) bool {
	return containsFold(f.Equipment, name)
}

// HasCapability reports case-insensitive membership.
func (f *Facility) HasCapability(name string) bool {
	return containsFold(f.Capabilities, name)
}

// CombinedText concatenates every free-text and capability-list field,
// lowercased, for the validator's fuzzy-containment and red-flag scans.
func (f *Facility) CombinedText() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(f.Document))
	b.WriteByte(' ')
	for _, group := range [][]string{f.Procedures, f.Equipment, f.Capabilities, f.Specialties} {
		for _, item := range group {
			b.WriteString(strings.ToLower(item))
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// TotalClaims is the sum of sizes of the four capability-list fields, used
// by the validator's data-completeness confidence term.
func (f *Facility) TotalClaims() int {
	return len(f.Specialties) + len(f.Procedures) + len(f.Equipment) + len(f.Capabilities)
}

func containsFold(list []string, name string) bool {
	for _, item := range list {
		if strings.EqualFold(item, name) {
			return true
		}
	}
	return false
}
