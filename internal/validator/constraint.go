package validator

import (
	"fmt"
	"strings"

	domain "medbridge/internal/facility/domain"
)

// Severity classifies a constraint issue.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Issue is a single constraint violation found for a facility.
type Issue struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Specialty   string   `json:"specialty"`
	Requirement string   `json:"requirement"`
	Message     string   `json:"message"`
}

// ConstraintReport is the per-facility result of rule-based validation.
type ConstraintReport struct {
	PKUniqueID string  `json:"pk_unique_id"`
	Issues     []Issue `json:"issues"`
	Confidence float64 `json:"confidence"`
}

// ValidateConstraints checks f against the static requirements table for
// every procedure class implied by its specialties.
func ValidateConstraints(f *domain.Facility) ConstraintReport {
	var issues []Issue
	text := f.CombinedText()

	for _, specialty := range f.Specialties {
		for _, class := range ProcedureClassesFor(normalizeSpecialty(specialty)) {
			req, ok := RequirementFor(class)
			if !ok {
				continue
			}
			for _, lexeme := range req.RequiredEquipment {
				if !FuzzyContains(text, lexeme) {
					issues = append(issues, Issue{
						Type:        "missing_equipment",
						Severity:    SeverityHigh,
						Specialty:   specialty,
						Requirement: lexeme,
						Message:     fmt.Sprintf("%s claims %s but lacks documented %s", f.Name, specialty, lexeme),
					})
				}
			}
			for _, lexeme := range req.RequiredCapability {
				if !FuzzyContains(text, lexeme) {
					issues = append(issues, Issue{
						Type:        "missing_capability",
						Severity:    SeverityMedium,
						Specialty:   specialty,
						Requirement: lexeme,
						Message:     fmt.Sprintf("%s claims %s but lacks documented %s capability", f.Name, specialty, lexeme),
					})
				}
			}
			if f.Beds != nil && *f.Beds < req.MinBeds {
				issues = append(issues, Issue{
					Type:        "insufficient_beds",
					Severity:    SeverityMedium,
					Specialty:   specialty,
					Requirement: fmt.Sprintf("min_beds=%d", req.MinBeds),
					Message:     fmt.Sprintf("%s has %d beds, below the %d expected for %s", f.Name, *f.Beds, req.MinBeds, class),
				})
			}
		}
	}

	return ConstraintReport{
		PKUniqueID: f.PKUniqueID,
		Issues:     issues,
		Confidence: Confidence(f, issues),
	}
}

// normalizeSpecialty lowercases a specialty so lookups against
// specialtyProcedureClasses stay case-insensitive.
func normalizeSpecialty(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Confidence implements the per-facility confidence formula: no issues
// scales with data completeness; otherwise diminishing penalties per
// severity are summed and the result clamped to [0.10, 0.95].
func Confidence(f *domain.Facility, issues []Issue) float64 {
	dataCompleteness := float64(f.TotalClaims()) / 10
	if dataCompleteness > 1 {
		dataCompleteness = 1
	}

	if len(issues) == 0 {
		return 0.7 + 0.3*dataCompleteness
	}

	highPenalties := []float64{0.15, 0.10, 0.05}
	mediumPenalties := []float64{0.08, 0.04}

	highCount, mediumCount := 0, 0
	total := 0.0
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityHigh:
			total += penaltyAt(highPenalties, highCount)
			highCount++
		case SeverityMedium:
			total += penaltyAt(mediumPenalties, mediumCount)
			mediumCount++
		}
	}

	confidence := 1 - total
	if confidence < 0.10 {
		confidence = 0.10
	}
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

// penaltyAt returns the diminishing penalty at position i within a
// sequence, repeating the final listed value once the list is exhausted.
func penaltyAt(schedule []float64, i int) float64 {
	if i < len(schedule) {
		return schedule[i]
	}
	return schedule[len(schedule)-1]
}
