package tabular

import (
	"strings"
	"time"

	domain "medbridge/internal/facility/domain"
)

// countingCues, rankingCues, and the other phrase lists select the handler
// a given utterance dispatches to once filters have been extracted.
var (
	countingCues = []string{"how many", "count", "number of"}
	rankingCues  = []string{"which region", "which city", "top region", "top city", "most facilities", "distribution of"}
	ratioCues    = []string{"ratio", "anomaly", "unusual", "bed to doctor", "bed-to-doctor"}
	spofCues     = []string{"single point of failure", "spof", "only available", "only offered"}
)

// Analyst is the Tabular Analyst agent: it extracts filters from an
// utterance and dispatches to exactly one handler.
type Analyst struct {
	table       *domain.FacilityTable
	knownPlaces []string
}

// New builds an Analyst over table. knownPlaces lists the lowercase
// city/region names the keyword extractor is allowed to match against.
func New(table *domain.FacilityTable, knownPlaces []string) *Analyst {
	return &Analyst{table: table, knownPlaces: knownPlaces}
}

// Answer extracts filters from utterance, dispatches to the matching
// handler, and stamps the result with duration_ms and the utterance.
func (a *Analyst) Answer(utterance string) Result {
	start := time.Now()
	lower := strings.ToLower(utterance)
	filters := ExtractFilters(utterance, a.knownPlaces)

	var result Result
	switch {
	case containsAny(lower, spofCues):
		result = SinglePointOfFailure(a.table)
	case containsAny(lower, ratioCues):
		result = AnomalyBedDoctorRatio(a.table)
	case containsAny(lower, rankingCues):
		result = a.dispatchAggregation(lower, filters)
	case containsAny(lower, countingCues) && filters.Specialty != "":
		result = CountWithSpecialty(a.table, filters.Specialty, filters.FacilityType, filters.Negated)
	case filters.Procedure != "":
		result = FacilitiesWithProcedure(a.table, filters.Procedure, filters.Region)
	case filters.Region != "":
		result = FacilitiesInRegion(a.table, filters.Region, filters.Specialty, filters.Procedure, filters.FacilityType)
	case filters.Specialty != "":
		result = CountWithSpecialty(a.table, filters.Specialty, filters.FacilityType, filters.Negated)
	default:
		result = SpecialtyDistribution(a.table)
	}

	result.Utterance = utterance
	result.DurationMS = time.Since(start).Milliseconds()
	return result
}

func (a *Analyst) dispatchAggregation(lower string, filters Filters) Result {
	if strings.Contains(lower, "distribution") {
		return SpecialtyDistribution(a.table)
	}
	if strings.Contains(lower, "city") {
		return CityAggregation(a.table)
	}
	return RegionAggregation(a.table)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
