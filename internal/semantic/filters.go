package semantic

import (
	"regexp"
	"sort"
	"strings"
)

// clinicalKeywords and specialtyKeywords drive the per-vector weight bump:
// hits against these lists add to the clinical_detail and
// specialties_context vectors respectively.
var clinicalKeywords = []string{
	"dialysis", "chemotherapy", "radiotherapy", "surgery", "icu",
	"ventilator", "blood bank", "oxygen", "theatre", "x-ray", "mri", "ct scan",
	"ultrasound", "laboratory", "pharmacy",
}

var specialtyTopicKeywords = []string{
	"cardiology", "oncology", "pediatrics", "maternity", "orthopedics",
	"neurology", "dermatology", "psychiatry", "dentistry", "ophthalmology",
	"radiology", "nephrology", "urology", "gastroenterology", "endocrinology",
}

// ExtractedFilters is the result of extracting org_type/facility_type/city/
// specialties from an utterance.
type ExtractedFilters struct {
	OrgType      string
	FacilityType string
	City         string
	Specialties  []string
}

func (f ExtractedFilters) toFilters() Filters {
	return Filters{
		OrgType:      f.OrgType,
		FacilityType: f.FacilityType,
		City:         f.City,
		Specialties:  f.Specialties,
	}
}

// ExtractFilters extracts org_type, facility_type, city (word-boundary
// match against knownCities, longest-first; never matching interior to
// another word), and specialty ids from utterance.
func ExtractFilters(utterance string, knownCities []string, knownSpecialties []string) ExtractedFilters {
	lower := strings.ToLower(utterance)

	f := ExtractedFilters{}
	if strings.Contains(lower, "ngo") || strings.Contains(lower, "non-governmental") {
		f.OrgType = "ngo"
	} else if strings.Contains(lower, "facility") || strings.Contains(lower, "hospital") || strings.Contains(lower, "clinic") {
		f.OrgType = "facility"
	}

	switch {
	case strings.Contains(lower, "hospital"):
		f.FacilityType = "hospital"
	case strings.Contains(lower, "clinic"):
		f.FacilityType = "clinic"
	case strings.Contains(lower, "pharmacy"):
		f.FacilityType = "pharmacy"
	}

	f.City = longestWordBoundaryMatch(lower, knownCities)

	for _, s := range knownSpecialties {
		if wordBoundaryContains(lower, strings.ToLower(s)) {
			f.Specialties = append(f.Specialties, s)
		}
	}

	return f
}

// longestWordBoundaryMatch returns the longest entry in candidates that
// appears in text bounded by non-word characters on both sides, never
// matching a substring interior to another word.
func longestWordBoundaryMatch(text string, candidates []string) string {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	for _, c := range sorted {
		if wordBoundaryContains(text, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}

func wordBoundaryContains(text, term string) bool {
	if term == "" {
		return false
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	return re.MatchString(text)
}

// countHits returns how many of keywords appear (word-boundary) in the
// lowercased utterance, used for the per-vector weight bump.
func countHits(lower string, keywords []string) int {
	count := 0
	for _, k := range keywords {
		if wordBoundaryContains(lower, k) {
			count++
		}
	}
	return count
}
