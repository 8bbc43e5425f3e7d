// Package tabular implements the Tabular Analyst: keyword-driven intent
// extraction and structured filter/aggregate/ratio/SPOF handlers over the
// facility table built by internal/facility.
package tabular

import (
	"regexp"
	"strings"
)

// specialtyKeywords maps a recognizable phrase to a canonical specialty id
// as stored on a Facility. When several phrases match, firstMatch keeps the
// longest one.
var specialtyKeywords = map[string]string{
	"cardiology":       "cardiology",
	"cardiac":          "cardiology",
	"oncology":         "oncology",
	"cancer":           "oncology",
	"pediatrics":       "pediatrics",
	"paediatrics":      "pediatrics",
	"maternity":        "maternity",
	"obstetrics":       "maternity",
	"orthopedics":      "orthopedics",
	"orthopaedics":     "orthopedics",
	"neurology":        "neurology",
	"dermatology":      "dermatology",
	"psychiatry":       "psychiatry",
	"mental health":    "psychiatry",
	"dentistry":        "dentistry",
	"dental":           "dentistry",
	"ophthalmology":    "ophthalmology",
	"eye care":         "ophthalmology",
	"radiology":        "radiology",
	"surgery":          "surgery",
	"emergency":        "emergency",
	"trauma":           "emergency",
	"nephrology":       "nephrology",
	"urology":          "urology",
	"gastroenterology": "gastroenterology",
	"endocrinology":    "endocrinology",
	"pulmonology":      "pulmonology",
	"infectious":       "infectious_disease",
}

// facilityTypeKeywords maps a recognizable phrase to a canonical facility
// type id as stored on a Facility.
var facilityTypeKeywords = map[string]string{
	"hospital":       "hospital",
	"clinic":         "clinic",
	"health center":  "health_center",
	"health centre":  "health_center",
	"pharmacy":       "pharmacy",
	"maternity home": "maternity_home",
	"polyclinic":     "polyclinic",
}

// procedureKeywords maps a recognizable phrase to a canonical procedure id.
var procedureKeywords = map[string]string{
	"dialysis":         "dialysis",
	"c-section":        "cesarean_section",
	"cesarean":         "cesarean_section",
	"caesarean":        "cesarean_section",
	"chemotherapy":     "chemotherapy",
	"radiotherapy":     "radiotherapy",
	"mri":              "mri_scan",
	"ct scan":          "ct_scan",
	"x-ray":            "xray",
	"ultrasound":       "ultrasound",
	"blood transfusion": "blood_transfusion",
	"physiotherapy":    "physiotherapy",
}

// negationPatterns signal that the extracted filter should be inverted.
var negationPatterns = []string{
	"without",
	"don't",
	"do not",
	"doesn't",
	"does not",
	"no ",
	"lack",
	"lacking",
	"missing",
	"absent",
	"not ",
}

// Filters is the at-most-one-of-each extraction result from an utterance.
type Filters struct {
	Specialty    string
	FacilityType string
	Region       string
	Procedure    string
	Negated      bool
}

// ExtractFilters scans utterance for keyword-map hits and a negation cue.
// At most one specialty, facility type, region/city token, and procedure are
// extracted; longer keys win ties against shorter ones that are substrings
// of them.
func ExtractFilters(utterance string, knownPlaces []string) Filters {
	lower := strings.ToLower(utterance)

	f := Filters{
		Specialty:    firstMatch(lower, specialtyKeywords),
		FacilityType: firstMatch(lower, facilityTypeKeywords),
		Procedure:    firstMatch(lower, procedureKeywords),
		Region:       firstPlaceMatch(lower, knownPlaces),
	}
	f.Negated = detectNegation(lower)
	return f
}

func firstMatch(lower string, table map[string]string) string {
	best := ""
	bestLen := 0
	for phrase, canonical := range table {
		if strings.Contains(lower, phrase) && len(phrase) > bestLen {
			best = canonical
			bestLen = len(phrase)
		}
	}
	return best
}

// firstPlaceMatch finds the longest known place name appearing in lower as
// a whole word. Substring hits interior to another word never count, so
// "wa" cannot match inside "nkawkaw". Known places are expected to already
// be lowercase.
func firstPlaceMatch(lower string, knownPlaces []string) string {
	best := ""
	bestLen := 0
	for _, place := range knownPlaces {
		p := strings.ToLower(place)
		if len(p) <= bestLen {
			continue
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`)
		if re.MatchString(lower) {
			best = place
			bestLen = len(p)
		}
	}
	return best
}

func detectNegation(lower string) bool {
	for _, pat := range negationPatterns {
		if strings.Contains(lower, pat) {
			return true
		}
	}
	return false
}
