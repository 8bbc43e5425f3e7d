package validator

import (
	"regexp"
	"sort"
	"strings"

	domain "medbridge/internal/facility/domain"
)

// redFlagPatterns maps a category of temporary or overstated capability
// language to the regexes the scanner checks against lowercased facility
// text.
var redFlagPatterns = map[string][]*regexp.Regexp{
	"visiting_specialist": {
		regexp.MustCompile(`visit(?:ing|s)\s+(?:specialist|surgeon|doctor)`),
		regexp.MustCompile(`(?:weekly|monthly|quarterly)\s+(?:clinic|service)`),
		regexp.MustCompile(`outreach\s+(?:program|service|clinic)`),
	},
	"temporary_service": {
		regexp.MustCompile(`(?:surgical|medical)\s+camp`),
		regexp.MustCompile(`mission\s+(?:trip|team|group)`),
		regexp.MustCompile(`temporary\s+(?:service|clinic|facility)`),
		regexp.MustCompile(`mobile\s+(?:unit|clinic|service)`),
	},
	"vague_claim": {
		regexp.MustCompile(`(?:all|any|every)\s+(?:type|kind)\s+of\s+(?:surgery|procedure|service)`),
		regexp.MustCompile(`comprehensive\s+(?:care|service|treatment)`),
		regexp.MustCompile(`world.class`),
		regexp.MustCompile(`state.of.the.art`),
	},
}

// redFlagRecommendationOrder fixes the category priority used to derive a
// recommendation from the set of flagged categories.
var redFlagRecommendationOrder = []string{
	"visiting_specialist", "temporary_service", "vague_claim",
}

var redFlagRecommendations = map[string]string{
	"visiting_specialist": "Likely relies on visiting specialists - verify permanent staffing",
	"temporary_service":   "Appears to offer temporary/camp-based services - not permanent capability",
	"vague_claim":         "Contains vague capability claims - verify specific procedures",
}

// RedFlag is a single textual scanner hit.
type RedFlag struct {
	Category    string `json:"category"`
	Pattern     string `json:"pattern"`
	MatchedText string `json:"matched_text"`
}

// RedFlagReport is the per-facility scanner result, ranked by flag count.
type RedFlagReport struct {
	PKUniqueID      string   `json:"pk_unique_id"`
	Flags           []RedFlag `json:"flags"`
	Recommendations []string  `json:"recommendations"`
}

// ScanRedFlags checks the lowercased concatenation of document, procedures,
// and capabilities against the static pattern table.
func ScanRedFlags(f *domain.Facility) RedFlagReport {
	text := strings.ToLower(f.Document + " " + strings.Join(f.Procedures, " ") + " " + strings.Join(f.Capabilities, " "))

	var flags []RedFlag
	categoriesHit := map[string]bool{}
	for category, patterns := range redFlagPatterns {
		for _, pattern := range patterns {
			if match := pattern.FindString(text); match != "" {
				flags = append(flags, RedFlag{
					Category:    category,
					Pattern:     pattern.String(),
					MatchedText: match,
				})
				categoriesHit[category] = true
			}
		}
	}

	sort.Slice(flags, func(i, j int) bool {
		if flags[i].Category != flags[j].Category {
			return flags[i].Category < flags[j].Category
		}
		return flags[i].Pattern < flags[j].Pattern
	})

	var recs []string
	for _, category := range redFlagRecommendationOrder {
		if categoriesHit[category] {
			recs = append(recs, redFlagRecommendations[category])
			break
		}
	}
	if recs == nil && len(flags) > 0 {
		recs = append(recs, "Review flagged language patterns")
	}

	return RedFlagReport{
		PKUniqueID:      f.PKUniqueID,
		Flags:           flags,
		Recommendations: recs,
	}
}

// RankByFlagCount sorts reports descending by number of flags.
func RankByFlagCount(reports []RedFlagReport) []RedFlagReport {
	sort.SliceStable(reports, func(i, j int) bool {
		return len(reports[i].Flags) > len(reports[j].Flags)
	})
	return reports
}
