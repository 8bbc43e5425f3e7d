package infrastructure

import (
	"regexp"
	"strings"

	"github.com/agext/levenshtein"
)

// GeocodeTable is the external, city/region-keyed coordinate lookup. Keys
// are expected pre-normalized to lowercase.
type GeocodeTable interface {
	CityCoords() map[string][2]float64
	RegionCoords() map[string][2]float64
}

var whitespaceOrHyphen = regexp.MustCompile(`[\s\-]+`)

// NormalizePlaceName collapses whitespace/hyphens and expands a couple
// of common abbreviations before a lookup.
func NormalizePlaceName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = whitespaceOrHyphen.ReplaceAllString(n, " ")
	n = strings.ReplaceAll(n, "gt.", "greater")
	n = strings.ReplaceAll(n, "st.", "saint")
	return n
}

// Geocode resolves (lat, lng) for a city/region pair using a three-stage
// lookup: (a) normalized exact match, (b) word-boundary substring match
// preferring shorter keys, (c) Levenshtein fuzzy match scoring >= 80. It
// never matches a query as a substring interior to another word (e.g. "wa"
// must not hit "nkawkaw").
func Geocode(table GeocodeTable, city, region string) (lat, lng float64, ok bool) {
	cityCoords := table.CityCoords()
	regionCoords := table.RegionCoords()

	// Stage 1: exact match, city first then region.
	if city != "" {
		if c, found := cityCoords[NormalizePlaceName(city)]; found {
			return c[0], c[1], true
		}
	}
	if region != "" {
		normRegion := NormalizePlaceName(region)
		if c, found := regionCoords[normRegion]; found {
			return c[0], c[1], true
		}
		for key, c := range regionCoords {
			if NormalizePlaceName(key) == normRegion {
				return c[0], c[1], true
			}
		}
	}

	// Stage 2: word-boundary substring match, shorter keys preferred.
	if city != "" {
		normCity := NormalizePlaceName(city)
		if lat, lng, found := wordBoundaryMatch(cityCoords, normCity); found {
			return lat, lng, true
		}
	}

	// Stage 3: Levenshtein fuzzy fallback, score >= 80.
	if city != "" {
		normCity := NormalizePlaceName(city)
		bestKey := ""
		bestScore := 0.0
		for key := range cityCoords {
			score := levenshteinScore(normCity, key)
			if score > bestScore || (score == bestScore && bestKey != "" && key < bestKey) {
				bestScore = score
				bestKey = key
			}
		}
		if bestKey != "" && bestScore >= 80 {
			c := cityCoords[bestKey]
			return c[0], c[1], true
		}
	}

	return 0, 0, false
}

// wordBoundaryMatch accepts a key only if the query appears as a whole word
// inside it, preferring the shortest matching key.
func wordBoundaryMatch(coords map[string][2]float64, query string) (float64, float64, bool) {
	type candidate struct {
		key string
		c   [2]float64
	}
	var candidates []candidate
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(query) + `\b`)
	for key, c := range coords {
		if pattern.MatchString(key) {
			candidates = append(candidates, candidate{key, c})
		}
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if len(cand.key) < len(best.key) ||
			(len(cand.key) == len(best.key) && cand.key < best.key) {
			best = cand
		}
	}
	return best.c[0], best.c[1], true
}

// levenshteinScore converts edit distance into a rapidfuzz-style 0-100
// similarity score: 100 * (1 - distance/max(len(a), len(b))).
func levenshteinScore(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.Distance(a, b, nil)
	return 100 * (1 - float64(dist)/float64(maxLen))
}
