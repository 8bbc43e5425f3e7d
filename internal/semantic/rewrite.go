package semantic

import (
	"fmt"
	"strings"
)

// RewriteQuery rewrites the utterance to match the indexed phrasing for a
// given target vector.
func RewriteQuery(query string, vector VectorName) string {
	switch vector {
	case VectorClinicalDetail:
		return fmt.Sprintf("Procedures: %s | Equipment: %s", query, query)
	case VectorSpecialtiesContext:
		return fmt.Sprintf("facility with specialties: %s", query)
	default:
		return query
	}
}

// Weights computes the base-1-plus-topic-hit weight for each of the three
// vectors and normalizes them so they sum to exactly 3.0.
func Weights(utterance string) map[VectorName]float64 {
	lower := strings.ToLower(utterance)
	clinicalHits := countHits(lower, clinicalKeywords)
	specialtyHits := countHits(lower, specialtyTopicKeywords)

	raw := map[VectorName]float64{
		VectorFullDocument:       1,
		VectorClinicalDetail:     1 + float64(min(clinicalHits, 3)),
		VectorSpecialtiesContext: 1 + float64(min(specialtyHits, 3)),
	}

	sum := raw[VectorFullDocument] + raw[VectorClinicalDetail] + raw[VectorSpecialtiesContext]
	for v := range raw {
		raw[v] = raw[v] * 3.0 / sum
	}
	return raw
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// FetchK computes the per-vector candidate fetch size.
func FetchK(topK int) int {
	fk := topK * 3
	if fk > 30 {
		return 30
	}
	return fk
}
