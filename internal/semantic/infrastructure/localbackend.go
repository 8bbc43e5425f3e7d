// Package infrastructure provides the local, in-process implementation of
// semantic.Backend, which cmd/server always wires in (the
// internal/config.VectorBackendName value is not consulted). The real vector
// store (Qdrant/Databricks) is explicitly out of scope; this stands in for
// it so the retriever is exercisable end to end.
package infrastructure

import (
	"context"
	"sort"
	"strings"

	domain "medbridge/internal/facility/domain"
	"medbridge/internal/semantic"
)

// LocalBackend ranks facility documents by lexical term overlap against
// the rewritten per-vector query text. It is a stand-in for the real
// vector backend so the retriever is exercisable without one, not a
// production retrieval algorithm.
type LocalBackend struct {
	table *domain.FacilityTable
}

// NewLocalBackend builds a backend over table's documents. table is
// expected to stay immutable for the process lifetime.
func NewLocalBackend(table *domain.FacilityTable) *LocalBackend {
	return &LocalBackend{table: table}
}

// Search satisfies semantic.Backend: it filters the facility subset by the
// supplied metadata filters, scores each candidate by term-overlap against
// the vector-specific text, and returns the top topK hits sorted by score
// descending then by table order.
func (b *LocalBackend) Search(_ context.Context, query string, vector semantic.VectorName, topK int, filters semantic.Filters) ([]semantic.Document, error) {
	terms := tokenize(query)

	type scored struct {
		doc   semantic.Document
		score float64
	}
	var candidates []scored
	for i := 0; i < b.table.Len(); i++ {
		f := b.table.At(i)
		if !passesFilters(f, filters) {
			continue
		}
		text := vectorText(f, vector)
		score := overlapScore(terms, text)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scored{doc: toDocument(f), score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	out := make([]semantic.Document, len(candidates))
	for i, c := range candidates {
		out[i] = c.doc
	}
	return out, nil
}

func passesFilters(f *domain.Facility, filters semantic.Filters) bool {
	if filters.OrgType != "" && !strings.EqualFold(string(f.OrgType), filters.OrgType) {
		return false
	}
	if filters.FacilityType != "" && !strings.EqualFold(f.FacilityType, filters.FacilityType) {
		return false
	}
	if filters.City != "" && !strings.EqualFold(f.City, filters.City) {
		return false
	}
	for _, s := range filters.Specialties {
		if !f.HasSpecialty(s) {
			return false
		}
	}
	return true
}

func vectorText(f *domain.Facility, vector semantic.VectorName) string {
	switch vector {
	case semantic.VectorClinicalDetail:
		return strings.ToLower(strings.Join(f.Procedures, " ") + " " + strings.Join(f.Equipment, " "))
	case semantic.VectorSpecialtiesContext:
		return strings.ToLower(strings.Join(f.Specialties, " "))
	default:
		return strings.ToLower(f.Document)
	}
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

func overlapScore(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	hits := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

func toDocument(f *domain.Facility) semantic.Document {
	doc := semantic.Document{
		ID:           f.PKUniqueID,
		Name:         f.Name,
		OrgType:      string(f.OrgType),
		FacilityType: f.FacilityType,
		City:         f.City,
		Region:       f.Region,
		Specialties:  f.Specialties,
		Procedures:   f.Procedures,
		Equipment:    f.Equipment,
		Capabilities: f.Capabilities,
		Lat:          f.Lat,
		Lng:          f.Lng,
		HasCoords:    f.HasCoords,
		DocumentText: f.Document,
	}
	if f.Beds != nil {
		doc.Beds = f.Beds
	}
	if f.Doctors != nil {
		doc.Doctors = f.Doctors
	}
	return doc
}
