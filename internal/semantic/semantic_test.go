package semantic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFilters_CityNeverMatchesSubstringInteriorToAnotherWord(t *testing.T) {
	cities := []string{"wa", "nkawkaw"}
	f := ExtractFilters("facilities near wa", cities, nil)
	assert.Equal(t, "wa", f.City)

	f2 := ExtractFilters("facilities near nkawkaw", cities, nil)
	assert.Equal(t, "nkawkaw", f2.City)
}

func TestExtractFilters_PrefersLongestCityMatch(t *testing.T) {
	cities := []string{"accra", "greater accra"}
	f := ExtractFilters("hospitals in greater accra", cities, nil)
	assert.Equal(t, "greater accra", f.City)
}

func TestWeights_SumToThree(t *testing.T) {
	w := Weights("dialysis and chemotherapy for cardiology patients")
	total := w[VectorFullDocument] + w[VectorClinicalDetail] + w[VectorSpecialtiesContext]
	assert.InDelta(t, 3.0, total, 1e-9)
}

func TestWeights_NoTopicHitsStillSumToThree(t *testing.T) {
	w := Weights("hello there")
	total := w[VectorFullDocument] + w[VectorClinicalDetail] + w[VectorSpecialtiesContext]
	assert.InDelta(t, 3.0, total, 1e-9)
	assert.InDelta(t, 1.0, w[VectorFullDocument], 1e-9)
}

func TestRewriteQuery_PerVectorPhrasing(t *testing.T) {
	assert.Equal(t, "facility with specialties: cardiology", RewriteQuery("cardiology", VectorSpecialtiesContext))
	assert.Equal(t, "Procedures: dialysis | Equipment: dialysis", RewriteQuery("dialysis", VectorClinicalDetail))
	assert.Equal(t, "cardiology", RewriteQuery("cardiology", VectorFullDocument))
}

func TestFetchK_CapsAtThirty(t *testing.T) {
	assert.Equal(t, 15, FetchK(5))
	assert.Equal(t, 30, FetchK(20))
}

func TestFuse_RanksByReciprocalRankFusionScore(t *testing.T) {
	perVector := map[VectorName][]Document{
		VectorFullDocument:       {{ID: "a"}, {ID: "b"}},
		VectorClinicalDetail:     {{ID: "b"}, {ID: "a"}},
		VectorSpecialtiesContext: {{ID: "a"}},
	}
	weights := map[VectorName]float64{VectorFullDocument: 1, VectorClinicalDetail: 1, VectorSpecialtiesContext: 1}

	out := Fuse(perVector, weights, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID) // a appears rank-0 twice plus once more, outranks b
}

func TestFuse_PreservesRichestPayload(t *testing.T) {
	perVector := map[VectorName][]Document{
		VectorFullDocument:   {{ID: "a", Specialties: []string{"cardiology"}}},
		VectorClinicalDetail: {{ID: "a", Specialties: []string{"cardiology", "oncology"}, Procedures: []string{"dialysis"}}},
	}
	weights := map[VectorName]float64{VectorFullDocument: 1.5, VectorClinicalDetail: 1.5}

	out := Fuse(perVector, weights, 10)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Specialties, 2)
	assert.Len(t, out[0].Procedures, 1)
}

func TestFuse_TiesBrokenByInsertionOrder(t *testing.T) {
	perVector := map[VectorName][]Document{
		VectorFullDocument: {{ID: "first"}, {ID: "second"}},
	}
	weights := map[VectorName]float64{VectorFullDocument: 1}

	out := Fuse(perVector, weights, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
}

type stubBackend struct {
	responses map[VectorName][]Document
	fail      map[VectorName]bool
}

func (s *stubBackend) Search(ctx context.Context, query string, vector VectorName, topK int, filters Filters) ([]Document, error) {
	if s.fail[vector] {
		return nil, errors.New("backend unreachable")
	}
	return s.responses[vector], nil
}

func TestRetriever_PerVectorFailureYieldsEmptyNotAbort(t *testing.T) {
	backend := &stubBackend{
		responses: map[VectorName][]Document{
			VectorFullDocument: {{ID: "x"}},
		},
		fail: map[VectorName]bool{
			VectorClinicalDetail:     true,
			VectorSpecialtiesContext: true,
		},
	}
	r := New(backend, nil, nil, time.Second, nil)
	out := r.Search(context.Background(), "cardiology services", 5)
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].ID)
}

func TestRetriever_ServiceInRegionUsesClinicalVectorWithRegionFilter(t *testing.T) {
	var capturedVector VectorName
	var capturedFilters Filters
	backend := &captureBackend{
		onSearch: func(vector VectorName, filters Filters) {
			capturedVector = vector
			capturedFilters = filters
		},
	}
	r := New(backend, nil, nil, time.Second, nil)
	_ = r.ServiceInRegion(context.Background(), "dialysis", "Ashanti", 5)

	assert.Equal(t, VectorClinicalDetail, capturedVector)
	assert.Equal(t, "Ashanti", capturedFilters.City)
}

type captureBackend struct {
	onSearch func(vector VectorName, filters Filters)
}

func (c *captureBackend) Search(ctx context.Context, query string, vector VectorName, topK int, filters Filters) ([]Document, error) {
	c.onSearch(vector, filters)
	return nil, nil
}

type countingBackend struct {
	calls    int
	filtered map[bool][]Document
}

func (c *countingBackend) Search(ctx context.Context, query string, vector VectorName, topK int, filters Filters) ([]Document, error) {
	c.calls++
	return c.filtered[filters.empty()], nil
}

func TestRetriever_RetriesUnfilteredWhenFilteredResultIsEmpty(t *testing.T) {
	backend := &countingBackend{
		filtered: map[bool][]Document{
			false: nil,                // filtered searches come back empty
			true:  {{ID: "fallback"}}, // unfiltered retry finds the document
		},
	}
	r := New(backend, []string{"accra"}, nil, time.Second, nil)
	out := r.Search(context.Background(), "hospitals in accra", 5)
	require.Len(t, out, 1)
	assert.Equal(t, "fallback", out[0].ID)
	// Three vectors filtered plus three unfiltered: exactly one retry.
	assert.Equal(t, 6, backend.calls)
}
