package infrastructure

import (
	"context"
	"testing"

	domain "medbridge/internal/facility/domain"
	"medbridge/internal/semantic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func sampleTable(t *testing.T) *domain.FacilityTable {
	facilities := []domain.Facility{
		{
			PKUniqueID: "1", Name: "Ridge Hospital", OrgType: domain.OrganizationTypeFacility,
			FacilityType: "hospital", City: "Accra", Region: "Greater Accra",
			Specialties: []string{"cardiology"}, Procedures: []string{"angioplasty"},
			Equipment: []string{"ultrasound"}, Beds: intp(100), Doctors: intp(10),
			Document: "Ridge Hospital offers cardiology and angioplasty services in Accra.",
		},
		{
			PKUniqueID: "2", Name: "Tamale Teaching Hospital", OrgType: domain.OrganizationTypeFacility,
			FacilityType: "hospital", City: "Tamale", Region: "Northern",
			Specialties: []string{"oncology"}, Procedures: []string{"chemotherapy"},
			Equipment: []string{"MRI"}, Beds: intp(300), Doctors: intp(40),
			Document: "Tamale Teaching Hospital provides oncology and chemotherapy.",
		},
	}
	table, err := domain.NewFacilityTable(facilities)
	require.NoError(t, err)
	return table
}

func TestSearch_RanksByTermOverlap(t *testing.T) {
	backend := NewLocalBackend(sampleTable(t))

	docs, err := backend.Search(context.Background(), "cardiology angioplasty", semantic.VectorFullDocument, 5, semantic.Filters{})
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, "1", docs[0].ID)
}

func TestSearch_AppliesCityFilter(t *testing.T) {
	backend := NewLocalBackend(sampleTable(t))

	docs, err := backend.Search(context.Background(), "hospital", semantic.VectorFullDocument, 5, semantic.Filters{City: "Tamale"})
	require.NoError(t, err)
	for _, d := range docs {
		assert.Equal(t, "Tamale", d.City)
	}
}

func TestSearch_SpecialtyFilterExcludesNonMatching(t *testing.T) {
	backend := NewLocalBackend(sampleTable(t))

	docs, err := backend.Search(context.Background(), "hospital", semantic.VectorFullDocument, 5, semantic.Filters{Specialties: []string{"oncology"}})
	require.NoError(t, err)
	for _, d := range docs {
		assert.Contains(t, d.Specialties, "oncology")
	}
}

func TestSearch_TopKLimitsResults(t *testing.T) {
	backend := NewLocalBackend(sampleTable(t))

	docs, err := backend.Search(context.Background(), "hospital", semantic.VectorFullDocument, 1, semantic.Filters{})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSearch_NoOverlapReturnsEmpty(t *testing.T) {
	backend := NewLocalBackend(sampleTable(t))

	docs, err := backend.Search(context.Background(), "zzzznonexistentterm", semantic.VectorFullDocument, 5, semantic.Filters{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSearch_ClinicalDetailVectorUsesProceduresAndEquipment(t *testing.T) {
	backend := NewLocalBackend(sampleTable(t))

	docs, err := backend.Search(context.Background(), "mri", semantic.VectorClinicalDetail, 5, semantic.Filters{})
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, "2", docs[0].ID)
}
