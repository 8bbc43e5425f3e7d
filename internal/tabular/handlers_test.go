package tabular

import (
	"testing"

	domain "medbridge/internal/facility/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func sampleTable(t *testing.T) *domain.FacilityTable {
	facilities := []domain.Facility{
		{PKUniqueID: "1", Name: "Ridge Hospital", FacilityType: "hospital", City: "Accra", Region: "Greater Accra",
			Specialties: []string{"cardiology", "oncology"}, Procedures: []string{"dialysis"}, Beds: intp(100), Doctors: intp(5)},
		{PKUniqueID: "2", Name: "Komfo Anokye", FacilityType: "hospital", City: "Kumasi", Region: "Ashanti",
			Specialties: []string{"cardiology"}, Procedures: []string{}, Beds: intp(400), Doctors: intp(4)},
		{PKUniqueID: "3", Name: "Tamale Clinic", FacilityType: "clinic", City: "Tamale", Region: "Northern",
			Specialties: []string{"pediatrics"}, Procedures: []string{}, Beds: intp(20), Doctors: intp(4)},
	}
	table, err := domain.NewFacilityTable(facilities)
	require.NoError(t, err)
	return table
}

func TestCountWithSpecialty_MatchesAndNegates(t *testing.T) {
	table := sampleTable(t)
	r := CountWithSpecialty(table, "cardiology", "", false)
	require.NotNil(t, r.Count)
	assert.Equal(t, 2, *r.Count)
	assert.Len(t, r.Citations, 2)

	r2 := CountWithSpecialty(table, "cardiology", "", true)
	require.NotNil(t, r2.Count)
	assert.Equal(t, 1, *r2.Count)
}

func TestFacilitiesInRegion_MatchesCityOrRegion(t *testing.T) {
	table := sampleTable(t)
	r := FacilitiesInRegion(table, "ashanti", "", "", "")
	assert.Len(t, r.Records, 1)
}

func TestRegionAggregation_TopIsDescending(t *testing.T) {
	table := sampleTable(t)
	r := RegionAggregation(table)
	require.NotNil(t, r.Top)
	assert.Equal(t, 1, r.Top.Count)
}

func TestSpecialtyDistribution_CountsAcrossFacilities(t *testing.T) {
	table := sampleTable(t)
	r := SpecialtyDistribution(table)
	assert.Equal(t, 2, r.Aggregation["cardiology"])
	assert.Equal(t, 1, r.Aggregation["oncology"])
}

func TestAnomalyBedDoctorRatio_EmptyInputHasNilThreshold(t *testing.T) {
	empty, err := domain.NewFacilityTable(nil)
	require.NoError(t, err)
	r := AnomalyBedDoctorRatio(empty)
	require.NotNil(t, r.Anomaly)
	assert.Nil(t, r.Anomaly.Threshold)
}

func TestAnomalyBedDoctorRatio_FlagsHighRatioFacility(t *testing.T) {
	facilities := []domain.Facility{
		{PKUniqueID: "1", Beds: intp(20), Doctors: intp(10)},
		{PKUniqueID: "2", Beds: intp(22), Doctors: intp(11)},
		{PKUniqueID: "3", Beds: intp(21), Doctors: intp(10)},
		{PKUniqueID: "4", Beds: intp(500), Doctors: intp(2)}, // ratio 250, clearly anomalous
	}
	table, err := domain.NewFacilityTable(facilities)
	require.NoError(t, err)

	r := AnomalyBedDoctorRatio(table)
	require.NotNil(t, r.Anomaly.Threshold)
	found := false
	for _, rec := range r.Records {
		if rec["pk_unique_id"] == "4" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSinglePointOfFailure_ReportsLowCountSpecialties(t *testing.T) {
	table := sampleTable(t)
	r := SinglePointOfFailure(table)
	assert.Equal(t, 1, r.Aggregation["oncology"])
	assert.Equal(t, 1, r.Aggregation["pediatrics"])
	assert.Equal(t, 2, r.Aggregation["cardiology"])
}

func TestAnalyst_DispatchesCountIntentByDefault(t *testing.T) {
	table := sampleTable(t)
	a := New(table, []string{"accra", "kumasi", "tamale"})
	r := a.Answer("How many hospitals offer cardiology services?")
	assert.Equal(t, "count_with_specialty", r.Action)
	require.NotNil(t, r.Count)
	assert.GreaterOrEqual(t, *r.Count, 1)
	assert.Contains(t, r.PseudoSQL, "cardiology")
}

func TestAnalyst_DispatchesSPOF(t *testing.T) {
	table := sampleTable(t)
	a := New(table, nil)
	r := a.Answer("What is a single point of failure in our specialty coverage?")
	assert.Equal(t, "single_point_of_failure", r.Action)
}

func TestAnalyst_StampsUtteranceAndDuration(t *testing.T) {
	table := sampleTable(t)
	a := New(table, nil)
	r := a.Answer("How many hospitals are there?")
	assert.Equal(t, "How many hospitals are there?", r.Utterance)
	assert.GreaterOrEqual(t, r.DurationMS, int64(0))
}

func TestExtractFilters_PlaceNeverMatchesInsideAnotherWord(t *testing.T) {
	places := []string{"wa", "nkawkaw"}
	f := ExtractFilters("clinics in nkawkaw", places)
	assert.Equal(t, "nkawkaw", f.Region)

	f2 := ExtractFilters("clinics in kwabenya", places)
	assert.Equal(t, "", f2.Region)

	f3 := ExtractFilters("clinics in wa", places)
	assert.Equal(t, "wa", f3.Region)
}
