package planner

import (
	"context"
	"testing"

	domain "medbridge/internal/facility/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func sampleTable(t *testing.T) *domain.FacilityTable {
	facilities := []domain.Facility{
		{PKUniqueID: "1", Name: "Ridge Hospital", City: "Accra", Region: "Greater Accra",
			HasCoords: true, Lat: 5.6037, Lng: -0.1870, Specialties: []string{"cardiology"},
			Equipment: []string{"mri"}, Capabilities: []string{"icu"}, Beds: intp(100), Doctors: intp(10)},
		{PKUniqueID: "2", Name: "Komfo Anokye", City: "Kumasi", Region: "Ashanti",
			HasCoords: true, Lat: 6.6885, Lng: -1.6244, Specialties: []string{"oncology"},
			Beds: intp(400), Doctors: intp(30)},
		{PKUniqueID: "3", Name: "Tamale Teaching", City: "Tamale", Region: "Northern",
			HasCoords: true, Lat: 9.4034, Lng: -0.8424, Specialties: []string{"cardiology"},
			Beds: intp(20), Doctors: intp(4)},
		{PKUniqueID: "4", Name: "Cape Coast Regional", City: "Cape Coast", Region: "Central",
			HasCoords: true, Lat: 5.1053, Lng: -1.2466, Specialties: []string{"pediatrics"},
			Beds: intp(2), Doctors: intp(1)},
		{PKUniqueID: "5", Name: "Wa Municipal", City: "Wa", Region: "Upper West"},
	}
	table, err := domain.NewFacilityTable(facilities)
	require.NoError(t, err)
	return table
}

func TestCapabilityScore_RewardsSpecialtyMatchMost(t *testing.T) {
	f := &domain.Facility{Specialties: []string{"cardiology"}, Capabilities: []string{"icu"}, Beds: intp(50), Doctors: intp(5)}
	withMatch := CapabilityScore(f, "cardiology")
	withoutMatch := CapabilityScore(f, "oncology")
	assert.Greater(t, withMatch, withoutMatch)
	assert.LessOrEqual(t, withMatch, 100)
}

func TestEmergencyRouting_RanksByDistanceFromOrigin(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.EmergencyRouting("cardiology", 5.6037, -0.1870)
	require.NotNil(t, r.Primary)
	assert.Equal(t, "Ridge Hospital", r.Primary.Facility.Name)
	if r.Backup != nil {
		assert.GreaterOrEqual(t, r.Backup.DistanceKM, r.Primary.DistanceKM)
	}
}

func TestEmergencyRouting_NoCandidatesYieldsNilPrimary(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.EmergencyRouting("neurosurgery", 5.6037, -0.1870)
	assert.Nil(t, r.Primary)
}

func TestSpecialistRotation_VisitsEachTargetExactlyOnce(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.SpecialistRotation(context.Background(), "cardiology", 8, false)
	seen := map[string]bool{}
	for _, s := range r.Stops {
		assert.False(t, seen[s.Facility.PKUniqueID], "facility visited twice")
		seen[s.Facility.PKUniqueID] = true
	}
	assert.Greater(t, r.TotalDistanceKM, 0.0)
}

func TestSpecialistRotation_QUBOComparisonNeverWorseThanClassical(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.SpecialistRotation(context.Background(), "cardiology", 8, true)
	require.NotNil(t, r.QUBOComparison)
	assert.True(t, r.QUBOComparison.Feasible)
	assert.LessOrEqual(t, r.QUBOComparison.QuantumKM, r.QUBOComparison.ClassicalKM+1e-9)
}

func TestCompareRoutes_RefusesLargeInstances(t *testing.T) {
	coords := make([][2]float64, 12)
	for i := range coords {
		coords[i] = [2]float64{float64(i), float64(i)}
	}
	r := CompareRoutes(coords)
	assert.False(t, r.Feasible)
	assert.Equal(t, "classical", r.Winner)
}

func TestCompareRoutes_BruteForceNeverExceedsClassicalCost(t *testing.T) {
	coords := [][2]float64{
		{5.6037, -0.1870}, {6.6885, -1.6244}, {9.4034, -0.8424}, {5.1053, -1.2466},
	}
	r := CompareRoutes(coords)
	assert.True(t, r.Feasible)
	assert.LessOrEqual(t, r.QuantumKM, r.ClassicalKM+1e-9)
}

func TestEquipmentDistribution_RanksRegionsByMissingCountDescending(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.EquipmentDistribution("mri")
	require.NotEmpty(t, r.Recommendations)
	for i := 1; i < len(r.Recommendations); i++ {
		assert.GreaterOrEqual(t, r.Recommendations[i-1].MissingCount, r.Recommendations[i].MissingCount)
	}
	for _, rec := range r.Recommendations {
		assert.NotEqual(t, "Greater Accra", rec.Region) // Ridge Hospital has mri
	}
}

func TestNewFacilityPlacement_TopCandidateHasLargestNearestDistance(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.NewFacilityPlacement(context.Background(), "")
	require.NotEmpty(t, r.Candidates)
	for i := 1; i < len(r.Candidates); i++ {
		assert.GreaterOrEqual(t, r.Candidates[i-1].NearestExistingKM, r.Candidates[i].NearestExistingKM)
	}
	assert.LessOrEqual(t, len(r.Candidates), 10)
}

func TestNewFacilityPlacement_SeverityMatchesDistanceBand(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.NewFacilityPlacement(context.Background(), "")
	for _, c := range r.Candidates {
		switch {
		case c.NearestExistingKM > 100:
			assert.Equal(t, "critical", c.Severity)
		case c.NearestExistingKM > 50:
			assert.Equal(t, "high", c.Severity)
		default:
			assert.Equal(t, "medium", c.Severity)
		}
	}
}

func TestCapacityPlanning_SortsAscendingByBedsPerFacility(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.CapacityPlanning()
	require.NotEmpty(t, r.Regions)
	for i := 1; i < len(r.Regions); i++ {
		assert.LessOrEqual(t, r.Regions[i-1].BedsPerFacility, r.Regions[i].BedsPerFacility)
	}
}

func TestCapacityPlanning_SingleLowBedFacilityRegionIsWarning(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.CapacityPlanning()
	var central *RegionCapacity
	for i := range r.Regions {
		if r.Regions[i].Region == "Central" {
			central = &r.Regions[i]
		}
	}
	require.NotNil(t, central)
	assert.Equal(t, "warning", central.Status) // single facility, beds/facility=2 but facilities not > 3
}

func TestDispatch_DefaultsToEmergencyRouting(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.Dispatch(context.Background(), DispatchInput{Utterance: "need help now", Specialty: "cardiology", OriginLat: 5.6037, OriginLng: -0.1870})
	assert.Equal(t, "emergency_routing", r.Action)
}

func TestDispatch_RoutesToSpecialistRotation(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.Dispatch(context.Background(), DispatchInput{Utterance: "plan a specialist rotation tour", Specialty: "cardiology"})
	assert.Equal(t, "specialist_rotation", r.Action)
}

func TestDispatch_RoutesToCapacityPlanning(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.Dispatch(context.Background(), DispatchInput{Utterance: "run capacity planning for the country"})
	assert.Equal(t, "capacity_planning", r.Action)
}

func TestCompareRoutes_RefusalCarriesStructuredError(t *testing.T) {
	coords := make([][2]float64, 12)
	for i := range coords {
		coords[i] = [2]float64{float64(i), float64(i)}
	}
	r := CompareRoutes(coords)
	assert.False(t, r.Feasible)
	assert.Equal(t, "qubo_refused", r.Method)
	assert.NotEmpty(t, r.Error)
}

func TestSpecialistRotation_QuantumWinMentionsSaving(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.SpecialistRotation(context.Background(), "cardiology", 8, true)
	require.NotNil(t, r.QUBOComparison)
	require.NotEmpty(t, r.ActionSteps)
	if r.QUBOComparison.Winner == "quantum" {
		assert.Contains(t, r.ActionSteps[0], "km")
	}
}

func TestDispatch_ExtractsEquipmentKindFromUtterance(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.Dispatch(context.Background(), DispatchInput{Utterance: "show the mri equipment distribution across regions"})
	assert.Equal(t, "equipment_distribution", r.Action)
	data := r.Data.(EquipmentDistributionResult)
	for _, rec := range data.Recommendations {
		assert.NotEqual(t, "Greater Accra", rec.Region)
	}
}

func TestCompareRoutes_OrderIsPermutationOfNonHubNodes(t *testing.T) {
	coords := [][2]float64{
		{5.6037, -0.1870}, {6.6885, -1.6244}, {9.4034, -0.8424}, {5.1053, -1.2466},
	}
	r := CompareRoutes(coords)
	require.True(t, r.Feasible)
	require.Len(t, r.Order, len(coords)-1)
	seen := map[int]bool{}
	for _, node := range r.Order {
		assert.GreaterOrEqual(t, node, 1)
		assert.Less(t, node, len(coords))
		assert.False(t, seen[node], "node %d visited twice", node)
		seen[node] = true
	}
}

func TestSpecialistRotation_StopsFollowWinningTour(t *testing.T) {
	p := New(sampleTable(t), [4]float64{})
	r := p.SpecialistRotation(context.Background(), "cardiology", 8, true)
	require.NotNil(t, r.QUBOComparison)
	require.True(t, r.QUBOComparison.Feasible)
	// The reported stops' open-path distance must be re-derived from the
	// returned tour, whichever side won the comparison.
	total := 0.0
	for _, s := range r.Stops {
		total += s.LegKM
	}
	assert.InDelta(t, r.TotalDistanceKM, total, 1e-9)
}
