package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestDeduplicate_UnionsListFieldsAndPicksRichestScalars(t *testing.T) {
	rows := []RawFacility{
		{Facility: Facility{
			PKUniqueID:  "pk-1",
			Name:        "",
			City:        "Accra",
			Specialties: []string{"cardiology"},
		}},
		{Facility: Facility{
			PKUniqueID:  "pk-1",
			Name:        "Ridge Hospital",
			City:        "",
			Specialties: []string{"Cardiology", "oncology"},
			Beds:        intPtr(120),
		}},
	}

	merged := Deduplicate(rows)
	require.Len(t, merged, 1)

	f := merged[0]
	assert.Equal(t, "Ridge Hospital", f.Name, "richer row's name should win since the first row's name was empty")
	assert.Equal(t, "Accra", f.City, "city should be backfilled from the first row since the richer row's city was empty")
	assert.Equal(t, []string{"Cardiology", "oncology"}, f.Specialties, "duplicate case-insensitive entries collapse; the richest row's casing is seen first and wins")
	require.NotNil(t, f.Beds)
	assert.Equal(t, 120, *f.Beds)
}

func TestDeduplicate_PreservesFirstAppearanceOrder(t *testing.T) {
	rows := []RawFacility{
		{Facility: Facility{PKUniqueID: "b"}},
		{Facility: Facility{PKUniqueID: "a"}},
		{Facility: Facility{PKUniqueID: "b"}},
	}
	merged := Deduplicate(rows)
	require.Len(t, merged, 2)
	assert.Equal(t, "b", merged[0].PKUniqueID)
	assert.Equal(t, "a", merged[1].PKUniqueID)
}

func TestFacilityTable_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewFacilityTable([]Facility{
		{PKUniqueID: "x"},
		{PKUniqueID: "x"},
	})
	assert.Error(t, err)
}

func TestFacilityTable_SelectAndWithCoords(t *testing.T) {
	table, err := NewFacilityTable([]Facility{
		{PKUniqueID: "1", HasCoords: true, Lat: 5.6, Lng: -0.2, Region: "Greater Accra"},
		{PKUniqueID: "2", HasCoords: false, Region: "Ashanti"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	coords := table.WithCoords()
	require.Len(t, coords, 1)
	assert.Equal(t, "1", coords[0].PKUniqueID)

	ashanti := table.Select(func(f *Facility) bool { return f.Region == "Ashanti" })
	require.Len(t, ashanti, 1)
	assert.Equal(t, "2", ashanti[0].PKUniqueID)
}

func TestHasSpecialty_CaseInsensitive(t *testing.T) {
	f := Facility{Specialties: []string{"Cardiology"}}
	assert.True(t, f.HasSpecialty("cardiology"))
	assert.False(t, f.HasSpecialty("oncology"))
}
