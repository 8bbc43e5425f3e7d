package infrastructure

import (
	"testing"

	"medbridge/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_BuildsOnceAndCachesResult(t *testing.T) {
	calls := 0
	load := func() ([]RawRow, error) {
		calls++
		return []RawRow{
			{PKUniqueID: "1", Name: "A", City: "Accra", Specialties: `["cardiology"]`},
		}, nil
	}

	store := NewStore(load, nil, logging.NewNoOpLogger())

	table1, err := store.Table()
	require.NoError(t, err)
	table2, err := store.Table()
	require.NoError(t, err)

	assert.Same(t, table1, table2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, table1.Len())
}

func TestStore_SurfacesBuildErrorOnEveryCall(t *testing.T) {
	load := func() ([]RawRow, error) {
		return []RawRow{
			{PKUniqueID: "", Name: "Bad"},
		}, nil
	}
	store := NewStore(load, nil, logging.NewNoOpLogger())

	_, err1 := store.Table()
	_, err2 := store.Table()
	require.Error(t, err1)
	require.Error(t, err2)
}

func TestBuildTable_GeocodesWhenCoordsAbsent(t *testing.T) {
	geo := testTable()
	rows := []RawRow{
		{PKUniqueID: "1", Name: "Accra Clinic", City: "Accra"},
	}
	table, err := BuildTable(rows, geo)
	require.NoError(t, err)
	f := table.At(0)
	assert.True(t, f.HasCoords)
	assert.InDelta(t, 5.6037, f.Lat, 1e-6)
}
