package infrastructure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV_ParsesHeaderByName(t *testing.T) {
	csv := "pk_unique_id,name,city,region,lat,lng\n" +
		"gh-001,Ridge Hospital,Accra,Greater Accra,5.57,-0.1969\n"

	rows, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "gh-001", rows[0].PKUniqueID)
	assert.Equal(t, "Ridge Hospital", rows[0].Name)
	assert.Equal(t, "5.57", rows[0].Lat)
}

func TestLoadCSV_ReorderedColumnsStillMatchByName(t *testing.T) {
	csv := "name,pk_unique_id\nTamale Teaching,gh-002\n"

	rows, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "gh-002", rows[0].PKUniqueID)
	assert.Equal(t, "Tamale Teaching", rows[0].Name)
}

func TestLoadCSV_MissingColumnDefaultsEmpty(t *testing.T) {
	csv := "pk_unique_id\ngh-003\n"

	rows, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].City)
}

func TestLoadCSV_EmptyInputReturnsNoRows(t *testing.T) {
	rows, err := LoadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadCSV_HeaderOnlyReturnsNoRows(t *testing.T) {
	rows, err := LoadCSV(strings.NewReader("pk_unique_id,name\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
