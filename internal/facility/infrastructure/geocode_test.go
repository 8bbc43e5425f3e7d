package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGeoTable struct {
	cities  map[string][2]float64
	regions map[string][2]float64
}

func (f fakeGeoTable) CityCoords() map[string][2]float64   { return f.cities }
func (f fakeGeoTable) RegionCoords() map[string][2]float64 { return f.regions }

func testTable() fakeGeoTable {
	return fakeGeoTable{
		cities: map[string][2]float64{
			"accra":   {5.6037, -0.1870},
			"wa":      {10.0601, -2.5099},
			"nkawkaw": {6.5500, -0.7800},
			"kumasi":  {6.6885, -1.6244},
		},
		regions: map[string][2]float64{
			"greater accra": {5.6037, -0.1870},
		},
	}
}

func TestGeocode_ExactMatch(t *testing.T) {
	lat, lng, ok := Geocode(testTable(), "Accra", "")
	assert.True(t, ok)
	assert.InDelta(t, 5.6037, lat, 1e-6)
	assert.InDelta(t, -0.1870, lng, 1e-6)
}

func TestGeocode_NeverMatchesSubstringInteriorToAnotherWord(t *testing.T) {
	// "wa" must not match inside "nkawkaw"
	lat, lng, ok := Geocode(testTable(), "wa", "")
	assert.True(t, ok)
	assert.InDelta(t, 10.0601, lat, 1e-6)
	assert.InDelta(t, -2.5099, lng, 1e-6)
}

func TestGeocode_FuzzyFallback(t *testing.T) {
	// "Kumase" is a one-letter typo of "kumasi"
	lat, lng, ok := Geocode(testTable(), "Kumase", "")
	assert.True(t, ok)
	assert.InDelta(t, 6.6885, lat, 1e-6)
	assert.InDelta(t, -1.6244, lng, 1e-6)
}

func TestGeocode_NoMatch(t *testing.T) {
	_, _, ok := Geocode(testTable(), "Nonexistentville", "Nowhere Region")
	assert.False(t, ok)
}

func TestNormalizePlaceName(t *testing.T) {
	assert.Equal(t, "greater accra", NormalizePlaceName("Gt. Accra"))
	assert.Equal(t, "saint johns", NormalizePlaceName("St. Johns"))
	assert.Equal(t, "new weija", NormalizePlaceName("new-weija"))
}
