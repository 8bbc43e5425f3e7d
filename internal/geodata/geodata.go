// Package geodata provides the static city/region coordinate tables that
// stand in for the external geocoding and region-centroid services. It is a
// fixed, process-lifetime lookup, not a live geocoding client.
package geodata

import "strings"

// Table is a static Ghana city/region coordinate table. It implements
// geospatial.GeocodeLookup (named-city lookup) and
// validator.RegionCentroidLookup (region centroid lookup) directly, and
// serves infrastructure.GeocodeTable (three-stage geocode fallback)
// through AsGeocodeTable.
type Table struct {
	cities  map[string][2]float64
	regions map[string][2]float64
}

// New builds a Table from the built-in Ghana fixture.
func New() *Table {
	return &Table{cities: ghanaCityCoords, regions: ghanaRegionCoords}
}

// CityCoordsTable returns the city coordinate table.
func (t *Table) CityCoordsTable() map[string][2]float64 { return t.cities }

// RegionCoords returns the region coordinate table.
func (t *Table) RegionCoords() map[string][2]float64 { return t.regions }

// GeocodeAdapter exposes Table as infrastructure.GeocodeTable without
// clashing with the single-city lookup method geospatial.GeocodeLookup
// needs.
type GeocodeAdapter struct{ t *Table }

// AsGeocodeTable wraps t for facility enrichment's three-stage geocoder.
func (t *Table) AsGeocodeTable() GeocodeAdapter { return GeocodeAdapter{t} }

func (a GeocodeAdapter) CityCoords() map[string][2]float64   { return a.t.cities }
func (a GeocodeAdapter) RegionCoords() map[string][2]float64 { return a.t.regions }

// CityCoords satisfies geospatial.GeocodeLookup: a direct, normalized
// lookup by city name (no fuzzy fallback — that three-stage logic lives
// in infrastructure.Geocode for facility enrichment).
func (t *Table) CityCoords(city string) (lat, lng float64, ok bool) {
	c, found := t.cities[normalize(city)]
	if !found {
		return 0, 0, false
	}
	return c[0], c[1], true
}

// RegionCentroid satisfies validator.RegionCentroidLookup.
func (t *Table) RegionCentroid(region string) (lat, lng float64, ok bool) {
	c, found := t.regions[normalize(region)]
	if !found {
		return 0, 0, false
	}
	return c[0], c[1], true
}

// KnownCities lists every city this table recognizes, lowercased, for the
// semantic retriever's and tabular analyst's word-boundary extractors.
func (t *Table) KnownCities() []string {
	out := make([]string, 0, len(t.cities))
	for c := range t.cities {
		out = append(out, c)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ghanaCityCoords is a small fixed set of major Ghanaian city centroids.
var ghanaCityCoords = map[string][2]float64{
	"accra":       {5.6037, -0.1870},
	"kumasi":      {6.6885, -1.6244},
	"tamale":      {9.4035, -0.8393},
	"sekondi":     {4.9340, -1.7137},
	"takoradi":    {4.8845, -1.7554},
	"cape coast":  {5.1053, -1.2466},
	"sunyani":     {7.3392, -2.3265},
	"koforidua":   {6.0941, -0.2587},
	"ho":          {6.6000, 0.4667},
	"bolgatanga":  {10.7854, -0.8513},
	"wa":          {10.0601, -2.5099},
	"techiman":    {7.5833, -1.9333},
	"obuasi":      {6.2025, -1.6700},
	"tema":        {5.6698, -0.0166},
	"nkawkaw":     {6.5500, -0.7667},
}

// ghanaRegionCoords mirrors Ghana's administrative region centroids.
var ghanaRegionCoords = map[string][2]float64{
	"greater accra": {5.6037, -0.1870},
	"ashanti":       {6.7470, -1.5209},
	"northern":      {9.5439, -0.9057},
	"western":       {5.0167, -2.0000},
	"central":       {5.4500, -1.0000},
	"bono":          {7.6500, -1.9833},
	"eastern":       {6.2000, -0.5000},
	"volta":         {6.6000, 0.4667},
	"upper east":    {10.7500, -0.9000},
	"upper west":    {10.2000, -2.3000},
}
