package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ghanaPoints() []Point {
	return []Point{
		{Index: 0, Lat: 5.6037, Lng: -0.1870},  // Accra
		{Index: 1, Lat: 6.6885, Lng: -1.6244},  // Kumasi
		{Index: 2, Lat: 9.4034, Lng: -0.8424},  // Tamale
		{Index: 3, Lat: 5.1053, Lng: -1.2466},  // Cape Coast
		{Index: 4, Lat: 10.0601, Lng: -2.5099}, // Wa
	}
}

func TestBuild_EmptyIndexIsValid(t *testing.T) {
	idx := Build(nil)
	require.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.KNearest(5.6, -0.18, 3))
	assert.Nil(t, idx.WithinRadius(5.6, -0.18, 100))
}

func TestKNearest_ReturnsAscendingByDistance(t *testing.T) {
	idx := Build(ghanaPoints())
	neighbors := idx.KNearest(5.6037, -0.1870, 3)
	require.Len(t, neighbors, 3)
	assert.Equal(t, 0, neighbors[0].Point.Index) // Accra is its own nearest neighbor
	assert.InDelta(t, 0, neighbors[0].DistanceKM, 1e-6)
	for i := 1; i < len(neighbors); i++ {
		assert.LessOrEqual(t, neighbors[i-1].DistanceKM, neighbors[i].DistanceKM)
	}
}

func TestKNearest_KGreaterThanNReturnsAll(t *testing.T) {
	idx := Build(ghanaPoints())
	neighbors := idx.KNearest(5.6037, -0.1870, 100)
	assert.Len(t, neighbors, 5)
}

func TestWithinRadius_ContainsSelfForAnyNonNegativeEpsilon(t *testing.T) {
	points := ghanaPoints()
	idx := Build(points)
	for _, p := range points {
		for _, eps := range []float64{0, 0.001, 5, 500} {
			neighbors := idx.WithinRadius(p.Lat, p.Lng, eps)
			found := false
			for _, n := range neighbors {
				if n.Point.Index == p.Index {
					found = true
					break
				}
			}
			assert.True(t, found, "point %d must be within radius %v of itself", p.Index, eps)
		}
	}
}

func TestWithinRadius_MatchesBruteForce(t *testing.T) {
	points := ghanaPoints()
	idx := Build(points)
	centerLat, centerLng, radius := 6.0, -1.0, 400.0

	got := idx.WithinRadius(centerLat, centerLng, radius)
	gotSet := map[int]bool{}
	for _, n := range got {
		gotSet[n.Point.Index] = true
	}

	for _, p := range points {
		d := HaversineKM(centerLat, centerLng, p.Lat, p.Lng)
		if d <= radius {
			assert.True(t, gotSet[p.Index], "expected point %d within brute-force radius", p.Index)
		} else {
			assert.False(t, gotSet[p.Index], "point %d should not be within radius", p.Index)
		}
	}
}

func TestHaversineKM_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, HaversineKM(5.6037, -0.1870, 5.6037, -0.1870), 1e-9)
}

func TestHaversineKM_KnownDistanceAccraKumasi(t *testing.T) {
	d := HaversineKM(5.6037, -0.1870, 6.6885, -1.6244)
	// Accra-Kumasi road distance is roughly 250km; great-circle is a bit less.
	assert.True(t, d > 180 && d < 220, "expected ~200km, got %v", d)
}

func TestBuildWithRadius_ScalesDistanceLinearly(t *testing.T) {
	points := []Point{{Index: 0, Lat: 0, Lng: 0}, {Index: 1, Lat: 0, Lng: 1}}
	idxEarth := BuildWithRadius(points, EarthRadiusKM)
	idxDouble := BuildWithRadius(points, EarthRadiusKM*2)

	n1 := idxEarth.KNearest(0, 0, 2)
	n2 := idxDouble.KNearest(0, 0, 2)
	require.Len(t, n1, 2)
	require.Len(t, n2, 2)
	assert.InDelta(t, n1[1].DistanceKM*2, n2[1].DistanceKM, 1e-6)
}

func TestKNearest_NegativeOrZeroKReturnsNil(t *testing.T) {
	idx := Build(ghanaPoints())
	assert.Nil(t, idx.KNearest(5.6, -0.18, 0))
	assert.Nil(t, idx.KNearest(5.6, -0.18, -1))
}

func TestToUnitSphere_IsOnUnitSphere(t *testing.T) {
	x, y, z := toUnitSphere(12.3, -45.6)
	mag := math.Sqrt(x*x + y*y + z*z)
	assert.InDelta(t, 1.0, mag, 1e-9)
}
