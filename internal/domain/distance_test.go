package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testAirports = map[string]Airport{
	"LHR": {IATA: "LHR", Country: "GB", Lat: 51.4700, Lon: -0.4543},
	"JFK": {IATA: "JFK", Country: "US", Lat: 40.6413, Lon: -73.7781},
	"CDG": {IATA: "CDG", Country: "FR", Lat: 49.0097, Lon: 2.5479},
	"FRA": {IATA: "FRA", Country: "DE", Lat: 50.0379, Lon: 8.5622},
	"XXX": {IATA: "XXX", Country: "US"}, // no coordinates
}

func newTestResolver(routes map[string]int) *DistanceResolver {
	return NewDistanceResolver(routes, testAirports, nil)
}

func TestDistanceResolver_CuratedRoute(t *testing.T) {
	r := newTestResolver(map[string]int{"LHR-JFK": 5556})

	km, source := r.Resolve("LHR", "JFK")

	assert.Equal(t, 5556, km)
	assert.Equal(t, DistanceSourceCurated, source)
}

func TestDistanceResolver_ReversedRoute(t *testing.T) {
	r := newTestResolver(map[string]int{"LHR-JFK": 5556})

	km, source := r.Resolve("JFK", "LHR")

	assert.Equal(t, 5556, km, "distance is symmetric")
	assert.Equal(t, DistanceSourceReversed, source)
}

func TestDistanceResolver_HaversineFallback(t *testing.T) {
	r := newTestResolver(nil)

	km, source := r.Resolve("LHR", "JFK")

	assert.Equal(t, DistanceSourceComputed, source)
	assert.InDelta(t, 5540, km, 60, "LHR-JFK great circle is roughly 5540 km")
}

func TestDistanceResolver_HaversineShortRoute(t *testing.T) {
	r := newTestResolver(nil)

	km, source := r.Resolve("CDG", "FRA")

	assert.Equal(t, DistanceSourceComputed, source)
	assert.InDelta(t, 445, km, 15, "CDG-FRA great circle is roughly 445 km")
}

func TestDistanceResolver_Symmetry(t *testing.T) {
	r := newTestResolver(nil)

	forward, _ := r.Resolve("LHR", "CDG")
	back, _ := r.Resolve("CDG", "LHR")

	assert.Equal(t, forward, back)
}

func TestDistanceResolver_DefaultWhenCoordinatesUnknown(t *testing.T) {
	r := newTestResolver(nil)

	t.Run("one endpoint unknown", func(t *testing.T) {
		km, source := r.Resolve("LHR", "XXX")
		assert.Equal(t, DefaultDistanceKm, km)
		assert.Equal(t, DistanceSourceDefault, source)
	})

	t.Run("both endpoints unknown", func(t *testing.T) {
		km, source := r.Resolve("QQQ", "ZZZ")
		assert.Equal(t, DefaultDistanceKm, km)
		assert.Equal(t, DistanceSourceDefault, source)
	})
}

func TestDistanceResolver_CuratedBeatsCoordinates(t *testing.T) {
	// The curated table wins even when coordinates exist, so hand-verified
	// distances are never overridden by the computation.
	r := newTestResolver(map[string]int{"CDG-FRA": 450})

	km, source := r.Resolve("CDG", "FRA")

	assert.Equal(t, 450, km)
	assert.Equal(t, DistanceSourceCurated, source)
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0, haversineKm(51.47, -0.4543, 51.47, -0.4543))
}
