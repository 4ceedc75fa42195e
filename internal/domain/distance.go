package domain

import (
	"log/slog"
	"math"
)

// DefaultDistanceKm is returned when neither the curated route table nor
// airport coordinates can produce a distance. It lands in the middle
// compensation band, so obscure routes get a plausible mid-tier award
// instead of an evaluation failure.
const DefaultDistanceKm = 1500

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceResolver resolves great-circle distances between airports.
// It is pure: resolution never fails and has no side effects beyond a log
// line when it has to fall back to the default.
type DistanceResolver struct {
	routes   map[string]int     // "AAA-BBB" -> km, curated
	airports map[string]Airport // IATA -> airport (for coordinates)
	logger   *slog.Logger
}

// NewDistanceResolver creates a resolver over a curated route table and an
// airport coordinate table. A nil logger disables fallback logging.
func NewDistanceResolver(routes map[string]int, airports map[string]Airport, logger *slog.Logger) *DistanceResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DistanceResolver{routes: routes, airports: airports, logger: logger}
}

// Resolve returns the distance in whole kilometers between two airports,
// trying in order: curated route table, curated table with the key reversed
// (distance is symmetric), haversine over known coordinates, and finally
// DefaultDistanceKm. The source tells the caller which step produced the
// value.
func (r *DistanceResolver) Resolve(departureIATA, arrivalIATA string) (int, DistanceSource) {
	if km, ok := r.routes[routeKey(departureIATA, arrivalIATA)]; ok {
		return km, DistanceSourceCurated
	}
	if km, ok := r.routes[routeKey(arrivalIATA, departureIATA)]; ok {
		return km, DistanceSourceReversed
	}

	dep, depOK := r.airports[departureIATA]
	arr, arrOK := r.airports[arrivalIATA]
	if depOK && arrOK && dep.HasCoordinates() && arr.HasCoordinates() {
		return haversineKm(dep.Lat, dep.Lon, arr.Lat, arr.Lon), DistanceSourceComputed
	}

	// No curated route and no coordinates for at least one endpoint.
	// Logged so the missing airports can be added to the reference dataset.
	r.logger.Warn("no distance data for route, using default",
		"departure", departureIATA,
		"arrival", arrivalIATA,
		"default_km", DefaultDistanceKm,
	)
	return DefaultDistanceKm, DistanceSourceDefault
}

func routeKey(departureIATA, arrivalIATA string) string {
	return departureIATA + "-" + arrivalIATA
}

// haversineKm computes the great-circle distance between two WGS-84
// coordinates, rounded to the nearest whole kilometer.
func haversineKm(lat1, lon1, lat2, lon2 float64) int {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*sinLon*sinLon
	d := 2 * earthRadiusKm * math.Asin(math.Sqrt(a))

	return int(math.Round(d))
}
