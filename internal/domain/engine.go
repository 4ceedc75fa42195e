package domain

import (
	"time"
)

// Engine evaluates disruption claims against the EU261 and UK261
// compensation rules. It is pure: identical inputs always produce identical
// results, and the only time dependency is the explicit now parameter.
type Engine struct {
	distances *DistanceResolver
}

// NewEngine creates an eligibility engine over the given distance resolver.
func NewEngine(distances *DistanceResolver) *Engine {
	return &Engine{distances: distances}
}

// Evaluate runs the full decision procedure: validate the claim, resolve
// the route distance, classify the applicable jurisdiction, and compute the
// award. A ValidationErrors return means the input was malformed and should
// be corrected and resubmitted; an EligibilityResult with Eligible=false is
// a normal negative determination, not an error.
func (e *Engine) Evaluate(route FlightRoute, disruption DisruptionReport, now time.Time) (EligibilityResult, error) {
	if errs := ValidateClaim(route, disruption, now); len(errs) > 0 {
		return EligibilityResult{}, errs
	}

	distanceKm, source := e.distances.Resolve(route.Departure.IATA, route.Arrival.IATA)

	departure := NormalizeCountry(route.Departure.Country)
	arrival := NormalizeCountry(route.Arrival.Country)
	carrier := NormalizeCountry(route.Airline.Country)

	set := ClassifyJurisdiction(departure, arrival, carrier)

	result := CalculateCompensation(set, departure, arrival, distanceKm, disruption)
	result.DistanceSource = source
	return result, nil
}
